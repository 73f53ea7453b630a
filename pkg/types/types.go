package types

import (
	"bytes"
	"encoding/json"
)

// Row is one extracted record. Values are restricted to the JSON scalar
// types: nil, bool, int64, float64, string.
type Row struct {
	Columns []string
	Values  map[string]any
}

// NewRow returns an empty row sized for n columns. Columns are recorded
// in the order Set first sees them.
func NewRow(n int) Row {
	return Row{
		Columns: make([]string, 0, n),
		Values:  make(map[string]any, n),
	}
}

func (r *Row) Set(column string, value any) {
	if _, ok := r.Values[column]; !ok {
		r.Columns = append(r.Columns, column)
	}
	r.Values[column] = value
}

func (r Row) Get(column string) (any, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// MarshalJSON emits keys in column order. encoding/json sorts map keys
// alphabetically, which would scramble the dump's column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.Values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TableExtraction is the unit persisted to one output file.
type TableExtraction struct {
	TableName   string   `json:"table_name"`
	Columns     []string `json:"columns"`
	RowCount    int      `json:"row_count"`
	ExtractedAt string   `json:"extracted_at"`
	Data        []Row    `json:"data"`
}

type TableSummary struct {
	Name     string `json:"name"`
	RowCount int    `json:"row_count"`
}

type Summary struct {
	ExtractionDate string         `json:"extraction_date"`
	TotalTables    int            `json:"total_tables"`
	TotalRows      int            `json:"total_rows"`
	Tables         []TableSummary `json:"tables"`
}

// Package writer serializes extractions to per-table JSON files plus a
// summary manifest.
package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tobiasmeyer/sqlextract/pkg/types"
)

const summaryFile = "extraction_summary.json"

type Writer struct {
	dir    string
	pretty bool
	log    zerolog.Logger
	now    func() time.Time
}

func New(dir string, pretty bool, log zerolog.Logger) *Writer {
	return &Writer{dir: dir, pretty: pretty, log: log, now: time.Now}
}

// WriteAll writes one <table>.json per extraction and the summary manifest,
// creating the output directory if needed. Files already written stay in
// place on error; there is no rollback.
func (w *Writer) WriteAll(tables []types.TableExtraction) (types.Summary, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return types.Summary{}, fmt.Errorf("create output directory: %w", err)
	}

	for _, t := range tables {
		path := filepath.Join(w.dir, t.TableName+".json")
		if err := w.writeJSON(path, t); err != nil {
			return types.Summary{}, fmt.Errorf("write table %s: %w", t.TableName, err)
		}
		w.log.Info().Str("table", t.TableName).Int("rows", t.RowCount).Str("file", path).Msg("table written")
	}

	summary := Summarize(tables, w.now().Format(time.RFC3339))
	if err := w.writeJSON(filepath.Join(w.dir, summaryFile), summary); err != nil {
		return types.Summary{}, fmt.Errorf("write summary: %w", err)
	}
	return summary, nil
}

// Summarize derives the manifest from the extracted tables. Invariants:
// TotalRows is the sum of per-table counts, TotalTables == len(Tables).
func Summarize(tables []types.TableExtraction, date string) types.Summary {
	s := types.Summary{
		ExtractionDate: date,
		TotalTables:    len(tables),
		Tables:         make([]types.TableSummary, 0, len(tables)),
	}
	for _, t := range tables {
		s.TotalRows += t.RowCount
		s.Tables = append(s.Tables, types.TableSummary{Name: t.TableName, RowCount: t.RowCount})
	}
	return s
}

func (w *Writer) writeJSON(path string, v any) error {
	var (
		data []byte
		err  error
	)
	if w.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

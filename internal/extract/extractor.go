// Package extract drives the dump-to-tables pipeline: statement scanning,
// schema registration, tuple tokenizing and row assembly.
package extract

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tobiasmeyer/sqlextract/internal/scanner"
	"github.com/tobiasmeyer/sqlextract/internal/schema"
	"github.com/tobiasmeyer/sqlextract/internal/values"
	"github.com/tobiasmeyer/sqlextract/pkg/types"
)

// Extractor accumulates per-table rows over one pass of a dump. It is
// built at run start and discarded afterwards; nothing here is shared
// between runs.
type Extractor struct {
	registry *schema.Registry
	rows     map[string][]types.Row
	log      zerolog.Logger
	now      func() time.Time
}

func New(log zerolog.Logger) *Extractor {
	return &Extractor{
		registry: schema.NewRegistry(),
		rows:     make(map[string][]types.Row),
		log:      log,
		now:      time.Now,
	}
}

// Run processes the whole dump text and returns one TableExtraction per
// table, in the order tables first appeared in the dump.
func (e *Extractor) Run(dump string) []types.TableExtraction {
	for _, stmt := range scanner.Statements(dump) {
		e.consume(stmt)
	}
	return e.Results()
}

// consume handles a single statement. Statements that are neither CREATE
// TABLE nor INSERT (SET, DROP, LOCK TABLES, ...) are skipped.
func (e *Extractor) consume(stmt string) {
	if ts, ok := schema.ParseCreateTable(stmt); ok {
		e.registry.Register(ts)
		e.log.Debug().Str("table", ts.Name).Int("columns", len(ts.Columns)).Msg("registered schema")
		return
	}

	ins, ok := ParseInsert(stmt)
	if !ok {
		return
	}

	ts := e.schemaFor(ins)
	for _, tuple := range ins.Tuples {
		row := e.assemble(ts, values.Tokenize(tuple))
		e.rows[ts.Name] = append(e.rows[ts.Name], row)
	}
}

// schemaFor resolves the column order for an INSERT: registered CREATE
// TABLE first, then the statement's own column list, then synthesized
// col_N names.
func (e *Extractor) schemaFor(ins *Insert) *schema.TableSchema {
	if ts, ok := e.registry.Lookup(ins.Table); ok {
		return ts
	}

	var ts *schema.TableSchema
	if len(ins.Columns) > 0 {
		ts = &schema.TableSchema{Name: ins.Table, Columns: ins.Columns}
	} else {
		width := 0
		if len(ins.Tuples) > 0 {
			width = len(values.Tokenize(ins.Tuples[0]))
		}
		ts = schema.Synthesize(ins.Table, width)
		e.log.Debug().Str("table", ins.Table).Msg("no schema seen before INSERT, synthesizing column names")
	}
	e.registry.Register(ts)
	return ts
}

// assemble zips columns with coerced values. Short tuples are padded with
// nulls; surplus values are preserved under extra_<i> keys rather than
// dropped.
func (e *Extractor) assemble(ts *schema.TableSchema, tokens []string) types.Row {
	row := types.NewRow(len(ts.Columns))
	for i, col := range ts.Columns {
		if i < len(tokens) {
			row.Set(col, values.Coerce(tokens[i]))
		} else {
			row.Set(col, nil)
		}
	}

	if len(tokens) != len(ts.Columns) {
		e.log.Warn().
			Str("table", ts.Name).
			Int("columns", len(ts.Columns)).
			Int("values", len(tokens)).
			Msg("tuple arity mismatch")
	}
	for i := len(ts.Columns); i < len(tokens); i++ {
		row.Set(fmt.Sprintf("extra_%d", i-len(ts.Columns)), values.Coerce(tokens[i]))
	}
	return row
}

// Results snapshots the accumulated tables in first-seen order. Tables
// known only from CREATE TABLE still appear, with zero rows.
func (e *Extractor) Results() []types.TableExtraction {
	extractedAt := e.now().Format(time.RFC3339)

	var out []types.TableExtraction
	for _, name := range e.registry.Names() {
		ts, _ := e.registry.Lookup(name)
		rows := e.rows[name]
		if rows == nil {
			rows = []types.Row{}
		}
		out = append(out, types.TableExtraction{
			TableName:   name,
			Columns:     ts.Columns,
			RowCount:    len(rows),
			ExtractedAt: extractedAt,
			Data:        rows,
		})
	}
	return out
}

// Package schema extracts table schemas from CREATE TABLE statements and
// holds the run-scoped registry of table name -> ordered column list.
package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// TableSchema is the ordered column-name list for one table, as declared in
// the dump or inferred from the first INSERT. Immutable once registered.
type TableSchema struct {
	Name    string
	Columns []string
}

// Registry maps table names (case-sensitive, as written in the dump) to
// their schemas. It is built at run start and discarded at run end; there is
// no process-wide state.
type Registry struct {
	tables map[string]*TableSchema
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*TableSchema)}
}

// Register records a schema for a table. The first registration wins;
// later ones are ignored so an INSERT-inferred schema never overrides a
// declared CREATE TABLE.
func (r *Registry) Register(s *TableSchema) {
	if _, ok := r.tables[s.Name]; ok {
		return
	}
	r.tables[s.Name] = s
	r.order = append(r.order, s.Name)
}

func (r *Registry) Lookup(name string) (*TableSchema, bool) {
	s, ok := r.tables[name]
	return s, ok
}

// Names returns table names in first-seen order.
func (r *Registry) Names() []string {
	return r.order
}

var createTableRe = regexp.MustCompile("(?is)^CREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?[`\"]?([\\w.]+)[`\"]?\\s*\\((.*)\\)[^)]*$")

// constraint-only lines inside a CREATE TABLE body, recognized by their
// leading keyword
var constraintKeywords = map[string]bool{
	"PRIMARY":    true,
	"FOREIGN":    true,
	"CONSTRAINT": true,
	"KEY":        true,
	"UNIQUE":     true,
	"INDEX":      true,
	"CHECK":      true,
}

// ParseCreateTable extracts a TableSchema from a CREATE TABLE statement, or
// reports ok=false if the statement is not one.
func ParseCreateTable(stmt string) (*TableSchema, bool) {
	m := createTableRe.FindStringSubmatch(strings.TrimSpace(stmt))
	if m == nil {
		return nil, false
	}

	name := m[1]
	var columns []string
	for _, def := range splitColumnDefs(m[2]) {
		fields := strings.Fields(def)
		if len(fields) == 0 {
			continue
		}
		if constraintKeywords[strings.ToUpper(fields[0])] {
			continue
		}
		columns = append(columns, strings.Trim(fields[0], "`\""))
	}

	return &TableSchema{Name: name, Columns: columns}, true
}

// splitColumnDefs splits the CREATE TABLE body on top-level commas only.
// Type parameters such as DECIMAL(10,2) carry commas inside nested parens
// and must stay within one definition.
func splitColumnDefs(body string) []string {
	var defs []string
	var buf strings.Builder
	depth := 0
	inQuote := byte(0)

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case inQuote != 0:
			buf.WriteByte(c)
			if c == inQuote {
				inQuote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			inQuote = c
			buf.WriteByte(c)
		case c == '(':
			depth++
			buf.WriteByte(c)
		case c == ')':
			depth--
			buf.WriteByte(c)
		case c == ',' && depth == 0:
			defs = append(defs, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	if s := strings.TrimSpace(buf.String()); s != "" {
		defs = append(defs, s)
	}
	return defs
}

// Synthesize builds a placeholder schema (col_0, col_1, ...) for a table
// that received INSERTs before any CREATE TABLE was seen.
func Synthesize(name string, width int) *TableSchema {
	cols := make([]string, width)
	for i := range cols {
		cols[i] = fmt.Sprintf("col_%d", i)
	}
	return &TableSchema{Name: name, Columns: cols}
}

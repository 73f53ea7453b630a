package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tobiasmeyer/sqlextract/internal/writer"
)

// End-to-end style test: a realistic mysqldump fixture through the full
// pipeline, out to files on disk.
func TestExtractDumpFixture(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "dump.sql"))
	if err != nil {
		t.Fatal(err)
	}

	tables := New(zerolog.Nop()).Run(string(data))
	if len(tables) != 3 {
		t.Fatalf("expected 3 tables, got %d", len(tables))
	}
	if tables[0].TableName != "users" || tables[1].TableName != "orders" || tables[2].TableName != "empty_table" {
		t.Fatalf("tables out of dump order: %v", []string{tables[0].TableName, tables[1].TableName, tables[2].TableName})
	}

	users := tables[0]
	if users.RowCount != 2 {
		t.Fatalf("users row count = %d, want 2", users.RowCount)
	}
	second := users.Data[1]
	if v, _ := second.Get("name"); v != "O'Brien" {
		t.Fatalf("doubled-quote name = %#v", v)
	}
	if v, _ := second.Get("email"); v != nil {
		t.Fatalf("NULL email = %#v", v)
	}
	if v, _ := second.Get("bio"); v != "It's fine; really" {
		t.Fatalf("bio with quoted semicolon = %#v", v)
	}
	first := users.Data[0]
	if v, _ := first.Get("balance"); v != 120.5 {
		t.Fatalf("balance = %#v, want 120.5", v)
	}
	if v, _ := first.Get("active"); v != true {
		t.Fatalf("active = %#v, want true", v)
	}
	if v, _ := first.Get("bio"); v != "Likes commas, parens (and quotes)" {
		t.Fatalf("bio = %#v", v)
	}

	orders := tables[1]
	if orders.RowCount != 2 {
		t.Fatalf("orders row count = %d, want 2", orders.RowCount)
	}
	if v, _ := orders.Data[0].Get("items"); v != `["a","b"]` {
		t.Fatalf("json-looking value should stay a string, got %#v", v)
	}
	if v, _ := orders.Data[0].Get("total"); v != 12.34 {
		t.Fatalf("total = %#v", v)
	}

	if tables[2].RowCount != 0 || len(tables[2].Data) != 0 {
		t.Fatalf("empty_table should have zero rows: %+v", tables[2])
	}

	// and through the writer
	dir := t.TempDir()
	summary, err := writer.New(dir, true, zerolog.Nop()).WriteAll(tables)
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if summary.TotalTables != 3 || summary.TotalRows != 4 {
		t.Fatalf("summary = %+v", summary)
	}
	for _, name := range []string{"users.json", "orders.json", "empty_table.json", "extraction_summary.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing output file %s", name)
		}
	}
}

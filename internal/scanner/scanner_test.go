package scanner

import (
	"reflect"
	"testing"
)

func TestStatementsSplit(t *testing.T) {
	dump := "CREATE TABLE t (id INT);\nINSERT INTO t VALUES (1);\nINSERT INTO t VALUES (2);"
	want := []string{
		"CREATE TABLE t (id INT)",
		"INSERT INTO t VALUES (1)",
		"INSERT INTO t VALUES (2)",
	}
	if got := Statements(dump); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStatementsSemicolonInsideQuotes(t *testing.T) {
	dump := "INSERT INTO t VALUES ('a;b');INSERT INTO t VALUES (2);"
	got := Statements(dump)
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if got[0] != "INSERT INTO t VALUES ('a;b')" {
		t.Fatalf("quoted semicolon split the statement: %q", got[0])
	}
}

func TestStatementsMultiline(t *testing.T) {
	dump := "INSERT INTO t\n  (id, name)\nVALUES\n  (1, 'x');"
	got := Statements(dump)
	if len(got) != 1 {
		t.Fatalf("expected 1 statement, got %d: %q", len(got), got)
	}
}

func TestStatementsComments(t *testing.T) {
	dump := "-- users (2 rows)\nINSERT INTO t VALUES (1); -- trailing note\n# mysql style\nINSERT INTO t VALUES (2);"
	got := Statements(dump)
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
}

func TestStatementsCommentMarkersInsideQuotes(t *testing.T) {
	dump := "INSERT INTO t VALUES ('a--b', 'c#d');"
	got := Statements(dump)
	if len(got) != 1 || got[0] != "INSERT INTO t VALUES ('a--b', 'c#d')" {
		t.Fatalf("comment markers inside quotes were stripped: %q", got)
	}
}

func TestStatementsUnterminatedTrailing(t *testing.T) {
	got := Statements("INSERT INTO t VALUES (1);\nINSERT INTO t VALUES (2)")
	if len(got) != 2 {
		t.Fatalf("trailing statement without semicolon dropped: %q", got)
	}

	// whitespace-only tail is discarded
	got = Statements("INSERT INTO t VALUES (1);\n   \n")
	if len(got) != 1 {
		t.Fatalf("expected 1 statement, got %q", got)
	}
}

func TestStatementsEscapedQuotes(t *testing.T) {
	tests := []struct {
		name string
		dump string
	}{
		{"backslash escape", `INSERT INTO t VALUES ('a\';b');`},
		{"doubled quote", "INSERT INTO t VALUES ('a'';b');"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Statements(tc.dump)
			if len(got) != 1 {
				t.Fatalf("escaped quote closed the literal early: %q", got)
			}
		})
	}
}

func TestStatementsEmptyInput(t *testing.T) {
	if got := Statements(""); len(got) != 0 {
		t.Fatalf("expected no statements, got %q", got)
	}
	if got := Statements(";;;"); len(got) != 0 {
		t.Fatalf("expected no statements from bare semicolons, got %q", got)
	}
}

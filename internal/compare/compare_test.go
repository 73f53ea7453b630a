package compare

import (
	"testing"

	"github.com/tobiasmeyer/sqlextract/internal/schema"
)

func findIssue(t *testing.T, r *Report, severity, table, column string) *Issue {
	t.Helper()
	for i := range r.Issues {
		iss := r.Issues[i]
		if iss.Severity == severity && iss.Table == table && iss.Column == column {
			return &r.Issues[i]
		}
	}
	return nil
}

func TestCompareMatchingSchemas(t *testing.T) {
	dump := []*schema.TableSchema{{Name: "users", Columns: []string{"id", "name"}}}
	live := map[string][]string{"users": {"id", "name"}}

	if r := Compare(dump, live); !r.Clean() {
		t.Fatalf("expected clean report, got %+v", r.Issues)
	}
}

func TestCompareMissingTable(t *testing.T) {
	dump := []*schema.TableSchema{{Name: "users", Columns: []string{"id"}}}
	r := Compare(dump, map[string][]string{})
	if findIssue(t, r, SeverityWarn, "users", "") == nil {
		t.Fatalf("expected WARN for missing table, got %+v", r.Issues)
	}
}

func TestCompareMissingColumn(t *testing.T) {
	dump := []*schema.TableSchema{{Name: "users", Columns: []string{"id", "email"}}}
	live := map[string][]string{"users": {"id"}}
	r := Compare(dump, live)
	if findIssue(t, r, SeverityWarn, "users", "email") == nil {
		t.Fatalf("expected WARN for missing column, got %+v", r.Issues)
	}
}

func TestCompareExtraLiveTableIsInfo(t *testing.T) {
	live := map[string][]string{"audit": {"id"}}
	r := Compare(nil, live)
	iss := findIssue(t, r, SeverityInfo, "audit", "")
	if iss == nil {
		t.Fatalf("expected INFO for extra live table, got %+v", r.Issues)
	}
}

func TestCompareColumnOrderDrift(t *testing.T) {
	dump := []*schema.TableSchema{{Name: "t", Columns: []string{"a", "b"}}}
	live := map[string][]string{"t": {"b", "a"}}
	r := Compare(dump, live)
	if findIssue(t, r, SeverityInfo, "t", "a") == nil {
		t.Fatalf("expected INFO for column order drift, got %+v", r.Issues)
	}
	// order drift is never a WARN
	for _, iss := range r.Issues {
		if iss.Severity == SeverityWarn {
			t.Fatalf("order drift reported as WARN: %+v", iss)
		}
	}
}

func TestCompareExtraLiveColumnIsInfo(t *testing.T) {
	dump := []*schema.TableSchema{{Name: "t", Columns: []string{"a"}}}
	live := map[string][]string{"t": {"a", "added_later"}}
	r := Compare(dump, live)
	if findIssue(t, r, SeverityInfo, "t", "added_later") == nil {
		t.Fatalf("expected INFO for extra live column, got %+v", r.Issues)
	}
}

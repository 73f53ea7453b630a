// Package compare diffs the schemas declared in a dump against the
// columns a live database actually has, for the verify command.
package compare

import (
	"fmt"

	"github.com/tobiasmeyer/sqlextract/internal/schema"
)

const (
	SeverityInfo = "INFO"
	SeverityWarn = "WARN"
)

type Issue struct {
	Severity string
	Table    string
	Column   string
	Message  string
}

type Report struct {
	Issues []Issue
}

func (r *Report) Clean() bool {
	return len(r.Issues) == 0
}

// Compare walks every table the dump declares and checks it against the
// live column lists, keyed by table name. Tables present only on the live
// side are reported as INFO; everything the dump claims but the database
// lacks is a WARN.
func Compare(dump []*schema.TableSchema, live map[string][]string) *Report {
	report := &Report{}
	seen := map[string]bool{}

	for _, ts := range dump {
		seen[ts.Name] = true
		liveCols, ok := live[ts.Name]
		if !ok {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarn,
				Table:    ts.Name,
				Message:  "table declared in dump but missing in database",
			})
			continue
		}
		report.Issues = append(report.Issues, compareColumns(ts, liveCols)...)
	}

	for name := range live {
		if !seen[name] {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityInfo,
				Table:    name,
				Message:  "table present in database but not in dump",
			})
		}
	}
	return report
}

func compareColumns(ts *schema.TableSchema, liveCols []string) []Issue {
	var issues []Issue

	liveSet := map[string]int{}
	for i, col := range liveCols {
		liveSet[col] = i
	}

	for i, col := range ts.Columns {
		pos, ok := liveSet[col]
		if !ok {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Table:    ts.Name,
				Column:   col,
				Message:  "column declared in dump but missing in database",
			})
			continue
		}
		if pos != i {
			issues = append(issues, Issue{
				Severity: SeverityInfo,
				Table:    ts.Name,
				Column:   col,
				Message:  fmt.Sprintf("column order differs: dump position %d, database position %d", i, pos),
			})
		}
	}

	dumpSet := map[string]bool{}
	for _, col := range ts.Columns {
		dumpSet[col] = true
	}
	for _, col := range liveCols {
		if !dumpSet[col] {
			issues = append(issues, Issue{
				Severity: SeverityInfo,
				Table:    ts.Name,
				Column:   col,
				Message:  "column present in database but not in dump",
			})
		}
	}
	return issues
}

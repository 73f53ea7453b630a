package extract

import (
	"regexp"
	"strings"
)

var insertRe = regexp.MustCompile("(?is)^INSERT\\s+(?:IGNORE\\s+)?INTO\\s+[`\"]?([\\w.]+)[`\"]?\\s*(\\(([^)]*)\\))?\\s*VALUES\\s*(.*)$")

// Insert is one parsed INSERT statement: the target table, the column list
// when the statement carries one, and one raw token group per VALUES tuple.
type Insert struct {
	Table   string
	Columns []string
	Tuples  []string
}

// ParseInsert recognizes an INSERT INTO ... VALUES statement and splits it
// into its tuple bodies (the text inside each top-level paren group).
// Returns ok=false for any other statement.
func ParseInsert(stmt string) (*Insert, bool) {
	m := insertRe.FindStringSubmatch(strings.TrimSpace(stmt))
	if m == nil {
		return nil, false
	}

	ins := &Insert{Table: m[1]}
	if m[2] != "" {
		for _, col := range strings.Split(m[3], ",") {
			ins.Columns = append(ins.Columns, strings.Trim(strings.TrimSpace(col), "`\""))
		}
	}
	ins.Tuples = splitTuples(m[4])
	return ins, true
}

// splitTuples walks the VALUES clause and returns the interior of each
// top-level parenthesized group. Parens and commas inside quoted literals
// are part of the tuple body, not structure.
func splitTuples(clause string) []string {
	var tuples []string
	var buf strings.Builder
	var quote byte
	depth := 0

	for i := 0; i < len(clause); i++ {
		c := clause[i]

		if quote != 0 {
			buf.WriteByte(c)
			if c == '\\' && i+1 < len(clause) {
				i++
				buf.WriteByte(clause[i])
				continue
			}
			if c == quote {
				if i+1 < len(clause) && clause[i+1] == quote {
					i++
					buf.WriteByte(clause[i])
					continue
				}
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			if depth > 0 {
				quote = c
				buf.WriteByte(c)
			}
		case '(':
			depth++
			if depth > 1 {
				buf.WriteByte(c)
			}
		case ')':
			depth--
			if depth > 0 {
				buf.WriteByte(c)
			} else if depth == 0 {
				tuples = append(tuples, buf.String())
				buf.Reset()
			}
		default:
			if depth > 0 {
				buf.WriteByte(c)
			}
		}
	}
	return tuples
}

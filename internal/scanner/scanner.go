// Package scanner splits raw SQL dump text into individual statements.
//
// Splitting on ";" alone is wrong: semicolons show up inside string
// literals and comments in real dumps, so the scanner walks the text with
// an explicit quote state instead.
package scanner

import "strings"

type quoteState int

const (
	quoteNone quoteState = iota
	quoteSingle
	quoteDouble
)

// Statements splits the dump text into trimmed SQL statements. Semicolons
// inside single- or double-quoted literals do not terminate a statement,
// and "--" / "#" line comments are skipped outside of quotes. A trailing
// statement without a closing semicolon is kept if non-empty.
func Statements(dump string) []string {
	var stmts []string
	var buf strings.Builder
	state := quoteNone

	flush := func() {
		s := strings.TrimSpace(buf.String())
		buf.Reset()
		if s != "" {
			stmts = append(stmts, s)
		}
	}

	for i := 0; i < len(dump); i++ {
		c := dump[i]

		switch state {
		case quoteSingle, quoteDouble:
			buf.WriteByte(c)
			if c == '\\' && i+1 < len(dump) {
				// escaped character, consume verbatim
				i++
				buf.WriteByte(dump[i])
				continue
			}
			delim := byte('\'')
			if state == quoteDouble {
				delim = '"'
			}
			if c == delim {
				// doubled delimiter is an escaped quote, stay in-quote
				if i+1 < len(dump) && dump[i+1] == delim {
					i++
					buf.WriteByte(dump[i])
					continue
				}
				state = quoteNone
			}

		case quoteNone:
			switch c {
			case '\'':
				state = quoteSingle
				buf.WriteByte(c)
			case '"':
				state = quoteDouble
				buf.WriteByte(c)
			case ';':
				flush()
			case '-':
				if i+1 < len(dump) && dump[i+1] == '-' {
					i = skipLine(dump, i)
					buf.WriteByte('\n')
					continue
				}
				buf.WriteByte(c)
			case '#':
				i = skipLine(dump, i)
				buf.WriteByte('\n')
			default:
				buf.WriteByte(c)
			}
		}
	}

	// unterminated trailing statement
	flush()
	return stmts
}

// skipLine returns the index of the newline ending the comment starting at
// i, or the last index of s if the comment runs to EOF.
func skipLine(s string, i int) int {
	for ; i < len(s); i++ {
		if s[i] == '\n' {
			return i
		}
	}
	return len(s) - 1
}

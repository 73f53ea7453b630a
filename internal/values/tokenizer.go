// Package values holds the tuple tokenizer and literal coercion, the part
// of the extractor that actually has to get SQL quoting right.
package values

import "strings"

// Tokenize splits the interior of one VALUES tuple (the text strictly
// between the outer parens) into raw value tokens. Commas inside quoted
// literals or nested parens do not split. The scan is a flat state loop:
// a quote state (none / single / double) plus a paren-depth counter.
//
// An empty input yields zero tokens; a pair of single quotes yields one
// empty-string token.
func Tokenize(tuple string) []string {
	if strings.TrimSpace(tuple) == "" {
		return nil
	}

	var tokens []string
	var buf strings.Builder
	var quote byte // 0, '\'' or '"'
	depth := 0

	for i := 0; i < len(tuple); i++ {
		c := tuple[i]

		if quote != 0 {
			switch {
			case c == '\\' && i+1 < len(tuple):
				// backslash escape, keep both bytes in the token
				buf.WriteByte(c)
				i++
				buf.WriteByte(tuple[i])
			case c == quote && i+1 < len(tuple) && tuple[i+1] == quote:
				// doubled quote stays inside the literal
				buf.WriteByte(c)
				i++
				buf.WriteByte(tuple[i])
			case c == quote:
				quote = 0
				buf.WriteByte(c)
			default:
				buf.WriteByte(c)
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
			buf.WriteByte(c)
		case '(':
			depth++
			buf.WriteByte(c)
		case ')':
			depth--
			buf.WriteByte(c)
		case ',':
			if depth == 0 {
				tokens = append(tokens, strings.TrimSpace(buf.String()))
				buf.Reset()
			} else {
				buf.WriteByte(c)
			}
		default:
			buf.WriteByte(c)
		}
	}

	// the final token is always emitted, even when empty: "1," is two
	// tokens, the second being the empty string
	tokens = append(tokens, strings.TrimSpace(buf.String()))
	return tokens
}

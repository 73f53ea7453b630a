package values

import (
	"regexp"
	"strconv"
	"strings"
)

// Bare numeric literals as a dump writes them. Anything looser (NaN, Inf,
// hex floats) is not a SQL number and must stay a raw string: json.Marshal
// rejects non-finite floats, and one such value would abort the whole
// write.
var numberRe = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+([eE][+-]?[0-9]+)?)?$`)

// Coerce maps one raw token to its native value: nil, bool, int64, float64
// or string. Quoted strings are unquoted and unescaped; anything
// unrecognized degrades to the raw token string, so coercion never fails a
// row.
//
// String content that looks like JSON ("[]", "{...}") is deliberately left
// as the literal string. Re-parsing it would lose source fidelity.
func Coerce(raw string) any {
	tok := strings.TrimSpace(raw)

	switch strings.ToUpper(tok) {
	case "NULL":
		return nil
	case "TRUE":
		return true
	case "FALSE":
		return false
	}

	if len(tok) >= 2 {
		if q := tok[0]; (q == '\'' || q == '"') && tok[len(tok)-1] == q {
			return unescape(tok[1:len(tok)-1], q)
		}
	}

	if numberRe.MatchString(tok) {
		if !strings.Contains(tok, ".") {
			if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
				return i
			}
			// wider than int64, fall through to float
		}
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			return f
		}
	}

	// bare identifier or expression, keep verbatim
	return tok
}

// unescape undoes the escape sequences a dump uses inside a quoted literal:
// backslash escapes, plus a doubled quote delimiter standing for one.
func unescape(s string, quote byte) string {
	if !strings.ContainsAny(s, `\'"`) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			case 'r':
				buf.WriteByte('\r')
			case '\\', '\'', '"':
				buf.WriteByte(s[i])
			default:
				// unknown escape, keep both bytes
				buf.WriteByte(c)
				buf.WriteByte(s[i])
			}
			continue
		}
		if c == quote && i+1 < len(s) && s[i+1] == quote {
			buf.WriteByte(c)
			i++
			continue
		}
		buf.WriteByte(c)
	}
	return buf.String()
}

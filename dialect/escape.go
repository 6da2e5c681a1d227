package dialect

import (
	"strings"

	"github.com/lib/pq"
)

// backslashEscaper escapes both single quotes (by doubling) and backslashes, matching MySQL's
// default sql_mode where a backslash starts an escape sequence inside string literals.
type backslashEscaper struct {
	layout string
}

func (e backslashEscaper) EscapeScalar(v any) string {
	s := ScalarString(v, e.layout)
	if strings.ContainsAny(s, `'\`) {
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, "'", "''")
	}
	return "'" + s + "'"
}

// pqEscaper delegates to lib/pq, which switches to the E-prefixed literal form when the value holds backslashes.
type pqEscaper struct {
	layout string
}

func (e pqEscaper) EscapeScalar(v any) string {
	return pq.QuoteLiteral(ScalarString(v, e.layout))
}

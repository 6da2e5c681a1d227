package dialect

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mysql", MySQLName},
		{"MariaDB", MySQLName},
		{" postgres ", PostgresName},
		{"postgresql", PostgresName},
		{"pgx", PostgresName},
		{"pq", PostgresName},
		{"sqlite", SQLiteName},
		{"sqlite3", SQLiteName},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := Lookup(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name)
		})
	}

	_, err := Lookup("oracle")
	assert.ErrorIs(t, err, ErrUnknownDialect)
	assert.ElementsMatch(t, []string{"mysql", "postgres", "sqlite"}, Names())
}

func TestDialects(t *testing.T) {
	assert.Equal(t, "`", MySQL().IdentifierQuote)
	assert.Equal(t, `"`, Postgres().IdentifierQuote)
	assert.Equal(t, `"`, SQLite().IdentifierQuote)
	assert.Nil(t, SQLite().Escaper)
}

func TestMySQLEscaper(t *testing.T) {
	e := MySQL().Escaper

	tests := []struct {
		in   any
		want string
	}{
		{"plain", "'plain'"},
		{"it's", "'it''s'"},
		{`C:\tmp`, `'C:\\tmp'`},
		{`\'`, `'\\'''`},
		{42, "'42'"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, e.EscapeScalar(tt.in))
		})
	}
}

func TestPostgresEscaper(t *testing.T) {
	e := Postgres().Escaper

	assert.Equal(t, "'plain'", e.EscapeScalar("plain"))
	assert.Equal(t, "'it''s'", e.EscapeScalar("it's"))
	assert.Equal(t, ` E'C:\\tmp'`, e.EscapeScalar(`C:\tmp`))
	assert.Equal(t, "'2024-01-02 03:04:05'", e.EscapeScalar(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
}

type stringer struct{}

func (stringer) String() string { return "stringer" }

func TestScalarString(t *testing.T) {
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "x", "x"},
		{"bytes", []byte("raw"), "raw"},
		{"bool", true, "1"},
		{"int", -7, "-7"},
		{"int8", int8(8), "8"},
		{"int64", int64(1 << 40), "1099511627776"},
		{"uint", uint(3), "3"},
		{"uint64", uint64(18446744073709551615), "18446744073709551615"},
		{"float32", float32(0.5), "0.5"},
		{"float64", 1234.5678, "1234.5678"},
		{"time", when, "2024-01-02 03:04:05"},
		{"stringer", stringer{}, "stringer"},
		{"fallback", []int{1, 2}, "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScalarString(tt.in, ""))
		})
	}

	assert.Equal(t, "2024-01-02", ScalarString(when, "2006-01-02"))
}

func TestEscaperFunc(t *testing.T) {
	var e Escaper = EscaperFunc(func(v any) string { return "<" + fmt.Sprint(v) + ">" })
	assert.Equal(t, "<1>", e.EscapeScalar(1))
}

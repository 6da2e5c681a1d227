package querykit

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/biyonik/go-querykit/dialect"
)

func TestFormatter_QuoteIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		quote *string
		in    string
		want  string
	}{
		{"simple", nil, "users", "`users`"},
		{"qualified", nil, "users.id", "`users`.`id`"},
		{"wildcard", nil, "*", "*"},
		{"qualified wildcard", nil, "users.*", "`users`.*"},
		{"empty", nil, "", ""},
		{"embedded quote doubled", nil, "we`ird", "`we``ird`"},
		{"double quote", ptr(`"`), "users.id", `"users"."id"`},
		{"bare", ptr(""), "users.id", "users.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.quote != nil {
				opts = append(opts, WithIdentifierQuote(*tt.quote))
			}
			assert.Equal(t, tt.want, NewFormatter(opts...).QuoteIdentifier(tt.in))
		})
	}
}

func TestFormatter_EscapeValue(t *testing.T) {
	f := NewFormatter()
	when := time.Date(2024, time.March, 9, 14, 5, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"true", true, "1"},
		{"false", false, "0"},
		{"string", "Doe", "'Doe'"},
		{"embedded quote", "O'Brien", "'O''Brien'"},
		{"int", 5000, "'5000'"},
		{"float", 1.5, "'1.5'"},
		{"time", when, "'2024-03-09 14:05:00'"},
		{"literal", Raw("NOW()"), "NOW()"},
		{"identifier", Col("users.id"), "`users`.`id`"},
		{"scalar wrapper", Val("id"), "'id'"},
		{"null valuer", sql.NullString{}, "NULL"},
		{"valid valuer", sql.NullInt64{Int64: 7, Valid: true}, "'7'"},
		{"nil sub-select", (*SelectBuilder)(nil), "NULL"},
		{"nil valuer pointer", (*sql.NullString)(nil), "NULL"},
		{"valuer pointer", &sql.NullInt64{Int64: 7, Valid: true}, "'7'"},
		{"int pointer", ptr(30), "'30'"},
		{"nil int pointer", (*int)(nil), "NULL"},
		{"string pointer", ptr("O'Brien"), "'O''Brien'"},
		{"bool pointer", ptr(true), "1"},
		{"time pointer", &when, "'2024-03-09 14:05:00'"},
		{"pointer to pointer", ptr(ptr(5)), "'5'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.EscapeValue(tt.in))
		})
	}
}

func TestFormatter_ExternalEscaperTakesPriority(t *testing.T) {
	calls := 0
	f := NewFormatter(WithEscaper(dialect.EscaperFunc(func(v any) string {
		calls++
		return "<escaped>"
	})))

	assert.Equal(t, "<escaped>", f.EscapeValue("it's"))
	assert.Equal(t, "<escaped>", f.EscapeValue(42))
	assert.Equal(t, 2, calls)

	// NULL, booleans and literals never reach the escaper.
	assert.Equal(t, "NULL", f.EscapeValue(nil))
	assert.Equal(t, "1", f.EscapeValue(true))
	assert.Equal(t, "NOW()", f.EscapeValue(Raw("NOW()")))
	assert.Equal(t, 2, calls)
}

func TestFormatter_WithDialect(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		f := NewFormatter(WithDialect(dialect.Postgres()))
		assert.Equal(t, `"users"`, f.QuoteIdentifier("users"))
		assert.Equal(t, "'it''s'", f.EscapeValue("it's"))
	})

	t.Run("mysql", func(t *testing.T) {
		f := NewFormatter(WithDialect(dialect.MySQL()))
		assert.Equal(t, "`users`", f.QuoteIdentifier("users"))
		assert.Equal(t, `'a\\b'`, f.EscapeValue(`a\b`))
		assert.Equal(t, `'a\\b'`, f.EscapeValue(ptr(`a\b`)))
		assert.Equal(t, "NULL", f.EscapeValue((*string)(nil)))
	})

	t.Run("date format", func(t *testing.T) {
		f := NewFormatter(WithDateFormat("2006-01-02"))
		assert.Equal(t, "'2024-03-09'", f.EscapeValue(time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)))
	})
}

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter()

	assert.Equal(t, "COUNT(*)", f.Format(Raw("COUNT(*)")))
	assert.Equal(t, "`email`", f.Format(Ident("email")))
	assert.Equal(t, "'x'", f.Format(Scalar{V: "x"}))
	assert.Equal(t, "NULL", f.Format(nil))
	assert.Equal(t, "(SELECT * FROM `users`)", f.Format(Select().From("users")))
}

func ptr[T any](v T) *T { return &v }

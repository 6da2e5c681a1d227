// Package querykit provides a fluent SQL statement builder for Go.
//
// go-querykit assembles SELECT, UPDATE and DELETE statements through chained calls and renders
// them to SQL text. It never talks to a database; see the sqlconn package for running the
// rendered statements.
//
// # Quick Start
//
//	sql := querykit.Select("id", "firstname", "lastname").
//	    From("users").
//	    WhereLike("email", "%@domain.tld").
//	    WhereNot("disabled", true).
//	    OrderBy("lastname", "firstname").
//	    Limit(10).
//	    Render()
//
//	// SELECT `id`, `firstname`, `lastname` FROM `users`
//	// WHERE `email` LIKE '%@domain.tld' AND `disabled` != 1
//	// ORDER BY `lastname`, `firstname` LIMIT 10
//
// # Values
//
// Every input is classified before it is stored:
//
//   - on identifier positions (select list, left operand, GROUP BY, ORDER BY, tables) a plain
//     string is a column or table name and is quoted;
//   - on value positions (right operand, SET value) a plain string is a scalar and is escaped;
//   - Raw renders verbatim, Col forces an identifier and Val forces a scalar;
//   - a *SelectBuilder is embedded as a parenthesized sub-select.
//
// As (or a one-entry map) attaches an alias. On columns it qualifies them, As("u", "id")
// renders `u`.`id`; on FROM, JOIN and UPDATE targets it names the table, As("u", "users")
// renders `users` `u`.
//
// # Conditions
//
// WHERE, HAVING and JOIN ... ON conditions are expression queues. Consecutive comparisons are
// joined with AND; OR and brackets are explicit:
//
//	querykit.Select().From("users").
//	    Where("active", true).
//	    WhereOpen().
//	    Where("role", "admin").
//	    WhereOr().
//	    Where("role", "owner").
//	    WhereClose()
//
//	// ... WHERE `active` = 1 AND ( `role` = 'admin' OR `role` = 'owner' )
//
// Brackets are not balanced for you: an unbalanced queue renders exactly as written.
//
// # Errors
//
// Mutators validate their input and record the first error on the statement; the failing
// mutation is not applied. Render never fails. ToSQL returns the recorded error, which matches
// ErrInvalidArgument under errors.Is.
//
// # Dialects
//
// The Formatter's identifier quote and scalar escaper are configured once per Builder:
//
//	qb := querykit.New(querykit.WithDialect(dialect.Postgres()))
//
// # Thread Safety
//
// Statement builders are NOT thread-safe. A Builder and its Formatter are read-only after
// construction and may be shared.
package querykit

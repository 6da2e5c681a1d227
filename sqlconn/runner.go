package sqlconn

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/biyonik/go-querykit"
)

// runner, Conn ve Tx'in ortak yürütme çekirdeğidir: ifadeyi üretir, parametreleri bağlar,
// sorguyu çalıştırır ve loglar.
type runner struct {
	q       QueryExecutor
	dialect string
	logger  Logger
	scanner *Scanner
}

// prepare renders stmt and binds its parameters.
func (r runner) prepare(stmt querykit.Statement) (string, []any, error) {
	query, err := stmt.ToSQL()
	if err != nil {
		return query, nil, &QueryError{Op: "build", Query: query, Err: err}
	}
	args, err := bindArgs(r.dialect, stmt.Parameters())
	if err != nil {
		return query, nil, &QueryError{Op: "bind", Query: query, Err: err}
	}
	return query, args, nil
}

func (r runner) exec(ctx context.Context, stmt querykit.Statement) (sql.Result, error) {
	query, args, err := r.prepare(stmt)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := r.q.ExecContext(ctx, query, args...)
	r.logger.Log(query, args, time.Since(start), err)
	if err != nil {
		return nil, &QueryError{Op: "exec", Query: query, Args: args, Err: err}
	}
	return res, nil
}

func (r runner) query(ctx context.Context, stmt querykit.Statement) (*sql.Rows, error) {
	query, args, err := r.prepare(stmt)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := r.q.QueryContext(ctx, query, args...)
	r.logger.Log(query, args, time.Since(start), err)
	if err != nil {
		return nil, &QueryError{Op: "query", Query: query, Args: args, Err: err}
	}
	return rows, nil
}

func (r runner) queryRow(ctx context.Context, stmt querykit.Statement) (*sql.Row, error) {
	query, args, err := r.prepare(stmt)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	row := r.q.QueryRowContext(ctx, query, args...)
	r.logger.Log(query, args, time.Since(start), row.Err())
	return row, nil
}

func (r runner) all(ctx context.Context, stmt querykit.Statement, dest any) error {
	rows, err := r.query(ctx, stmt)
	if err != nil {
		return err
	}
	return r.scanner.ScanAll(rows, dest)
}

func (r runner) one(ctx context.Context, stmt querykit.Statement, dest any) error {
	rows, err := r.query(ctx, stmt)
	if err != nil {
		return err
	}
	return r.scanner.ScanOne(rows, dest)
}

func (r runner) column(ctx context.Context, stmt querykit.Statement, dest any) error {
	rows, err := r.query(ctx, stmt)
	if err != nil {
		return err
	}
	return r.scanner.ScanColumn(rows, dest)
}

func (r runner) value(ctx context.Context, stmt querykit.Statement, dest any) error {
	row, err := r.queryRow(ctx, stmt)
	if err != nil {
		return err
	}
	if err := row.Scan(dest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRows
		}
		return wrapError("scan", err)
	}
	return nil
}

func (r runner) find(ctx context.Context, qb *querykit.Builder, table string, id any, dest any) error {
	columns, err := r.scanner.Columns(dest)
	if err != nil {
		return err
	}
	pk := r.scanner.PrimaryKey(dest)
	if pk == "" {
		return &QueryError{Op: "find", Err: errors.New("destination has no primary key column")}
	}
	cols := make([]any, len(columns))
	for i, col := range columns {
		cols[i] = col
	}
	return r.one(ctx, qb.Select(cols...).From(table).Where(pk, id).Limit(1), dest)
}

func (r runner) paginate(ctx context.Context, qb *querykit.Builder, q *querykit.SelectBuilder, page, perPage int, dest any) (*Pagination, error) {
	if err := q.Err(); err != nil {
		return nil, &QueryError{Op: "build", Err: err}
	}
	count := qb.Select(querykit.Raw("COUNT(*)")).
		From(querykit.As("paginated", q)).
		SetParameters(q.Parameters())

	var total int64
	if err := r.value(ctx, count, &total); err != nil {
		return nil, err
	}
	p := NewPagination(page, perPage, total)
	if err := r.all(ctx, q.Clone().Page(p.Page, p.PerPage), dest); err != nil {
		return nil, err
	}
	return p, nil
}

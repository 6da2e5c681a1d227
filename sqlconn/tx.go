package sqlconn

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/biyonik/go-querykit"
	"github.com/biyonik/go-querykit/internal/validation"
)

// Tx, bağlantının dialect, logger ve scanner ayarlarını taşıyan bir transaction'dır.
// Commit veya Rollback sonrası tüm çağrılar ErrTxClosed döner; Rollback idempotent'tir.
type Tx struct {
	tx   *sql.Tx
	conn *Conn

	mu     sync.Mutex
	closed bool
}

func (t *Tx) runner() (runner, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return runner{}, ErrTxClosed
	}
	return runner{q: t.tx, dialect: t.conn.dialect.Name, logger: t.conn.logger, scanner: t.conn.scanner}, nil
}

// Builder returns the connection's statement builder.
func (t *Tx) Builder() *querykit.Builder {
	return t.conn.builder
}

// Tx returns the wrapped transaction.
func (t *Tx) Tx() *sql.Tx {
	return t.tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true

	start := time.Now()
	err := t.tx.Commit()
	t.conn.logger.Log("COMMIT", nil, time.Since(start), err)
	return wrapError("commit", err)
}

// Rollback aborts the transaction. Rolling back a closed transaction is a no-op.
func (t *Tx) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	start := time.Now()
	err := t.tx.Rollback()
	t.conn.logger.Log("ROLLBACK", nil, time.Since(start), err)
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return wrapError("rollback", err)
}

// IsClosed reports whether Commit or Rollback has been called.
func (t *Tx) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Exec runs stmt inside the transaction.
func (t *Tx) Exec(ctx context.Context, stmt querykit.Statement) (sql.Result, error) {
	r, err := t.runner()
	if err != nil {
		return nil, err
	}
	return r.exec(ctx, stmt)
}

// Query runs stmt inside the transaction. The caller closes the rows.
func (t *Tx) Query(ctx context.Context, stmt querykit.Statement) (*sql.Rows, error) {
	r, err := t.runner()
	if err != nil {
		return nil, err
	}
	return r.query(ctx, stmt)
}

// QueryRow runs stmt inside the transaction expecting at most one row.
func (t *Tx) QueryRow(ctx context.Context, stmt querykit.Statement) (*sql.Row, error) {
	r, err := t.runner()
	if err != nil {
		return nil, err
	}
	return r.queryRow(ctx, stmt)
}

// All scans every row of stmt into dest.
func (t *Tx) All(ctx context.Context, stmt querykit.Statement, dest any) error {
	r, err := t.runner()
	if err != nil {
		return err
	}
	return r.all(ctx, stmt, dest)
}

// One scans the first row of stmt into dest.
func (t *Tx) One(ctx context.Context, stmt querykit.Statement, dest any) error {
	r, err := t.runner()
	if err != nil {
		return err
	}
	return r.one(ctx, stmt, dest)
}

// Value scans the single value of the first row into dest.
func (t *Tx) Value(ctx context.Context, stmt querykit.Statement, dest any) error {
	r, err := t.runner()
	if err != nil {
		return err
	}
	return r.value(ctx, stmt, dest)
}

// Savepoint, transaction içinde isimli bir geri dönüş noktası oluşturur.
func (t *Tx) Savepoint(ctx context.Context, name string) error {
	return t.savepointCmd(ctx, "SAVEPOINT ", name)
}

// RollbackTo rolls back to a savepoint created with Savepoint.
func (t *Tx) RollbackTo(ctx context.Context, name string) error {
	return t.savepointCmd(ctx, "ROLLBACK TO SAVEPOINT ", name)
}

// ReleaseSavepoint releases a savepoint.
func (t *Tx) ReleaseSavepoint(ctx context.Context, name string) error {
	return t.savepointCmd(ctx, "RELEASE SAVEPOINT ", name)
}

func (t *Tx) savepointCmd(ctx context.Context, cmd, name string) error {
	if _, err := t.runner(); err != nil {
		return err
	}
	if err := validation.ValidateAlias(name); err != nil {
		return &QueryError{Op: "savepoint", Err: err}
	}
	query := cmd + t.conn.builder.Formatter().QuoteIdentifier(name)
	start := time.Now()
	_, err := t.tx.ExecContext(ctx, query)
	t.conn.logger.Log(query, nil, time.Since(start), err)
	if err != nil {
		return &QueryError{Op: "savepoint", Query: query, Err: err}
	}
	return nil
}

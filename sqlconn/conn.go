// Package sqlconn, querykit ifadelerini database/sql üzerinden çalıştırır. Bağlantının
// dialect'ine bağlı bir querykit.Builder sunar, ifadelerin parametre torbasını driver'a uygun
// argümanlara çevirir, her ifadeyi Logger'a bildirir ve sonuçları Scanner ile struct'lara aktarır.
//
//	conn, err := sqlconn.Open(ctx, &sqlconn.Config{Driver: "sqlite", Database: "app.db"})
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	var users []User
//	err = conn.All(ctx, conn.Builder().Select("id", "email").From("users").Limit(10), &users)
package sqlconn

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/biyonik/go-querykit"
	"github.com/biyonik/go-querykit/dialect"
)

// QueryExecutor, *sql.DB ve *sql.Tx'in ortak yüzüdür.
type QueryExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ QueryExecutor = (*sql.DB)(nil)
	_ QueryExecutor = (*sql.Tx)(nil)
)

// Option configures a Conn.
type Option func(*Conn)

// WithLogger sets the statement logger. nil restores NopLogger.
func WithLogger(l Logger) Option {
	return func(c *Conn) {
		if l == nil {
			l = NopLogger{}
		}
		c.logger = l
	}
}

// WithScanner replaces the result scanner.
func WithScanner(s *Scanner) Option {
	return func(c *Conn) {
		if s != nil {
			c.scanner = s
		}
	}
}

// WithBuilderOptions appends formatter options to the ones derived from the dialect.
func WithBuilderOptions(opts ...querykit.Option) Option {
	return func(c *Conn) {
		c.builderOpts = append(c.builderOpts, opts...)
	}
}

// Conn, bir *sql.DB'yi dialect, logger ve scanner ile sarar. Eşzamanlı kullanıma uygundur.
type Conn struct {
	db          *sql.DB
	dialect     dialect.Dialect
	logger      Logger
	scanner     *Scanner
	builderOpts []querykit.Option
	builder     *querykit.Builder
}

// Open connects to the database described by cfg, applies its pool limits and pings it.
func Open(ctx context.Context, cfg *Config, opts ...Option) (*Conn, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	d, err := cfg.Dialect()
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch d.Name {
	case dialect.MySQLName:
		connector, err := mysql.NewConnector(cfg.mysqlConfig())
		if err != nil {
			return nil, fmt.Errorf("sqlconn: mysql connector: %w", err)
		}
		db = sql.OpenDB(connector)
	case dialect.PostgresName:
		pc, err := pgx.ParseConfig(cfg.postgresURL().String())
		if err != nil {
			return nil, fmt.Errorf("sqlconn: invalid postgres config: %w", err)
		}
		db = stdlib.OpenDB(*pc)
	default:
		db, err = sql.Open("sqlite", cfg.sqlitePath())
		if err != nil {
			return nil, fmt.Errorf("sqlconn: open sqlite: %w", err)
		}
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLife > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLife)
	}
	if cfg.ConnMaxIdle > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlconn: ping %s: %w", d.Name, err)
	}
	return newConn(db, d, opts...), nil
}

// NewConn wraps an already opened database. dialectName is resolved with dialect.Lookup.
func NewConn(db *sql.DB, dialectName string, opts ...Option) (*Conn, error) {
	d, err := dialect.Lookup(dialectName)
	if err != nil {
		return nil, err
	}
	return newConn(db, d, opts...), nil
}

func newConn(db *sql.DB, d dialect.Dialect, opts ...Option) *Conn {
	c := &Conn{
		db:      db,
		dialect: d,
		logger:  NopLogger{},
		scanner: NewScanner(),
	}
	for _, opt := range opts {
		opt(c)
	}
	builderOpts := append([]querykit.Option{
		querykit.WithDialect(d),
		querykit.WithEscaper(c.Escaper()),
	}, c.builderOpts...)
	c.builder = querykit.New(builderOpts...)
	return c
}

// DB returns the wrapped database.
func (c *Conn) DB() *sql.DB {
	return c.db
}

// Dialect returns the connection's dialect.
func (c *Conn) Dialect() dialect.Dialect {
	return c.dialect
}

// Scanner returns the result scanner.
func (c *Conn) Scanner() *Scanner {
	return c.scanner
}

// Escaper returns the scalar escaping capability of the connection. It is never nil: a
// dialect without its own escaper gets the quote-doubling strategy.
func (c *Conn) Escaper() dialect.Escaper {
	if c.dialect.Escaper != nil {
		return c.dialect.Escaper
	}
	f := querykit.NewFormatter(querykit.WithDateFormat(c.dialect.DateFormat))
	return dialect.EscaperFunc(f.EscapeValue)
}

// Builder returns a statement builder bound to the connection's dialect and escaper.
func (c *Conn) Builder() *querykit.Builder {
	return c.builder
}

// Ping verifies the connection is alive.
func (c *Conn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the database.
func (c *Conn) Close() error {
	return c.db.Close()
}

func (c *Conn) runner() runner {
	return runner{q: c.db, dialect: c.dialect.Name, logger: c.logger, scanner: c.scanner}
}

// Exec runs stmt and returns the driver result.
func (c *Conn) Exec(ctx context.Context, stmt querykit.Statement) (sql.Result, error) {
	return c.runner().exec(ctx, stmt)
}

// Query runs stmt and returns its rows. The caller closes them.
func (c *Conn) Query(ctx context.Context, stmt querykit.Statement) (*sql.Rows, error) {
	return c.runner().query(ctx, stmt)
}

// QueryRow runs stmt expecting at most one row.
func (c *Conn) QueryRow(ctx context.Context, stmt querykit.Statement) (*sql.Row, error) {
	return c.runner().queryRow(ctx, stmt)
}

// All scans every row of stmt into dest, a pointer to a slice of structs.
func (c *Conn) All(ctx context.Context, stmt querykit.Statement, dest any) error {
	return c.runner().all(ctx, stmt, dest)
}

// One scans the first row of stmt into dest, a pointer to a struct.
func (c *Conn) One(ctx context.Context, stmt querykit.Statement, dest any) error {
	return c.runner().one(ctx, stmt, dest)
}

// Column scans the first column of every row into dest, a pointer to a slice.
func (c *Conn) Column(ctx context.Context, stmt querykit.Statement, dest any) error {
	return c.runner().column(ctx, stmt, dest)
}

// Value scans the single value of the first row into dest.
func (c *Conn) Value(ctx context.Context, stmt querykit.Statement, dest any) error {
	return c.runner().value(ctx, stmt, dest)
}

// Find loads the row of table whose primary key equals id into dest. The selected columns
// and the key column come from dest's "db" tags.
func (c *Conn) Find(ctx context.Context, table string, id any, dest any) error {
	return c.runner().find(ctx, c.builder, table, id, dest)
}

// Paginate counts the rows of q, then scans the requested page into dest.
// The page is selected with "LIMIT offset, count", which PostgreSQL does not accept.
func (c *Conn) Paginate(ctx context.Context, q *querykit.SelectBuilder, page, perPage int, dest any) (*Pagination, error) {
	return c.runner().paginate(ctx, c.builder, q, page, perPage, dest)
}

// BeginTx starts a transaction.
func (c *Conn) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	start := time.Now()
	tx, err := c.db.BeginTx(ctx, opts)
	c.logger.Log("BEGIN", nil, time.Since(start), err)
	if err != nil {
		return nil, wrapError("begin", err)
	}
	return &Tx{tx: tx, conn: c}, nil
}

// Transaction, fn'i bir transaction içinde çalıştırır. fn hata dönerse veya panic olursa
// rollback yapılır; aksi halde commit edilir.
//
//	err := conn.Transaction(ctx, func(tx *sqlconn.Tx) error {
//	    _, err := tx.Exec(ctx, tx.Builder().Update("accounts").Set("balance", 0).Where("id", 7))
//	    return err
//	})
func (c *Conn) Transaction(ctx context.Context, fn func(*Tx) error) (err error) {
	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, wrapError("rollback", rbErr))
		}
		return err
	}
	return tx.Commit()
}

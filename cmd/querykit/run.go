package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/biyonik/go-querykit"
	"github.com/biyonik/go-querykit/internal/cli"
	"github.com/biyonik/go-querykit/sqlconn"
)

var runTx bool

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Execute statement files against the database",
	Long: `Execute every statement of the given files against the configured database.
SELECT results are printed as YAML; other statements print the number of affected rows.`,
	Example: `  # Run against a local SQLite file
  QUERYKIT_DATABASE_DRIVER=sqlite QUERYKIT_DATABASE_DATABASE=app.db querykit run cleanup.yaml

  # Run all statements in a single transaction
  querykit run --tx migrations/backfill.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := sqlconn.Open(ctx, &cfg.Database, sqlconn.WithLogger(&sqlconn.SlogLogger{
			Logger:        logger,
			SlowThreshold: cfg.Log.SlowThreshold,
		}))
		if err != nil {
			return cli.DBConnectError("connecting to database", err)
		}
		defer func() { _ = conn.Close() }()

		sources, err := readSources(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		var stmts []querykit.Statement
		for _, src := range sources {
			built, err := buildStatements(conn.Builder(), src)
			if err != nil {
				return err
			}
			stmts = append(stmts, built...)
		}
		return runStatements(ctx, cmd.OutOrStdout(), conn, stmts, runTx)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runTx, "tx", false, "run all statements in one transaction")
}

// executor is satisfied by both *sqlconn.Conn and *sqlconn.Tx.
type executor interface {
	Exec(ctx context.Context, stmt querykit.Statement) (sql.Result, error)
	Query(ctx context.Context, stmt querykit.Statement) (*sql.Rows, error)
}

func runStatements(ctx context.Context, w io.Writer, conn *sqlconn.Conn, stmts []querykit.Statement, inTx bool) error {
	if !inTx {
		return runAll(ctx, w, conn, stmts)
	}
	return conn.Transaction(ctx, func(tx *sqlconn.Tx) error {
		return runAll(ctx, w, tx, stmts)
	})
}

func runAll(ctx context.Context, w io.Writer, ex executor, stmts []querykit.Statement) error {
	for _, stmt := range stmts {
		if err := runOne(ctx, w, ex, stmt); err != nil {
			return cli.GeneralError("running statement", err)
		}
	}
	return nil
}

func runOne(ctx context.Context, w io.Writer, ex executor, stmt querykit.Statement) error {
	if _, ok := stmt.(*querykit.SelectBuilder); !ok {
		res, err := ex.Exec(ctx, stmt)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%d rows affected\n", n)
		return err
	}

	rows, err := ex.Query(ctx, stmt)
	if err != nil {
		return err
	}
	records, err := readRecords(rows)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(records)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// readRecords reads every row as a column -> value map. rows is closed.
func readRecords(rows *sql.Rows) ([]map[string]any, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	records := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		record := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
			} else {
				record[col] = values[i]
			}
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

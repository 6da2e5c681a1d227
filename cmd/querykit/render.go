package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/biyonik/go-querykit"
	"github.com/biyonik/go-querykit/internal/cli"
)

var (
	renderDialect string
	renderQuote   string
	renderBare    bool
)

var renderCmd = &cobra.Command{
	Use:   "render [files...]",
	Short: "Print the SQL of statement files",
	Long:  `Parse YAML or JSON statement files and print one rendered statement per line. With no file, or "-", statements are read from stdin.`,
	Example: `  # Render with the configured dialect
  querykit render queries/users.yaml

  # Render for PostgreSQL without identifier quotes
  querykit render --dialect postgres --bare queries/*.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rc := cfg.Render
		rc.Dialect = resolveString(renderDialect, rc.Dialect)
		rc.Quote = resolveString(renderQuote, rc.Quote)
		rc.Bare = renderBare || rc.Bare

		qb, err := rc.Builder()
		if err != nil {
			return cli.ConfigError("render settings", err)
		}
		sources, err := readSources(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		return renderSources(cmd.OutOrStdout(), qb, sources)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderDialect, "dialect", "", "SQL dialect: mysql, postgres or sqlite (default: from config)")
	renderCmd.Flags().StringVar(&renderQuote, "quote", "", "identifier quote character (default: from dialect)")
	renderCmd.Flags().BoolVar(&renderBare, "bare", false, "render identifiers without quotes")
}

func renderSources(w io.Writer, qb *querykit.Builder, sources []source) error {
	for _, src := range sources {
		stmts, err := buildStatements(qb, src)
		if err != nil {
			return err
		}
		for _, stmt := range stmts {
			if _, err := fmt.Fprintln(w, stmt.Render()); err != nil {
				return err
			}
		}
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/biyonik/go-querykit"
	"github.com/biyonik/go-querykit/internal/cli"
	"github.com/biyonik/go-querykit/internal/stmtfile"
)

// source is one statement file read from disk or stdin.
type source struct {
	name string
	data []byte
}

// readSources reads every path; no path, or "-", means stdin.
func readSources(stdin io.Reader, paths []string) ([]source, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	sources := make([]source, 0, len(paths))
	for _, path := range paths {
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(stdin)
			path = "<stdin>"
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, cli.GeneralError("reading "+path, err)
		}
		sources = append(sources, source{name: path, data: data})
	}
	return sources, nil
}

// buildStatements parses and builds every document of src. Parse and build failures map to
// the statement parse exit code.
func buildStatements(qb *querykit.Builder, src source) ([]querykit.Statement, error) {
	docs, err := stmtfile.Parse(src.data)
	if err != nil {
		return nil, cli.StatementParseError(src.name, err)
	}
	stmts := make([]querykit.Statement, 0, len(docs))
	for i := range docs {
		stmt, err := docs[i].Build(qb)
		if err != nil {
			return nil, cli.StatementParseError(fmt.Sprintf("%s: document %d", src.name, i), err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

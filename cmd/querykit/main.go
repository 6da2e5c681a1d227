// Package main provides a CLI for rendering and running querykit statement files.
//
// The CLI supports:
//   - render: print the SQL of every statement in YAML/JSON statement files
//   - run: execute statement files against the configured database
//   - config show: print the effective configuration
//   - version: print version information
//
// Usage:
//
//	querykit [flags] <command>
//
// Configuration is read from querykit.yaml (auto-discovered up to the repository root),
// QUERYKIT_* environment variables and flags.
package main

import "os"

func main() {
	os.Exit(Execute())
}

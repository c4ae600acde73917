// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main is the alexdb CLI: it reads a .sqls script, executes its
// statements one at a time against a fresh Engine, and prints each
// statement's result surface. Built with cobra, grounded on
// Pieczasz-smf's cmd/smf and cmd/schemift command trees.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dolthub/alexdb/internal/config"
	"github.com/dolthub/alexdb/internal/exec"
	"github.com/dolthub/alexdb/internal/value"

	"github.com/dolthub/alexdb"
)

type runFlags struct {
	configFile string
	quiet      bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "alexdb",
		Short: "An in-memory analytical database with a scripting query language",
	}

	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <script.sqls>",
		Short: "Execute every statement in a .sqls script against a fresh database",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runScript(args[0], flags)
		},
	}
	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "alexdb.toml", "Path to an optional alexdb.toml")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress per-statement result printing")
	return cmd
}

func runScript(path string, flags *runFlags) error {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(levelOrDefault(cfg.LogLevel)); err == nil {
		log.SetLevel(lvl)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	engine := alexdb.New(&alexdb.Config{Log: logrus.NewEntry(log)})

	statements, err := splitStatements(string(content))
	if err != nil {
		return err
	}

	history, err := openHistoryFile(cfg.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	if history != nil {
		defer history.Close()
	}

	for i, stmt := range statements {
		res := engine.Run(stmt)
		if err := appendHistory(history, stmt); err != nil {
			return fmt.Errorf("failed to write history file: %w", err)
		}
		if flags.quiet {
			continue
		}
		printResult(i+1, stmt, res)
	}
	return nil
}

// openHistoryFile opens cfg.HistoryFile for appending, creating it if
// necessary. An empty path means history logging is disabled, and nil is
// returned with no error.
func openHistoryFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// appendHistory writes stmt as one line of f, the order every statement
// run by the CLI was executed in. A nil f (history disabled) is a no-op.
func appendHistory(f *os.File, stmt string) error {
	if f == nil {
		return nil
	}
	_, err := fmt.Fprintln(f, stmt)
	return err
}

func levelOrDefault(lvl string) string {
	if lvl == "" {
		return "info"
	}
	return lvl
}

// splitStatements breaks a script into one source string per statement.
// Statements are newline-separated; blank lines and lines starting with
// "#" are skipped, matching the teacher's plain-text migration-file
// convention (one directive per line) rather than a full statement
// terminator grammar, which spec.md's query grammar does not define.
func splitStatements(src string) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(strings.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan script: %w", err)
	}
	return out, nil
}

func printResult(n int, stmt string, res exec.Result) {
	fmt.Printf("-- [%d] %s\n", n, stmt)
	switch res.Kind {
	case exec.ResultError:
		fmt.Printf("error: %v\n", res.Err)
	case exec.ResultValue:
		fmt.Println(formatValue(res.Value))
	case exec.ResultTable:
		fmt.Println(strings.Join(res.Columns, "\t"))
		for _, row := range res.Rows {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = formatValue(v)
			}
			fmt.Println(strings.Join(cells, "\t"))
		}
	case exec.ResultNone:
		fmt.Println("ok")
	}
}

func formatValue(v value.Value) string {
	return v.GoString()
}

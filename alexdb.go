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

// Package alexdb is the programmatic embedding entry point: construct an
// Engine, feed it SQLScript statements, get back the result surface of
// spec.md §6.3. cmd/alexdb is a thin CLI wrapper around this package.
package alexdb

import (
	"github.com/sirupsen/logrus"

	"github.com/dolthub/alexdb/internal/catalog"
	"github.com/dolthub/alexdb/internal/exec"
	"github.com/dolthub/alexdb/internal/parser"
)

// Config configures an Engine at construction, mirroring the teacher's
// engine.go Config: a plain exported struct of simple fields, no flags
// magic.
type Config struct {
	// Log receives one structured entry per executed statement. Nil
	// means the standard logrus logger.
	Log *logrus.Entry
}

// Engine owns one Database and runs SQLScript statements against it.
type Engine struct {
	db *catalog.Database
}

// New constructs an Engine over a fresh, empty Database.
func New(cfg *Config) *Engine {
	var log *logrus.Entry
	if cfg != nil {
		log = cfg.Log
	}
	return &Engine{db: catalog.New(log)}
}

// Database returns the Engine's underlying catalog, for callers that
// need direct access (tests, the CLI's table introspection).
func (e *Engine) Database() *catalog.Database {
	return e.db
}

// Run parses and executes a single SQLScript statement and returns its
// result. A parse error is reported as exec.Result{Kind: ResultError}, the
// same surface a runtime error uses, so callers have one path to check.
func (e *Engine) Run(statement string) exec.Result {
	p, err := parser.New(statement)
	if err != nil {
		return exec.Result{Kind: exec.ResultError, Err: err}
	}
	q, err := p.Parse()
	if err != nil {
		return exec.Result{Kind: exec.ResultError, Err: err}
	}
	return exec.Execute(e.db, q)
}

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

// Package exec implements spec.md §4.7's query executor: it dispatches a
// parsed ast.Query against a catalog.Database, building the per-row
// environments spec.md describes for each statement shape and calling
// into internal/eval to run script bodies.
package exec

import "github.com/dolthub/alexdb/internal/value"

// ResultKind tags which of spec.md §6.3's four result shapes a statement
// produced.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultTable
	ResultValue
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultNone:
		return "none"
	case ResultTable:
		return "table"
	case ResultValue:
		return "value"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the query result surface of spec.md §6.3.
type Result struct {
	Kind ResultKind

	// Columns and Rows are populated for ResultTable.
	Columns []string
	Rows    [][]value.Value

	// Value is populated for ResultValue (SELECT AGGREGATE / SELECT COMP).
	Value value.Value

	// Err is populated for ResultError.
	Err error
}

func noneResult() Result          { return Result{Kind: ResultNone} }
func errResult(err error) Result  { return Result{Kind: ResultError, Err: err} }
func valueResult(v value.Value) Result {
	return Result{Kind: ResultValue, Value: v}
}
func tableResult(cols []string, rows [][]value.Value) Result {
	return Result{Kind: ResultTable, Columns: cols, Rows: rows}
}

// StatementKind names the statement shape q is, for structured logging.
func StatementKind(q interface{}) string {
	return statementKindOf(q)
}

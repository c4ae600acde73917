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

// Package dberrors declares the typed error kinds that every layer of
// alexdb raises through, so a caller can classify a failure with
// (*errors.Kind).Is instead of string-matching an error message.
package dberrors

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrLex is raised when the lexer finds no token in the table that
	// matches at the current position.
	ErrLex = errors.NewKind("lex error at position %d")
	// ErrParse is raised on an unexpected token or malformed statement shape.
	ErrParse = errors.NewKind("parse error: %s")

	// ErrUnboundName is raised when an IdentExpr can't be resolved in any
	// frame of the current environment.
	ErrUnboundName = errors.NewKind("unbound name: %s")
	// ErrTypeMismatch is raised when a value's tag doesn't match what an
	// operation requires.
	ErrTypeMismatch = errors.NewKind("type mismatch: %s")
	// ErrArityMismatch is raised by callers that choose to enforce arity;
	// the evaluator itself pads/truncates per spec and never raises this.
	ErrArityMismatch = errors.NewKind("arity mismatch: expected %d arguments, got %d")
	// ErrTupleIndex is raised when a tuple index is out of range.
	ErrTupleIndex = errors.NewKind("tuple index %d out of range for tuple of length %d")
	// ErrNotCallable is raised when CallExpr's function position doesn't
	// evaluate to a Closure.
	ErrNotCallable = errors.NewKind("value is not callable: %s")
	// ErrBadCoercion is raised when a coercion has no defined result (not
	// expected given §7's total coercion rules, but reserved for future
	// value kinds).
	ErrBadCoercion = errors.NewKind("cannot coerce %s to %s")

	// ErrDuplicateColumn is raised by Table.AddColumn on a name collision.
	ErrDuplicateColumn = errors.NewKind("duplicate column: %s")
	// ErrUnknownColumn is raised by Table.Column on a missing name.
	ErrUnknownColumn = errors.NewKind("unknown column: %s")
	// ErrUnknownTable is raised by Catalog.Table on a missing name.
	ErrUnknownTable = errors.NewKind("unknown table: %s")
	// ErrUnknownAggregate is raised by SELECT AGGREGATE and by SELECT COMP
	// when the comp references an aggregate never declared.
	ErrUnknownAggregate = errors.NewKind("unknown aggregate: %s")
	// ErrUnknownComp is raised by SELECT COMP on a missing name.
	ErrUnknownComp = errors.NewKind("unknown comp: %s")

	// ErrDuplicateTable is raised by Catalog.CreateTable on a name collision.
	ErrDuplicateTable = errors.NewKind("duplicate table: %s")

	// ErrWrongRowWidth is raised by INSERT when the value count doesn't
	// match the column count (or the named column list's length).
	ErrWrongRowWidth = errors.NewKind("expected %d values, got %d")
	// ErrWrongValueType is raised by INSERT when a value can't be coerced
	// to its target column's declared type.
	ErrWrongValueType = errors.NewKind("value %s is not assignable to column %q of type %s")

	// ErrInvalidEncoding is raised by AddColumn/Compress for a (type,
	// encoding) pair not in spec.md §3.2's table.
	ErrInvalidEncoding = errors.NewKind("encoding %s is not valid for column type %s")

	// ErrCyclicDependency is raised at CREATE AGGREGATE / CREATE COMP
	// declaration time when a dependency walk over aggregate/comp bodies
	// finds a cycle.
	ErrCyclicDependency = errors.NewKind("cyclic dependency detected declaring %s")
)

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

// Package table implements spec.md §4.3's Table: an ordered set of named
// typed columns plus, per table, the calculated-column, aggregate, and
// comp registries of §4.1/§4.3 that the executor drives. Table itself
// never evaluates a script body — it is pure storage plus bookkeeping;
// internal/exec builds the per-row environment and calls into
// internal/eval.
package table

import (
	"github.com/dolthub/alexdb/internal/column"
	"github.com/dolthub/alexdb/internal/coerce"
	"github.com/dolthub/alexdb/internal/dberrors"
	"github.com/dolthub/alexdb/internal/parser/ast"
	"github.com/dolthub/alexdb/internal/value"
)

// CalcColumn records a calculated column's declared type and body,
// alongside its storage in Table.columns.
type CalcColumn struct {
	Name string
	Type ast.ColType
	Body ast.Expr
}

// Aggregate records a named fold over insertion order (spec.md §4.1).
type Aggregate struct {
	Name    string
	Body    ast.Expr
	Init    ast.Expr // nil if absent
	Current value.Value
	seeded  bool
}

// Comp records a named lazy computation over aggregates (spec.md §4.1),
// evaluated only on SELECT COMP.
type Comp struct {
	Name string
	Body ast.Expr
}

// Table is an ordered set of named columns (base and calculated,
// interleaved in declaration order) plus this table's aggregate and comp
// registries.
type Table struct {
	Name string

	columns     []column.Column
	columnNames []string
	colIndex    map[string]int
	isCalc      []bool
	calcByName  map[string]*CalcColumn

	aggregates     map[string]*Aggregate
	aggregateOrder []string

	comps     map[string]*Comp
	compOrder []string

	// deps maps an aggregate/comp name to every identifier its body (and,
	// for an aggregate, its INIT) directly references, whether or not that
	// name is an aggregate or comp — the edges checkAcyclic walks at the
	// next declaration.
	deps map[string][]string
}

// New returns an empty table named name.
func New(name string) *Table {
	return &Table{
		Name:       name,
		colIndex:   make(map[string]int),
		calcByName: make(map[string]*CalcColumn),
		aggregates: make(map[string]*Aggregate),
		comps:      make(map[string]*Comp),
		deps:       make(map[string][]string),
	}
}

// AddColumn adds a base column, used by CREATE TABLE. hasEnc distinguishes
// an explicit encoding token from "use the default for this type".
func (t *Table) AddColumn(name string, colType ast.ColType, enc ast.Encoding, hasEnc bool) error {
	if _, exists := t.colIndex[name]; exists {
		return dberrors.ErrDuplicateColumn.New(name)
	}
	if !hasEnc {
		enc = column.DefaultEncoding(colType)
	}
	col, err := column.New(colType, enc)
	if err != nil {
		return err
	}
	t.colIndex[name] = len(t.columns)
	t.columns = append(t.columns, col)
	t.columnNames = append(t.columnNames, name)
	t.isCalc = append(t.isCalc, false)
	return nil
}

// AddCalcColumn registers a calculated column (CREATE COLUMN) and
// reserves its storage slot; the caller is responsible for materializing
// existing rows by calling AppendCalcValue once per existing row before
// any further AddRow call.
func (t *Table) AddCalcColumn(name string, colType ast.ColType, body ast.Expr) error {
	if _, exists := t.colIndex[name]; exists {
		return dberrors.ErrDuplicateColumn.New(name)
	}
	col, err := column.New(colType, column.DefaultEncoding(colType))
	if err != nil {
		return err
	}
	t.colIndex[name] = len(t.columns)
	t.columns = append(t.columns, col)
	t.columnNames = append(t.columnNames, name)
	t.isCalc = append(t.isCalc, true)
	cc := &CalcColumn{Name: name, Type: colType, Body: body}
	t.calcByName[name] = cc
	return nil
}

// CalcColumns returns the calculated columns in declaration order.
func (t *Table) CalcColumns() []*CalcColumn {
	var out []*CalcColumn
	for _, name := range t.columnNames {
		if cc, ok := t.calcByName[name]; ok {
			out = append(out, cc)
		}
	}
	return out
}

// ColumnNames returns every column (base and calculated) in declaration
// order — what a `SELECT *` projects.
func (t *Table) ColumnNames() []string {
	return append([]string(nil), t.columnNames...)
}

// BaseColumnNames returns only the non-calculated columns, in declaration
// order — the shape INSERT's value list must match.
func (t *Table) BaseColumnNames() []string {
	var out []string
	for i, name := range t.columnNames {
		if !t.isCalc[i] {
			out = append(out, name)
		}
	}
	return out
}

// Column returns the named column's type and current encoding.
func (t *Table) Column(name string) (column.Column, error) {
	idx, ok := t.colIndex[name]
	if !ok {
		return nil, dberrors.ErrUnknownColumn.New(name)
	}
	return t.columns[idx], nil
}

// NumRows reports the table's logical row count.
func (t *Table) NumRows() int {
	for i, calc := range t.isCalc {
		if !calc {
			return t.columns[i].Len()
		}
	}
	return 0
}

// AddRow coerces values to their base columns' declared types and inserts
// them in base-column declaration order. No partial writes: if any value
// can't be inserted, no column is mutated.
func (t *Table) AddRow(values []value.Value) error {
	baseIdx := t.baseIndices()
	if len(values) != len(baseIdx) {
		return dberrors.ErrWrongRowWidth.New(len(baseIdx), len(values))
	}
	coerced := make([]value.Value, len(values))
	for i, idx := range baseIdx {
		cv, err := coerceToColumnType(values[i], t.columns[idx].Type())
		if err != nil {
			return err
		}
		coerced[i] = cv
	}
	for i, idx := range baseIdx {
		if err := t.columns[idx].Insert(coerced[i]); err != nil {
			return err
		}
	}
	return nil
}

// AppendCalcValue inserts v (coerced to the calc column's declared type)
// into the named calculated column. Used both to materialize existing
// rows when the calc column is declared and to extend it on every
// subsequent INSERT.
func (t *Table) AppendCalcValue(name string, v value.Value) error {
	idx, ok := t.colIndex[name]
	if !ok {
		return dberrors.ErrUnknownColumn.New(name)
	}
	cv, err := coerceToColumnType(v, t.columns[idx].Type())
	if err != nil {
		return err
	}
	return t.columns[idx].Insert(cv)
}

func (t *Table) baseIndices() []int {
	var idx []int
	for i, calc := range t.isCalc {
		if !calc {
			idx = append(idx, i)
		}
	}
	return idx
}

// IterRows returns a lazy cursor over every column (base and calculated)
// in declaration order, walking all column iterators in lockstep
// (spec.md §4.3's iter_rows).
func (t *Table) IterRows() func() ([]value.Value, bool) {
	iters := make([]func() (value.Value, bool), len(t.columns))
	for i, c := range t.columns {
		iters[i] = c.Iter()
	}
	return func() ([]value.Value, bool) {
		row := make([]value.Value, len(iters))
		for i, next := range iters {
			v, ok := next()
			if !ok {
				return nil, false
			}
			row[i] = v
		}
		return row, true
	}
}

// Recompress replaces the named column's storage with a fresh encoding of
// the same type, preserving N and order (spec.md §4.3's recompress,
// driven by the COMPRESS statement).
func (t *Table) Recompress(name string, enc ast.Encoding) error {
	idx, ok := t.colIndex[name]
	if !ok {
		return dberrors.ErrUnknownColumn.New(name)
	}
	fresh, err := t.columns[idx].Recompress(enc)
	if err != nil {
		return err
	}
	t.columns[idx] = fresh
	return nil
}

// RegisterAggregate adds a new named aggregate to this table, in
// declaration order. The caller (internal/exec) performs the replay over
// existing rows and calls SetAggregateCurrent as it goes. Declaring an
// aggregate whose body or INIT would close a cycle through another
// aggregate/comp fails with ErrCyclicDependency (spec.md §9) instead of
// registering.
func (t *Table) RegisterAggregate(name string, body, init ast.Expr) error {
	if _, exists := t.aggregates[name]; exists {
		return dberrors.ErrDuplicateColumn.New(name)
	}
	directDeps := t.dependencyNames(body, init)
	if !t.checkAcyclic(name, directDeps) {
		return dberrors.ErrCyclicDependency.New(name)
	}
	t.aggregates[name] = &Aggregate{Name: name, Body: body, Init: init, Current: value.NewNull()}
	t.aggregateOrder = append(t.aggregateOrder, name)
	t.deps[name] = directDeps
	return nil
}

// Aggregate returns the named aggregate's definition and live state.
func (t *Table) Aggregate(name string) (*Aggregate, error) {
	a, ok := t.aggregates[name]
	if !ok {
		return nil, dberrors.ErrUnknownAggregate.New(name)
	}
	return a, nil
}

// SetAggregateCurrent updates the named aggregate's running value.
func (t *Table) SetAggregateCurrent(name string, v value.Value) {
	if a, ok := t.aggregates[name]; ok {
		a.Current = v
		a.seeded = true
	}
}

// AggregateSeeded reports whether the named aggregate has processed at
// least one row (used to choose between INIT-seeding and the
// bind-Null-and-evaluate-once rule for the first row).
func (t *Table) AggregateSeeded(name string) bool {
	a, ok := t.aggregates[name]
	return ok && a.seeded
}

// AggregateNames returns every registered aggregate name, in declaration
// order.
func (t *Table) AggregateNames() []string {
	return append([]string(nil), t.aggregateOrder...)
}

// RegisterComp adds a new named comp to this table, in declaration order.
// As with RegisterAggregate, a body that would close a dependency cycle
// through another aggregate/comp is rejected with ErrCyclicDependency.
func (t *Table) RegisterComp(name string, body ast.Expr) error {
	if _, exists := t.comps[name]; exists {
		return dberrors.ErrDuplicateColumn.New(name)
	}
	directDeps := t.dependencyNames(body)
	if !t.checkAcyclic(name, directDeps) {
		return dberrors.ErrCyclicDependency.New(name)
	}
	t.comps[name] = &Comp{Name: name, Body: body}
	t.compOrder = append(t.compOrder, name)
	t.deps[name] = directDeps
	return nil
}

// Comp returns the named comp's definition.
func (t *Table) Comp(name string) (*Comp, error) {
	c, ok := t.comps[name]
	if !ok {
		return nil, dberrors.ErrUnknownComp.New(name)
	}
	return c, nil
}

// coerceToColumnType implements spec.md §4.7's INSERT coercion rule:
// Null is always acceptable; otherwise the produced value is coerced to
// the column's declared type.
func coerceToColumnType(v value.Value, t ast.ColType) (value.Value, error) {
	if v.IsNull() {
		return v, nil
	}
	switch t {
	case ast.ColNumber:
		return value.NewNumber(coerce.ToNumber(v)), nil
	case ast.ColString:
		return value.NewString(coerce.ToStringVal(v)), nil
	case ast.ColBoolean:
		return value.NewBoolean(coerce.ToBoolean(v)), nil
	default:
		return value.Value{}, dberrors.ErrWrongValueType.New(v.Kind().String(), "<column>", t.String())
	}
}

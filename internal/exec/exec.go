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

package exec

import (
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dolthub/alexdb/internal/catalog"
	"github.com/dolthub/alexdb/internal/coerce"
	"github.com/dolthub/alexdb/internal/dberrors"
	"github.com/dolthub/alexdb/internal/eval"
	"github.com/dolthub/alexdb/internal/parser/ast"
	"github.com/dolthub/alexdb/internal/table"
	"github.com/dolthub/alexdb/internal/value"
)

// Execute runs one parsed statement against db and logs a single
// structured entry describing the outcome, through the *logrus.Entry db
// itself owns (spec.md §5: the Database is the only shared mutable
// state, and it is the one that knows how to describe what happened to
// it).
func Execute(db *catalog.Database, q ast.Query) Result {
	start := time.Now()
	res := Dispatch(db, q)
	fields := logrus.Fields{
		"statement": statementKindOf(q),
		"duration":  time.Since(start).String(),
		"result":    res.Kind.String(),
	}
	if res.Kind == ResultError {
		db.Log().WithFields(fields).WithError(res.Err).Warn("statement failed")
	} else {
		db.Log().WithFields(fields).Info("statement executed")
	}
	return res
}

// Dispatch runs one parsed statement against db with no logging side
// effect; Execute is the logged entry point callers should use.
func Dispatch(db *catalog.Database, q ast.Query) Result {
	switch n := q.(type) {
	case ast.CreateTable:
		return execCreateTable(db, n)
	case ast.CreateConst:
		return execCreateConst(db, n)
	case ast.CreateAggregate:
		return execCreateAggregate(db, n)
	case ast.CreateColumn:
		return execCreateColumn(db, n)
	case ast.CreateComp:
		return execCreateComp(db, n)
	case ast.Compress:
		return execCompress(db, n)
	case ast.Insert:
		return execInsert(db, n)
	case ast.Select:
		return execSelect(db, n)
	default:
		return errResult(dberrors.ErrParse.New("unknown statement shape"))
	}
}

func statementKindOf(q interface{}) string {
	switch q.(type) {
	case ast.CreateTable:
		return "CREATE TABLE"
	case ast.CreateConst:
		return "CREATE CONST"
	case ast.CreateAggregate:
		return "CREATE AGGREGATE"
	case ast.CreateColumn:
		return "CREATE COLUMN"
	case ast.CreateComp:
		return "CREATE COMP"
	case ast.Compress:
		return "COMPRESS"
	case ast.Insert:
		return "INSERT"
	case ast.Select:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

// buildGlobalEnv returns an environment seeded with every global constant
// declared so far — the scope CREATE CONST's own body, and a SELECT's
// LIMIT expression, evaluate against.
func buildGlobalEnv(db *catalog.Database) *eval.Environment {
	env := eval.NewEnvironment()
	env.PushFrame()
	for _, name := range db.Consts() {
		v, _ := db.Const(name)
		env.Define(name, v)
	}
	return env
}

// buildRowEnv layers a row's named column values over the global
// constants, the shape every calc-column body, aggregate body, and WHERE
// predicate evaluates against.
func buildRowEnv(db *catalog.Database, colNames []string, row []value.Value) *eval.Environment {
	env := buildGlobalEnv(db)
	env.PushFrame()
	for i, name := range colNames {
		env.Define(name, row[i])
	}
	return env
}

func indexOf(names []string, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, dberrors.ErrUnknownColumn.New(name)
}

func execCreateTable(db *catalog.Database, n ast.CreateTable) Result {
	t, err := db.CreateTable(n.Table)
	if err != nil {
		return errResult(err)
	}
	for _, cd := range n.Columns {
		if err := t.AddColumn(cd.Name, cd.Type, cd.Encoding, cd.HasEncoding); err != nil {
			return errResult(err)
		}
	}
	return noneResult()
}

func execCreateConst(db *catalog.Database, n ast.CreateConst) Result {
	env := buildGlobalEnv(db)
	v, err := eval.Eval(n.Value, env)
	if err != nil {
		return errResult(err)
	}
	db.DefineConst(n.Name, v)
	return noneResult()
}

func execCreateColumn(db *catalog.Database, n ast.CreateColumn) Result {
	t, err := db.Table(n.Table)
	if err != nil {
		return errResult(err)
	}

	// Snapshot existing rows (under the columns that exist prior to this
	// one) before registering the new column, since the new column's
	// storage starts at length 0 and would desync Table.IterRows'
	// lockstep walk if it were added first.
	priorNames := t.ColumnNames()
	var rows [][]value.Value
	next := t.IterRows()
	for {
		row, ok := next()
		if !ok {
			break
		}
		rows = append(rows, row)
	}

	if err := t.AddCalcColumn(n.Name, n.Type, n.Body); err != nil {
		return errResult(err)
	}

	for _, row := range rows {
		env := buildRowEnv(db, priorNames, row)
		v, err := eval.Eval(n.Body, env)
		if err != nil {
			return errResult(err)
		}
		if err := t.AppendCalcValue(n.Name, v); err != nil {
			return errResult(err)
		}
	}
	return noneResult()
}

func execCreateAggregate(db *catalog.Database, n ast.CreateAggregate) Result {
	t, err := db.Table(n.Table)
	if err != nil {
		return errResult(err)
	}
	if err := t.RegisterAggregate(n.Name, n.Body, n.Init); err != nil {
		return errResult(err)
	}
	colNames := t.ColumnNames()
	next := t.IterRows()
	for {
		row, ok := next()
		if !ok {
			break
		}
		if err := updateAggregateForRow(db, t, n.Name, colNames, row); err != nil {
			return errResult(err)
		}
	}
	return noneResult()
}

func execCreateComp(db *catalog.Database, n ast.CreateComp) Result {
	t, err := db.Table(n.Table)
	if err != nil {
		return errResult(err)
	}
	if err := t.RegisterComp(n.Name, n.Body); err != nil {
		return errResult(err)
	}
	return noneResult()
}

func execCompress(db *catalog.Database, n ast.Compress) Result {
	t, err := db.Table(n.Table)
	if err != nil {
		return errResult(err)
	}
	if err := t.Recompress(n.Column, n.Encoding); err != nil {
		return errResult(err)
	}
	return noneResult()
}

// updateAggregateForRow applies spec.md §4.7's aggregate-update rule for
// a single row, whether that row arrives via CREATE AGGREGATE's replay
// over existing rows or a later INSERT. The first row this aggregate
// ever sees is seeded from INIT (if present, evaluated without a
// `current` binding) with no further body evaluation that row; absent
// INIT, `current` is bound to Null and the body runs once. Every
// subsequent row binds `current` to the running value and runs the body.
func updateAggregateForRow(db *catalog.Database, t *table.Table, name string, colNames []string, row []value.Value) error {
	a, err := t.Aggregate(name)
	if err != nil {
		return err
	}

	env := buildRowEnv(db, colNames, row)
	for _, oname := range t.AggregateNames() {
		if oname == name {
			continue
		}
		oa, _ := t.Aggregate(oname)
		env.Define(oname, oa.Current)
	}

	if !t.AggregateSeeded(name) && a.Init != nil {
		seed, err := eval.Eval(a.Init, env)
		if err != nil {
			return err
		}
		t.SetAggregateCurrent(name, seed)
		return nil
	}

	if t.AggregateSeeded(name) {
		env.Define("current", a.Current)
	} else {
		env.Define("current", value.NewNull())
	}
	result, err := eval.Eval(a.Body, env)
	if err != nil {
		return err
	}
	t.SetAggregateCurrent(name, result)
	return nil
}

func execInsert(db *catalog.Database, n ast.Insert) Result {
	t, err := db.Table(n.Table)
	if err != nil {
		return errResult(err)
	}

	baseNames := t.BaseColumnNames()
	if len(n.Values) != len(baseNames) {
		return errResult(dberrors.ErrWrongRowWidth.New(len(baseNames), len(n.Values)))
	}

	globalEnv := buildGlobalEnv(db)
	values := make([]value.Value, len(n.Values))
	for i, e := range n.Values {
		v, err := eval.Eval(e, globalEnv)
		if err != nil {
			return errResult(err)
		}
		values[i] = v
	}

	ordered := values
	if n.Columns != nil {
		pos := make(map[string]int, len(baseNames))
		for i, bn := range baseNames {
			pos[bn] = i
		}
		ordered = make([]value.Value, len(baseNames))
		for i, cn := range n.Columns {
			idx, ok := pos[cn]
			if !ok {
				return errResult(dberrors.ErrUnknownColumn.New(cn))
			}
			ordered[idx] = values[i]
		}
	}

	if err := t.AddRow(ordered); err != nil {
		return errResult(err)
	}

	rowColNames := append([]string(nil), baseNames...)
	rowValues := append([]value.Value(nil), ordered...)
	for _, cc := range t.CalcColumns() {
		env := buildRowEnv(db, rowColNames, rowValues)
		v, err := eval.Eval(cc.Body, env)
		if err != nil {
			return errResult(err)
		}
		if err := t.AppendCalcValue(cc.Name, v); err != nil {
			return errResult(err)
		}
		rowColNames = append(rowColNames, cc.Name)
		rowValues = append(rowValues, v)
	}

	for _, aname := range t.AggregateNames() {
		if err := updateAggregateForRow(db, t, aname, rowColNames, rowValues); err != nil {
			return errResult(err)
		}
	}

	return noneResult()
}

func execSelect(db *catalog.Database, n ast.Select) Result {
	t, err := db.Table(n.Table)
	if err != nil {
		return errResult(err)
	}

	switch n.Kind {
	case ast.SelectAggregateValue:
		a, err := t.Aggregate(n.Name)
		if err != nil {
			return errResult(err)
		}
		return valueResult(a.Current)
	case ast.SelectCompValue:
		c, err := t.Comp(n.Name)
		if err != nil {
			return errResult(err)
		}
		if name, ok := firstUnresolvedAggregateRef(db, t, c.Body); ok {
			return errResult(dberrors.ErrUnknownAggregate.New(name))
		}
		env := buildGlobalEnv(db)
		for _, aname := range t.AggregateNames() {
			a, _ := t.Aggregate(aname)
			env.Define(aname, a.Current)
		}
		v, err := eval.Eval(c.Body, env)
		if err != nil {
			return errResult(err)
		}
		return valueResult(v)
	}

	colNames := t.ColumnNames()
	next := t.IterRows()
	var kept [][]value.Value
	for {
		row, ok := next()
		if !ok {
			break
		}
		if n.Where != nil {
			env := buildRowEnv(db, colNames, row)
			for _, aname := range t.AggregateNames() {
				a, _ := t.Aggregate(aname)
				env.Define(aname, a.Current)
			}
			wv, err := eval.Eval(n.Where, env)
			if err != nil {
				return errResult(err)
			}
			if wv.Falsy() {
				continue
			}
		}
		kept = append(kept, row)
	}

	if n.Order != nil {
		idx, err := indexOf(colNames, n.Order.Column)
		if err != nil {
			return errResult(err)
		}
		sort.SliceStable(kept, func(i, j int) bool {
			c := compareForSort(kept[i][idx], kept[j][idx])
			if n.Order.Dir == ast.Desc {
				return c > 0
			}
			return c < 0
		})
	}

	if n.Limit != nil {
		env := buildGlobalEnv(db)
		lv, err := eval.Eval(n.Limit, env)
		if err != nil {
			return errResult(err)
		}
		limit := math.Floor(coerce.ToNumber(lv))
		switch {
		case math.IsNaN(limit) || limit < 0:
			kept = nil
		case int(limit) < len(kept):
			kept = kept[:int(limit)]
		}
	}

	projCols := n.Columns
	if projCols == nil {
		projCols = colNames
	}
	projIdx := make([]int, len(projCols))
	for i, pc := range projCols {
		idx, err := indexOf(colNames, pc)
		if err != nil {
			return errResult(err)
		}
		projIdx[i] = idx
	}

	rows := make([][]value.Value, len(kept))
	for i, row := range kept {
		proj := make([]value.Value, len(projIdx))
		for j, idx := range projIdx {
			proj[j] = row[idx]
		}
		rows[i] = proj
	}
	return tableResult(projCols, rows)
}

// firstUnresolvedAggregateRef reports a free identifier in body that isn't
// a global constant or one of t's currently-registered aggregates; when
// several qualify, which one is reported is not defined (map order). spec.md §9 resolves a SELECT COMP whose body references an
// aggregate that was never declared (a typo, or a name that genuinely
// doesn't exist) as Error(UnknownAggregate), not the generic unbound-name
// error eval.Eval would otherwise raise once it hits that identifier.
func firstUnresolvedAggregateRef(db *catalog.Database, t *table.Table, body ast.Expr) (string, bool) {
	found := make(map[string]bool)
	collectFreeIdents(body, map[string]bool{}, found)
	for name := range found {
		if _, ok := db.Const(name); ok {
			continue
		}
		known := false
		for _, aname := range t.AggregateNames() {
			if aname == name {
				known = true
				break
			}
		}
		if !known {
			return name, true
		}
	}
	return "", false
}

// collectFreeIdents walks e and records every identifier name it
// references that isn't shadowed by a FunExpr parameter or BlockExpr
// binding introduced along the way — a let-bound local or lambda
// parameter is not a candidate aggregate/const reference, and must not
// be misreported as one.
func collectFreeIdents(e ast.Expr, bound map[string]bool, out map[string]bool) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case ast.IdentExpr:
		if !bound[n.Name] {
			out[n.Name] = true
		}
	case ast.BopExpr:
		collectFreeIdents(n.Left, bound, out)
		collectFreeIdents(n.Right, bound, out)
	case ast.UopExpr:
		collectFreeIdents(n.Operand, bound, out)
	case ast.CondExpr:
		collectFreeIdents(n.Cond, bound, out)
		collectFreeIdents(n.Then, bound, out)
		collectFreeIdents(n.Else, bound, out)
	case ast.FunExpr:
		inner := copyBoundSet(bound)
		for _, p := range n.Params {
			inner[p] = true
		}
		collectFreeIdents(n.Body, inner, out)
	case ast.CallExpr:
		collectFreeIdents(n.Fn, bound, out)
		for _, a := range n.Args {
			collectFreeIdents(a, bound, out)
		}
	case ast.BlockExpr:
		inner := copyBoundSet(bound)
		for _, b := range n.Block.Bindings {
			collectFreeIdents(b.Value, inner, out)
			inner[b.Name] = true
		}
		collectFreeIdents(n.Block.Final, inner, out)
	case ast.TupleLit:
		for _, el := range n.Elems {
			collectFreeIdents(el, bound, out)
		}
	case ast.TupleIndex:
		collectFreeIdents(n.Tuple, bound, out)
	case ast.CoerceExpr:
		collectFreeIdents(n.Operand, bound, out)
	}
}

func copyBoundSet(bound map[string]bool) map[string]bool {
	out := make(map[string]bool, len(bound))
	for k := range bound {
		out[k] = true
	}
	return out
}

// compareForSort implements spec.md §4.7's ORDER BY comparator: Null
// sorts smaller than any number, strings compare lexicographically, and
// Number columns compare numerically. A mixed Number/String comparison
// (spec.md §9's open question — the source tests never exercise this)
// falls back to numeric coercion of both sides.
func compareForSort(a, b value.Value) int {
	if a.IsNull() && b.IsNull() {
		return 0
	}
	if a.IsNull() {
		return -1
	}
	if b.IsNull() {
		return 1
	}
	if a.IsString() && b.IsString() {
		switch {
		case a.Str() < b.Str():
			return -1
		case a.Str() > b.Str():
			return 1
		default:
			return 0
		}
	}
	lt, eq, _ := coerce.Compare(a, b)
	switch {
	case lt:
		return -1
	case eq:
		return 0
	default:
		return 1
	}
}

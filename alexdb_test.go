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

package alexdb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/alexdb"
	"github.com/dolthub/alexdb/internal/dberrors"
	"github.com/dolthub/alexdb/internal/exec"
	"github.com/dolthub/alexdb/internal/value"
)

func numberOf(f float64) value.Value { return value.NewNumber(f) }
func boolOf(b bool) value.Value      { return value.NewBoolean(b) }

func mustRun(t *testing.T, e *alexdb.Engine, stmt string) exec.Result {
	t.Helper()
	res := e.Run(stmt)
	require.NoError(t, res.Err, "statement %q", stmt)
	return res
}

// spec.md §8 scenario 4: filter + order + limit.
func TestSelectWhereOrderByLimit(t *testing.T) {
	require := require.New(t)
	e := alexdb.New(nil)

	mustRun(t, e, "CREATE TABLE t (f num, g bool)")
	mustRun(t, e, "INSERT INTO t VALUES (5, true)")
	mustRun(t, e, "INSERT INTO t VALUES (1, true)")
	mustRun(t, e, "INSERT INTO t VALUES (3, false)")

	res := mustRun(t, e, "SELECT * FROM t WHERE f == 3 || f == 5 ORDER BY f DESC LIMIT 1")
	require.Equal(exec.ResultTable, res.Kind)
	require.Len(res.Rows, 1)
	require.True(res.Rows[0][0].StrictEqual(numberOf(5)))
	require.True(res.Rows[0][1].StrictEqual(boolOf(true)))
}

// spec.md §8 scenario 5: two aggregates feeding a lazy comp.
func TestAggregateAndCompAverage(t *testing.T) {
	require := require.New(t)
	e := alexdb.New(nil)

	mustRun(t, e, "CREATE TABLE t (a num, b num)")
	mustRun(t, e, "CREATE AGGREGATE s = current + a INIT a INTO t")
	mustRun(t, e, "CREATE AGGREGATE c = current + 1 INIT 1 INTO t")
	mustRun(t, e, "CREATE COMP avg = s / c INTO t")

	mustRun(t, e, "INSERT INTO t VALUES (5, 6)")
	mustRun(t, e, "INSERT INTO t VALUES (6, 11)")
	mustRun(t, e, "INSERT INTO t VALUES (8, 3)")

	res := mustRun(t, e, "SELECT COMP avg FROM t")
	require.Equal(exec.ResultValue, res.Kind)
	require.True(res.Value.IsNumber())
	require.InDelta(19.0/3.0, res.Value.Number(), 1e-9)
}

// spec.md §8 scenario 6: xor round-trip via COMPRESS preserves order.
func TestCompressToXorPreservesOrder(t *testing.T) {
	require := require.New(t)
	e := alexdb.New(nil)

	mustRun(t, e, "CREATE TABLE t (v num xor)")
	for _, n := range []string{"5", "6", "8", "13", "2", "5"} {
		mustRun(t, e, "INSERT INTO t VALUES ("+n+")")
	}
	mustRun(t, e, "COMPRESS t (v) (xor)")

	res := mustRun(t, e, "SELECT * FROM t")
	require.Equal(exec.ResultTable, res.Kind)
	want := []float64{5, 6, 8, 13, 2, 5}
	require.Len(res.Rows, len(want))
	for i, w := range want {
		require.True(res.Rows[i][0].StrictEqual(numberOf(w)), "row %d", i)
	}
}

// Aggregate replay equivalence (spec.md §8 universal invariant): declaring
// an aggregate after N inserts must produce the same running value as
// declaring it before the inserts.
func TestAggregateReplayEquivalence(t *testing.T) {
	require := require.New(t)

	before := alexdb.New(nil)
	mustRun(t, before, "CREATE TABLE t (a num)")
	mustRun(t, before, "CREATE AGGREGATE total = current + a INIT a INTO t")
	mustRun(t, before, "INSERT INTO t VALUES (4)")
	mustRun(t, before, "INSERT INTO t VALUES (7)")
	mustRun(t, before, "INSERT INTO t VALUES (1)")
	beforeRes := mustRun(t, before, "SELECT AGGREGATE total FROM t")

	after := alexdb.New(nil)
	mustRun(t, after, "CREATE TABLE t (a num)")
	mustRun(t, after, "INSERT INTO t VALUES (4)")
	mustRun(t, after, "INSERT INTO t VALUES (7)")
	mustRun(t, after, "INSERT INTO t VALUES (1)")
	mustRun(t, after, "CREATE AGGREGATE total = current + a INIT a INTO t")
	afterRes := mustRun(t, after, "SELECT AGGREGATE total FROM t")

	require.Equal(exec.ResultValue, beforeRes.Kind)
	require.Equal(exec.ResultValue, afterRes.Kind)
	require.True(beforeRes.Value.StrictEqual(afterRes.Value))
}

// Order preservation (spec.md §8 universal invariant): iter_rows yields
// rows in insertion order regardless of encoding.
func TestOrderPreservationAcrossInserts(t *testing.T) {
	require := require.New(t)
	e := alexdb.New(nil)

	mustRun(t, e, "CREATE TABLE t (v num)")
	for _, n := range []string{"3", "1", "4", "1", "5"} {
		mustRun(t, e, "INSERT INTO t VALUES ("+n+")")
	}
	res := mustRun(t, e, "SELECT * FROM t")
	want := []float64{3, 1, 4, 1, 5}
	require.Len(res.Rows, len(want))
	for i, w := range want {
		require.True(res.Rows[i][0].StrictEqual(numberOf(w)))
	}
}

func TestCalcColumnMaterializesOverExistingRowsAndExtendsOnInsert(t *testing.T) {
	require := require.New(t)
	e := alexdb.New(nil)

	mustRun(t, e, "CREATE TABLE t (a num, b num)")
	mustRun(t, e, "INSERT INTO t VALUES (1, 2)")
	mustRun(t, e, "INSERT INTO t VALUES (3, 4)")
	mustRun(t, e, "CREATE COLUMN (num) sum = a + b INTO t")
	mustRun(t, e, "INSERT INTO t VALUES (5, 6)")

	res := mustRun(t, e, "SELECT * FROM t")
	want := []float64{3, 7, 11}
	require.Len(res.Rows, len(want))
	for i, w := range want {
		require.True(res.Rows[i][2].StrictEqual(numberOf(w)), "row %d", i)
	}
}

// spec.md §9: aggregate/comp bodies referencing each other by name are
// acyclic by construction unless a user declares a cycle; such a
// declaration must be rejected, not hang the evaluator at SELECT time.
func TestCyclicCompDeclarationIsRejected(t *testing.T) {
	require := require.New(t)
	e := alexdb.New(nil)

	mustRun(t, e, "CREATE TABLE t (a num)")
	mustRun(t, e, "CREATE AGGREGATE s = current + a INIT a INTO t")
	mustRun(t, e, "CREATE COMP avg = s / ratio INTO t")

	res := e.Run("CREATE COMP ratio = avg + 1 INTO t")
	require.Equal(exec.ResultError, res.Kind)
	require.Error(res.Err)
}

// spec.md §9: SELECT COMP against a comp whose body references an
// aggregate that was never declared surfaces Error(UnknownAggregate),
// not a generic unbound-name error.
func TestSelectCompUnknownAggregateReferenceIsError(t *testing.T) {
	require := require.New(t)
	e := alexdb.New(nil)

	mustRun(t, e, "CREATE TABLE t (a num)")
	mustRun(t, e, "CREATE COMP bogus = missing + 1 INTO t")

	res := e.Run("SELECT COMP bogus FROM t")
	require.Equal(exec.ResultError, res.Kind)
	require.True(dberrors.ErrUnknownAggregate.Is(res.Err), "got %v", res.Err)
}

// A comp body's own local block bindings are not aggregate references
// and must not be misclassified as an unknown aggregate.
func TestSelectCompAllowsLocalBlockBindings(t *testing.T) {
	require := require.New(t)
	e := alexdb.New(nil)

	mustRun(t, e, "CREATE TABLE t (a num)")
	mustRun(t, e, "CREATE AGGREGATE s = current + a INIT a INTO t")
	mustRun(t, e, "CREATE COMP scaled = {factor = 2; s * factor} INTO t")
	mustRun(t, e, "INSERT INTO t VALUES (5)")

	res := mustRun(t, e, "SELECT COMP scaled FROM t")
	require.Equal(exec.ResultValue, res.Kind)
	require.InDelta(10.0, res.Value.Number(), 1e-9)
}

func TestUnknownTableIsResultError(t *testing.T) {
	require := require.New(t)
	e := alexdb.New(nil)
	res := e.Run("SELECT * FROM nope")
	require.Equal(exec.ResultError, res.Kind)
	require.Error(res.Err)
}

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

package table_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/alexdb/internal/parser/ast"
	"github.com/dolthub/alexdb/internal/table"
	"github.com/dolthub/alexdb/internal/value"
)

func newTableWithColumns(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New("t")
	require.NoError(t, tbl.AddColumn("a", ast.ColNumber, ast.Uncompressed, false))
	require.NoError(t, tbl.AddColumn("b", ast.ColBoolean, ast.Uncompressed, false))
	return tbl
}

func TestAddColumnRejectsDuplicateName(t *testing.T) {
	require := require.New(t)
	tbl := newTableWithColumns(t)
	err := tbl.AddColumn("a", ast.ColString, ast.Uncompressed, false)
	require.Error(err)
}

func TestAddColumnAppliesDefaultEncoding(t *testing.T) {
	require := require.New(t)
	tbl := table.New("t")
	require.NoError(tbl.AddColumn("flag", ast.ColBoolean, ast.Uncompressed, false))
	col, err := tbl.Column("flag")
	require.NoError(err)
	require.Equal(ast.BoolPacked, col.Encoding())
}

func TestAddRowCoercesAndPreservesOrder(t *testing.T) {
	require := require.New(t)
	tbl := newTableWithColumns(t)

	require.NoError(tbl.AddRow([]value.Value{value.NewNumber(1), value.NewBoolean(true)}))
	require.NoError(tbl.AddRow([]value.Value{value.NewString("2"), value.NewBoolean(false)}))
	require.Equal(2, tbl.NumRows())

	next := tbl.IterRows()
	row1, ok := next()
	require.True(ok)
	require.True(row1[0].StrictEqual(value.NewNumber(1)))
	require.True(row1[1].StrictEqual(value.NewBoolean(true)))

	row2, ok := next()
	require.True(ok)
	require.True(row2[0].StrictEqual(value.NewNumber(2)))
	require.True(row2[1].StrictEqual(value.NewBoolean(false)))

	_, ok = next()
	require.False(ok)
}

func TestAddRowRejectsWrongWidth(t *testing.T) {
	require := require.New(t)
	tbl := newTableWithColumns(t)
	err := tbl.AddRow([]value.Value{value.NewNumber(1)})
	require.Error(err)
}

func TestRecompressChangesEncodingAndPreservesData(t *testing.T) {
	require := require.New(t)
	tbl := newTableWithColumns(t)
	require.NoError(tbl.AddRow([]value.Value{value.NewNumber(1), value.NewBoolean(true)}))
	require.NoError(tbl.AddRow([]value.Value{value.NewNumber(2), value.NewBoolean(false)}))

	require.NoError(tbl.Recompress("a", ast.RunLength))
	col, err := tbl.Column("a")
	require.NoError(err)
	require.Equal(ast.RunLength, col.Encoding())
	require.Equal(2, col.Len())
}

func TestCalcColumnIterRowsLockstep(t *testing.T) {
	require := require.New(t)
	tbl := newTableWithColumns(t)
	require.NoError(tbl.AddRow([]value.Value{value.NewNumber(1), value.NewBoolean(true)}))
	require.NoError(tbl.AddRow([]value.Value{value.NewNumber(2), value.NewBoolean(false)}))

	require.NoError(tbl.AddCalcColumn("doubled", ast.ColNumber, nil))
	require.NoError(tbl.AppendCalcValue("doubled", value.NewNumber(2)))
	require.NoError(tbl.AppendCalcValue("doubled", value.NewNumber(4)))

	next := tbl.IterRows()
	row1, ok := next()
	require.True(ok)
	require.Len(row1, 3)
	require.True(row1[2].StrictEqual(value.NewNumber(2)))
}

func TestRegisterAggregateRejectsDirectCycle(t *testing.T) {
	require := require.New(t)
	tbl := newTableWithColumns(t)
	require.NoError(tbl.RegisterAggregate("s", ast.IdentExpr{Name: "c"}, nil))
	err := tbl.RegisterAggregate("c", ast.IdentExpr{Name: "s"}, nil)
	require.Error(err)
}

func TestRegisterCompRejectsTransitiveCycle(t *testing.T) {
	require := require.New(t)
	tbl := newTableWithColumns(t)
	require.NoError(tbl.RegisterAggregate("s", ast.NumberLit{Value: 1}, nil))
	require.NoError(tbl.RegisterComp("avg", ast.IdentExpr{Name: "ratio"}))
	err := tbl.RegisterComp("ratio", ast.IdentExpr{Name: "avg"})
	require.Error(err)
}

func TestRegisterAggregateAllowsAcyclicReference(t *testing.T) {
	require := require.New(t)
	tbl := newTableWithColumns(t)
	require.NoError(tbl.RegisterAggregate("s", ast.NumberLit{Value: 1}, nil))
	require.NoError(tbl.RegisterComp("avg", ast.IdentExpr{Name: "s"}))
}

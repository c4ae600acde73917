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

package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/alexdb/internal/eval"
	"github.com/dolthub/alexdb/internal/parser"
	"github.com/dolthub/alexdb/internal/parser/ast"
)

func mustParseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	p, err := parser.New(src)
	require.NoError(t, err)
	e, err := p.ParseExpr()
	require.NoError(t, err)
	return e
}

func TestArithmeticInEmptyEnv(t *testing.T) {
	require := require.New(t)
	e := mustParseExpr(t, "432 + 5")
	v, err := eval.Eval(e, eval.NewEnvironment())
	require.NoError(err)
	require.True(v.IsNumber())
	require.Equal(float64(437), v.Number())
}

// spec.md §8 scenario 2: nested-closure lexical capture. x=5; f = {x=10;
// fun -> x}; f() must see the inner x (10), not the outer one (5).
func TestNestedClosureLexicalCapture(t *testing.T) {
	require := require.New(t)
	env := eval.NewEnvironment()

	xExpr := mustParseExpr(t, "5")
	xVal, err := eval.Eval(xExpr, env)
	require.NoError(err)
	env.Define("x", xVal)

	fExpr := mustParseExpr(t, "{x = 10; fun -> x}")
	fVal, err := eval.Eval(fExpr, env)
	require.NoError(err)
	env.Define("f", fVal)

	callExpr := mustParseExpr(t, "f()")
	result, err := eval.Eval(callExpr, env)
	require.NoError(err)
	require.True(result.IsNumber())
	require.Equal(float64(10), result.Number())
}

// spec.md §8 scenario 3: upward funarg. A later outer rebinding of x must
// not leak into a closure built before the rebinding.
func TestUpwardFunargDoesNotLeakLaterBinding(t *testing.T) {
	require := require.New(t)
	env := eval.NewEnvironment()

	addExpr := mustParseExpr(t, "fun x -> fun y -> x + y")
	addVal, err := eval.Eval(addExpr, env)
	require.NoError(err)
	env.Define("add", addVal)

	incExpr := mustParseExpr(t, "add(1)")
	incVal, err := eval.Eval(incExpr, env)
	require.NoError(err)
	env.Define("inc", incVal)

	xExpr := mustParseExpr(t, "1000")
	xVal, err := eval.Eval(xExpr, env)
	require.NoError(err)
	env.Define("x", xVal)

	callExpr := mustParseExpr(t, "inc(9)")
	result, err := eval.Eval(callExpr, env)
	require.NoError(err)
	require.True(result.IsNumber())
	require.Equal(float64(10), result.Number())
}

func TestShortCircuitAndOr(t *testing.T) {
	require := require.New(t)
	env := eval.NewEnvironment()

	v, err := eval.Eval(mustParseExpr(t, "0 && 5"), env)
	require.NoError(err)
	require.True(v.IsNumber())
	require.Equal(float64(0), v.Number())

	v, err = eval.Eval(mustParseExpr(t, "0 || 5"), env)
	require.NoError(err)
	require.True(v.IsNumber())
	require.Equal(float64(5), v.Number())
}

func TestTupleLiteralAndIndex(t *testing.T) {
	require := require.New(t)
	env := eval.NewEnvironment()

	v, err := eval.Eval(mustParseExpr(t, "[1, 'x', true].1"), env)
	require.NoError(err)
	require.True(v.IsString())
	require.Equal("x", v.Str())
}

func TestArityMismatchPadsWithUndefined(t *testing.T) {
	require := require.New(t)
	env := eval.NewEnvironment()

	fExpr := mustParseExpr(t, "fun x, y -> x")
	fVal, err := eval.Eval(fExpr, env)
	require.NoError(err)
	env.Define("f", fVal)

	// Missing the second argument entirely; body only reads x, so this
	// should still succeed with x bound to its one supplied argument.
	v, err := eval.Eval(mustParseExpr(t, "f(7)"), env)
	require.NoError(err)
	require.True(v.IsNumber())
	require.Equal(float64(7), v.Number())

	// The missing second parameter itself is bound to Undefined.
	gVal, err := eval.Eval(mustParseExpr(t, "fun x, y -> y"), env)
	require.NoError(err)
	env.Define("g", gVal)
	v, err = eval.Eval(mustParseExpr(t, "g(7)"), env)
	require.NoError(err)
	require.True(v.IsUndefined())
}

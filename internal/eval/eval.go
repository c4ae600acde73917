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

package eval

import (
	"math"

	"github.com/dolthub/alexdb/internal/coerce"
	"github.com/dolthub/alexdb/internal/dberrors"
	"github.com/dolthub/alexdb/internal/parser/ast"
	"github.com/dolthub/alexdb/internal/value"
)

// Eval walks an ast.Expr against env, implementing spec.md §4.6's
// evaluation rules for every node kind the parser produces.
func Eval(e ast.Expr, env *Environment) (value.Value, error) {
	switch n := e.(type) {
	case ast.NumberLit:
		return value.NewNumber(n.Value), nil
	case ast.StringLit:
		return value.NewString(n.Value), nil
	case ast.BoolLit:
		return value.NewBoolean(n.Value), nil
	case ast.NullLit:
		return value.NewNull(), nil
	case ast.UndefinedLit:
		return value.NewUndefined(), nil

	case ast.IdentExpr:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return value.Value{}, dberrors.ErrUnboundName.New(n.Name)
		}
		return v, nil

	case ast.BopExpr:
		return evalBop(n, env)

	case ast.UopExpr:
		operand, err := Eval(n.Operand, env)
		if err != nil {
			return value.Value{}, err
		}
		switch n.Op {
		case ast.Neg:
			return value.NewNumber(-coerce.ToNumber(operand)), nil
		case ast.Not:
			return value.NewBoolean(!coerce.ToBoolean(operand)), nil
		default:
			return value.Value{}, dberrors.ErrTypeMismatch.New("unknown unary operator")
		}

	case ast.CondExpr:
		cond, err := Eval(n.Cond, env)
		if err != nil {
			return value.Value{}, err
		}
		if cond.Truthy() {
			return Eval(n.Then, env)
		}
		return Eval(n.Else, env)

	case ast.FunExpr:
		return value.NewClosure(&value.ClosureVal{
			Captured: env.Flatten(),
			Params:   n.Params,
			Body:     n.Body,
		}), nil

	case ast.CallExpr:
		return evalCall(n, env)

	case ast.BlockExpr:
		return evalBlock(n.Block, env)

	case ast.TupleLit:
		elems := make([]value.Value, len(n.Elems))
		for i, el := range n.Elems {
			v, err := Eval(el, env)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.NewTuple(elems), nil

	case ast.TupleIndex:
		tv, err := Eval(n.Tuple, env)
		if err != nil {
			return value.Value{}, err
		}
		if !tv.IsTuple() {
			return value.Value{}, dberrors.ErrTypeMismatch.New("tuple index applied to a " + tv.Kind().String())
		}
		elems := tv.TupleElems()
		if n.Index < 0 || n.Index >= len(elems) {
			return value.Value{}, dberrors.ErrTupleIndex.New(n.Index, len(elems))
		}
		return elems[n.Index], nil

	case ast.CoerceExpr:
		operand, err := Eval(n.Operand, env)
		if err != nil {
			return value.Value{}, err
		}
		switch n.Op {
		case ast.CoerceStr:
			return value.NewString(coerce.ToStringVal(operand)), nil
		case ast.CoerceBool:
			return value.NewBoolean(coerce.ToBoolean(operand)), nil
		case ast.CoerceNum:
			return value.NewNumber(coerce.ToNumber(operand)), nil
		case ast.Floor:
			return value.NewNumber(math.Floor(coerce.ToNumber(operand))), nil
		case ast.Ceil:
			return value.NewNumber(math.Ceil(coerce.ToNumber(operand))), nil
		default:
			return value.Value{}, dberrors.ErrBadCoercion.New(operand.Kind().String(), "?")
		}

	default:
		return value.Value{}, dberrors.ErrTypeMismatch.New("unhandled expression node")
	}
}

func evalBop(n ast.BopExpr, env *Environment) (value.Value, error) {
	// Or/And short-circuit: the right side is only evaluated when needed,
	// and the result is whichever side decided the outcome, not a forced
	// Boolean (spec.md §4.2).
	if n.Op == ast.Or {
		left, err := Eval(n.Left, env)
		if err != nil {
			return value.Value{}, err
		}
		if left.Truthy() {
			return left, nil
		}
		return Eval(n.Right, env)
	}
	if n.Op == ast.And {
		left, err := Eval(n.Left, env)
		if err != nil {
			return value.Value{}, err
		}
		if left.Falsy() {
			return left, nil
		}
		return Eval(n.Right, env)
	}

	left, err := Eval(n.Left, env)
	if err != nil {
		return value.Value{}, err
	}
	right, err := Eval(n.Right, env)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Op {
	case ast.Add:
		if left.IsString() || right.IsString() {
			return value.NewString(coerce.ToStringVal(left) + coerce.ToStringVal(right)), nil
		}
		return value.NewNumber(coerce.ToNumber(left) + coerce.ToNumber(right)), nil
	case ast.Sub:
		return value.NewNumber(coerce.ToNumber(left) - coerce.ToNumber(right)), nil
	case ast.Mul:
		return value.NewNumber(coerce.ToNumber(left) * coerce.ToNumber(right)), nil
	case ast.Div:
		return value.NewNumber(coerce.ToNumber(left) / coerce.ToNumber(right)), nil
	case ast.Gt:
		_, _, gt := coerce.Compare(left, right)
		return value.NewBoolean(gt), nil
	case ast.Gte:
		_, eq, gt := coerce.Compare(left, right)
		return value.NewBoolean(gt || eq), nil
	case ast.Lt:
		lt, _, _ := coerce.Compare(left, right)
		return value.NewBoolean(lt), nil
	case ast.Lte:
		lt, eq, _ := coerce.Compare(left, right)
		return value.NewBoolean(lt || eq), nil
	case ast.Eq:
		return value.NewBoolean(coerce.LooseEqual(left, right)), nil
	case ast.StrictEq:
		return value.NewBoolean(left.StrictEqual(right)), nil
	default:
		return value.Value{}, dberrors.ErrTypeMismatch.New("unknown binary operator")
	}
}

// evalCall implements spec.md §4.6's function application: arguments are
// evaluated left to right against the caller's environment, then the
// closure's body runs against its captured frame plus a fresh parameter
// frame, never the caller's lexical frames (static scoping).
func evalCall(n ast.CallExpr, env *Environment) (value.Value, error) {
	fnVal, err := Eval(n.Fn, env)
	if err != nil {
		return value.Value{}, err
	}
	if !fnVal.IsClosure() {
		return value.Value{}, dberrors.ErrNotCallable.New(fnVal.Kind().String())
	}
	cl := fnVal.ClosureVal()

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(a, env)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	paramFrame := value.NewFrame()
	for i, p := range cl.Params {
		if i < len(args) {
			paramFrame.Push(p, args[i])
		} else {
			paramFrame.Push(p, value.NewUndefined())
		}
	}

	restore := env.swapFrames([]*value.Frame{cl.Captured, paramFrame})
	defer restore()

	return Eval(cl.Body, env)
}

// evalBlock implements `{ n1 = e1; n2 = e2; ...; final }`: a fresh frame
// holds the bindings in declaration order, each visible to every binding
// after it and to the final expression, then the frame is discarded.
func evalBlock(b *ast.Block, env *Environment) (value.Value, error) {
	env.PushFrame()
	defer env.PopFrame()

	for _, bind := range b.Bindings {
		v, err := Eval(bind.Value, env)
		if err != nil {
			return value.Value{}, err
		}
		env.Define(bind.Name, v)
	}
	return Eval(b.Final, env)
}

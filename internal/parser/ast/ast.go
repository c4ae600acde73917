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

// Package ast holds the syntax trees the parser produces: expressions
// (the Block/Expr family of spec.md §4.5-§4.6) and statements (Query).
// Nothing in this package depends on the value or eval packages, so a
// Closure (in package value) can embed an Expr body without an import
// cycle.
package ast

// BopType enumerates the binary operators of spec.md §6.1 expr1..expr3.
type BopType int

const (
	Add BopType = iota
	Sub
	Mul
	Div
	Gt
	Gte
	Lt
	Lte
	Eq
	StrictEq
	And
	Or
)

// UopType enumerates the unary operators of spec.md §6.1 expr4.
type UopType int

const (
	Neg UopType = iota
	Not
)

// CoerceOp enumerates the prefix value operators of spec.md §6.4.
type CoerceOp int

const (
	CoerceStr CoerceOp = iota
	CoerceBool
	CoerceNum
	Floor
	Ceil
)

// Expr is any node that can appear in expression position. Implementations
// are unexported-method-sealed to this package.
type Expr interface {
	exprNode()
}

// NumberLit is a NUMBER literal.
type NumberLit struct{ Value float64 }

// StringLit is a STRING literal (already stripped of its surrounding quotes).
type StringLit struct{ Value string }

// BoolLit is a true/false literal.
type BoolLit struct{ Value bool }

// NullLit is the `null` literal.
type NullLit struct{}

// UndefinedLit is the `undefined` literal.
type UndefinedLit struct{}

// IdentExpr is a bare identifier, resolved against the environment at
// evaluation time.
type IdentExpr struct{ Name string }

// BopExpr is a binary operator application.
type BopExpr struct {
	Op          BopType
	Left, Right Expr
}

// UopExpr is a unary operator application.
type UopExpr struct {
	Op      UopType
	Operand Expr
}

// CondExpr is `if cond then a else b`. Both arms are always parsed.
type CondExpr struct {
	Cond, Then, Else Expr
}

// FunExpr is `fun p1, p2, ... -> body` (Params may be empty).
type FunExpr struct {
	Params []string
	Body   Expr
}

// CallExpr is `fn(args...)`.
type CallExpr struct {
	Fn   Expr
	Args []Expr
}

// BlockExpr is `{ block }`: a new scope wrapping a Block.
type BlockExpr struct {
	Block *Block
}

// TupleLit is `[e, e, ...]`.
type TupleLit struct {
	Elems []Expr
}

// TupleIndex is postfix `e.N`.
type TupleIndex struct {
	Tuple Expr
	Index int
}

// CoerceExpr is one of the prefix operators `&`, `?`, `+`, `_`, `^`.
type CoerceExpr struct {
	Op      CoerceOp
	Operand Expr
}

func (NumberLit) exprNode()    {}
func (StringLit) exprNode()    {}
func (BoolLit) exprNode()      {}
func (NullLit) exprNode()      {}
func (UndefinedLit) exprNode() {}
func (IdentExpr) exprNode()    {}
func (BopExpr) exprNode()      {}
func (UopExpr) exprNode()      {}
func (CondExpr) exprNode()     {}
func (FunExpr) exprNode()      {}
func (CallExpr) exprNode()     {}
func (BlockExpr) exprNode()    {}
func (TupleLit) exprNode()     {}
func (TupleIndex) exprNode()   {}
func (CoerceExpr) exprNode()   {}

// Binding is one `ident = expr;` inside a Block.
type Binding struct {
	Name  string
	Value Expr
}

// Block is a sequence of let-bindings followed by a final expression,
// spec.md §4.5's `Block` production. Each Block introduces one frame when
// evaluated as a BlockExpr.
type Block struct {
	Bindings []Binding
	Final    Expr
}

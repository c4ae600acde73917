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

package lexer

import "github.com/dolthub/alexdb/internal/parser/ast"

// Kind enumerates the token set of spec.md §6.2.
type Kind int

const (
	EOF Kind = iota

	Number
	StringLit
	Boolean
	NullKw
	UndefinedKw
	Ident

	// Operators
	Plus
	Minus
	Star
	Slash
	Gt
	Gte
	Lt
	Lte
	Eq
	StrictEq
	Or
	And
	Not
	Amp
	Question
	Underscore
	Caret

	Arrow
	FunKw
	IfKw
	ThenKw
	ElseKw

	Assign
	Semi
	Comma

	LParen
	RParen
	LCBrace
	RCBrace
	LBracket
	RBracket
	Dot

	// SQL keywords
	SelectKw
	FromKw
	WhereKw
	InsertKw
	IntoKw
	ValuesKw
	AggregateKw
	ColumnKw
	ConstKw
	CreateKw
	TableKw
	LimitKw
	OrderKw
	ByKw
	AscKw
	DescKw
	InitKw
	CompKw
	CompressKw

	// Type keywords
	NumKw
	StrKw
	BoolKw

	// Encoding keywords
	NoneKw
	BitmapKw
	RunlenKw
	XorKw
)

// Token is one lexed unit. Only the fields relevant to Kind are populated;
// e.g. NumVal is meaningful only when Kind == Number.
type Token struct {
	Kind     Kind
	Lexeme   string
	NumVal   float64
	StrVal   string
	BoolVal  bool
	ColType  ast.ColType
	Encoding ast.Encoding
	SortDir  ast.SortDir
	Start    int
	End      int
}

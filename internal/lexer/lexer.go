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

// Package lexer implements spec.md §4.4: longest-match tokenization
// against the fixed token set of §6.2, grounded on
// original_source/src/sqlscript/lexer.rs's TOKEN_MAP approach (a regex per
// token kind, tried in declaration order, longest match wins, ties broken
// by declaration order).
package lexer

import (
	"regexp"
	"strconv"

	"github.com/dolthub/alexdb/internal/dberrors"
	"github.com/dolthub/alexdb/internal/parser/ast"
)

type rule struct {
	kind  Kind
	re    *regexp.Regexp
	skip  bool
	build func(m string) Token
}

func lit(k Kind) func(string) Token {
	return func(m string) Token { return Token{Kind: k} }
}

func col(k Kind, t ast.ColType) func(string) Token {
	return func(m string) Token { return Token{Kind: k, ColType: t} }
}

func enc(k Kind, e ast.Encoding) func(string) Token {
	return func(m string) Token { return Token{Kind: k, Encoding: e} }
}

func sortDir(k Kind, d ast.SortDir) func(string) Token {
	return func(m string) Token { return Token{Kind: k, SortDir: d} }
}

// rules is declaration-order-sensitive: a tie in match length is broken in
// favor of the rule listed first, so every keyword must precede Ident.
var rules = []rule{
	{kind: Boolean, re: regexp.MustCompile(`^true`), build: func(m string) Token {
		return Token{Kind: Boolean, BoolVal: true}
	}},
	{kind: Boolean, re: regexp.MustCompile(`^false`), build: func(m string) Token {
		return Token{Kind: Boolean, BoolVal: false}
	}},
	{kind: IfKw, re: regexp.MustCompile(`^if`), build: lit(IfKw)},
	{kind: ThenKw, re: regexp.MustCompile(`^then`), build: lit(ThenKw)},
	{kind: ElseKw, re: regexp.MustCompile(`^else`), build: lit(ElseKw)},

	{kind: SelectKw, re: regexp.MustCompile(`^SELECT`), build: lit(SelectKw)},
	{kind: FromKw, re: regexp.MustCompile(`^FROM`), build: lit(FromKw)},
	{kind: WhereKw, re: regexp.MustCompile(`^WHERE`), build: lit(WhereKw)},
	{kind: InsertKw, re: regexp.MustCompile(`^INSERT`), build: lit(InsertKw)},
	{kind: IntoKw, re: regexp.MustCompile(`^INTO`), build: lit(IntoKw)},
	{kind: ValuesKw, re: regexp.MustCompile(`^VALUES`), build: lit(ValuesKw)},
	{kind: AggregateKw, re: regexp.MustCompile(`^AGGREGATE`), build: lit(AggregateKw)},
	{kind: ColumnKw, re: regexp.MustCompile(`^COLUMN`), build: lit(ColumnKw)},
	{kind: ConstKw, re: regexp.MustCompile(`^CONST`), build: lit(ConstKw)},
	{kind: CreateKw, re: regexp.MustCompile(`^CREATE`), build: lit(CreateKw)},
	{kind: TableKw, re: regexp.MustCompile(`^TABLE`), build: lit(TableKw)},
	{kind: LimitKw, re: regexp.MustCompile(`^LIMIT`), build: lit(LimitKw)},
	{kind: OrderKw, re: regexp.MustCompile(`^ORDER`), build: lit(OrderKw)},
	{kind: AscKw, re: regexp.MustCompile(`^ASC`), build: sortDir(AscKw, ast.Asc)},
	{kind: DescKw, re: regexp.MustCompile(`^DESC`), build: sortDir(DescKw, ast.Desc)},
	{kind: ByKw, re: regexp.MustCompile(`^BY`), build: lit(ByKw)},
	{kind: InitKw, re: regexp.MustCompile(`^INIT`), build: lit(InitKw)},
	{kind: CompKw, re: regexp.MustCompile(`^COMP`), build: lit(CompKw)},
	{kind: CompressKw, re: regexp.MustCompile(`^COMPRESS`), build: lit(CompressKw)},

	{kind: NumKw, re: regexp.MustCompile(`^num`), build: col(NumKw, ast.ColNumber)},
	{kind: StrKw, re: regexp.MustCompile(`^str`), build: col(StrKw, ast.ColString)},
	{kind: BoolKw, re: regexp.MustCompile(`^bool`), build: col(BoolKw, ast.ColBoolean)},

	{kind: NoneKw, re: regexp.MustCompile(`^none`), build: enc(NoneKw, ast.Uncompressed)},
	{kind: BitmapKw, re: regexp.MustCompile(`^bitmap`), build: enc(BitmapKw, ast.Bitmap)},
	{kind: XorKw, re: regexp.MustCompile(`^xor`), build: enc(XorKw, ast.Xor)},
	{kind: RunlenKw, re: regexp.MustCompile(`^runlen`), build: enc(RunlenKw, ast.RunLength)},

	{kind: UndefinedKw, re: regexp.MustCompile(`^undefined`), build: lit(UndefinedKw)},
	{kind: NullKw, re: regexp.MustCompile(`^null`), build: lit(NullKw)},

	{kind: Gte, re: regexp.MustCompile(`^>=`), build: lit(Gte)},
	{kind: Gt, re: regexp.MustCompile(`^>`), build: lit(Gt)},
	{kind: Lte, re: regexp.MustCompile(`^<=`), build: lit(Lte)},
	{kind: Lt, re: regexp.MustCompile(`^<`), build: lit(Lt)},
	{kind: StrictEq, re: regexp.MustCompile(`^===`), build: lit(StrictEq)},
	{kind: Eq, re: regexp.MustCompile(`^==`), build: lit(Eq)},

	{kind: Or, re: regexp.MustCompile(`^\|\|`), build: lit(Or)},
	{kind: And, re: regexp.MustCompile(`^&&`), build: lit(And)},
	{kind: Not, re: regexp.MustCompile(`^!`), build: lit(Not)},

	{kind: Arrow, re: regexp.MustCompile(`^->`), build: lit(Arrow)},
	{kind: FunKw, re: regexp.MustCompile(`^fun`), build: lit(FunKw)},

	{kind: Assign, re: regexp.MustCompile(`^=`), build: lit(Assign)},
	{kind: Semi, re: regexp.MustCompile(`^;`), build: lit(Semi)},
	{kind: Comma, re: regexp.MustCompile(`^,`), build: lit(Comma)},

	{kind: LParen, re: regexp.MustCompile(`^\(`), build: lit(LParen)},
	{kind: RParen, re: regexp.MustCompile(`^\)`), build: lit(RParen)},
	{kind: LCBrace, re: regexp.MustCompile(`^\{`), build: lit(LCBrace)},
	{kind: RCBrace, re: regexp.MustCompile(`^\}`), build: lit(RCBrace)},
	{kind: LBracket, re: regexp.MustCompile(`^\[`), build: lit(LBracket)},
	{kind: RBracket, re: regexp.MustCompile(`^\]`), build: lit(RBracket)},

	{kind: Plus, re: regexp.MustCompile(`^\+`), build: lit(Plus)},
	{kind: Minus, re: regexp.MustCompile(`^-`), build: lit(Minus)},
	{kind: Star, re: regexp.MustCompile(`^\*`), build: lit(Star)},
	{kind: Slash, re: regexp.MustCompile(`^/`), build: lit(Slash)},

	{kind: Amp, re: regexp.MustCompile(`^&`), build: lit(Amp)},
	{kind: Question, re: regexp.MustCompile(`^\?`), build: lit(Question)},
	{kind: Underscore, re: regexp.MustCompile(`^_`), build: lit(Underscore)},
	{kind: Caret, re: regexp.MustCompile(`^\^`), build: lit(Caret)},

	{kind: Dot, re: regexp.MustCompile(`^\.`), build: lit(Dot)},

	{kind: Number, re: regexp.MustCompile(`^[0-9]+\.[0-9]+`), build: func(m string) Token {
		f, _ := strconv.ParseFloat(m, 64)
		return Token{Kind: Number, NumVal: f}
	}},
	{kind: Number, re: regexp.MustCompile(`^[0-9]+`), build: func(m string) Token {
		f, _ := strconv.ParseFloat(m, 64)
		return Token{Kind: Number, NumVal: f}
	}},
	{kind: Ident, re: regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*`), build: func(m string) Token {
		return Token{Kind: Ident, StrVal: m}
	}},
	{kind: StringLit, re: regexp.MustCompile(`^'[^']*'`), build: func(m string) Token {
		return Token{Kind: StringLit, StrVal: m[1 : len(m)-1]}
	}},
	{re: regexp.MustCompile(`^[ \t]+`), skip: true},
}

// Lexer tokenizes a SQLScript source string.
type Lexer struct {
	stream string
	pos    int
}

// New returns a Lexer positioned at the start of stream.
func New(stream string) *Lexer {
	return &Lexer{stream: stream}
}

// Produce returns the next token, advancing past it. At end of stream it
// returns an EOF token, idempotently.
func (l *Lexer) Produce() (Token, error) {
	if l.pos >= len(l.stream) {
		return Token{Kind: EOF, Start: len(l.stream), End: len(l.stream)}, nil
	}

	rest := l.stream[l.pos:]
	bestLen := 0
	var best Token
	haveMatch := false

	for _, r := range rules {
		loc := r.re.FindStringIndex(rest)
		if loc == nil || loc[0] != 0 {
			continue
		}
		matchLen := loc[1]
		if matchLen > bestLen {
			bestLen = matchLen
			if r.skip {
				haveMatch = false
			} else {
				best = r.build(rest[:matchLen])
				haveMatch = true
			}
		}
	}

	if bestLen == 0 {
		return Token{}, dberrors.ErrLex.New(l.pos)
	}

	start := l.pos
	l.pos += bestLen
	if !haveMatch {
		// Matched whitespace: discard and continue.
		return l.Produce()
	}
	best.Lexeme = rest[:bestLen]
	best.Start = start
	best.End = l.pos
	return best, nil
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	save := l.pos
	tok, err := l.Produce()
	l.pos = save
	return tok, err
}

// Reset rewinds the lexer to the start of the stream.
func (l *Lexer) Reset() {
	l.pos = 0
}

// Pos returns the current byte offset, for save/restore by the parser.
func (l *Lexer) Pos() int { return l.pos }

// SetPos restores a previously observed offset.
func (l *Lexer) SetPos(pos int) { l.pos = pos }

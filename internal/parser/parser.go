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

// Package parser implements spec.md §4.5's recursive-descent,
// precedence-climbing parser over the grammar of spec.md §6.1, including
// the tuple literals, tuple indexing, and prefix coercion operators that
// spec.md §9 flags as missing from the distilled source and required by
// this repository's test suite (see SPEC_FULL.md §3).
package parser

import (
	"fmt"

	"github.com/dolthub/alexdb/internal/dberrors"
	"github.com/dolthub/alexdb/internal/lexer"
	"github.com/dolthub/alexdb/internal/parser/ast"
)

// Parser turns a token stream into a Query or, for expression-valued
// positions inside a query, an Expr.
type Parser struct {
	lx       *lexer.Lexer
	cur      lexer.Token
	curStart int
}

// New creates a Parser over src and primes its first token.
func New(src string) (*Parser, error) {
	p := &Parser{lx: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.curStart = p.lx.Pos()
	tok, err := p.lx.Produce()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) mark() int { return p.curStart }

func (p *Parser) rewind(pos int) error {
	p.lx.SetPos(pos)
	return p.advance()
}

func (p *Parser) errf(format string, args ...interface{}) error {
	return dberrors.ErrParse.New(fmt.Sprintf(format, args...))
}

func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if p.cur.Kind != k {
		return lexer.Token{}, p.errf("expected %s, got %q", what, p.cur.Lexeme)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func (p *Parser) expectIdent() (string, error) {
	tok, err := p.expect(lexer.Ident, "identifier")
	if err != nil {
		return "", err
	}
	return tok.StrVal, nil
}

// Parse consumes the whole token stream as a single top-level statement.
func (p *Parser) Parse() (ast.Query, error) {
	var q ast.Query
	var err error
	switch p.cur.Kind {
	case lexer.SelectKw:
		q, err = p.parseSelect()
	case lexer.InsertKw:
		q, err = p.parseInsert()
	case lexer.CreateKw:
		q, err = p.parseCreate()
	case lexer.CompressKw:
		q, err = p.parseCompress()
	default:
		return nil, p.errf("expected a statement, got %q", p.cur.Lexeme)
	}
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.EOF {
		return nil, p.errf("unexpected token %q after statement", p.cur.Lexeme)
	}
	return q, nil
}

// ParseExpr parses a single standalone expression (used by the evaluator
// tests; Engine.Run and the CLI go through Parse only).
func (p *Parser) ParseExpr() (ast.Expr, error) {
	return p.parseExprLevel1()
}

func (p *Parser) identList() ([]string, error) {
	var names []string
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	names = append(names, name)
	for p.cur.Kind == lexer.Comma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (p *Parser) exprList() ([]ast.Expr, error) {
	var exprs []ast.Expr
	e, err := p.parseExprLevel1()
	if err != nil {
		return nil, err
	}
	exprs = append(exprs, e)
	for p.cur.Kind == lexer.Comma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExprLevel1()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

func (p *Parser) encodingToken() (ast.Encoding, error) {
	switch p.cur.Kind {
	case lexer.NoneKw, lexer.BitmapKw, lexer.XorKw, lexer.RunlenKw:
		enc := p.cur.Encoding
		if err := p.advance(); err != nil {
			return 0, err
		}
		return enc, nil
	default:
		return 0, p.errf("expected an encoding, got %q", p.cur.Lexeme)
	}
}

func (p *Parser) colTypeToken() (ast.ColType, error) {
	switch p.cur.Kind {
	case lexer.NumKw, lexer.StrKw, lexer.BoolKw:
		ct := p.cur.ColType
		if err := p.advance(); err != nil {
			return 0, err
		}
		return ct, nil
	default:
		return 0, p.errf("expected a column type, got %q", p.cur.Lexeme)
	}
}

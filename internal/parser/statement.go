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

package parser

import (
	"github.com/dolthub/alexdb/internal/lexer"
	"github.com/dolthub/alexdb/internal/parser/ast"
)

func (p *Parser) parseSelect() (ast.Query, error) {
	if err := p.advance(); err != nil { // consume SELECT
		return nil, err
	}

	sel := ast.Select{Kind: ast.SelectRows}

	switch p.cur.Kind {
	case lexer.Star:
		if err := p.advance(); err != nil {
			return nil, err
		}
	case lexer.AggregateKw:
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		sel.Kind = ast.SelectAggregateValue
		sel.Name = name
	case lexer.CompKw:
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		sel.Kind = ast.SelectCompValue
		sel.Name = name
	default:
		cols, err := p.identList()
		if err != nil {
			return nil, err
		}
		sel.Columns = cols
	}

	if _, err := p.expect(lexer.FromKw, "'FROM'"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	sel.Table = table

	if sel.Kind != ast.SelectRows {
		return sel, nil
	}

	if p.cur.Kind == lexer.WhereKw {
		if err := p.advance(); err != nil {
			return nil, err
		}
		where, err := p.parseExprLevel1()
		if err != nil {
			return nil, err
		}
		sel.Where = where
	}

	if p.cur.Kind == lexer.OrderKw {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ByKw, "'BY'"); err != nil {
			return nil, err
		}
		col, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		order := &ast.OrderBy{Column: col, Dir: ast.Asc}
		switch p.cur.Kind {
		case lexer.AscKw:
			order.Dir = ast.Asc
			if err := p.advance(); err != nil {
				return nil, err
			}
		case lexer.DescKw:
			order.Dir = ast.Desc
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		sel.Order = order
	}

	if p.cur.Kind == lexer.LimitKw {
		if err := p.advance(); err != nil {
			return nil, err
		}
		limit, err := p.parseExprLevel1()
		if err != nil {
			return nil, err
		}
		sel.Limit = limit
	}

	return sel, nil
}

func (p *Parser) parseInsert() (ast.Query, error) {
	if err := p.advance(); err != nil { // consume INSERT
		return nil, err
	}
	if _, err := p.expect(lexer.IntoKw, "'INTO'"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var cols []string
	if p.cur.Kind == lexer.LParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		cols, err = p.identList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.ValuesKw, "'VALUES'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	values, err := p.exprList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}

	return ast.Insert{Table: table, Columns: cols, Values: values}, nil
}

func (p *Parser) parseCreate() (ast.Query, error) {
	if err := p.advance(); err != nil { // consume CREATE
		return nil, err
	}
	switch p.cur.Kind {
	case lexer.TableKw:
		return p.parseCreateTable()
	case lexer.ConstKw:
		return p.parseCreateConst()
	case lexer.ColumnKw:
		return p.parseCreateColumn()
	case lexer.AggregateKw:
		return p.parseCreateAggregate()
	case lexer.CompKw:
		return p.parseCreateComp()
	default:
		return nil, p.errf("expected TABLE, CONST, COLUMN, AGGREGATE, or COMP, got %q", p.cur.Lexeme)
	}
}

func (p *Parser) parseCreateTable() (ast.Query, error) {
	if err := p.advance(); err != nil { // consume TABLE
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	var cols []ast.ColumnDef
	for {
		colName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		colType, err := p.colTypeToken()
		if err != nil {
			return nil, err
		}
		def := ast.ColumnDef{Name: colName, Type: colType}
		switch p.cur.Kind {
		case lexer.NoneKw, lexer.BitmapKw, lexer.XorKw, lexer.RunlenKw:
			enc, err := p.encodingToken()
			if err != nil {
				return nil, err
			}
			def.Encoding = enc
			def.HasEncoding = true
		}
		cols = append(cols, def)
		if p.cur.Kind != lexer.Comma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	return ast.CreateTable{Table: name, Columns: cols}, nil
}

func (p *Parser) parseCreateConst() (ast.Query, error) {
	if err := p.advance(); err != nil { // consume CONST
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign, "'='"); err != nil {
		return nil, err
	}
	val, err := p.parseExprLevel1()
	if err != nil {
		return nil, err
	}
	return ast.CreateConst{Name: name, Value: val}, nil
}

func (p *Parser) parseCreateColumn() (ast.Query, error) {
	if err := p.advance(); err != nil { // consume COLUMN
		return nil, err
	}
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	colType, err := p.colTypeToken()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseExprLevel1()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IntoKw, "'INTO'"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	return ast.CreateColumn{Name: name, Type: colType, Body: body, Table: table}, nil
}

func (p *Parser) parseCreateAggregate() (ast.Query, error) {
	if err := p.advance(); err != nil { // consume AGGREGATE
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseExprLevel1()
	if err != nil {
		return nil, err
	}
	var initExpr ast.Expr
	if p.cur.Kind == lexer.InitKw {
		if err := p.advance(); err != nil {
			return nil, err
		}
		initExpr, err = p.parseExprLevel1()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.IntoKw, "'INTO'"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	return ast.CreateAggregate{Name: name, Body: body, Init: initExpr, Table: table}, nil
}

func (p *Parser) parseCreateComp() (ast.Query, error) {
	if err := p.advance(); err != nil { // consume COMP
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign, "'='"); err != nil {
		return nil, err
	}
	body, err := p.parseExprLevel1()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IntoKw, "'INTO'"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	return ast.CreateComp{Name: name, Body: body, Table: table}, nil
}

func (p *Parser) parseCompress() (ast.Query, error) {
	if err := p.advance(); err != nil { // consume COMPRESS
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	col, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}

	var enc ast.Encoding
	if p.cur.Kind == lexer.LParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		enc, err = p.encodingToken()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
	} else {
		enc, err = p.encodingToken()
		if err != nil {
			return nil, err
		}
	}

	return ast.Compress{Table: table, Column: col, Encoding: enc}, nil
}

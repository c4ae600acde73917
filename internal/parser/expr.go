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

// parseExprLevel1 implements grammar production `expr`: expr1 (("||"|"&&") expr)?
func (p *Parser) parseExprLevel1() (ast.Expr, error) {
	left, err := p.parseExprLevel2()
	if err != nil {
		return nil, err
	}
	var op ast.BopType
	switch p.cur.Kind {
	case lexer.Or:
		op = ast.Or
	case lexer.And:
		op = ast.And
	default:
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExprLevel1()
	if err != nil {
		return nil, err
	}
	return ast.BopExpr{Op: op, Left: left, Right: right}, nil
}

// parseExprLevel2 implements `expr1`: expr2 ((">"|">="|"<"|"<="|"=="|"===") expr1)?
func (p *Parser) parseExprLevel2() (ast.Expr, error) {
	left, err := p.parseExprLevel3()
	if err != nil {
		return nil, err
	}
	var op ast.BopType
	switch p.cur.Kind {
	case lexer.Gt:
		op = ast.Gt
	case lexer.Gte:
		op = ast.Gte
	case lexer.Lt:
		op = ast.Lt
	case lexer.Lte:
		op = ast.Lte
	case lexer.Eq:
		op = ast.Eq
	case lexer.StrictEq:
		op = ast.StrictEq
	default:
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExprLevel2()
	if err != nil {
		return nil, err
	}
	return ast.BopExpr{Op: op, Left: left, Right: right}, nil
}

// parseExprLevel3 implements `expr2`: expr3 (("+"|"-") expr2)?
func (p *Parser) parseExprLevel3() (ast.Expr, error) {
	left, err := p.parseExprLevel4()
	if err != nil {
		return nil, err
	}
	var op ast.BopType
	switch p.cur.Kind {
	case lexer.Plus:
		op = ast.Add
	case lexer.Minus:
		op = ast.Sub
	default:
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExprLevel3()
	if err != nil {
		return nil, err
	}
	return ast.BopExpr{Op: op, Left: left, Right: right}, nil
}

// parseExprLevel4 implements `expr3`: expr4 (("*"|"/") expr3)?
func (p *Parser) parseExprLevel4() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	var op ast.BopType
	switch p.cur.Kind {
	case lexer.Star:
		op = ast.Mul
	case lexer.Slash:
		op = ast.Div
	default:
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExprLevel4()
	if err != nil {
		return nil, err
	}
	return ast.BopExpr{Op: op, Left: left, Right: right}, nil
}

// parseUnary implements `expr4`: ("-"|"!") expr4 | expr5
func (p *Parser) parseUnary() (ast.Expr, error) {
	var op ast.UopType
	switch p.cur.Kind {
	case lexer.Minus:
		op = ast.Neg
	case lexer.Not:
		op = ast.Not
	default:
		return p.parsePostfix()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return ast.UopExpr{Op: op, Operand: operand}, nil
}

// parsePostfix implements `expr5`: primary (("(" [exprList] ")") | ("." NUMBER))*
func (p *Parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Kind {
		case lexer.LParen:
			if err := p.advance(); err != nil {
				return nil, err
			}
			var args []ast.Expr
			if p.cur.Kind != lexer.RParen {
				args, err = p.exprList()
				if err != nil {
					return nil, err
				}
			}
			if _, err := p.expect(lexer.RParen, "')'"); err != nil {
				return nil, err
			}
			e = ast.CallExpr{Fn: e, Args: args}
		case lexer.Dot:
			if err := p.advance(); err != nil {
				return nil, err
			}
			idxTok, err := p.expect(lexer.Number, "tuple index")
			if err != nil {
				return nil, err
			}
			e = ast.TupleIndex{Tuple: e, Index: int(idxTok.NumVal)}
		default:
			return e, nil
		}
	}
}

// parsePrimary implements `primary`, including the prefix coercion
// operators of spec.md §6.4, which bind to a recursive expr5.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur.Kind {
	case lexer.Number:
		v := p.cur.NumVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NumberLit{Value: v}, nil
	case lexer.StringLit:
		v := p.cur.StrVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.StringLit{Value: v}, nil
	case lexer.Boolean:
		v := p.cur.BoolVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.BoolLit{Value: v}, nil
	case lexer.NullKw:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NullLit{}, nil
	case lexer.UndefinedKw:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.UndefinedLit{}, nil
	case lexer.Ident:
		name := p.cur.StrVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.IdentExpr{Name: name}, nil
	case lexer.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExprLevel1()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.LCBrace:
		if err := p.advance(); err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RCBrace, "'}'"); err != nil {
			return nil, err
		}
		return ast.BlockExpr{Block: block}, nil
	case lexer.LBracket:
		if err := p.advance(); err != nil {
			return nil, err
		}
		var elems []ast.Expr
		if p.cur.Kind != lexer.RBracket {
			var err error
			elems, err = p.exprList()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.RBracket, "']'"); err != nil {
			return nil, err
		}
		return ast.TupleLit{Elems: elems}, nil
	case lexer.FunKw:
		if err := p.advance(); err != nil {
			return nil, err
		}
		var params []string
		if p.cur.Kind == lexer.Ident {
			var err error
			params, err = p.identList()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.Arrow, "'->'"); err != nil {
			return nil, err
		}
		body, err := p.parseExprLevel1()
		if err != nil {
			return nil, err
		}
		return ast.FunExpr{Params: params, Body: body}, nil
	case lexer.IfKw:
		if err := p.advance(); err != nil {
			return nil, err
		}
		cond, err := p.parseExprLevel1()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ThenKw, "'then'"); err != nil {
			return nil, err
		}
		thenE, err := p.parseExprLevel1()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ElseKw, "'else'"); err != nil {
			return nil, err
		}
		elseE, err := p.parseExprLevel1()
		if err != nil {
			return nil, err
		}
		return ast.CondExpr{Cond: cond, Then: thenE, Else: elseE}, nil
	case lexer.Amp, lexer.Question, lexer.Plus, lexer.Underscore, lexer.Caret:
		var op ast.CoerceOp
		switch p.cur.Kind {
		case lexer.Amp:
			op = ast.CoerceStr
		case lexer.Question:
			op = ast.CoerceBool
		case lexer.Plus:
			op = ast.CoerceNum
		case lexer.Underscore:
			op = ast.Floor
		case lexer.Caret:
			op = ast.Ceil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return ast.CoerceExpr{Op: op, Operand: operand}, nil
	default:
		return nil, p.errf("unexpected token %q", p.cur.Lexeme)
	}
}

// parseBlock implements `block`: (ident "=" expr ";")* expr
func (p *Parser) parseBlock() (*ast.Block, error) {
	var bindings []ast.Binding
	for p.cur.Kind == lexer.Ident {
		save := p.mark()
		name := p.cur.StrVal
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind != lexer.Assign {
			if err := p.rewind(save); err != nil {
				return nil, err
			}
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseExprLevel1()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semi, "';'"); err != nil {
			return nil, err
		}
		bindings = append(bindings, ast.Binding{Name: name, Value: val})
	}
	final, err := p.parseExprLevel1()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Bindings: bindings, Final: final}, nil
}

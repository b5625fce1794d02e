package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/token"
)

// parseExpression is the entry point: assignment is the loosest-binding
// expression form.
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseAssignment()
}

func assignOp(t token.Type) (string, bool) {
	switch t {
	case token.ASSIGN:
		return "=", true
	case token.PLUS_ASSIGN:
		return "+=", true
	case token.MINUS_ASSIGN:
		return "-=", true
	case token.STAR_ASSIGN:
		return "*=", true
	case token.SLASH_ASSIGN:
		return "/=", true
	}
	return "", false
}

func (p *Parser) parseAssignment() (ast.Expr, error) {
	left, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	if op, ok := assignOp(p.cur().Type); ok {
		tok := p.advance()
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Base: baseAt(tok), Op: op, Target: left, Value: right}, nil
	}
	return left, nil
}

func (p *Parser) parsePipeline() (ast.Expr, error) {
	left, err := p.parseNullCoalesce()
	if err != nil {
		return nil, err
	}
	if !p.check(token.PIPELINE) && !p.check(token.ASYNC_PIPELINE) {
		return left, nil
	}
	tok := p.cur()
	pipe := &ast.PipelineExpr{Base: baseAt(tok), Seed: left}
	for p.check(token.PIPELINE) || p.check(token.ASYNC_PIPELINE) {
		async := p.check(token.ASYNC_PIPELINE)
		p.advance()
		stage, err := p.parseNullCoalesce()
		if err != nil {
			return nil, err
		}
		pipe.Stages = append(pipe.Stages, ast.PipelineStage{Expr: stage, Async: async})
	}
	return pipe, nil
}

func (p *Parser) parseNullCoalesce() (ast.Expr, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	for p.check(token.NULL_COALESCE) {
		tok := p.advance()
		right, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		left = &ast.NullCoalesceExpr{Base: baseAt(tok), Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.OR) {
		tok := p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Base: baseAt(tok), Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseLogicalNot()
	if err != nil {
		return nil, err
	}
	for p.check(token.AND) {
		tok := p.advance()
		right, err := p.parseLogicalNot()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Base: baseAt(tok), Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalNot() (ast.Expr, error) {
	if p.check(token.NOT) {
		tok := p.advance()
		operand, err := p.parseLogicalNot()
		if err != nil {
			return nil, err
		}
		return &ast.NotExpr{Base: baseAt(tok), Operand: operand}, nil
	}
	return p.parseEquality()
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseComparisonChain()
	if err != nil {
		return nil, err
	}
	for p.check(token.EQ) || p.check(token.NE) {
		tok := p.advance()
		op := "=="
		if tok.Type == token.NE {
			op = "!="
		}
		right, err := p.parseComparisonChain()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: baseAt(tok), Op: op, Left: left, Right: right}
	}
	return left, nil
}

func comparisonOpText(t token.Type) (string, bool) {
	switch t {
	case token.LT:
		return "<", true
	case token.GT:
		return ">", true
	case token.LE:
		return "<=", true
	case token.GE:
		return ">=", true
	case token.IN:
		return "in", true
	}
	return "", false
}

// parseComparisonChain collects `a < b <= c` into one node so the
// evaluator can short-circuit across the whole chain.
func (p *Parser) parseComparisonChain() (ast.Expr, error) {
	start := p.cur()
	first, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	chain := &ast.ComparisonChain{Base: baseAt(start), Operands: []ast.Expr{first}}
	for {
		op, ok := comparisonOpText(p.cur().Type)
		if !ok {
			break
		}
		p.advance()
		next, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		chain.Operators = append(chain.Operators, op)
		chain.Operands = append(chain.Operands, next)
	}
	if len(chain.Operators) == 0 {
		return first, nil
	}
	return chain, nil
}

func (p *Parser) parseRange() (ast.Expr, error) {
	left, err := p.parseAddition()
	if err != nil {
		return nil, err
	}
	if p.check(token.RANGE) || p.check(token.TO) {
		tok := p.advance()
		right, err := p.parseAddition()
		if err != nil {
			return nil, err
		}
		return &ast.RangeExpr{Base: baseAt(tok), Start: left, End: right, Inclusive: true}, nil
	}
	return left, nil
}

func (p *Parser) parseAddition() (ast.Expr, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		tok := p.advance()
		op := "+"
		if tok.Type == token.MINUS {
			op = "-"
		}
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: baseAt(tok), Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplication() (ast.Expr, error) {
	left, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		tok := p.advance()
		op := map[token.Type]string{token.STAR: "*", token.SLASH: "/", token.PERCENT: "%"}[tok.Type]
		right, err := p.parseExponent()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: baseAt(tok), Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseExponent() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.check(token.POWER) {
		tok := p.advance()
		right, err := p.parseExponent() // right-associative
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Base: baseAt(tok), Op: "**", Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.check(token.MINUS) || p.check(token.PLUS) {
		tok := p.advance()
		op := "+"
		if tok.Type == token.MINUS {
			op = "-"
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Base: baseAt(tok), Op: op, Operand: operand}, nil
	}
	return p.parseWaitYield()
}

// canStartExpr reports whether t could begin an expression; used to decide
// whether a bare `yield` has an operand.
func canStartExpr(t token.Type) bool {
	switch t {
	case token.NEWLINE, token.SEMICOLON, token.RBRACE, token.RPAREN, token.RBRACKET,
		token.COMMA, token.EOF, token.COLON, token.INTERP_END:
		return false
	}
	return true
}

func (p *Parser) parseWaitYield() (ast.Expr, error) {
	if p.check(token.WAIT) {
		tok := p.advance()
		operand, err := p.parseWaitYield()
		if err != nil {
			return nil, err
		}
		return &ast.AwaitExpr{Base: baseAt(tok), Operand: operand}, nil
	}
	if p.check(token.YIELD) {
		tok := p.advance()
		y := &ast.YieldExpr{Base: baseAt(tok)}
		if canStartExpr(p.cur().Type) {
			operand, err := p.parseWaitYield()
			if err != nil {
				return nil, err
			}
			y.Operand = operand
		}
		return y, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case token.LPAREN:
			tok := p.advance()
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Base: baseAt(tok), Callee: expr, Args: args}
		case token.DOT:
			p.advance()
			if p.cur().Type.IsKeyword() {
				// Keywords are valid member names after '.', e.g. a generator's next().
				name := p.advance()
				expr = &ast.MemberExpr{Base: baseAt(name), Object: expr, Name: name.Lexeme}
				continue
			}
			name, err := p.expect(token.IDENT, "member name")
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpr{Base: baseAt(name), Object: expr, Name: name.Lexeme}
		case token.SAFE_NAV:
			p.advance()
			name, err := p.expect(token.IDENT, "member name")
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpr{Base: baseAt(name), Object: expr, Name: name.Lexeme, Safe: true}
		case token.DOUBLE_COLON:
			p.advance()
			name, err := p.expect(token.IDENT, "static member name")
			if err != nil {
				return nil, err
			}
			expr = &ast.StaticAccessExpr{Base: baseAt(name), Object: expr, Name: name.Lexeme}
		case token.LBRACKET:
			tok := p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET, "'!'"); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Base: baseAt(tok), Object: expr, Index: idx}
		case token.SAFE_INDEX:
			tok := p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET, "'!'"); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Base: baseAt(tok), Object: expr, Index: idx, Safe: true}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList() ([]ast.Expr, error) {
	var args []ast.Expr
	p.skipNewlines()
	for !p.check(token.RPAREN) {
		if p.check(token.SPREAD) {
			tok := p.advance()
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, &ast.SpreadExpr{Base: baseAt(tok), Value: val})
		} else {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		v, err := parseNumber(tok.Lexeme)
		if err != nil {
			return nil, p.errAt(tok, "%s", err.Error())
		}
		return &ast.Literal{Base: baseAt(tok), Value: v}, nil
	case token.STRING:
		if p.at(1).Type == token.INTERP_START {
			return p.parseTemplateString()
		}
		p.advance()
		return &ast.Literal{Base: baseAt(tok), Value: tok.Lexeme}, nil
	case token.INTERP_START:
		return p.parseTemplateString()
	case token.YES:
		p.advance()
		return &ast.Literal{Base: baseAt(tok), Value: true}, nil
	case token.NO:
		p.advance()
		return &ast.Literal{Base: baseAt(tok), Value: false}, nil
	case token.NONE:
		p.advance()
		return &ast.Literal{Base: baseAt(tok), Value: nil}, nil
	case token.ME:
		p.advance()
		return &ast.Self{Base: baseAt(tok)}, nil
	case token.PARENT:
		p.advance()
		return &ast.Parent{Base: baseAt(tok)}, nil
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Base: baseAt(tok), Name: tok.Lexeme}, nil
	case token.CHECK:
		p.advance()
		subject, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cases, err := p.parseCheckCases()
		if err != nil {
			return nil, err
		}
		return &ast.CheckExpr{Base: baseAt(tok), Subject: subject, Cases: cases}, nil
	case token.LPAREN:
		return p.parseParenOrLambda()
	case token.LBRACKET:
		return p.parseListLiteral()
	case token.LBRACE:
		return p.parseMapLiteral()
	default:
		return nil, p.errAt(tok, "unexpected token %q", tok.Lexeme)
	}
}

func (p *Parser) tryParseLambdaParams() ([]ast.Param, bool) {
	save := p.pos
	params, err := p.parseParamList()
	if err != nil {
		p.pos = save
		return nil, false
	}
	return params, true
}

func (p *Parser) parseParenOrLambda() (ast.Expr, error) {
	start := p.cur()
	if params, ok := p.tryParseLambdaParams(); ok && p.check(token.ARROW) {
		p.advance()
		body, err := p.parseLambdaBody()
		if err != nil {
			return nil, err
		}
		return &ast.LambdaExpr{Base: baseAt(start), Params: params, Body: body}, nil
	}
	p.advance() // '('
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseLambdaBody() (ast.Node, error) {
	if p.check(token.LBRACE) {
		return p.parseBlock()
	}
	return p.parseExpression()
}

func (p *Parser) parseListLiteral() (ast.Expr, error) {
	start, err := p.expect(token.LBRACKET, "'~'")
	if err != nil {
		return nil, err
	}
	lit := &ast.ListLiteral{Base: baseAt(start)}
	p.skipNewlines()
	for !p.check(token.RBRACKET) {
		if p.check(token.SPREAD) {
			tok := p.advance()
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			lit.Elements = append(lit.Elements, &ast.SpreadExpr{Base: baseAt(tok), Value: val})
		} else {
			el, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			lit.Elements = append(lit.Elements, el)
		}
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACKET, "'!'"); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseMapLiteral() (ast.Expr, error) {
	start, err := p.expect(token.LBRACE, "'@'")
	if err != nil {
		return nil, err
	}
	lit := &ast.MapLiteral{Base: baseAt(start)}
	p.skipNewlines()
	for !p.check(token.RBRACE) {
		if p.check(token.SPREAD) {
			p.advance()
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			lit.Entries = append(lit.Entries, ast.MapEntry{Key: nil, Value: val})
		} else if p.check(token.LBRACKET) {
			p.advance()
			key, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET, "'!'"); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON, "':'"); err != nil {
				return nil, err
			}
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			lit.Entries = append(lit.Entries, ast.MapEntry{Key: key, Value: val})
		} else if p.check(token.STRING) {
			keyTok := p.advance()
			key := &ast.Literal{Base: baseAt(keyTok), Value: keyTok.Lexeme}
			if _, err := p.expect(token.COLON, "':'"); err != nil {
				return nil, err
			}
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			lit.Entries = append(lit.Entries, ast.MapEntry{Key: key, Value: val})
		} else {
			nameTok, err := p.expect(token.IDENT, "map key")
			if err != nil {
				return nil, err
			}
			key := &ast.Literal{Base: baseAt(nameTok), Value: nameTok.Lexeme}
			var val ast.Expr
			if p.match(token.COLON) {
				val, err = p.parseExpression()
				if err != nil {
					return nil, err
				}
			} else {
				val = &ast.Identifier{Base: baseAt(nameTok), Name: nameTok.Lexeme}
			}
			lit.Entries = append(lit.Entries, ast.MapEntry{Key: key, Value: val})
		}
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACE, "'#'"); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseTemplateString() (ast.Expr, error) {
	start := p.cur()
	tmpl := &ast.TemplateStringExpr{Base: baseAt(start)}
	for p.check(token.STRING) || p.check(token.INTERP_START) {
		if p.check(token.STRING) {
			tok := p.advance()
			tmpl.Parts = append(tmpl.Parts, ast.TemplatePart{Literal: tok.Lexeme})
			continue
		}
		p.advance() // INTERP_START
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.INTERP_END, "'#'"); err != nil {
			return nil, err
		}
		tmpl.Parts = append(tmpl.Parts, ast.TemplatePart{Expr: expr})
	}
	return tmpl, nil
}

func parseNumber(lexeme string) (any, error) {
	lower := strings.ToLower(lexeme)
	switch {
	case strings.HasPrefix(lower, "0x"):
		n, err := strconv.ParseInt(lexeme[2:], 16, 64)
		return n, err
	case strings.HasPrefix(lower, "0b"):
		n, err := strconv.ParseInt(lexeme[2:], 2, 64)
		return n, err
	case strings.ContainsAny(lexeme, ".eE"):
		return strconv.ParseFloat(lexeme, 64)
	default:
		return strconv.ParseInt(lexeme, 10, 64)
	}
}

// ---- patterns (check statement/expression) ------------------------------

func (p *Parser) parsePattern() (ast.Pattern, error) {
	tok := p.cur()

	if tok.Type == token.IDENT && tok.Lexeme == "_" {
		p.advance()
		return &ast.WildcardPattern{Base: baseAt(tok)}, nil
	}

	switch tok.Type {
	case token.NUMBER:
		p.advance()
		v, err := parseNumber(tok.Lexeme)
		if err != nil {
			return nil, p.errAt(tok, "%s", err.Error())
		}
		if p.check(token.RANGE) || p.check(token.TO) {
			p.advance()
			endTok := p.cur()
			var endExpr ast.Expr
			if endTok.Type == token.NUMBER {
				p.advance()
				ev, err := parseNumber(endTok.Lexeme)
				if err != nil {
					return nil, p.errAt(endTok, "%s", err.Error())
				}
				endExpr = &ast.Literal{Base: baseAt(endTok), Value: ev}
			} else {
				var err error
				endExpr, err = p.parseAddition()
				if err != nil {
					return nil, err
				}
			}
			return &ast.RangePattern{Base: baseAt(tok), Start: &ast.Literal{Base: baseAt(tok), Value: v}, End: endExpr}, nil
		}
		return &ast.LiteralPattern{Base: baseAt(tok), Value: v}, nil
	case token.STRING:
		p.advance()
		return &ast.LiteralPattern{Base: baseAt(tok), Value: tok.Lexeme}, nil
	case token.YES:
		p.advance()
		return &ast.LiteralPattern{Base: baseAt(tok), Value: true}, nil
	case token.NO:
		p.advance()
		return &ast.LiteralPattern{Base: baseAt(tok), Value: false}, nil
	case token.NONE:
		p.advance()
		return &ast.LiteralPattern{Base: baseAt(tok), Value: nil}, nil
	case token.IDENT:
		p.advance()
		return &ast.BindingPattern{Base: baseAt(tok), Name: tok.Lexeme}, nil
	case token.LBRACKET:
		return p.parseListPattern()
	case token.LBRACE:
		return p.parseMapPattern()
	default:
		expr, err := p.parseAddition()
		if err != nil {
			return nil, err
		}
		return &ast.ExprPattern{Base: baseAt(tok), Value: expr}, nil
	}
}

func (p *Parser) parseListPattern() (ast.Pattern, error) {
	start, err := p.expect(token.LBRACKET, "'~'")
	if err != nil {
		return nil, err
	}
	pat := &ast.ListPattern{Base: baseAt(start)}
	p.skipNewlines()
	for !p.check(token.RBRACKET) {
		if p.check(token.SPREAD) {
			p.advance()
			name, err := p.expect(token.IDENT, "binding name")
			if err != nil {
				return nil, err
			}
			pat.Rest = name.Lexeme
		} else {
			sub, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			pat.Elements = append(pat.Elements, sub)
		}
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACKET, "'!'"); err != nil {
		return nil, err
	}
	return pat, nil
}

func (p *Parser) parseMapPattern() (ast.Pattern, error) {
	start, err := p.expect(token.LBRACE, "'@'")
	if err != nil {
		return nil, err
	}
	pat := &ast.MapPattern{Base: baseAt(start)}
	p.skipNewlines()
	for !p.check(token.RBRACE) {
		key, err := p.expect(token.IDENT, "pattern key")
		if err != nil {
			return nil, err
		}
		var sub ast.Pattern = &ast.BindingPattern{Base: baseAt(key), Name: key.Lexeme}
		if p.match(token.COLON) {
			sub, err = p.parsePattern()
			if err != nil {
				return nil, err
			}
		}
		pat.Entries = append(pat.Entries, ast.MapPatternEntry{Key: key.Lexeme, Pattern: sub})
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACE, "'#'"); err != nil {
		return nil, err
	}
	return pat, nil
}

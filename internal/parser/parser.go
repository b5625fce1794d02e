// Package parser implements a recursive-descent, precedence-climbing
// parser that turns a token stream into a syntax tree.
package parser

import (
	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/diagnostics"
	"github.com/cwbudde/go-rift/internal/token"
)

// ParseError is raised for expected/unexpected tokens.
type ParseError struct {
	*diagnostics.Diagnostic
}

type Parser struct {
	filename string
	tokens   []token.Token
	pos      int
}

func New(tokens []token.Token, filename string) *Parser {
	return &Parser{filename: filename, tokens: tokens, pos: 0}
}

// Parse consumes the whole token stream and returns the program node.
func Parse(tokens []token.Token, filename string) (*ast.Program, error) {
	p := New(tokens, filename)
	return p.ParseProgram()
}

// ---- token plumbing -----------------------------------------------------

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) at(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) check(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) errAt(tok token.Token, format string, args ...any) error {
	return &ParseError{diagnostics.New(diagnostics.Parse, p.filename, diagnostics.Position{Line: tok.Line, Column: tok.Column}, format, args...)}
}

func (p *Parser) expect(t token.Type, what string) (token.Token, error) {
	if !p.check(t) {
		return token.Token{}, p.errAt(p.cur(), "expected %s, got %q", what, p.cur().Lexeme)
	}
	return p.advance(), nil
}

func (p *Parser) pos_() ast.Pos { return ast.Pos{Line: p.cur().Line, Column: p.cur().Column} }
func posOf(t token.Token) ast.Pos { return ast.Pos{Line: t.Line, Column: t.Column} }

func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// skipStatementTerminators consumes newline/semicolon tokens between
// statements.
func (p *Parser) skipStatementTerminators() {
	for p.check(token.NEWLINE) || p.check(token.SEMICOLON) {
		p.advance()
	}
}

// ---- program / blocks ----------------------------------------------------

func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.pos_()
	prog := &ast.Program{}
	prog.Pos = start
	p.skipStatementTerminators()
	for !p.check(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		p.skipStatementTerminators()
	}
	return prog, nil
}

// parseBlock consumes the opening LBRACE ('@') itself, then the statements
// up to the matching RBRACE ('#'), matching every call site uniformly.
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	open, err := p.expect(token.LBRACE, "'@'")
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStmt{}
	block.Pos = posOf(open)
	p.skipStatementTerminators()
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		p.skipStatementTerminators()
	}
	if _, err := p.expect(token.RBRACE, "'#'"); err != nil {
		return nil, err
	}
	return block, nil
}

// ---- statements ----------------------------------------------------------

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur().Type {
	case token.LET, token.MUT, token.CONST:
		return p.parseVarOrDestructureDecl()
	case token.ASYNC, token.CONDUIT:
		return p.parseFuncDecl()
	case token.MAKE:
		return p.parseClassDecl()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.REPEAT:
		return p.parseRepeat()
	case token.CHECK:
		return p.parseCheckStmt()
	case token.TRY:
		return p.parseTry()
	case token.FAIL:
		return p.parseFail()
	case token.GIVE:
		return p.parseGive()
	case token.STOP:
		tok := p.advance()
		return &ast.StopStmt{Base: baseAt(tok)}, nil
	case token.NEXT:
		tok := p.advance()
		return &ast.NextStmt{Base: baseAt(tok)}, nil
	case token.GRAB:
		return p.parseImport()
	case token.SHARE:
		return p.parseExport()
	default:
		start := p.cur()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Base: baseAt(start), Expr: expr}, nil
	}
}

func baseAt(t token.Token) ast.Base { return ast.Base{Pos: ast.Pos{Line: t.Line, Column: t.Column}} }

func (p *Parser) parseVarOrDestructureDecl() (ast.Stmt, error) {
	tok := p.advance()
	kind := ast.DeclLet
	switch tok.Type {
	case token.MUT:
		kind = ast.DeclMut
	case token.CONST:
		kind = ast.DeclConst
	}

	if p.check(token.LBRACKET) {
		return p.parseListDestructure(tok, kind)
	}
	if p.check(token.LBRACE) {
		return p.parseMapDestructure(tok, kind)
	}

	name, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Kind: kind, Name: name.Lexeme}
	decl.Pos = posOf(tok)
	if p.match(token.COLON) {
		t, err := p.expect(token.IDENT, "type name")
		if err != nil {
			return nil, err
		}
		decl.Type = t.Lexeme
	}
	if p.match(token.ASSIGN) {
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	return decl, nil
}

func (p *Parser) parseListDestructure(tok token.Token, kind ast.DeclKind) (ast.Stmt, error) {
	if _, err := p.expect(token.LBRACKET, "'~'"); err != nil {
		return nil, err
	}
	decl := &ast.DestructureDecl{Kind: kind}
	decl.Pos = posOf(tok)
	for !p.check(token.RBRACKET) {
		if p.match(token.SPREAD) {
			name, err := p.expect(token.IDENT, "identifier")
			if err != nil {
				return nil, err
			}
			decl.ListElems = append(decl.ListElems, ast.ListPatternElem{Name: name.Lexeme, Rest: true})
		} else {
			name, err := p.expect(token.IDENT, "identifier")
			if err != nil {
				return nil, err
			}
			decl.ListElems = append(decl.ListElems, ast.ListPatternElem{Name: name.Lexeme})
		}
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACKET, "'!'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	src, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	decl.Source = src
	return decl, nil
}

func (p *Parser) parseMapDestructure(tok token.Token, kind ast.DeclKind) (ast.Stmt, error) {
	if _, err := p.expect(token.LBRACE, "'@'"); err != nil {
		return nil, err
	}
	decl := &ast.DestructureDecl{Kind: kind}
	decl.Pos = posOf(tok)
	for !p.check(token.RBRACE) {
		key, err := p.expect(token.IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		elem := ast.MapPatternElem{Key: key.Lexeme, Alias: key.Lexeme}
		if p.match(token.COLON) {
			alias, err := p.expect(token.IDENT, "identifier")
			if err != nil {
				return nil, err
			}
			elem.Alias = alias.Lexeme
		}
		decl.MapElems = append(decl.MapElems, elem)
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACE, "'#'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	src, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	decl.Source = src
	return decl, nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.check(token.RPAREN) {
		var param ast.Param
		if p.match(token.SPREAD) {
			param.Rest = true
		}
		name, err := p.expect(token.IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		param.Name = name.Lexeme
		if p.match(token.COLON) {
			t, err := p.expect(token.IDENT, "type name")
			if err != nil {
				return nil, err
			}
			param.Type = t.Lexeme
		}
		if p.match(token.ASSIGN) {
			def, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params = append(params, param)
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFuncDecl() (ast.Stmt, error) {
	start := p.cur()
	async := p.match(token.ASYNC)
	if _, err := p.expect(token.CONDUIT, "'conduit'"); err != nil {
		return nil, err
	}
	generator := p.match(token.STAR)
	name, err := p.expect(token.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	retType := ""
	if p.match(token.COLON) {
		t, err := p.expect(token.IDENT, "type name")
		if err != nil {
			return nil, err
		}
		retType = t.Lexeme
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{Base: baseAt(start), Name: name.Lexeme, Params: params, Body: body, Async: async, Generator: generator, RetType: retType}, nil
}

func (p *Parser) parseClassDecl() (ast.Stmt, error) {
	start := p.advance() // 'make'
	name, err := p.expect(token.IDENT, "class name")
	if err != nil {
		return nil, err
	}
	decl := &ast.ClassDecl{Base: baseAt(start), Name: name.Lexeme}
	if p.match(token.EXTEND) {
		parent, err := p.expect(token.IDENT, "parent class name")
		if err != nil {
			return nil, err
		}
		decl.Parent = parent.Lexeme
	}
	if _, err := p.expect(token.LBRACE, "'@'"); err != nil {
		return nil, err
	}
	p.skipStatementTerminators()
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		member, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, member)
		p.skipStatementTerminators()
	}
	if _, err := p.expect(token.RBRACE, "'#'"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseClassMember() (ast.ClassMember, error) {
	static := p.match(token.STATIC)

	if p.check(token.BUILD) {
		p.advance()
		params, err := p.parseParamList()
		if err != nil {
			return ast.ClassMember{}, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return ast.ClassMember{}, err
		}
		return ast.ClassMember{Kind: ast.MemberConstructor, Params: params, Body: body}, nil
	}

	if p.check(token.IDENT) && p.cur().Lexeme == "get" && p.at(1).Type == token.IDENT {
		p.advance()
		name := p.advance()
		params, err := p.parseParamList()
		if err != nil {
			return ast.ClassMember{}, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return ast.ClassMember{}, err
		}
		return ast.ClassMember{Kind: ast.MemberGetter, Name: name.Lexeme, Static: static, Params: params, Body: body}, nil
	}
	if p.check(token.IDENT) && p.cur().Lexeme == "set" && p.at(1).Type == token.IDENT {
		p.advance()
		name := p.advance()
		params, err := p.parseParamList()
		if err != nil {
			return ast.ClassMember{}, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return ast.ClassMember{}, err
		}
		return ast.ClassMember{Kind: ast.MemberSetter, Name: name.Lexeme, Static: static, Params: params, Body: body}, nil
	}

	if p.check(token.CONDUIT) {
		p.advance()
		generator := p.match(token.STAR)
		name, err := p.expect(token.IDENT, "method name")
		if err != nil {
			return ast.ClassMember{}, err
		}
		params, err := p.parseParamList()
		if err != nil {
			return ast.ClassMember{}, err
		}
		if p.match(token.COLON) {
			if _, err := p.expect(token.IDENT, "type name"); err != nil {
				return ast.ClassMember{}, err
			}
		}
		body, err := p.parseBlock()
		if err != nil {
			return ast.ClassMember{}, err
		}
		return ast.ClassMember{Kind: ast.MemberMethod, Name: name.Lexeme, Static: static, Params: params, Body: body, Generator: generator}, nil
	}

	// Property: name [: Type] [= default]
	name, err := p.expect(token.IDENT, "class member")
	if err != nil {
		return ast.ClassMember{}, err
	}
	member := ast.ClassMember{Kind: ast.MemberProperty, Name: name.Lexeme, Static: static, IsProperty: true}
	if p.match(token.COLON) {
		if _, err := p.expect(token.IDENT, "type name"); err != nil {
			return ast.ClassMember{}, err
		}
	}
	if p.match(token.ASSIGN) {
		def, err := p.parseExpression()
		if err != nil {
			return ast.ClassMember{}, err
		}
		member.Default = def
	}
	return member, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	start := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Base: baseAt(start), Cond: cond, Then: then}
	savedPos := p.pos
	p.skipStatementTerminators()
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			elseif, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseif
		} else {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
		}
	} else {
		p.pos = savedPos
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	start := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Base: baseAt(start), Cond: cond, Body: body}, nil
}

func (p *Parser) parseRepeat() (ast.Stmt, error) {
	start := p.advance()
	stmt := &ast.RepeatStmt{Base: baseAt(start)}
	if p.match(token.LPAREN) {
		idx, err := p.expect(token.IDENT, "index name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COMMA, "','"); err != nil {
			return nil, err
		}
		item, err := p.expect(token.IDENT, "item name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		stmt.IndexName = idx.Lexeme
		stmt.ItemName = item.Lexeme
	} else {
		item, err := p.expect(token.IDENT, "item name")
		if err != nil {
			return nil, err
		}
		stmt.ItemName = item.Lexeme
	}
	if _, err := p.expect(token.IN, "'in'"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Iterable = iterable
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

// parseCheckCases parses the shared `@ pattern [when guard] => body ; ... #`
// body used by both the check statement and the check expression.
func (p *Parser) parseCheckCases() ([]ast.CheckCase, error) {
	if _, err := p.expect(token.LBRACE, "'@'"); err != nil {
		return nil, err
	}
	var cases []ast.CheckCase
	p.skipStatementTerminators()
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		var guard ast.Expr
		if p.match(token.WHEN) {
			guard, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.ARROW, "'=>'"); err != nil {
			return nil, err
		}
		var body ast.Node
		if p.check(token.LBRACE) {
			body, err = p.parseBlock()
		} else {
			body, err = p.parseExpression()
		}
		if err != nil {
			return nil, err
		}
		cases = append(cases, ast.CheckCase{Pattern: pat, Guard: guard, Body: body})
		p.skipStatementTerminators()
	}
	if _, err := p.expect(token.RBRACE, "'#'"); err != nil {
		return nil, err
	}
	return cases, nil
}

func (p *Parser) parseCheckStmt() (ast.Stmt, error) {
	start := p.advance()
	subject, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	cases, err := p.parseCheckCases()
	if err != nil {
		return nil, err
	}
	return &ast.CheckStmt{Base: baseAt(start), Subject: subject, Cases: cases}, nil
}

func (p *Parser) parseTry() (ast.Stmt, error) {
	start := p.advance()
	tryBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.TryStmt{Base: baseAt(start), Try: tryBlock}
	savedPos := p.pos
	p.skipStatementTerminators()
	if p.match(token.CATCH) {
		name, err := p.expect(token.IDENT, "catch binding name")
		if err != nil {
			return nil, err
		}
		catchBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.HasCatch = true
		stmt.CatchName = name.Lexeme
		stmt.Catch = catchBlock
		savedPos = p.pos
		p.skipStatementTerminators()
	}
	if p.match(token.FINALLY) {
		finallyBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.HasFinally = true
		stmt.Finally = finallyBlock
	} else {
		p.pos = savedPos
	}
	return stmt, nil
}

func (p *Parser) parseFail() (ast.Stmt, error) {
	start := p.advance()
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.FailStmt{Base: baseAt(start), Value: val}, nil
}

func (p *Parser) parseGive() (ast.Stmt, error) {
	start := p.advance()
	stmt := &ast.GiveStmt{Base: baseAt(start)}
	if !p.check(token.NEWLINE) && !p.check(token.SEMICOLON) && !p.check(token.RBRACE) && !p.check(token.EOF) {
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = val
	}
	return stmt, nil
}

func (p *Parser) parseImport() (ast.Stmt, error) {
	start := p.advance()
	stmt := &ast.ImportStmt{Base: baseAt(start)}

	if p.match(token.STAR) {
		stmt.Wildcard = true
		if _, err := p.expect(token.IDENT, "'from'"); err != nil { // 'from' lexes as identifier
			return nil, err
		}
		path, err := p.parseDottedPath()
		if err != nil {
			return nil, err
		}
		stmt.Path = path
		return stmt, nil
	}

	// Disambiguate `grab path` / `grab path as alias` from
	// `grab item1, item2 from path` by looking ahead for a comma or the
	// contextual 'from' keyword before committing to a dotted path.
	savedPos := p.pos
	first, err := p.expect(token.IDENT, "module path or imported name")
	if err != nil {
		return nil, err
	}
	if p.check(token.COMMA) || (p.check(token.IDENT) && p.cur().Lexeme == "from") {
		items := []string{first.Lexeme}
		for p.match(token.COMMA) {
			item, err := p.expect(token.IDENT, "imported name")
			if err != nil {
				return nil, err
			}
			items = append(items, item.Lexeme)
		}
		if _, err := p.expect(token.IDENT, "'from'"); err != nil {
			return nil, err
		}
		path, err := p.parseDottedPath()
		if err != nil {
			return nil, err
		}
		stmt.Items = items
		stmt.Path = path
		return stmt, nil
	}

	p.pos = savedPos
	path, err := p.parseDottedPath()
	if err != nil {
		return nil, err
	}
	stmt.Path = path
	if p.match(token.AS) {
		alias, err := p.expect(token.IDENT, "alias")
		if err != nil {
			return nil, err
		}
		stmt.Alias = alias.Lexeme
	}
	return stmt, nil
}

func (p *Parser) parseDottedPath() (string, error) {
	first, err := p.expect(token.IDENT, "module path")
	if err != nil {
		return "", err
	}
	path := first.Lexeme
	for p.match(token.DOT) {
		seg, err := p.expect(token.IDENT, "module path segment")
		if err != nil {
			return "", err
		}
		path += "." + seg.Lexeme
	}
	return path, nil
}

func (p *Parser) parseExport() (ast.Stmt, error) {
	start := p.advance()
	stmt := &ast.ExportStmt{Base: baseAt(start)}
	switch p.cur().Type {
	case token.LET, token.MUT, token.CONST, token.CONDUIT, token.ASYNC, token.MAKE:
		decl, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Decl = decl
	default:
		name, err := p.expect(token.IDENT, "exported name")
		if err != nil {
			return nil, err
		}
		stmt.Names = append(stmt.Names, name.Lexeme)
		for p.match(token.COMMA) {
			n, err := p.expect(token.IDENT, "exported name")
			if err != nil {
				return nil, err
			}
			stmt.Names = append(stmt.Names, n.Lexeme)
		}
	}
	return stmt, nil
}

package parser

import (
	"ferric/internal/ast"
	"ferric/internal/diag"
	"ferric/internal/token"
)

func (p *Parser) parseBlock() *ast.Block {
	start := p.cur().Span
	block := &ast.Block{}
	if _, ok := p.expect(token.LBrace, "'{'"); !ok {
		block.SpanV = start
		return block
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if stmt := p.parseStmt(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.pos == before {
			p.bump()
		}
	}
	p.expect(token.RBrace, "'}' closing block")
	block.SpanV = p.spanFrom(start)
	return block
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.KwLet, token.KwVar, token.KwConst:
		return p.parseBind()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile("")
	case token.KwFor:
		return p.parseFor("")
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwBreak:
		return p.parseBreak()
	case token.KwContinue:
		return p.parseContinue()
	case token.KwFn:
		return p.parseNestedFn()
	case token.LBrace:
		return p.parseBlock()
	case token.KwGoto:
		p.recordGoto()
		return nil
	case token.KwUnion:
		p.recordUnion()
		return nil
	case token.Ident:
		// `label: while ...` / `label: for ...`
		if p.peek().Kind == token.Colon {
			switch p.peekAt(2).Kind {
			case token.KwWhile:
				label := p.bump().Text
				p.bump() // ':'
				return p.parseWhile(label)
			case token.KwFor:
				label := p.bump().Text
				p.bump() // ':'
				return p.parseFor(label)
			}
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBind() ast.Stmt {
	start := p.cur().Span
	var kind ast.BindKind
	mutable := false
	switch p.bump().Kind {
	case token.KwLet:
		kind = ast.BindLet
		mutable = p.accept(token.KwMut)
	case token.KwVar:
		kind = ast.BindVar
		mutable = true // var is unconditionally mutable
	case token.KwConst:
		kind = ast.BindConst
	}

	name, ok := p.expectIdent("binding name")
	if !ok {
		p.syncTo(token.Semicolon)
		p.accept(token.Semicolon)
		return nil
	}

	stmt := &ast.BindStmt{Kind: kind, Name: name.Text, Mutable: mutable}
	if p.accept(token.Colon) {
		stmt.DeclType = p.parseType()
	}
	if p.accept(token.Assign) {
		stmt.Init = p.parseExpr()
	}
	p.expectSemicolon()
	stmt.SpanV = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.bump().Span // 'return'
	stmt := &ast.ReturnStmt{}
	if !p.at(token.Semicolon) && !p.at(token.RBrace) {
		stmt.X = p.parseExpr()
	}
	p.expectSemicolon()
	stmt.SpanV = p.spanFrom(start)
	return stmt
}

// parseHeaderExpr parses a parenthesized control-flow header expression
// with struct literals suppressed.
func (p *Parser) parseHeaderExpr() ast.Expr {
	p.expect(token.LParen, "'('")
	saved := p.noStructLit
	p.noStructLit = true
	cond := p.parseExpr()
	p.noStructLit = saved
	p.expect(token.RParen, "')'")
	return cond
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.bump().Span // 'if'
	cond := p.parseHeaderExpr()
	then := p.parseBlock()
	stmt := &ast.IfStmt{Cond: cond, Then: then}
	if p.accept(token.KwElse) {
		if p.at(token.KwIf) {
			stmt.Else = p.parseIf()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	stmt.SpanV = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseWhile(label string) ast.Stmt {
	start := p.bump().Span // 'while'
	cond := p.parseHeaderExpr()
	body := p.parseBlock()
	return &ast.WhileStmt{Label: label, Cond: cond, Body: body, SpanV: p.spanFrom(start)}
}

// parseFor handles both headers:
//
//	for (var i: int = 0; i < 10; i = i + 1) { }
//	for (x in items) { }
func (p *Parser) parseFor(label string) ast.Stmt {
	start := p.bump().Span // 'for'
	if _, ok := p.expect(token.LParen, "'(' after for"); !ok {
		p.syncTo(token.LBrace, token.Semicolon)
		p.skipBalancedBraces()
		return nil
	}

	saved := p.noStructLit
	p.noStructLit = true

	if p.at(token.Ident) && p.peek().Kind == token.KwIn {
		name := p.bump().Text
		p.bump() // 'in'
		iter := p.parseExpr()
		p.expect(token.RParen, "')' after for-in header")
		p.noStructLit = saved
		body := p.parseBlock()
		return &ast.ForInStmt{Label: label, Var: name, Iter: iter, Body: body, SpanV: p.spanFrom(start)}
	}

	stmt := &ast.ForStmt{Label: label}
	if !p.accept(token.Semicolon) {
		switch p.cur().Kind {
		case token.KwLet, token.KwVar, token.KwConst:
			stmt.Init = p.parseBind() // consumes the ';'
		default:
			init := p.parseExpr()
			stmt.Init = &ast.ExprStmt{X: init, SpanV: init.Span()}
			p.expectSemicolon()
		}
	}
	if !p.at(token.Semicolon) {
		stmt.Cond = p.parseExpr()
	}
	if !p.accept(token.Semicolon) {
		p.errf(diag.SynBadForHeader, p.cur().Span, "expected ';' after for condition")
	}
	if !p.at(token.RParen) {
		stmt.Post = p.parseExpr()
	}
	p.expect(token.RParen, "')' after for header")
	p.noStructLit = saved
	stmt.Body = p.parseBlock()
	stmt.SpanV = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseSwitch() ast.Stmt {
	start := p.bump().Span // 'switch'
	scrutinee := p.parseHeaderExpr()
	stmt := &ast.SwitchStmt{Scrutinee: scrutinee}
	if _, ok := p.expect(token.LBrace, "'{' after switch header"); !ok {
		return stmt
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch {
		case p.accept(token.KwCase):
			caseStart := p.toks[p.pos-1].Span
			var values []ast.Expr
			values = append(values, p.parseExpr())
			for p.accept(token.Comma) {
				values = append(values, p.parseExpr())
			}
			p.expect(token.Colon, "':' after case values")
			body := p.parseCaseBody()
			stmt.Cases = append(stmt.Cases, ast.SwitchCase{
				Values: values, Body: body, SpanV: caseStart.Cover(body.SpanV),
			})
		case p.accept(token.KwDefault):
			p.expect(token.Colon, "':' after default")
			stmt.Default = p.parseCaseBody()
		default:
			p.errf(diag.SynUnexpectedToken, p.cur().Span,
				"expected 'case' or 'default' in switch body")
			p.syncTo(token.KwCase, token.KwDefault, token.RBrace)
		}
	}
	p.expect(token.RBrace, "'}' closing switch body")
	stmt.SpanV = p.spanFrom(start)
	return stmt
}

// parseCaseBody collects statements until the next case, default, or '}'.
func (p *Parser) parseCaseBody() *ast.Block {
	start := p.cur().Span
	block := &ast.Block{}
	for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if stmt := p.parseStmt(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.pos == before {
			p.bump()
		}
	}
	block.SpanV = p.spanFrom(start)
	return block
}

func (p *Parser) parseBreak() ast.Stmt {
	start := p.bump().Span // 'break'
	stmt := &ast.BreakStmt{}
	if p.at(token.Ident) {
		stmt.Label = p.bump().Text
	}
	p.expectSemicolon()
	stmt.SpanV = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseContinue() ast.Stmt {
	start := p.bump().Span // 'continue'
	stmt := &ast.ContinueStmt{}
	if p.at(token.Ident) {
		stmt.Label = p.bump().Text
	}
	p.expectSemicolon()
	stmt.SpanV = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseNestedFn() ast.Stmt {
	start := p.cur().Span
	// Number in encounter order: the ID is reserved before the body is
	// parsed, so an enclosing function outranks the functions nested in it.
	id := p.nextFnID
	p.nextFnID++
	fn := p.parseFn(false)
	if fn == nil {
		return nil
	}
	return &ast.NestedFnStmt{ID: id, Fn: fn, SpanV: p.spanFrom(start)}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.cur().Span
	x := p.parseExpr()
	if x == nil {
		p.syncTo(token.Semicolon, token.RBrace)
		p.accept(token.Semicolon)
		return nil
	}
	p.expectSemicolon()
	return &ast.ExprStmt{X: x, SpanV: p.spanFrom(start)}
}

// recordGoto notes a goto statement; structured control flow replaces it.
func (p *Parser) recordGoto() {
	start := p.bump().Span // 'goto'
	label := ""
	if p.at(token.Ident) {
		label = p.bump().Text
	}
	p.out.Incompats = append(p.out.Incompats, ast.Incompat{
		Kind: ast.IncompatGoto, Name: label, Span: p.spanFrom(start),
	})
	p.accept(token.Semicolon)
}

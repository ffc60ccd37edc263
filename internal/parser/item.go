package parser

import (
	"strings"

	"ferric/internal/ast"
	"ferric/internal/diag"
	"ferric/internal/source"
	"ferric/internal/token"
)

func (p *Parser) parseItem() ast.Item {
	switch p.cur().Kind {
	case token.Hash:
		return p.parseDirective()
	case token.KwFn:
		fn := p.parseFn(false)
		if fn == nil {
			return nil
		}
		return fn
	case token.KwStruct:
		return p.parseStruct()
	case token.KwEnum:
		return p.parseEnum()
	case token.KwTypedef:
		return p.parseTypedef()
	case token.KwNamespace:
		return p.parseNamespace()
	case token.KwImport:
		return p.parseImport()
	case token.KwExtern:
		return p.parseExtern()
	case token.KwConst:
		return p.parseConstItem()
	case token.KwStatic:
		return p.parseStaticItem()
	case token.KwUnion:
		p.recordUnion()
		return nil
	default:
		p.errf(diag.SynUnexpectedToken, p.cur().Span,
			"expected item, found %q", p.describe(p.cur()))
		p.syncTo(token.KwFn, token.KwStruct, token.KwEnum, token.KwTypedef,
			token.KwNamespace, token.KwImport, token.KwExtern, token.KwConst,
			token.KwStatic, token.Hash)
		return nil
	}
}

// parseDirective handles `#define` and `#include`. `#include` is recorded as
// an incompatibility; the analyzer rejects it with a module-import hint.
func (p *Parser) parseDirective() ast.Item {
	hash := p.bump() // '#'
	name, ok := p.expectIdent("directive name after '#'")
	if !ok {
		return nil
	}
	switch name.Text {
	case "define":
		return p.parseMacroDef(hash.Span)
	case "include":
		span := hash.Span
		path := ""
		switch {
		case p.at(token.StringLit):
			path = p.cur().Text
			span = span.Cover(p.cur().Span)
			p.bump()
		case p.at(token.Lt):
			// <path> form: swallow tokens up to '>'
			p.bump()
			var sb strings.Builder
			for !p.at(token.Gt) && !p.at(token.EOF) {
				sb.WriteString(p.bump().Text)
			}
			span = span.Cover(p.cur().Span)
			p.accept(token.Gt)
			path = sb.String()
		}
		p.out.Incompats = append(p.out.Incompats, ast.Incompat{
			Kind: ast.IncompatInclude, Name: path, Span: span,
		})
		return nil
	default:
		p.errf(diag.SynBadDirective, name.Span, "unknown directive '#%s'", name.Text)
		return nil
	}
}

// parseMacroDef parses `#define NAME(a, b) { tokens }`. The body is kept as
// a raw token stream between the braces.
func (p *Parser) parseMacroDef(start source.Span) ast.Item {
	name, ok := p.expectIdent("macro name after '#define'")
	if !ok {
		return nil
	}

	var params []string
	if p.accept(token.LParen) {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			param, ok := p.expectIdent("macro parameter")
			if !ok {
				p.syncTo(token.RParen, token.Comma)
			} else {
				params = append(params, param.Text)
			}
			if !p.accept(token.Comma) {
				break
			}
		}
		if !p.accept(token.RParen) {
			p.errf(diag.SynBadMacroParams, p.cur().Span, "expected ')' after macro parameters")
		}
	}

	var body []token.Token
	if p.at(token.LBrace) {
		p.bump()
		depth := 1
		for !p.at(token.EOF) {
			switch p.cur().Kind {
			case token.LBrace:
				depth++
			case token.RBrace:
				depth--
				if depth == 0 {
					p.bump()
					p.macros[name.Text] = true
					return &ast.MacroItem{
						Name:   name.Text,
						Params: params,
						Body:   body,
						SpanV:  p.spanFrom(start),
					}
				}
			}
			body = append(body, p.bump())
		}
		p.errf(diag.SynUnclosedDelimiter, p.cur().Span, "macro body is never closed")
		return nil
	}

	p.errf(diag.SynUnexpectedToken, p.cur().Span, "expected '{' to open macro body")
	return nil
}

// parseFn parses a function header and body. Extern declarations pass
// allowBodyless and end on ';'. The `self` receiver marks struct methods.
func (p *Parser) parseFn(allowBodyless bool) *ast.FnItem {
	start := p.bump().Span // 'fn'
	name, ok := p.expectIdent("function name")
	if !ok {
		p.syncTo(token.LBrace, token.Semicolon)
		p.skipBalancedBraces()
		p.accept(token.Semicolon)
		return nil
	}

	fn := &ast.FnItem{Name: name.Text}

	if _, ok := p.expect(token.LParen, "'(' after function name"); ok {
		if p.at(token.KwSelf) {
			p.bump()
			fn.SelfRecv = true
			if !p.at(token.RParen) {
				p.expect(token.Comma, "',' after self")
			}
		}
		for !p.at(token.RParen) && !p.at(token.EOF) {
			param := p.parseParam()
			if param != nil {
				fn.Params = append(fn.Params, *param)
			}
			if !p.accept(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "')' after parameters")
	}

	if p.accept(token.Arrow) {
		fn.Return = p.parseType()
	}

	switch {
	case p.at(token.LBrace):
		fn.Body = p.parseBlock()
	case allowBodyless && p.accept(token.Semicolon):
		// extern declaration
	default:
		p.expect(token.LBrace, "function body")
		p.syncTo(token.LBrace, token.Semicolon)
		p.skipBalancedBraces()
		p.accept(token.Semicolon)
	}

	fn.SpanV = p.spanFrom(start)
	return fn
}

func (p *Parser) parseParam() *ast.Param {
	start := p.cur().Span
	mutable := p.accept(token.KwMut)
	name, ok := p.expectIdent("parameter name")
	if !ok {
		p.syncTo(token.Comma, token.RParen)
		return nil
	}
	var typ ast.Type = &ast.UnknownType{SpanV: name.Span}
	if p.accept(token.Colon) {
		typ = p.parseType()
	}
	return &ast.Param{Name: name.Text, Type: typ, Mutable: mutable, SpanV: p.spanFrom(start)}
}

// parseStruct parses fields and inline methods:
// struct S { x: int, y: int, fn area(self) -> int { ... } }
func (p *Parser) parseStruct() ast.Item {
	start := p.bump().Span // 'struct'
	name, ok := p.expectIdent("struct name")
	if !ok {
		p.skipBalancedBraces()
		return nil
	}
	item := &ast.StructItem{Name: name.Text}
	if _, ok := p.expect(token.LBrace, "'{' after struct name"); !ok {
		return nil
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.KwFn) {
			if method := p.parseFn(false); method != nil {
				item.Methods = append(item.Methods, method)
			}
			p.accept(token.Comma)
			continue
		}
		fieldStart := p.cur().Span
		fieldName, ok := p.expectIdent("field name")
		if !ok {
			p.syncTo(token.Comma, token.RBrace, token.KwFn)
			p.accept(token.Comma)
			continue
		}
		p.expect(token.Colon, "':' after field name")
		fieldType := p.parseType()
		item.Fields = append(item.Fields, ast.Field{
			Name: fieldName.Text, Type: fieldType, SpanV: p.spanFrom(fieldStart),
		})
		if !p.accept(token.Comma) && !p.at(token.RBrace) && !p.at(token.KwFn) {
			p.expect(token.Comma, "',' between struct fields")
		}
	}
	p.expect(token.RBrace, "'}' closing struct body")
	item.SpanV = p.spanFrom(start)
	return item
}

func (p *Parser) parseEnum() ast.Item {
	start := p.bump().Span // 'enum'
	name, ok := p.expectIdent("enum name")
	if !ok {
		p.skipBalancedBraces()
		return nil
	}
	item := &ast.EnumItem{Name: name.Text}
	if _, ok := p.expect(token.LBrace, "'{' after enum name"); !ok {
		return nil
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		variantStart := p.cur().Span
		variant, ok := p.expectIdent("enum variant")
		if !ok {
			p.syncTo(token.Comma, token.RBrace)
			p.accept(token.Comma)
			continue
		}
		v := ast.EnumVariant{Name: variant.Text}
		if p.accept(token.Assign) {
			neg := p.accept(token.Minus)
			if lit, ok := p.expect(token.IntLit, "integer discriminant"); ok {
				value := parseIntText(lit.Text)
				if neg {
					value = -value
				}
				v.Value = value
				v.HasValue = true
			}
		}
		v.SpanV = p.spanFrom(variantStart)
		item.Variants = append(item.Variants, v)
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "'}' closing enum body")
	item.SpanV = p.spanFrom(start)
	return item
}

func (p *Parser) parseTypedef() ast.Item {
	start := p.bump().Span // 'typedef'
	name, ok := p.expectIdent("alias name")
	if !ok {
		p.syncTo(token.Semicolon)
		p.accept(token.Semicolon)
		return nil
	}
	p.expect(token.Assign, "'=' after alias name")
	target := p.parseType()
	p.expectSemicolon()
	return &ast.TypedefItem{Name: name.Text, Target: target, SpanV: p.spanFrom(start)}
}

func (p *Parser) parseNamespace() ast.Item {
	start := p.bump().Span // 'namespace'
	name, ok := p.expectIdent("namespace name")
	if !ok {
		p.skipBalancedBraces()
		return nil
	}
	item := &ast.NamespaceItem{Name: name.Text}
	if _, ok := p.expect(token.LBrace, "'{' after namespace name"); !ok {
		return nil
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if inner := p.parseItem(); inner != nil {
			item.Items = append(item.Items, inner)
		}
		if p.pos == before {
			p.bump()
		}
	}
	p.expect(token.RBrace, "'}' closing namespace body")
	item.SpanV = p.spanFrom(start)
	return item
}

func (p *Parser) parseImport() ast.Item {
	start := p.bump().Span // 'import'
	item := &ast.ImportItem{}
	seg, ok := p.expectIdent("import path")
	if !ok {
		p.syncTo(token.Semicolon)
		p.accept(token.Semicolon)
		return nil
	}
	item.Segments = append(item.Segments, seg.Text)
	for p.accept(token.ColonColon) {
		seg, ok := p.expectIdent("import path segment")
		if !ok {
			break
		}
		item.Segments = append(item.Segments, seg.Text)
	}
	p.expectSemicolon()
	item.SpanV = p.spanFrom(start)
	return item
}

func (p *Parser) parseExtern() ast.Item {
	start := p.bump().Span // 'extern'
	item := &ast.ExternItem{}
	if _, ok := p.expect(token.LBrace, "'{' after extern"); !ok {
		return nil
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.at(token.KwFn) {
			p.errf(diag.SynUnexpectedToken, p.cur().Span,
				"only fn declarations are allowed in extern blocks")
			p.syncTo(token.KwFn, token.RBrace)
			continue
		}
		if decl := p.parseFn(true); decl != nil {
			item.Decls = append(item.Decls, decl)
		}
	}
	p.expect(token.RBrace, "'}' closing extern block")
	item.SpanV = p.spanFrom(start)
	return item
}

func (p *Parser) parseConstItem() ast.Item {
	start := p.bump().Span // 'const'
	name, ok := p.expectIdent("constant name")
	if !ok {
		p.syncTo(token.Semicolon)
		p.accept(token.Semicolon)
		return nil
	}
	var typ ast.Type = &ast.UnknownType{SpanV: name.Span}
	if p.accept(token.Colon) {
		typ = p.parseType()
	}
	p.expect(token.Assign, "'=' in constant definition")
	value := p.parseExpr()
	p.expectSemicolon()
	return &ast.ConstItem{Name: name.Text, Type: typ, Value: value, SpanV: p.spanFrom(start)}
}

func (p *Parser) parseStaticItem() ast.Item {
	start := p.bump().Span // 'static'
	mutable := p.accept(token.KwMut)
	name, ok := p.expectIdent("static name")
	if !ok {
		p.syncTo(token.Semicolon)
		p.accept(token.Semicolon)
		return nil
	}
	var typ ast.Type = &ast.UnknownType{SpanV: name.Span}
	if p.accept(token.Colon) {
		typ = p.parseType()
	}
	p.expect(token.Assign, "'=' in static definition")
	value := p.parseExpr()
	p.expectSemicolon()
	return &ast.StaticItem{
		Name: name.Text, Type: typ, Value: value, Mutable: mutable,
		SpanV: p.spanFrom(start),
	}
}

// recordUnion notes a C union declaration and skips its body.
func (p *Parser) recordUnion() {
	start := p.bump().Span // 'union'
	name := ""
	if p.at(token.Ident) {
		name = p.bump().Text
	}
	p.out.Incompats = append(p.out.Incompats, ast.Incompat{
		Kind: ast.IncompatUnion, Name: name, Span: p.spanFrom(start),
	})
	p.skipBalancedBraces()
	p.accept(token.Semicolon)
}

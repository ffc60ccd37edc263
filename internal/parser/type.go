package parser

import (
	"ferric/internal/ast"
	"ferric/internal/diag"
	"ferric/internal/token"
)

// parseType parses a type expression, including the `?` fallible suffix.
// It returns nil when the current token cannot start a type.
func (p *Parser) parseType() ast.Type {
	t := p.parseTypeCore()
	if t == nil {
		return nil
	}
	for p.at(token.Question) {
		q := p.bump()
		t = &ast.FallibleType{Inner: t, SpanV: t.Span().Cover(q.Span)}
	}
	return t
}

func (p *Parser) parseTypeCore() ast.Type {
	tok := p.cur()
	switch tok.Kind {
	case token.Star:
		p.bump()
		mut := p.accept(token.KwMut)
		elem := p.parseTypeCore()
		if elem == nil {
			return nil
		}
		return &ast.PointerType{Mut: mut, Elem: elem, SpanV: tok.Span.Cover(elem.Span())}
	case token.Amp:
		p.bump()
		mut := p.accept(token.KwMut)
		elem := p.parseTypeCore()
		if elem == nil {
			return nil
		}
		return &ast.RefType{Mut: mut, Elem: elem, SpanV: tok.Span.Cover(elem.Span())}
	case token.LBracket:
		return p.parseArrayOrSliceType()
	case token.LParen:
		return p.parseTupleType()
	case token.KwFn:
		return p.parseFnType()
	case token.Underscore:
		p.bump()
		return &ast.UnknownType{SpanV: tok.Span}
	case token.Ident:
		p.bump()
		if kind, ok := ast.LookupPrim(tok.Text); ok {
			return &ast.PrimType{Kind: kind, SpanV: tok.Span}
		}
		if p.at(token.Lt) {
			return p.parseGenericType(tok)
		}
		return &ast.NamedType{Name: tok.Text, SpanV: tok.Span}
	default:
		p.errf(diag.SynBadType, tok.Span, "expected type, found %q", p.describe(tok))
		return nil
	}
}

// parseArrayOrSliceType parses [T], [T; N], and the unsized form [T;].
func (p *Parser) parseArrayOrSliceType() ast.Type {
	start := p.bump().Span // '['
	elem := p.parseType()
	if elem == nil {
		p.syncTo(token.RBracket, token.Semicolon)
		p.accept(token.RBracket)
		return nil
	}
	if p.accept(token.Semicolon) {
		arr := &ast.ArrayType{Elem: elem}
		if p.at(token.IntLit) {
			lit := p.bump()
			arr.Size = parseIntText(lit.Text)
			arr.Sized = true
		}
		p.expect(token.RBracket, "']' closing array type")
		arr.SpanV = p.spanFrom(start)
		return arr
	}
	p.expect(token.RBracket, "']' closing slice type")
	return &ast.SliceType{Elem: elem, SpanV: p.spanFrom(start)}
}

func (p *Parser) parseTupleType() ast.Type {
	start := p.bump().Span // '('
	tup := &ast.TupleType{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		elem := p.parseType()
		if elem == nil {
			p.syncTo(token.Comma, token.RParen)
		} else {
			tup.Elems = append(tup.Elems, elem)
		}
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "')' closing tuple type")
	tup.SpanV = p.spanFrom(start)
	return tup
}

func (p *Parser) parseFnType() ast.Type {
	start := p.bump().Span // 'fn'
	ft := &ast.FnType{}
	if _, ok := p.expect(token.LParen, "'(' in function type"); ok {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			param := p.parseType()
			if param == nil {
				p.syncTo(token.Comma, token.RParen)
			} else {
				ft.Params = append(ft.Params, param)
			}
			if !p.accept(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "')' in function type")
	}
	if p.accept(token.Arrow) {
		ft.Return = p.parseType()
	}
	ft.SpanV = p.spanFrom(start)
	return ft
}

func (p *Parser) parseGenericType(name token.Token) ast.Type {
	p.bump() // '<'
	gt := &ast.GenericType{Name: name.Text}
	for {
		arg := p.parseType()
		if arg == nil {
			break
		}
		gt.Args = append(gt.Args, arg)
		if !p.accept(token.Comma) {
			break
		}
	}
	if !p.acceptGt() {
		p.errf(diag.SynBadType, p.cur().Span, "expected '>' closing type arguments")
	}
	gt.SpanV = p.spanFrom(name.Span)
	return gt
}

// acceptGt consumes one '>', splitting a '>>' token in half so nested
// generic arguments like Vec<Box<int>> close properly.
func (p *Parser) acceptGt() bool {
	switch p.cur().Kind {
	case token.Gt:
		p.bump()
		return true
	case token.Shr:
		orig := p.toks[p.pos]
		half := orig
		half.Kind = token.Gt
		half.Text = ">"
		half.Span.Start++
		p.toks[p.pos] = half
		p.gtSplits = append(p.gtSplits, gtSplit{pos: p.pos, orig: orig})
		return true
	default:
		return false
	}
}

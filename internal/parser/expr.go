package parser

import (
	"strconv"
	"strings"

	"ferric/internal/ast"
	"ferric/internal/diag"
	"ferric/internal/token"
)

// binPrec orders the infix operators, tighter binds higher.
var binPrec = map[token.Kind]int{
	token.OrOr:   1,
	token.AndAnd: 2,
	token.Pipe:   3,
	token.Caret:  4,
	token.Amp:    5,
	token.EqEq:   6,
	token.BangEq: 6,
	token.Lt:     7,
	token.LtEq:   7,
	token.Gt:     7,
	token.GtEq:   7,
	token.Shl:    8,
	token.Shr:    8,
	token.Plus:   9,
	token.Minus:  9,
	token.Star:   10,
	token.Slash:  10,
	token.Percent: 10,
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

// parseAssign handles plain and compound assignment, right-associative.
func (p *Parser) parseAssign() ast.Expr {
	left := p.parseTernary()
	if left == nil {
		return nil
	}
	if p.cur().Kind.IsAssignOp() {
		op := p.bump().Kind
		right := p.parseAssign()
		if right == nil {
			return left
		}
		return &ast.BinaryExpr{
			Op: op, Left: left, Right: right,
			SpanV: left.Span().Cover(right.Span()),
		}
	}
	return left
}

func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseRange()
	if cond == nil || !p.at(token.Question) {
		return cond
	}
	p.bump() // '?'
	then := p.parseExpr()
	p.expect(token.Colon, "':' in conditional expression")
	els := p.parseTernary()
	span := cond.Span()
	if els != nil {
		span = span.Cover(els.Span())
	}
	return &ast.TernaryExpr{Cond: cond, Then: then, Else: els, SpanV: span}
}

func (p *Parser) parseRange() ast.Expr {
	low := p.parseBinary(1)
	if low == nil || !p.at(token.DotDot) {
		return low
	}
	p.bump() // '..'
	high := p.parseBinary(1)
	span := low.Span()
	if high != nil {
		span = span.Cover(high.Span())
	}
	return &ast.RangeExpr{Low: low, High: high, SpanV: span}
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		prec, ok := binPrec[p.cur().Kind]
		if !ok || prec < minPrec {
			return left
		}
		op := p.bump().Kind
		right := p.parseBinary(prec + 1)
		if right == nil {
			return left
		}
		left = &ast.BinaryExpr{
			Op: op, Left: left, Right: right,
			SpanV: left.Span().Cover(right.Span()),
		}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.Bang, token.Minus, token.Tilde, token.Amp, token.Star:
		op := p.bump()
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		return &ast.UnaryExpr{Op: op.Kind, X: x, SpanV: op.Span.Cover(x.Span())}
	case token.PlusPlus, token.MinusMinus:
		op := p.bump()
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		return &ast.UnaryExpr{Op: op.Kind, X: x, SpanV: op.Span.Cover(x.Span())}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	if x == nil {
		return nil
	}
	for {
		switch p.cur().Kind {
		case token.LParen:
			args := p.parseArgs()
			x = &ast.CallExpr{Callee: x, Args: args, SpanV: p.spanFrom(x.Span())}
		case token.Dot:
			p.bump()
			name, ok := p.expectIdent("field or method name after '.'")
			if !ok {
				return x
			}
			if p.at(token.LParen) {
				args := p.parseArgs()
				x = &ast.MethodCallExpr{Recv: x, Name: name.Text, Args: args, SpanV: p.spanFrom(x.Span())}
			} else {
				x = &ast.FieldExpr{X: x, Name: name.Text, SpanV: p.spanFrom(x.Span())}
			}
		case token.LBracket:
			p.bump()
			saved := p.noStructLit
			p.noStructLit = false
			idx := p.parseExpr()
			p.noStructLit = saved
			p.expect(token.RBracket, "']' closing index")
			x = &ast.IndexExpr{X: x, Index: idx, SpanV: p.spanFrom(x.Span())}
		case token.KwAs:
			p.bump()
			to := p.parseType()
			x = &ast.CastExpr{X: x, To: to, SpanV: p.spanFrom(x.Span())}
		case token.Bang:
			// postfix error propagation; `!=` lexes as one token, so a
			// lone Bang after an expression is unambiguous
			bang := p.bump()
			x = &ast.TryExpr{X: x, SpanV: x.Span().Cover(bang.Span)}
		case token.PlusPlus, token.MinusMinus:
			op := p.bump()
			x = &ast.UnaryExpr{Op: op.Kind, X: x, Postfix: true, SpanV: x.Span().Cover(op.Span)}
		default:
			return x
		}
	}
}

// parseArgs consumes a parenthesized argument list.
func (p *Parser) parseArgs() []ast.Expr {
	p.expect(token.LParen, "'('")
	saved := p.noStructLit
	p.noStructLit = false
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg := p.parseExpr()
		if arg == nil {
			p.syncTo(token.Comma, token.RParen)
		} else {
			args = append(args, arg)
		}
		if !p.accept(token.Comma) {
			break
		}
	}
	p.noStructLit = saved
	p.expect(token.RParen, "')' closing arguments")
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.IntLit:
		p.bump()
		return &ast.IntLit{Value: parseIntText(tok.Text), Text: tok.Text, SpanV: tok.Span}
	case token.FloatLit:
		p.bump()
		value, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
		if err != nil {
			p.errf(diag.LexBadNumber, tok.Span, "malformed float literal %q", tok.Text)
		}
		return &ast.FloatLit{Value: value, Text: tok.Text, SpanV: tok.Span}
	case token.StringLit:
		p.bump()
		return &ast.StringLit{Value: tok.Text, SpanV: tok.Span}
	case token.CharLit:
		p.bump()
		var value rune
		for _, r := range tok.Text {
			value = r
			break
		}
		return &ast.CharLit{Value: value, SpanV: tok.Span}
	case token.KwTrue, token.KwFalse:
		p.bump()
		return &ast.BoolLit{Value: tok.Kind == token.KwTrue, SpanV: tok.Span}
	case token.KwNull:
		p.bump()
		return &ast.NullLit{SpanV: tok.Span}
	case token.KwSelf:
		p.bump()
		return &ast.IdentExpr{Name: "self", SpanV: tok.Span}
	case token.KwSizeof:
		return p.parseSizeof()
	case token.KwRaw:
		return p.parseRaw()
	case token.LParen:
		return p.parseParenOrTuple()
	case token.LBracket:
		return p.parseArrayLit()
	case token.Ident:
		return p.parseIdentExpr()
	default:
		p.errf(diag.SynUnexpectedToken, tok.Span,
			"expected expression, found %q", p.describe(tok))
		return nil
	}
}

func (p *Parser) parseSizeof() ast.Expr {
	start := p.bump().Span // 'sizeof'
	p.expect(token.LParen, "'(' after sizeof")
	t := p.parseType()
	p.expect(token.RParen, "')' after sizeof type")
	return &ast.SizeofExpr{T: t, SpanV: p.spanFrom(start)}
}

// parseRaw captures the source text between the braces of `raw { ... }`
// verbatim; it flows through every later stage untouched.
func (p *Parser) parseRaw() ast.Expr {
	start := p.bump().Span // 'raw'
	open, ok := p.expect(token.LBrace, "'{' after raw")
	if !ok {
		return &ast.RawExpr{SpanV: start}
	}
	depth := 1
	textStart := open.Span.End
	textEnd := open.Span.End
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				textEnd = p.cur().Span.Start
				p.bump()
				text := strings.TrimSpace(string(p.file.Content[textStart:textEnd]))
				return &ast.RawExpr{Text: text, SpanV: p.spanFrom(start)}
			}
		}
		p.bump()
	}
	p.errf(diag.SynUnclosedDelimiter, p.cur().Span, "raw block is never closed")
	return &ast.RawExpr{SpanV: p.spanFrom(start)}
}

func (p *Parser) parseParenOrTuple() ast.Expr {
	start := p.bump().Span // '('
	saved := p.noStructLit
	p.noStructLit = false
	defer func() { p.noStructLit = saved }()

	if p.at(token.RParen) {
		p.bump()
		return &ast.TupleLit{SpanV: p.spanFrom(start)}
	}
	first := p.parseExpr()
	if first == nil {
		p.syncTo(token.RParen, token.Semicolon)
		p.accept(token.RParen)
		return nil
	}
	if p.accept(token.Comma) {
		elems := []ast.Expr{first}
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elem := p.parseExpr()
			if elem == nil {
				break
			}
			elems = append(elems, elem)
			if !p.accept(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, "')' closing tuple")
		return &ast.TupleLit{Elems: elems, SpanV: p.spanFrom(start)}
	}
	p.expect(token.RParen, "')' closing expression")
	return &ast.ParenExpr{X: first, SpanV: p.spanFrom(start)}
}

func (p *Parser) parseArrayLit() ast.Expr {
	start := p.bump().Span // '['
	saved := p.noStructLit
	p.noStructLit = false
	var elems []ast.Expr
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elem := p.parseExpr()
		if elem == nil {
			break
		}
		elems = append(elems, elem)
		if !p.accept(token.Comma) {
			break
		}
	}
	p.noStructLit = saved
	p.expect(token.RBracket, "']' closing array literal")
	return &ast.ArrayLit{Elems: elems, SpanV: p.spanFrom(start)}
}

func (p *Parser) parseIdentExpr() ast.Expr {
	name := p.bump()

	// T::f(...) and T<Args>::f(...)
	if p.at(token.ColonColon) && p.peek().Kind == token.Ident && p.peekAt(2).Kind == token.LParen {
		p.bump() // '::'
		method := p.bump()
		args := p.parseArgs()
		return &ast.PathCallExpr{
			TypeName: name.Text, Name: method.Text, Args: args,
			SpanV: p.spanFrom(name.Span),
		}
	}
	if p.at(token.Lt) {
		if call := p.tryGenericCall(name); call != nil {
			return call
		}
	}

	// struct literal: Name { field: ..., } unless a header suppresses it
	if !p.noStructLit && p.at(token.LBrace) &&
		p.peek().Kind == token.Ident && p.peekAt(2).Kind == token.Colon {
		return p.parseStructLit(name)
	}

	// a call to a #define'd name is a macro invocation
	if p.at(token.LParen) && p.macros[name.Text] {
		args := p.parseArgs()
		return &ast.MacroCallExpr{Name: name.Text, Args: args, SpanV: p.spanFrom(name.Span)}
	}

	return &ast.IdentExpr{Name: name.Text, SpanV: name.Span}
}

// tryGenericCall speculatively parses `Name<Args>::method(args)`. On any
// mismatch it rewinds and reports nothing, so `a < b` still parses as a
// comparison.
func (p *Parser) tryGenericCall(name token.Token) ast.Expr {
	savedPos := p.pos
	savedLen := p.bag.Len()
	savedSplits := len(p.gtSplits)

	p.bump() // '<'
	var typeArgs []ast.Type
	for {
		t := p.parseType()
		if t == nil {
			break
		}
		typeArgs = append(typeArgs, t)
		if !p.accept(token.Comma) {
			break
		}
	}
	ok := len(typeArgs) > 0 &&
		p.acceptGt() &&
		p.at(token.ColonColon) && p.peek().Kind == token.Ident && p.peekAt(2).Kind == token.LParen &&
		p.bag.Len() == savedLen

	if !ok {
		for i := len(p.gtSplits) - 1; i >= savedSplits; i-- {
			p.toks[p.gtSplits[i].pos] = p.gtSplits[i].orig
		}
		p.gtSplits = p.gtSplits[:savedSplits]
		p.pos = savedPos
		p.truncateDiags(savedLen)
		return nil
	}

	p.bump() // '::'
	method := p.bump()
	args := p.parseArgs()
	return &ast.GenericCallExpr{
		TypeName: name.Text, TypeArgs: typeArgs, Name: method.Text, Args: args,
		SpanV: p.spanFrom(name.Span),
	}
}

func (p *Parser) parseStructLit(name token.Token) ast.Expr {
	p.bump() // '{'
	lit := &ast.StructLit{Name: name.Text}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldStart := p.cur().Span
		field, ok := p.expectIdent("field name in struct literal")
		if !ok {
			p.syncTo(token.Comma, token.RBrace)
			p.accept(token.Comma)
			continue
		}
		p.expect(token.Colon, "':' after field name")
		value := p.parseExpr()
		lit.Fields = append(lit.Fields, ast.FieldInit{
			Name: field.Text, Value: value, SpanV: p.spanFrom(fieldStart),
		})
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "'}' closing struct literal")
	lit.SpanV = p.spanFrom(name.Span)
	return lit
}

// parseIntText decodes decimal and 0x literals, ignoring '_' separators.
func parseIntText(text string) int64 {
	text = strings.ReplaceAll(text, "_", "")
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		value, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			return 0
		}
		return value
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0
	}
	return value
}

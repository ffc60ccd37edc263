// Package parser builds the AST from the token stream. It is a hand-written
// recursive-descent parser; errors are reported into the shared diagnostic
// bag and parsing resynchronizes at statement or item boundaries so a single
// pass covers the whole file.
package parser

import (
	"fmt"

	"ferric/internal/ast"
	"ferric/internal/diag"
	"ferric/internal/lexer"
	"ferric/internal/source"
	"ferric/internal/token"
)

// Parser consumes one file's token stream.
type Parser struct {
	file *source.File
	toks []token.Token
	pos  int
	bag  *diag.Bag

	out *ast.File

	// macros holds the names #define'd so far; calls to them become
	// macro-call expressions instead of plain calls.
	macros map[string]bool

	// noStructLit suppresses `Name { ... }` literals while parsing a
	// control-flow header, so the body brace is not eaten.
	noStructLit bool

	// gtSplits remembers '>>' tokens split into '>' halves so a rejected
	// speculative parse can restore them.
	gtSplits []gtSplit

	nextFnID int
}

type gtSplit struct {
	pos  int
	orig token.Token
}

// ParseFile tokenizes and parses one source file.
func ParseFile(file *source.File, bag *diag.Bag) *ast.File {
	toks := lexer.Tokenize(file, bag)
	return Parse(file, toks, bag)
}

// Parse parses an already tokenized file.
func Parse(file *source.File, toks []token.Token, bag *diag.Bag) *ast.File {
	p := &Parser{
		file:   file,
		toks:   toks,
		bag:    bag,
		out:    &ast.File{FileID: file.ID},
		macros: make(map[string]bool),
	}
	p.parseFileBody()
	p.out.NestedFnCount = p.nextFnID
	return p.out
}

func (p *Parser) parseFileBody() {
	for !p.at(token.EOF) {
		before := p.pos
		if item := p.parseItem(); item != nil {
			p.out.Items = append(p.out.Items, item)
		}
		if p.pos == before {
			// no progress; drop one token to avoid spinning
			p.bump()
		}
	}
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(kind token.Kind) bool { return p.cur().Kind == kind }

func (p *Parser) bump() token.Token {
	tok := p.cur()
	if p.pos+1 < len(p.toks) {
		p.pos++
	}
	return tok
}

// accept consumes the token if it has the given kind.
func (p *Parser) accept(kind token.Kind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	return false
}

// expect consumes a token of the given kind or reports a diagnostic.
func (p *Parser) expect(kind token.Kind, what string) (token.Token, bool) {
	if p.at(kind) {
		return p.bump(), true
	}
	p.errf(diag.SynUnexpectedToken, p.cur().Span, "expected %s, found %q", what, p.describe(p.cur()))
	return p.cur(), false
}

func (p *Parser) expectSemicolon() {
	if !p.accept(token.Semicolon) {
		p.errf(diag.SynExpectSemicolon, p.cur().Span, "expected ';' after statement")
	}
}

func (p *Parser) expectIdent(what string) (token.Token, bool) {
	if p.at(token.Ident) {
		return p.bump(), true
	}
	p.errf(diag.SynExpectIdentifier, p.cur().Span, "expected %s", what)
	return p.cur(), false
}

func (p *Parser) describe(tok token.Token) string {
	if tok.Text != "" {
		return tok.Text
	}
	return tok.Kind.String()
}

func (p *Parser) errf(code diag.Code, span source.Span, format string, args ...any) {
	p.bag.Error(code, span, fmt.Sprintf(format, args...))
}

// spanFrom widens from a start token to the previous consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.pos == 0 {
		return start
	}
	return start.Cover(p.toks[p.pos-1].Span)
}

// truncateDiags rolls the bag back to a prior length after a rejected
// speculative parse.
func (p *Parser) truncateDiags(n int) {
	p.bag.Truncate(n)
}

// syncTo skips tokens until one of the kinds (or EOF), without consuming it.
func (p *Parser) syncTo(kinds ...token.Kind) {
	for !p.at(token.EOF) {
		for _, k := range kinds {
			if p.at(k) {
				return
			}
		}
		p.bump()
	}
}

// skipBalancedBraces consumes a `{ ... }` group, tracking nesting.
// The cursor must already sit on the opening brace.
func (p *Parser) skipBalancedBraces() {
	if !p.at(token.LBrace) {
		return
	}
	depth := 0
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				p.bump()
				return
			}
		}
		p.bump()
	}
}

package lexer

import (
	"testing"

	"ferric/internal/diag"
	"ferric/internal/source"
	"ferric/internal/token"
)

func tokenize(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cy", []byte(src))
	bag := diag.NewBag(32)
	return Tokenize(fs.Get(id), bag), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeBinding(t *testing.T) {
	toks, bag := tokenize(t, "let mut x: int = 42;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwLet, token.KwMut, token.Ident, token.Colon, token.Ident,
		token.Assign, token.IntLit, token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeOperators(t *testing.T) {
	cases := []struct {
		src  string
		want token.Kind
	}{
		{"++", token.PlusPlus},
		{"--", token.MinusMinus},
		{"<<=", token.ShlAssign},
		{"->", token.Arrow},
		{"::", token.ColonColon},
		{"..", token.DotDot},
		{"!=", token.BangEq},
		{"&&", token.AndAnd},
		{"#", token.Hash},
	}
	for _, tc := range cases {
		toks, bag := tokenize(t, tc.src)
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected diagnostics", tc.src)
		}
		if toks[0].Kind != tc.want {
			t.Fatalf("%q lexed as %v, want %v", tc.src, toks[0].Kind, tc.want)
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	toks, bag := tokenize(t, "10 3.5 0xFF 1e3 1..5")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.IntLit, token.FloatLit, token.IntLit, token.FloatLit,
		token.IntLit, token.DotDot, token.IntLit, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, bag := tokenize(t, `"a\nb" 'x'`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.StringLit || toks[0].Text != "a\nb" {
		t.Fatalf("string = %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.CharLit || toks[1].Text != "x" {
		t.Fatalf("char = %v %q", toks[1].Kind, toks[1].Text)
	}
}

func TestTokenizeComments(t *testing.T) {
	toks, bag := tokenize(t, "a // line\n/* block */ b")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	got := kinds(toks)
	want := []token.Kind{token.Ident, token.Ident, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	_, bag := tokenize(t, "\"open\n$ /* never")
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics")
	}
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	wantCodes := map[diag.Code]bool{
		diag.LexUnterminatedString:       false,
		diag.LexUnknownChar:              false,
		diag.LexUnterminatedBlockComment: false,
	}
	for _, c := range codes {
		if _, ok := wantCodes[c]; ok {
			wantCodes[c] = true
		}
	}
	for c, seen := range wantCodes {
		if !seen {
			t.Fatalf("missing diagnostic %v in %v", c, codes)
		}
	}
}

func TestTokenizeSpans(t *testing.T) {
	toks, _ := tokenize(t, "ab cd")
	if toks[1].Span.Start != 3 || toks[1].Span.End != 5 {
		t.Fatalf("second token span = %v", toks[1].Span)
	}
}

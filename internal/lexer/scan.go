package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"ferric/internal/diag"
	"ferric/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.Slice(start, lx.cursor.Off)
	// Unicode identifiers are NFC-normalized so visually identical names
	// compare equal in the symbol table.
	if !isASCII(text) {
		text = norm.NFC.String(text)
	}

	span := lx.spanFrom(start)
	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: span, Text: text}
	}
	if text == "_" {
		return token.Token{Kind: token.Underscore, Span: span, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span, Text: text}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	kind := token.IntLit

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for !lx.cursor.EOF() && (isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
			if lx.cursor.Peek() != '_' {
				digits++
			}
			lx.cursor.Bump()
		}
		if digits == 0 {
			lx.bag.Error(diag.LexBadNumber, lx.spanFrom(start), "hex literal without digits")
		}
		return token.Token{Kind: kind, Span: lx.spanFrom(start), Text: lx.cursor.Slice(start, lx.cursor.Off)}
	}

	for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
		lx.cursor.Bump()
	}
	// fraction: a dot followed by a digit; ".." stays a range operator
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
			lx.cursor.Bump()
		}
	}
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			kind = token.FloatLit
			lx.cursor.Bump()
			if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
				lx.cursor.Bump()
			}
			for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	text := lx.cursor.Slice(start, lx.cursor.Off)
	if strings.HasSuffix(text, "_") {
		lx.bag.Error(diag.LexBadNumber, lx.spanFrom(start), "numeric literal ends with a separator")
	}
	return token.Token{Kind: kind, Span: lx.spanFrom(start), Text: text}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // opening quote
	var sb strings.Builder
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			lx.bag.Error(diag.LexUnterminatedString, lx.spanFrom(start), "string literal is never closed")
			return token.Token{Kind: token.StringLit, Span: lx.spanFrom(start), Text: sb.String()}
		}
		ch := lx.cursor.Peek()
		if ch == '"' {
			lx.cursor.Bump()
			return token.Token{Kind: token.StringLit, Span: lx.spanFrom(start), Text: sb.String()}
		}
		if ch == '\\' {
			lx.cursor.Bump()
			sb.WriteByte(lx.scanEscape())
			continue
		}
		sb.WriteByte(ch)
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // opening quote
	var value byte
	switch {
	case lx.cursor.EOF() || lx.cursor.Peek() == '\n':
		lx.bag.Error(diag.LexUnterminatedChar, lx.spanFrom(start), "char literal is never closed")
		return token.Token{Kind: token.CharLit, Span: lx.spanFrom(start)}
	case lx.cursor.Peek() == '\\':
		lx.cursor.Bump()
		value = lx.scanEscape()
	default:
		value = lx.cursor.Peek()
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() != '\'' {
		lx.bag.Error(diag.LexUnterminatedChar, lx.spanFrom(start), "char literal is never closed")
	} else {
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.CharLit, Span: lx.spanFrom(start), Text: string(value)}
}

// scanEscape consumes one escape body (the backslash is already eaten).
func (lx *Lexer) scanEscape() byte {
	if lx.cursor.EOF() {
		return 0
	}
	ch := lx.cursor.Peek()
	lx.cursor.Bump()
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\', '\'', '"':
		return ch
	default:
		lx.bag.Error(diag.LexBadEscape, lx.spanFrom(lx.cursor.Off-2),
			"unknown escape sequence '\\"+string(ch)+"'")
		return ch
	}
}

// opTable maps multi-byte operators longest-first per leading byte.
var opTable = map[byte][]struct {
	text string
	kind token.Kind
}{
	'+': {{"++", token.PlusPlus}, {"+=", token.PlusAssign}, {"+", token.Plus}},
	'-': {{"--", token.MinusMinus}, {"-=", token.MinusAssign}, {"->", token.Arrow}, {"-", token.Minus}},
	'*': {{"*=", token.StarAssign}, {"*", token.Star}},
	'/': {{"/=", token.SlashAssign}, {"/", token.Slash}},
	'%': {{"%=", token.PercentAssign}, {"%", token.Percent}},
	'=': {{"==", token.EqEq}, {"=", token.Assign}},
	'!': {{"!=", token.BangEq}, {"!", token.Bang}},
	'<': {{"<<=", token.ShlAssign}, {"<<", token.Shl}, {"<=", token.LtEq}, {"<", token.Lt}},
	'>': {{">>=", token.ShrAssign}, {">>", token.Shr}, {">=", token.GtEq}, {">", token.Gt}},
	'&': {{"&&", token.AndAnd}, {"&=", token.AmpAssign}, {"&", token.Amp}},
	'|': {{"||", token.OrOr}, {"|=", token.PipeAssign}, {"|", token.Pipe}},
	'^': {{"^=", token.CaretAssign}, {"^", token.Caret}},
	'~': {{"~", token.Tilde}},
	'?': {{"?", token.Question}},
	':': {{"::", token.ColonColon}, {":", token.Colon}},
	';': {{";", token.Semicolon}},
	',': {{",", token.Comma}},
	'.': {{"..", token.DotDot}, {".", token.Dot}},
	'(': {{"(", token.LParen}},
	')': {{")", token.RParen}},
	'{': {{"{", token.LBrace}},
	'}': {{"}", token.RBrace}},
	'[': {{"[", token.LBracket}},
	']': {{"]", token.RBracket}},
	'#': {{"#", token.Hash}},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Off
	ch := lx.cursor.Peek()

	if candidates, ok := opTable[ch]; ok {
		for _, cand := range candidates {
			if lx.matches(cand.text) {
				for range cand.text {
					lx.cursor.Bump()
				}
				return token.Token{Kind: cand.kind, Span: lx.spanFrom(start), Text: cand.text}
			}
		}
	}

	lx.cursor.Bump()
	text := lx.cursor.Slice(start, lx.cursor.Off)
	lx.bag.Error(diag.LexUnknownChar, lx.spanFrom(start), "unexpected character "+quoteByte(text))
	return token.Token{Kind: token.Invalid, Span: lx.spanFrom(start), Text: text}
}

func (lx *Lexer) matches(text string) bool {
	for i := 0; i < len(text); i++ {
		if lx.cursor.PeekAt(uint32(i)) != text[i] { // #nosec G115 -- operator length <= 3
			return false
		}
	}
	return true
}

func quoteByte(s string) string {
	return "'" + s + "'"
}

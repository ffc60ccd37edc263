package token

import (
	"ferric/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, string, char,
// or null literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwLet, KwVar, KwConst, KwMut, KwStatic, KwStruct, KwEnum,
		KwTypedef, KwNamespace, KwImport, KwExtern, KwIf, KwElse, KwWhile,
		KwFor, KwIn, KwSwitch, KwCase, KwDefault, KwBreak, KwContinue,
		KwReturn, KwSizeof, KwAs, KwRaw, KwSelf, KwTrue, KwFalse, KwNull,
		KwUnion, KwGoto:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

package token

var keywords = map[string]Kind{
	"fn":        KwFn,
	"let":       KwLet,
	"var":       KwVar,
	"const":     KwConst,
	"mut":       KwMut,
	"static":    KwStatic,
	"struct":    KwStruct,
	"enum":      KwEnum,
	"typedef":   KwTypedef,
	"namespace": KwNamespace,
	"import":    KwImport,
	"extern":    KwExtern,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"for":       KwFor,
	"in":        KwIn,
	"switch":    KwSwitch,
	"case":      KwCase,
	"default":   KwDefault,
	"break":     KwBreak,
	"continue":  KwContinue,
	"return":    KwReturn,
	"sizeof":    KwSizeof,
	"as":        KwAs,
	"raw":       KwRaw,
	"self":      KwSelf,
	"true":      KwTrue,
	"false":     KwFalse,
	"NULL":      KwNull,
	"union":     KwUnion,
	"goto":      KwGoto,
}

// LookupKeyword maps an identifier-shaped lexeme to its keyword kind.
// Case matters: "Fn" and "null" are plain identifiers.
func LookupKeyword(lexeme string) (Kind, bool) {
	kind, ok := keywords[lexeme]
	return kind, ok
}

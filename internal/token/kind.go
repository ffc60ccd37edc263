package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// Keywords.
	KwFn        // fn
	KwLet       // let
	KwVar       // var
	KwConst     // const
	KwMut       // mut
	KwStatic    // static
	KwStruct    // struct
	KwEnum      // enum
	KwTypedef   // typedef
	KwNamespace // namespace
	KwImport    // import
	KwExtern    // extern
	KwIf        // if
	KwElse      // else
	KwWhile     // while
	KwFor       // for
	KwIn        // in
	KwSwitch    // switch
	KwCase      // case
	KwDefault   // default
	KwBreak     // break
	KwContinue  // continue
	KwReturn    // return
	KwSizeof    // sizeof
	KwAs        // as
	KwRaw       // raw
	KwSelf      // self
	KwTrue      // true
	KwFalse     // false
	KwNull      // NULL
	KwUnion     // union (recorded, rejected by analysis)
	KwGoto      // goto (recorded, rejected by analysis)

	// Literals.
	IntLit
	FloatLit
	StringLit
	CharLit

	// Operators and punctuation.
	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	PlusPlus      // ++
	MinusMinus    // --
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Shr           // >>
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	AndAnd        // &&
	OrOr          // ||
	Question      // ?
	Colon         // :
	ColonColon    // ::
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	DotDot        // ..
	Arrow         // ->
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	Hash          // #
	Underscore    // _

	kindCount
)

var kindNames = [kindCount]string{
	Invalid: "invalid", EOF: "eof", Ident: "ident",

	KwFn: "fn", KwLet: "let", KwVar: "var", KwConst: "const", KwMut: "mut",
	KwStatic: "static", KwStruct: "struct", KwEnum: "enum", KwTypedef: "typedef",
	KwNamespace: "namespace", KwImport: "import", KwExtern: "extern",
	KwIf: "if", KwElse: "else", KwWhile: "while", KwFor: "for", KwIn: "in",
	KwSwitch: "switch", KwCase: "case", KwDefault: "default",
	KwBreak: "break", KwContinue: "continue", KwReturn: "return",
	KwSizeof: "sizeof", KwAs: "as", KwRaw: "raw", KwSelf: "self",
	KwTrue: "true", KwFalse: "false", KwNull: "NULL",
	KwUnion: "union", KwGoto: "goto",

	IntLit: "int literal", FloatLit: "float literal",
	StringLit: "string literal", CharLit: "char literal",

	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=",
	SlashAssign: "/=", PercentAssign: "%=", AmpAssign: "&=", PipeAssign: "|=",
	CaretAssign: "^=", ShlAssign: "<<=", ShrAssign: ">>=",
	PlusPlus: "++", MinusMinus: "--",
	EqEq: "==", Bang: "!", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">",
	GtEq: ">=", Shl: "<<", Shr: ">>", Amp: "&", Pipe: "|", Caret: "^",
	Tilde: "~", AndAnd: "&&", OrOr: "||", Question: "?", Colon: ":",
	ColonColon: "::", Semicolon: ";", Comma: ",", Dot: ".", DotDot: "..",
	Arrow: "->", LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Hash: "#", Underscore: "_",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// IsAssignOp reports whether the kind is plain or compound assignment.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign,
		PercentAssign, AmpAssign, PipeAssign, CaretAssign, ShlAssign, ShrAssign:
		return true
	default:
		return false
	}
}

package ast

import (
	"ferric/internal/source"
	"ferric/internal/token"
)

// Item is a top-level declaration. The concrete variants below are the
// only implementations; visitors switch exhaustively over them.
type Item interface {
	Node
	item()
}

// Node is implemented by every AST node and exposes its source span.
type Node interface {
	Span() source.Span
}

// Param is one function parameter.
type Param struct {
	Name    string
	Type    Type
	Mutable bool
	SpanV   source.Span
}

func (p Param) Span() source.Span { return p.SpanV }

// FnItem declares a function. It doubles as the payload of extern
// declarations, struct methods, and nested fn statements.
type FnItem struct {
	Name   string
	Params []Param
	// SelfRecv marks a struct method taking the receiver.
	SelfRecv bool
	// Return is nil when the function returns nothing.
	Return Type
	// Body is nil for extern declarations.
	Body  *Block
	SpanV source.Span
}

// Field is one struct field.
type Field struct {
	Name  string
	Type  Type
	SpanV source.Span
}

// StructItem declares a struct, optionally with methods defined inline.
type StructItem struct {
	Name    string
	Fields  []Field
	Methods []*FnItem
	SpanV   source.Span
}

// EnumVariant is one enum member with an optional explicit discriminant.
type EnumVariant struct {
	Name     string
	Value    int64
	HasValue bool
	SpanV    source.Span
}

// EnumItem declares a C-style enum.
type EnumItem struct {
	Name     string
	Variants []EnumVariant
	SpanV    source.Span
}

// TypedefItem binds a name to an existing type.
type TypedefItem struct {
	Name   string
	Target Type
	SpanV  source.Span
}

// NamespaceItem groups items under a module name.
type NamespaceItem struct {
	Name  string
	Items []Item
	SpanV source.Span
}

// ImportItem references another module by path segments.
type ImportItem struct {
	Segments []string
	SpanV    source.Span
}

// ExternItem is a block of foreign function declarations.
type ExternItem struct {
	Decls []*FnItem
	SpanV source.Span
}

// ConstItem is a top-level constant binding.
type ConstItem struct {
	Name  string
	Type  Type
	Value Expr
	SpanV source.Span
}

// StaticItem is a top-level static binding.
type StaticItem struct {
	Name    string
	Type    Type
	Value   Expr
	Mutable bool
	SpanV   source.Span
}

// MacroItem is a preprocessor-style macro definition. The body is kept as
// the raw token stream; only the translation rule interprets it.
type MacroItem struct {
	Name   string
	Params []string
	Body   []token.Token
	SpanV  source.Span
}

func (*FnItem) item()        {}
func (*StructItem) item()    {}
func (*EnumItem) item()      {}
func (*TypedefItem) item()   {}
func (*NamespaceItem) item() {}
func (*ImportItem) item()    {}
func (*ExternItem) item()    {}
func (*ConstItem) item()     {}
func (*StaticItem) item()    {}
func (*MacroItem) item()     {}

func (i *FnItem) Span() source.Span        { return i.SpanV }
func (i *StructItem) Span() source.Span    { return i.SpanV }
func (i *EnumItem) Span() source.Span      { return i.SpanV }
func (i *TypedefItem) Span() source.Span   { return i.SpanV }
func (i *NamespaceItem) Span() source.Span { return i.SpanV }
func (i *ImportItem) Span() source.Span    { return i.SpanV }
func (i *ExternItem) Span() source.Span    { return i.SpanV }
func (i *ConstItem) Span() source.Span     { return i.SpanV }
func (i *StaticItem) Span() source.Span    { return i.SpanV }
func (i *MacroItem) Span() source.Span     { return i.SpanV }

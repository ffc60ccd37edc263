package ast

import (
	"ferric/internal/source"
	"ferric/internal/token"
)

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	Text  string
	SpanV source.Span
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Value float64
	Text  string
	SpanV source.Span
}

// StringLit holds the unquoted string value.
type StringLit struct {
	Value string
	SpanV source.Span
}

// CharLit holds a single character literal.
type CharLit struct {
	Value rune
	SpanV source.Span
}

// BoolLit is true or false.
type BoolLit struct {
	Value bool
	SpanV source.Span
}

// NullLit is the NULL literal.
type NullLit struct {
	SpanV source.Span
}

// IdentExpr references a name.
type IdentExpr struct {
	Name  string
	SpanV source.Span
}

// BinaryExpr applies an infix operator, including assignment forms.
type BinaryExpr struct {
	Op    token.Kind
	Left  Expr
	Right Expr
	SpanV source.Span
}

// UnaryExpr applies a prefix or postfix operator. Postfix is meaningful
// only for ++ and --.
type UnaryExpr struct {
	Op      token.Kind
	X       Expr
	Postfix bool
	SpanV   source.Span
}

// ParenExpr preserves explicit grouping.
type ParenExpr struct {
	X     Expr
	SpanV source.Span
}

// CallExpr calls a plain function-valued callee.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	SpanV  source.Span
}

// MacroCallExpr invokes a previously #define'd macro by name.
type MacroCallExpr struct {
	Name  string
	Args  []Expr
	SpanV source.Span
}

// MethodCallExpr calls a method on a receiver value.
type MethodCallExpr struct {
	Recv  Expr
	Name  string
	Args  []Expr
	SpanV source.Span
}

// PathCallExpr calls a function scoped to a type name: T::f(args).
type PathCallExpr struct {
	TypeName string
	Name     string
	Args     []Expr
	SpanV    source.Span
}

// GenericCallExpr calls with explicit type arguments: T<A>::f(args).
type GenericCallExpr struct {
	TypeName string
	TypeArgs []Type
	Name     string
	Args     []Expr
	SpanV    source.Span
}

// FieldExpr accesses a struct field.
type FieldExpr struct {
	X     Expr
	Name  string
	SpanV source.Span
}

// IndexExpr subscripts an array or slice.
type IndexExpr struct {
	X     Expr
	Index Expr
	SpanV source.Span
}

// CastExpr converts a value to a target type.
type CastExpr struct {
	X     Expr
	To    Type
	SpanV source.Span
}

// SizeofExpr yields the size of a type.
type SizeofExpr struct {
	T     Type
	SpanV source.Span
}

// TernaryExpr is cond ? then : else.
type TernaryExpr struct {
	Cond  Expr
	Then  Expr
	Else  Expr
	SpanV source.Span
}

// FieldInit is one field in a struct literal.
type FieldInit struct {
	Name  string
	Value Expr
	SpanV source.Span
}

// StructLit constructs a named struct value; field order is the source order.
type StructLit struct {
	Name   string
	Fields []FieldInit
	SpanV  source.Span
}

// ArrayLit is a bracketed element list.
type ArrayLit struct {
	Elems []Expr
	SpanV source.Span
}

// TupleLit is a parenthesized element list of two or more elements.
type TupleLit struct {
	Elems []Expr
	SpanV source.Span
}

// RangeExpr is lo..hi.
type RangeExpr struct {
	Low   Expr
	High  Expr
	SpanV source.Span
}

// RawExpr passes target-dialect text through untyped and untouched.
type RawExpr struct {
	Text  string
	SpanV source.Span
}

// TryExpr is the error-propagation postfix: expr!.
type TryExpr struct {
	X     Expr
	SpanV source.Span
}

func (*IntLit) expr()          {}
func (*FloatLit) expr()        {}
func (*StringLit) expr()       {}
func (*CharLit) expr()         {}
func (*BoolLit) expr()         {}
func (*NullLit) expr()         {}
func (*IdentExpr) expr()       {}
func (*BinaryExpr) expr()      {}
func (*UnaryExpr) expr()       {}
func (*ParenExpr) expr()       {}
func (*CallExpr) expr()        {}
func (*MacroCallExpr) expr()   {}
func (*MethodCallExpr) expr()  {}
func (*PathCallExpr) expr()    {}
func (*GenericCallExpr) expr() {}
func (*FieldExpr) expr()       {}
func (*IndexExpr) expr()       {}
func (*CastExpr) expr()        {}
func (*SizeofExpr) expr()      {}
func (*TernaryExpr) expr()     {}
func (*StructLit) expr()       {}
func (*ArrayLit) expr()        {}
func (*TupleLit) expr()        {}
func (*RangeExpr) expr()       {}
func (*RawExpr) expr()         {}
func (*TryExpr) expr()         {}

func (e *IntLit) Span() source.Span          { return e.SpanV }
func (e *FloatLit) Span() source.Span        { return e.SpanV }
func (e *StringLit) Span() source.Span       { return e.SpanV }
func (e *CharLit) Span() source.Span         { return e.SpanV }
func (e *BoolLit) Span() source.Span         { return e.SpanV }
func (e *NullLit) Span() source.Span         { return e.SpanV }
func (e *IdentExpr) Span() source.Span       { return e.SpanV }
func (e *BinaryExpr) Span() source.Span      { return e.SpanV }
func (e *UnaryExpr) Span() source.Span       { return e.SpanV }
func (e *ParenExpr) Span() source.Span       { return e.SpanV }
func (e *CallExpr) Span() source.Span        { return e.SpanV }
func (e *MacroCallExpr) Span() source.Span   { return e.SpanV }
func (e *MethodCallExpr) Span() source.Span  { return e.SpanV }
func (e *PathCallExpr) Span() source.Span    { return e.SpanV }
func (e *GenericCallExpr) Span() source.Span { return e.SpanV }
func (e *FieldExpr) Span() source.Span       { return e.SpanV }
func (e *IndexExpr) Span() source.Span       { return e.SpanV }
func (e *CastExpr) Span() source.Span        { return e.SpanV }
func (e *SizeofExpr) Span() source.Span      { return e.SpanV }
func (e *TernaryExpr) Span() source.Span     { return e.SpanV }
func (e *StructLit) Span() source.Span       { return e.SpanV }
func (e *ArrayLit) Span() source.Span        { return e.SpanV }
func (e *TupleLit) Span() source.Span        { return e.SpanV }
func (e *RangeExpr) Span() source.Span       { return e.SpanV }
func (e *RawExpr) Span() source.Span         { return e.SpanV }
func (e *TryExpr) Span() source.Span         { return e.SpanV }

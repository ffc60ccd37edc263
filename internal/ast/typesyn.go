package ast

import (
	"ferric/internal/source"
)

// Type is a type expression as written in source.
type Type interface {
	Node
	typ()
}

// PrimKind enumerates the built-in primitive types.
type PrimKind uint8

const (
	PrimVoid PrimKind = iota
	PrimBool
	PrimChar
	// PrimInt is the generic integer type; literals default to it and it
	// is mutually compatible with PrimI32.
	PrimInt
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimUsize
	// PrimFloat is the generic floating type, compatible with PrimF64.
	PrimFloat
	PrimF32
	PrimF64
	PrimString

	primKindCount
)

var primNames = [primKindCount]string{
	PrimVoid: "void", PrimBool: "bool", PrimChar: "char",
	PrimInt: "int", PrimI8: "i8", PrimI16: "i16", PrimI32: "i32",
	PrimI64: "i64", PrimU8: "u8", PrimU16: "u16", PrimU32: "u32",
	PrimU64: "u64", PrimUsize: "usize",
	PrimFloat: "float", PrimF32: "f32", PrimF64: "f64",
	PrimString: "string",
}

func (k PrimKind) String() string {
	if k < primKindCount {
		return primNames[k]
	}
	return "invalid"
}

// LookupPrim maps a source spelling to its primitive kind.
func LookupPrim(name string) (PrimKind, bool) {
	for k, n := range primNames {
		if n == name {
			return PrimKind(k), true // #nosec G115 -- k < primKindCount
		}
	}
	return 0, false
}

// PrimNames lists every primitive spelling, for seeding type registries.
func PrimNames() []string {
	return primNames[:]
}

// IsIntegerFamily reports whether the kind is any integer width.
func (k PrimKind) IsIntegerFamily() bool {
	switch k {
	case PrimInt, PrimI8, PrimI16, PrimI32, PrimI64,
		PrimU8, PrimU16, PrimU32, PrimU64, PrimUsize:
		return true
	default:
		return false
	}
}

// PrimType is a built-in primitive type.
type PrimType struct {
	Kind  PrimKind
	SpanV source.Span
}

// NamedType references a struct, enum, or alias by name.
type NamedType struct {
	Name  string
	SpanV source.Span
}

// PointerType is *T or *mut T.
type PointerType struct {
	Mut   bool
	Elem  Type
	SpanV source.Span
}

// RefType is &T or &mut T.
type RefType struct {
	Mut   bool
	Elem  Type
	SpanV source.Span
}

// ArrayType is [T; N]; Sized is false when the length is left off.
type ArrayType struct {
	Elem  Type
	Size  int64
	Sized bool
	SpanV source.Span
}

// SliceType is [T].
type SliceType struct {
	Elem  Type
	SpanV source.Span
}

// TupleType is (T, U, ...).
type TupleType struct {
	Elems []Type
	SpanV source.Span
}

// GenericType is Name<Args...>.
type GenericType struct {
	Name  string
	Args  []Type
	SpanV source.Span
}

// FnType is fn(Params...) -> Return; Return nil means no result.
type FnType struct {
	Params []Type
	Return Type
	SpanV  source.Span
}

// FallibleType is T?, a success-or-error container around Inner.
type FallibleType struct {
	Inner Type
	SpanV source.Span
}

// UnknownType is the inferred placeholder. It is compatible with every
// type and stands in wherever inference has nothing better.
type UnknownType struct {
	SpanV source.Span
}

func (*PrimType) typ()     {}
func (*NamedType) typ()    {}
func (*PointerType) typ()  {}
func (*RefType) typ()      {}
func (*ArrayType) typ()    {}
func (*SliceType) typ()    {}
func (*TupleType) typ()    {}
func (*GenericType) typ()  {}
func (*FnType) typ()       {}
func (*FallibleType) typ() {}
func (*UnknownType) typ()  {}

func (t *PrimType) Span() source.Span     { return t.SpanV }
func (t *NamedType) Span() source.Span    { return t.SpanV }
func (t *PointerType) Span() source.Span  { return t.SpanV }
func (t *RefType) Span() source.Span      { return t.SpanV }
func (t *ArrayType) Span() source.Span    { return t.SpanV }
func (t *SliceType) Span() source.Span    { return t.SpanV }
func (t *TupleType) Span() source.Span    { return t.SpanV }
func (t *GenericType) Span() source.Span  { return t.SpanV }
func (t *FnType) Span() source.Span       { return t.SpanV }
func (t *FallibleType) Span() source.Span { return t.SpanV }
func (t *UnknownType) Span() source.Span  { return t.SpanV }

// Unknown returns a placeholder type with no particular location.
func Unknown() *UnknownType { return &UnknownType{} }

// Prim returns a spanless primitive type, for inferred results.
func Prim(kind PrimKind) *PrimType { return &PrimType{Kind: kind} }

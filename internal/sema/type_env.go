package sema

import "ferric/internal/ast"

// TypeInfoKind distinguishes what a registered type name denotes.
type TypeInfoKind uint8

const (
	InfoPrimitive TypeInfoKind = iota
	InfoStruct
	InfoEnum
	InfoAlias
)

// FieldInfo is one struct field in declaration order.
type FieldInfo struct {
	Name string
	Type ast.Type
}

// TypeInfo is the registered description of a named type.
type TypeInfo struct {
	Name     string
	Kind     TypeInfoKind
	Fields   []FieldInfo // InfoStruct
	Variants []string    // InfoEnum
	Alias    ast.Type    // InfoAlias
}

// Field returns the field with the given name, if the type declares one.
func (ti *TypeInfo) Field(name string) (*FieldInfo, bool) {
	for i := range ti.Fields {
		if ti.Fields[i].Name == name {
			return &ti.Fields[i], true
		}
	}
	return nil, false
}

// TypeEnv maps type names to their descriptions. A fresh environment is
// pre-seeded with every primitive so user code cannot redeclare them.
type TypeEnv struct {
	types map[string]*TypeInfo
}

func NewTypeEnv() *TypeEnv {
	env := &TypeEnv{types: make(map[string]*TypeInfo)}
	for _, name := range ast.PrimNames() {
		env.types[name] = &TypeInfo{Name: name, Kind: InfoPrimitive}
	}
	return env
}

// Register binds a name to its description. It reports false when the name is
// already taken, including by a primitive.
func (e *TypeEnv) Register(info *TypeInfo) bool {
	if _, ok := e.types[info.Name]; ok {
		return false
	}
	e.types[info.Name] = info
	return true
}

// Get returns the description registered for name.
func (e *TypeEnv) Get(name string) (*TypeInfo, bool) {
	info, ok := e.types[name]
	return info, ok
}

// ResolveStruct follows alias chains from a named type down to a struct
// description. The chase is bounded so cyclic typedefs cannot loop.
func (e *TypeEnv) ResolveStruct(name string) (*TypeInfo, bool) {
	for hops := 0; hops < 32; hops++ {
		info, ok := e.types[name]
		if !ok {
			return nil, false
		}
		switch info.Kind {
		case InfoStruct:
			return info, true
		case InfoAlias:
			named, ok := info.Alias.(*ast.NamedType)
			if !ok {
				return nil, false
			}
			name = named.Name
		default:
			return nil, false
		}
	}
	return nil, false
}

// Compatible reports whether a value of type b can stand where a is expected.
// The relation is structural and mostly symmetric; the one directional rule is
// reference mutability, where a mutable reference satisfies an immutable
// expectation but not the reverse.
func (e *TypeEnv) Compatible(a, b ast.Type) bool {
	if a == nil {
		a = ast.Prim(ast.PrimVoid)
	}
	if b == nil {
		b = ast.Prim(ast.PrimVoid)
	}
	if _, ok := a.(*ast.UnknownType); ok {
		return true
	}
	if _, ok := b.(*ast.UnknownType); ok {
		return true
	}

	switch at := a.(type) {
	case *ast.PrimType:
		bt, ok := b.(*ast.PrimType)
		if !ok {
			return false
		}
		return primCompatible(at.Kind, bt.Kind)
	case *ast.NamedType:
		bt, ok := b.(*ast.NamedType)
		return ok && at.Name == bt.Name
	case *ast.PointerType:
		bt, ok := b.(*ast.PointerType)
		return ok && at.Mut == bt.Mut && e.Compatible(at.Elem, bt.Elem)
	case *ast.RefType:
		bt, ok := b.(*ast.RefType)
		if !ok {
			return false
		}
		// &mut T satisfies &T, never the other way around.
		if !at.Mut && bt.Mut {
			return e.Compatible(at.Elem, bt.Elem)
		}
		return at.Mut == bt.Mut && e.Compatible(at.Elem, bt.Elem)
	case *ast.ArrayType:
		bt, ok := b.(*ast.ArrayType)
		if !ok {
			return false
		}
		if at.Sized != bt.Sized || (at.Sized && at.Size != bt.Size) {
			return false
		}
		return e.Compatible(at.Elem, bt.Elem)
	case *ast.SliceType:
		bt, ok := b.(*ast.SliceType)
		return ok && e.Compatible(at.Elem, bt.Elem)
	case *ast.TupleType:
		bt, ok := b.(*ast.TupleType)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return false
		}
		for i := range at.Elems {
			if !e.Compatible(at.Elems[i], bt.Elems[i]) {
				return false
			}
		}
		return true
	case *ast.GenericType:
		bt, ok := b.(*ast.GenericType)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !e.Compatible(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case *ast.FnType:
		bt, ok := b.(*ast.FnType)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !e.Compatible(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return e.Compatible(at.Return, bt.Return)
	case *ast.FallibleType:
		bt, ok := b.(*ast.FallibleType)
		return ok && e.Compatible(at.Inner, bt.Inner)
	}
	return false
}

// primCompatible relates primitive kinds. The generic int and float widths
// pair with their default concrete widths, which is how literal inference
// meets explicit annotations.
func primCompatible(a, b ast.PrimKind) bool {
	if a == b {
		return true
	}
	if (a == ast.PrimInt && b == ast.PrimI32) || (a == ast.PrimI32 && b == ast.PrimInt) {
		return true
	}
	if (a == ast.PrimFloat && b == ast.PrimF64) || (a == ast.PrimF64 && b == ast.PrimFloat) {
		return true
	}
	return false
}

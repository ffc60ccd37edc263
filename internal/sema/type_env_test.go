package sema

import (
	"testing"

	"ferric/internal/ast"
)

func TestCompatiblePrimitives(t *testing.T) {
	env := NewTypeEnv()
	cases := []struct {
		a, b ast.PrimKind
		want bool
	}{
		{ast.PrimI32, ast.PrimI32, true},
		{ast.PrimInt, ast.PrimI32, true},
		{ast.PrimI32, ast.PrimInt, true},
		{ast.PrimFloat, ast.PrimF64, true},
		{ast.PrimF64, ast.PrimFloat, true},
		{ast.PrimInt, ast.PrimI64, false},
		{ast.PrimFloat, ast.PrimF32, false},
		{ast.PrimBool, ast.PrimI32, false},
	}
	for _, tc := range cases {
		got := env.Compatible(ast.Prim(tc.a), ast.Prim(tc.b))
		if got != tc.want {
			t.Errorf("Compatible(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompatibleUnknownIsWildcard(t *testing.T) {
	env := NewTypeEnv()
	ref := &ast.RefType{Mut: true, Elem: ast.Prim(ast.PrimI64)}
	if !env.Compatible(ast.Unknown(), ref) {
		t.Fatalf("unknown not compatible as expected side")
	}
	if !env.Compatible(ref, ast.Unknown()) {
		t.Fatalf("unknown not compatible as found side")
	}
}

func TestCompatibleReferenceMutability(t *testing.T) {
	env := NewTypeEnv()
	imm := &ast.RefType{Elem: ast.Prim(ast.PrimI32)}
	mut := &ast.RefType{Mut: true, Elem: ast.Prim(ast.PrimI32)}
	if !env.Compatible(imm, mut) {
		t.Fatalf("&mut T should satisfy &T")
	}
	if env.Compatible(mut, imm) {
		t.Fatalf("&T should not satisfy &mut T")
	}
}

func TestCompatiblePointerMutabilityExact(t *testing.T) {
	env := NewTypeEnv()
	imm := &ast.PointerType{Elem: ast.Prim(ast.PrimI32)}
	mut := &ast.PointerType{Mut: true, Elem: ast.Prim(ast.PrimI32)}
	if env.Compatible(imm, mut) || env.Compatible(mut, imm) {
		t.Fatalf("pointer mutability must match exactly")
	}
}

func TestCompatibleArrays(t *testing.T) {
	env := NewTypeEnv()
	a3 := &ast.ArrayType{Elem: ast.Prim(ast.PrimI32), Size: 3, Sized: true}
	b3 := &ast.ArrayType{Elem: ast.Prim(ast.PrimInt), Size: 3, Sized: true}
	a4 := &ast.ArrayType{Elem: ast.Prim(ast.PrimI32), Size: 4, Sized: true}
	if !env.Compatible(a3, b3) {
		t.Fatalf("same-size arrays with compatible elements rejected")
	}
	if env.Compatible(a3, a4) {
		t.Fatalf("different-size arrays accepted")
	}
}

func TestCompatibleCompounds(t *testing.T) {
	env := NewTypeEnv()
	tupA := &ast.TupleType{Elems: []ast.Type{ast.Prim(ast.PrimI32), ast.Prim(ast.PrimBool)}}
	tupB := &ast.TupleType{Elems: []ast.Type{ast.Prim(ast.PrimInt), ast.Prim(ast.PrimBool)}}
	tupC := &ast.TupleType{Elems: []ast.Type{ast.Prim(ast.PrimI32)}}
	if !env.Compatible(tupA, tupB) {
		t.Fatalf("pairwise-compatible tuples rejected")
	}
	if env.Compatible(tupA, tupC) {
		t.Fatalf("different-arity tuples accepted")
	}

	genA := &ast.GenericType{Name: "Vec", Args: []ast.Type{ast.Prim(ast.PrimI32)}}
	genB := &ast.GenericType{Name: "Vec", Args: []ast.Type{ast.Prim(ast.PrimInt)}}
	genC := &ast.GenericType{Name: "Box", Args: []ast.Type{ast.Prim(ast.PrimI32)}}
	if !env.Compatible(genA, genB) {
		t.Fatalf("same-base generics with compatible args rejected")
	}
	if env.Compatible(genA, genC) {
		t.Fatalf("different-base generics accepted")
	}

	fallA := &ast.FallibleType{Inner: ast.Prim(ast.PrimI32)}
	fallB := &ast.FallibleType{Inner: ast.Prim(ast.PrimInt)}
	if !env.Compatible(fallA, fallB) {
		t.Fatalf("fallible types with compatible inners rejected")
	}
	if env.Compatible(fallA, ast.Prim(ast.PrimI32)) {
		t.Fatalf("fallible compatible with bare inner")
	}

	fnA := &ast.FnType{Params: []ast.Type{ast.Prim(ast.PrimI32)}, Return: ast.Prim(ast.PrimBool)}
	fnB := &ast.FnType{Params: []ast.Type{ast.Prim(ast.PrimInt)}, Return: ast.Prim(ast.PrimBool)}
	fnC := &ast.FnType{Params: []ast.Type{ast.Prim(ast.PrimI32)}}
	if !env.Compatible(fnA, fnB) {
		t.Fatalf("compatible fn types rejected")
	}
	if env.Compatible(fnA, fnC) {
		t.Fatalf("fn types with different returns accepted")
	}
}

func TestResolveStructThroughAlias(t *testing.T) {
	env := NewTypeEnv()
	env.Register(&TypeInfo{Name: "Point", Kind: InfoStruct, Fields: []FieldInfo{
		{Name: "x", Type: ast.Prim(ast.PrimI32)},
	}})
	env.Register(&TypeInfo{Name: "Pt", Kind: InfoAlias, Alias: &ast.NamedType{Name: "Point"}})
	info, ok := env.ResolveStruct("Pt")
	if !ok || info.Name != "Point" {
		t.Fatalf("alias did not resolve to struct: %+v", info)
	}
}

func TestRegisterRejectsPrimitiveNames(t *testing.T) {
	env := NewTypeEnv()
	if env.Register(&TypeInfo{Name: "int", Kind: InfoStruct}) {
		t.Fatalf("registered a struct named int")
	}
}

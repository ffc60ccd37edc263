package codegen

import (
	"fmt"
	"strings"

	"ferric/internal/ast"
)

// typeString maps a source type onto its target spelling.
func (g *Generator) typeString(t ast.Type) string {
	switch tt := t.(type) {
	case *ast.PrimType:
		return primString(tt.Kind)
	case *ast.NamedType:
		return tt.Name
	case *ast.PointerType:
		// Raw pointers become references; the borrow checker keeps the
		// translated code honest where the source was not.
		if tt.Mut {
			return "&mut " + g.typeString(tt.Elem)
		}
		return "&" + g.typeString(tt.Elem)
	case *ast.RefType:
		if tt.Mut {
			return "&mut " + g.typeString(tt.Elem)
		}
		return "&" + g.typeString(tt.Elem)
	case *ast.ArrayType:
		if tt.Sized {
			return fmt.Sprintf("[%s; %d]", g.typeString(tt.Elem), tt.Size)
		}
		return "[" + g.typeString(tt.Elem) + "]"
	case *ast.SliceType:
		return "&[" + g.typeString(tt.Elem) + "]"
	case *ast.TupleType:
		parts := make([]string, len(tt.Elems))
		for i, el := range tt.Elems {
			parts[i] = g.typeString(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *ast.GenericType:
		args := make([]string, len(tt.Args))
		for i, arg := range tt.Args {
			args[i] = g.typeString(arg)
		}
		return tt.Name + "<" + strings.Join(args, ", ") + ">"
	case *ast.FnType:
		params := make([]string, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = g.typeString(p)
		}
		s := "fn(" + strings.Join(params, ", ") + ")"
		if tt.Return != nil {
			s += " -> " + g.typeString(tt.Return)
		}
		return s
	case *ast.FallibleType:
		return "Result<" + g.typeString(tt.Inner) + ", String>"
	case *ast.UnknownType:
		return "_"
	}
	return "_"
}

func primString(k ast.PrimKind) string {
	switch k {
	case ast.PrimVoid:
		return "()"
	case ast.PrimInt:
		return "i32"
	case ast.PrimFloat:
		return "f64"
	case ast.PrimString:
		return "&str"
	}
	// The remaining primitives already wear their target names.
	return k.String()
}

package ast

import (
	"fmt"
	"strings"
)

// TypeText renders a type expression in source spelling, for diagnostics.
func TypeText(t Type) string {
	switch t := t.(type) {
	case *PrimType:
		return t.Kind.String()
	case *NamedType:
		return t.Name
	case *PointerType:
		if t.Mut {
			return "*mut " + TypeText(t.Elem)
		}
		return "*" + TypeText(t.Elem)
	case *RefType:
		if t.Mut {
			return "&mut " + TypeText(t.Elem)
		}
		return "&" + TypeText(t.Elem)
	case *ArrayType:
		if t.Sized {
			return fmt.Sprintf("[%s; %d]", TypeText(t.Elem), t.Size)
		}
		return "[" + TypeText(t.Elem) + ";]"
	case *SliceType:
		return "[" + TypeText(t.Elem) + "]"
	case *TupleType:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = TypeText(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *GenericType:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = TypeText(a)
		}
		return t.Name + "<" + strings.Join(parts, ", ") + ">"
	case *FnType:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = TypeText(p)
		}
		s := "fn(" + strings.Join(parts, ", ") + ")"
		if t.Return != nil {
			s += " -> " + TypeText(t.Return)
		}
		return s
	case *FallibleType:
		return TypeText(t.Inner) + "?"
	case *UnknownType:
		return "_"
	default:
		return "<?>"
	}
}

package sema

import (
	"ferric/internal/ast"
	"ferric/internal/token"
)

// analyzeExpr infers the type of an expression, appending errors as it
// goes. It never returns nil: anything unresolvable types as unknown so one
// mistake does not cascade into a wall of follow-on mismatches.
func (a *Analyzer) analyzeExpr(expr ast.Expr) ast.Type {
	switch e := expr.(type) {
	case *ast.IntLit:
		return ast.Prim(ast.PrimI32)
	case *ast.FloatLit:
		return ast.Prim(ast.PrimF64)
	case *ast.StringLit:
		return ast.Prim(ast.PrimString)
	case *ast.CharLit:
		return ast.Prim(ast.PrimChar)
	case *ast.BoolLit:
		return ast.Prim(ast.PrimBool)
	case *ast.NullLit:
		// NULL stays open until generation rewrites it.
		return ast.Unknown()
	case *ast.IdentExpr:
		sym, ok := a.symbols.Lookup(e.Name)
		if !ok {
			a.errorf(UndefinedVariable, e.SpanV, "undefined variable '%s'", e.Name)
			return ast.Unknown()
		}
		if sym.Type == nil {
			return ast.Unknown()
		}
		return sym.Type
	case *ast.BinaryExpr:
		return a.analyzeBinary(e)
	case *ast.UnaryExpr:
		return a.analyzeUnary(e)
	case *ast.ParenExpr:
		return a.analyzeExpr(e.X)
	case *ast.CallExpr:
		return a.analyzeCall(e)
	case *ast.MacroCallExpr:
		for _, arg := range e.Args {
			a.analyzeExpr(arg)
		}
		return ast.Unknown()
	case *ast.MethodCallExpr:
		a.analyzeExpr(e.Recv)
		for _, arg := range e.Args {
			a.analyzeExpr(arg)
		}
		return ast.Unknown()
	case *ast.PathCallExpr:
		for _, arg := range e.Args {
			a.analyzeExpr(arg)
		}
		return &ast.NamedType{Name: e.TypeName, SpanV: e.SpanV}
	case *ast.GenericCallExpr:
		for _, arg := range e.Args {
			a.analyzeExpr(arg)
		}
		return &ast.GenericType{Name: e.TypeName, Args: e.TypeArgs, SpanV: e.SpanV}
	case *ast.FieldExpr:
		return a.analyzeField(e)
	case *ast.IndexExpr:
		return a.analyzeIndex(e)
	case *ast.CastExpr:
		return a.analyzeCast(e)
	case *ast.SizeofExpr:
		return ast.Prim(ast.PrimU64)
	case *ast.TernaryExpr:
		return a.analyzeTernary(e)
	case *ast.StructLit:
		return a.analyzeStructLit(e)
	case *ast.ArrayLit:
		return a.analyzeArrayLit(e)
	case *ast.TupleLit:
		tup := &ast.TupleType{SpanV: e.SpanV}
		for _, el := range e.Elems {
			tup.Elems = append(tup.Elems, a.analyzeExpr(el))
		}
		return tup
	case *ast.RangeExpr:
		a.analyzeExpr(e.Low)
		a.analyzeExpr(e.High)
		return ast.Unknown()
	case *ast.RawExpr:
		return ast.Unknown()
	case *ast.TryExpr:
		return a.analyzeTry(e)
	}
	return ast.Unknown()
}

func (a *Analyzer) analyzeBinary(e *ast.BinaryExpr) ast.Type {
	left := a.analyzeExpr(e.Left)
	right := a.analyzeExpr(e.Right)
	if !a.types.Compatible(left, right) {
		a.errorf(TypeMismatch, e.SpanV, "operands of '%s' have incompatible types %s and %s",
			e.Op, ast.TypeText(left), ast.TypeText(right))
	}
	switch e.Op {
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.AndAnd, token.OrOr:
		return ast.Prim(ast.PrimBool)
	}
	// Arithmetic, bitwise, shift, and assignment all carry the left type.
	return left
}

func (a *Analyzer) analyzeUnary(e *ast.UnaryExpr) ast.Type {
	t := a.analyzeExpr(e.X)
	switch e.Op {
	case token.Bang:
		return ast.Prim(ast.PrimBool)
	case token.Minus, token.Tilde, token.PlusPlus, token.MinusMinus:
		return t
	case token.Amp:
		return &ast.RefType{Elem: t, SpanV: e.SpanV}
	case token.Star:
		switch pt := t.(type) {
		case *ast.PointerType:
			return pt.Elem
		case *ast.RefType:
			return pt.Elem
		case *ast.UnknownType:
			return t
		}
		a.errorf(InvalidOperation, e.SpanV, "cannot dereference value of type %s", ast.TypeText(t))
		return ast.Unknown()
	}
	return t
}

func (a *Analyzer) analyzeCall(e *ast.CallExpr) ast.Type {
	calleeType := a.analyzeExpr(e.Callee)
	argTypes := make([]ast.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.analyzeExpr(arg)
	}
	switch sig := calleeType.(type) {
	case *ast.FnType:
		if len(argTypes) != len(sig.Params) {
			// Positional checks against a shifted argument list would
			// only mislead, so the count error stands alone.
			a.errorf(TypeMismatch, e.SpanV, "expected %d argument(s), found %d",
				len(sig.Params), len(argTypes))
		} else {
			for i, pt := range sig.Params {
				if !a.types.Compatible(pt, argTypes[i]) {
					a.errorf(TypeMismatch, e.Args[i].Span(), "argument %d: expected %s, found %s",
						i+1, ast.TypeText(pt), ast.TypeText(argTypes[i]))
				}
			}
		}
		if sig.Return == nil {
			return ast.Prim(ast.PrimVoid)
		}
		return sig.Return
	case *ast.UnknownType:
		return ast.Unknown()
	}
	a.errorf(InvalidOperation, e.SpanV, "cannot call value of type %s", ast.TypeText(calleeType))
	return ast.Unknown()
}

func (a *Analyzer) analyzeField(e *ast.FieldExpr) ast.Type {
	recv := a.analyzeExpr(e.X)
	if _, ok := recv.(*ast.UnknownType); ok {
		return ast.Unknown()
	}
	named, ok := recv.(*ast.NamedType)
	if !ok {
		a.errorf(InvalidOperation, e.SpanV, "cannot access field '%s' on value of type %s",
			e.Name, ast.TypeText(recv))
		return ast.Unknown()
	}
	info, ok := a.types.ResolveStruct(named.Name)
	if !ok {
		a.errorf(InvalidOperation, e.SpanV, "type %s has no fields", named.Name)
		return ast.Unknown()
	}
	field, ok := info.Field(e.Name)
	if !ok {
		a.errorf(InvalidOperation, e.SpanV, "struct %s has no field '%s'", info.Name, e.Name)
		return ast.Unknown()
	}
	return field.Type
}

func (a *Analyzer) analyzeIndex(e *ast.IndexExpr) ast.Type {
	recv := a.analyzeExpr(e.X)
	idx := a.analyzeExpr(e.Index)
	if pt, ok := idx.(*ast.PrimType); ok && !pt.Kind.IsIntegerFamily() {
		a.errorf(TypeMismatch, e.Index.Span(), "index must be an integer, found %s", ast.TypeText(idx))
	}
	switch rt := recv.(type) {
	case *ast.ArrayType:
		return rt.Elem
	case *ast.SliceType:
		return rt.Elem
	case *ast.UnknownType:
		return ast.Unknown()
	}
	a.errorf(InvalidOperation, e.SpanV, "cannot index value of type %s", ast.TypeText(recv))
	return ast.Unknown()
}

// analyzeCast allows primitive-to-primitive conversions and anything with a
// pointer on either side; everything else is rejected. The cast always types
// as its target so one bad cast stays one error.
func (a *Analyzer) analyzeCast(e *ast.CastExpr) ast.Type {
	from := a.analyzeExpr(e.X)
	if !castAllowed(from, e.To) {
		a.errorf(InvalidOperation, e.SpanV, "invalid cast from %s to %s",
			ast.TypeText(from), ast.TypeText(e.To))
	}
	return e.To
}

func castAllowed(from, to ast.Type) bool {
	if isUnknown(from) || isUnknown(to) {
		return true
	}
	if isPointerLike(from) || isPointerLike(to) {
		return true
	}
	_, fromPrim := from.(*ast.PrimType)
	_, toPrim := to.(*ast.PrimType)
	return fromPrim && toPrim
}

func isUnknown(t ast.Type) bool {
	_, ok := t.(*ast.UnknownType)
	return ok
}

func isPointerLike(t ast.Type) bool {
	switch t.(type) {
	case *ast.PointerType, *ast.RefType:
		return true
	}
	return false
}

// analyzeTernary reports the condition and the branch mismatch
// independently; both being wrong yields two errors, not one.
func (a *Analyzer) analyzeTernary(e *ast.TernaryExpr) ast.Type {
	a.checkCondition(e.Cond)
	thenType := a.analyzeExpr(e.Then)
	elseType := a.analyzeExpr(e.Else)
	if !a.types.Compatible(thenType, elseType) {
		a.errorf(TypeMismatch, e.SpanV, "ternary branches have incompatible types %s and %s",
			ast.TypeText(thenType), ast.TypeText(elseType))
	}
	return thenType
}

func (a *Analyzer) analyzeStructLit(e *ast.StructLit) ast.Type {
	info, known := a.types.ResolveStruct(e.Name)
	for _, f := range e.Fields {
		valueType := a.analyzeExpr(f.Value)
		if !known {
			continue
		}
		field, ok := info.Field(f.Name)
		if !ok {
			a.errorf(InvalidOperation, f.SpanV, "struct %s has no field '%s'", info.Name, f.Name)
			continue
		}
		if !a.types.Compatible(field.Type, valueType) {
			a.errorf(TypeMismatch, f.SpanV, "field '%s' expects %s, found %s",
				f.Name, ast.TypeText(field.Type), ast.TypeText(valueType))
		}
	}
	return &ast.NamedType{Name: e.Name, SpanV: e.SpanV}
}

// analyzeArrayLit types the literal from its first element and reports each
// later element that disagrees. An empty literal is a zero-length array of
// unknowns.
func (a *Analyzer) analyzeArrayLit(e *ast.ArrayLit) ast.Type {
	if len(e.Elems) == 0 {
		return &ast.ArrayType{Elem: ast.Unknown(), Size: 0, Sized: true, SpanV: e.SpanV}
	}
	first := a.analyzeExpr(e.Elems[0])
	for _, el := range e.Elems[1:] {
		et := a.analyzeExpr(el)
		if !a.types.Compatible(first, et) {
			a.errorf(TypeMismatch, el.Span(), "array element of type %s does not match element type %s",
				ast.TypeText(et), ast.TypeText(first))
		}
	}
	return &ast.ArrayType{Elem: first, Size: int64(len(e.Elems)), Sized: true, SpanV: e.SpanV}
}

func (a *Analyzer) analyzeTry(e *ast.TryExpr) ast.Type {
	t := a.analyzeExpr(e.X)
	switch ft := t.(type) {
	case *ast.FallibleType:
		return ft.Inner
	case *ast.UnknownType:
		return t
	}
	a.errorf(InvalidOperation, e.SpanV, "'!' can only be used on fallible types, found %s", ast.TypeText(t))
	return ast.Unknown()
}

package sema

import "ferric/internal/ast"

func (a *Analyzer) analyzeStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BindStmt:
		a.analyzeBind(s)
	case *ast.Block:
		a.symbols.EnterScope()
		for _, inner := range s.Stmts {
			a.analyzeStmt(inner)
		}
		a.symbols.ExitScope()
	case *ast.ExprStmt:
		a.analyzeExpr(s.X)
	case *ast.ReturnStmt:
		if s.X != nil {
			a.analyzeExpr(s.X)
		}
	case *ast.IfStmt:
		a.checkCondition(s.Cond)
		a.analyzeStmt(s.Then)
		if s.Else != nil {
			a.analyzeStmt(s.Else)
		}
	case *ast.WhileStmt:
		a.checkCondition(s.Cond)
		a.analyzeStmt(s.Body)
	case *ast.ForStmt:
		a.analyzeFor(s)
	case *ast.ForInStmt:
		a.analyzeForIn(s)
	case *ast.SwitchStmt:
		a.analyzeSwitch(s)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// Labels are not resolved; unmatched ones surface in the target.
	case *ast.NestedFnStmt:
		a.analyzeNestedFn(s)
	}
}

func (a *Analyzer) checkCondition(cond ast.Expr) {
	t := a.analyzeExpr(cond)
	if !a.types.Compatible(ast.Prim(ast.PrimBool), t) {
		a.errorf(TypeMismatch, cond.Span(), "condition must be bool, found %s", ast.TypeText(t))
	}
}

func (a *Analyzer) analyzeBind(s *ast.BindStmt) {
	var initType ast.Type = ast.Unknown()
	if s.Init != nil {
		initType = a.analyzeExpr(s.Init)
	}
	bound := s.DeclType
	if bound == nil {
		bound = initType
	} else if s.Init != nil && !a.types.Compatible(bound, initType) {
		a.errorf(TypeMismatch, s.SpanV, "cannot initialize '%s' of type %s with %s",
			s.Name, ast.TypeText(bound), ast.TypeText(initType))
	}
	kind := SymbolVariable
	if s.Kind == ast.BindConst {
		kind = SymbolConst
	}
	ok := a.symbols.Insert(&Symbol{
		Name:    s.Name,
		Kind:    kind,
		Type:    bound,
		Mutable: s.Mutable,
		Span:    s.SpanV,
	})
	if !ok {
		a.errorf(DuplicateDefinition, s.SpanV, "'%s' is already defined in this scope", s.Name)
	}
}

// analyzeFor runs the whole three-part loop in one scope: the initializer
// binding is visible to the condition, the increment, and the body, and
// nowhere outside the loop.
func (a *Analyzer) analyzeFor(s *ast.ForStmt) {
	a.symbols.EnterScope()
	if s.Init != nil {
		a.analyzeStmt(s.Init)
	}
	if s.Cond != nil {
		a.checkCondition(s.Cond)
	}
	if s.Post != nil {
		a.analyzeExpr(s.Post)
	}
	for _, inner := range s.Body.Stmts {
		a.analyzeStmt(inner)
	}
	a.symbols.ExitScope()
}

// analyzeForIn binds the loop variable with the iterated expression's own
// type. Element projection is left to the target compiler, which knows the
// iteration protocol.
func (a *Analyzer) analyzeForIn(s *ast.ForInStmt) {
	iterType := a.analyzeExpr(s.Iter)
	a.symbols.EnterScope()
	a.symbols.Insert(&Symbol{
		Name: s.Var,
		Kind: SymbolVariable,
		Type: iterType,
		Span: s.SpanV,
	})
	for _, inner := range s.Body.Stmts {
		a.analyzeStmt(inner)
	}
	a.symbols.ExitScope()
}

func (a *Analyzer) analyzeSwitch(s *ast.SwitchStmt) {
	scrutType := a.analyzeExpr(s.Scrutinee)
	for _, c := range s.Cases {
		for _, v := range c.Values {
			vt := a.analyzeExpr(v)
			if !a.types.Compatible(scrutType, vt) {
				a.errorf(TypeMismatch, v.Span(), "case value of type %s does not match switch value of type %s",
					ast.TypeText(vt), ast.TypeText(scrutType))
			}
		}
		a.analyzeStmt(c.Body)
	}
	if s.Default != nil {
		a.analyzeStmt(s.Default)
	}
}

// analyzeNestedFn computes the capture descriptor against the scopes live at
// the definition point, then binds the name and checks the body like any
// other function.
func (a *Analyzer) analyzeNestedFn(s *ast.NestedFnStmt) {
	a.captures[s.ID] = a.captureOf(s.Fn)
	ok := a.symbols.Insert(&Symbol{
		Name: s.Fn.Name,
		Kind: SymbolFunction,
		Type: fnSignature(s.Fn),
		Span: s.SpanV,
	})
	if !ok {
		a.errorf(DuplicateDefinition, s.SpanV, "'%s' is already defined in this scope", s.Fn.Name)
	}
	a.analyzeFnBody(s.Fn, "")
}

package sema

import (
	"ferric/internal/ast"
	"ferric/internal/token"
)

// Capture is one variable a nested function pulls from an enclosing scope.
type Capture struct {
	Name string
	Type ast.Type
}

// CaptureDescriptor summarizes a nested function's environment: which outer
// variables it reads, in first-reference order, and whether any of them is
// written inside the body.
type CaptureDescriptor struct {
	Captured []Capture
	Mutable  bool
}

// Captures reports whether the descriptor names the given variable.
func (d CaptureDescriptor) Captures(name string) bool {
	for _, c := range d.Captured {
		if c.Name == name {
			return true
		}
	}
	return false
}

// captureScan walks one nested function body. locals tracks names the body
// binds itself (parameters, bindings, loop variables) as a frame stack;
// anything else that resolves to an outer variable is a capture.
type captureScan struct {
	analyzer *Analyzer
	locals   []map[string]bool
	seen     map[string]bool
	desc     CaptureDescriptor
}

// captureOf computes the descriptor for a nested function against the scopes
// live at its definition point. Doubly-nested functions are skipped here;
// each gets its own descriptor when the analyzer reaches it.
func (a *Analyzer) captureOf(fn *ast.FnItem) CaptureDescriptor {
	scan := &captureScan{
		analyzer: a,
		locals:   []map[string]bool{make(map[string]bool)},
		seen:     make(map[string]bool),
	}
	for _, p := range fn.Params {
		scan.bind(p.Name)
	}
	if fn.Body != nil {
		for _, stmt := range fn.Body.Stmts {
			scan.stmt(stmt)
		}
	}
	return scan.desc
}

func (s *captureScan) push() {
	s.locals = append(s.locals, make(map[string]bool))
}

func (s *captureScan) pop() {
	s.locals = s.locals[:len(s.locals)-1]
}

func (s *captureScan) bind(name string) {
	s.locals[len(s.locals)-1][name] = true
}

func (s *captureScan) isLocal(name string) bool {
	for i := len(s.locals) - 1; i >= 0; i-- {
		if s.locals[i][name] {
			return true
		}
	}
	return false
}

// reference records a use of name. mutates marks uses that write through the
// name; a mutated capture makes the whole descriptor mutable.
func (s *captureScan) reference(name string, mutates bool) {
	if s.isLocal(name) {
		return
	}
	sym, ok := s.analyzer.symbols.Lookup(name)
	if !ok || sym.Kind != SymbolVariable {
		return
	}
	if !s.seen[name] {
		s.seen[name] = true
		s.desc.Captured = append(s.desc.Captured, Capture{Name: name, Type: sym.Type})
	}
	if mutates {
		s.desc.Mutable = true
	}
}

func (s *captureScan) stmt(stmt ast.Stmt) {
	switch st := stmt.(type) {
	case *ast.BindStmt:
		if st.Init != nil {
			s.expr(st.Init, false)
		}
		s.bind(st.Name)
	case *ast.Block:
		s.push()
		for _, inner := range st.Stmts {
			s.stmt(inner)
		}
		s.pop()
	case *ast.ExprStmt:
		s.expr(st.X, false)
	case *ast.ReturnStmt:
		if st.X != nil {
			s.expr(st.X, false)
		}
	case *ast.IfStmt:
		s.expr(st.Cond, false)
		s.stmt(st.Then)
		if st.Else != nil {
			s.stmt(st.Else)
		}
	case *ast.WhileStmt:
		s.expr(st.Cond, false)
		s.stmt(st.Body)
	case *ast.ForStmt:
		s.push()
		if st.Init != nil {
			s.stmt(st.Init)
		}
		if st.Cond != nil {
			s.expr(st.Cond, false)
		}
		if st.Post != nil {
			s.expr(st.Post, false)
		}
		for _, inner := range st.Body.Stmts {
			s.stmt(inner)
		}
		s.pop()
	case *ast.ForInStmt:
		s.expr(st.Iter, false)
		s.push()
		s.bind(st.Var)
		for _, inner := range st.Body.Stmts {
			s.stmt(inner)
		}
		s.pop()
	case *ast.SwitchStmt:
		s.expr(st.Scrutinee, false)
		for _, c := range st.Cases {
			for _, v := range c.Values {
				s.expr(v, false)
			}
			s.stmt(c.Body)
		}
		if st.Default != nil {
			s.stmt(st.Default)
		}
	case *ast.BreakStmt, *ast.ContinueStmt:
	case *ast.NestedFnStmt:
		// A doubly-nested function captures for itself; only its name
		// becomes local here.
		s.bind(st.Fn.Name)
	}
}

func (s *captureScan) expr(expr ast.Expr, mutates bool) {
	switch e := expr.(type) {
	case *ast.IdentExpr:
		s.reference(e.Name, mutates)
	case *ast.BinaryExpr:
		s.expr(e.Left, e.Op.IsAssignOp())
		s.expr(e.Right, false)
	case *ast.UnaryExpr:
		inc := e.Op == token.PlusPlus || e.Op == token.MinusMinus
		s.expr(e.X, mutates || inc)
	case *ast.ParenExpr:
		s.expr(e.X, mutates)
	case *ast.CallExpr:
		s.expr(e.Callee, false)
		s.exprs(e.Args)
	case *ast.MacroCallExpr:
		s.exprs(e.Args)
	case *ast.MethodCallExpr:
		s.expr(e.Recv, false)
		s.exprs(e.Args)
	case *ast.PathCallExpr:
		s.exprs(e.Args)
	case *ast.GenericCallExpr:
		s.exprs(e.Args)
	case *ast.FieldExpr:
		s.expr(e.X, mutates)
	case *ast.IndexExpr:
		s.expr(e.X, mutates)
		s.expr(e.Index, false)
	case *ast.CastExpr:
		s.expr(e.X, false)
	case *ast.TernaryExpr:
		s.expr(e.Cond, false)
		s.expr(e.Then, mutates)
		s.expr(e.Else, mutates)
	case *ast.StructLit:
		for _, f := range e.Fields {
			s.expr(f.Value, false)
		}
	case *ast.ArrayLit:
		s.exprs(e.Elems)
	case *ast.TupleLit:
		s.exprs(e.Elems)
	case *ast.RangeExpr:
		s.expr(e.Low, false)
		s.expr(e.High, false)
	case *ast.TryExpr:
		s.expr(e.X, false)
	}
}

func (s *captureScan) exprs(list []ast.Expr) {
	for _, e := range list {
		s.expr(e, false)
	}
}

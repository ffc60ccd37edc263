package codegen

import (
	"strings"

	"ferric/internal/ast"
)

func (g *Generator) stmts(list []ast.Stmt) {
	for _, s := range list {
		g.stmt(s)
	}
}

func (g *Generator) stmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BindStmt:
		g.bindStmt(s)
	case *ast.Block:
		g.line("{")
		g.indent++
		g.pushScope()
		g.stmts(s.Stmts)
		g.popScope()
		g.indent--
		g.line("}")
	case *ast.ExprStmt:
		g.line(g.expr(s.X) + ";")
	case *ast.ReturnStmt:
		if s.X == nil {
			g.line("return;")
		} else {
			g.line("return " + g.expr(s.X) + ";")
		}
	case *ast.IfStmt:
		g.ifStmt(s, "")
	case *ast.WhileStmt:
		g.line(label(s.Label) + "while " + g.condition(s.Cond) + " {")
		g.indent++
		g.pushScope()
		g.stmts(s.Body.Stmts)
		g.popScope()
		g.indent--
		g.line("}")
	case *ast.ForStmt:
		g.forStmt(s)
	case *ast.ForInStmt:
		g.line(label(s.Label) + "for " + s.Var + " in " + g.condition(s.Iter) + " {")
		g.indent++
		g.pushScope()
		g.bindLocal(s.Var)
		g.stmts(s.Body.Stmts)
		g.popScope()
		g.indent--
		g.line("}")
	case *ast.SwitchStmt:
		g.switchStmt(s)
	case *ast.BreakStmt:
		if s.Label != "" {
			g.line("break '" + s.Label + ";")
		} else {
			g.line("break;")
		}
	case *ast.ContinueStmt:
		if s.Label != "" {
			g.line("continue '" + s.Label + ";")
		} else {
			g.line("continue;")
		}
	case *ast.NestedFnStmt:
		g.closure(s)
	}
}

func label(name string) string {
	if name == "" {
		return ""
	}
	return "'" + name + ": "
}

func (g *Generator) bindStmt(s *ast.BindStmt) {
	kw := "let "
	if s.Kind == ast.BindVar || s.Mutable {
		kw = "let mut "
	}
	out := kw + s.Name
	if s.DeclType != nil {
		out += ": " + g.typeString(s.DeclType)
	}
	if s.Init != nil {
		out += " = " + g.expr(s.Init)
	}
	g.line(out + ";")
	g.bindLocal(s.Name)
}

// ifStmt renders a conditional chain; prefix carries the "} else " of the
// previous link so the chain stays flat.
func (g *Generator) ifStmt(s *ast.IfStmt, prefix string) {
	g.line(prefix + "if " + g.condition(s.Cond) + " {")
	g.indent++
	g.pushScope()
	g.stmts(s.Then.Stmts)
	g.popScope()
	g.indent--
	switch e := s.Else.(type) {
	case nil:
		g.line("}")
	case *ast.IfStmt:
		g.ifStmt(e, "} else ")
	case *ast.Block:
		g.line("} else {")
		g.indent++
		g.pushScope()
		g.stmts(e.Stmts)
		g.popScope()
		g.indent--
		g.line("}")
	default:
		g.line("} else {")
		g.indent++
		g.stmt(s.Else)
		g.indent--
		g.line("}")
	}
}

// forStmt lowers the three-part loop: the initializer runs once in a
// wrapping block, the condition drives a while loop, and the increment
// lands at the end of the body. A loop with no condition spins forever.
func (g *Generator) forStmt(s *ast.ForStmt) {
	g.pushScope()
	wrapped := s.Init != nil
	if wrapped {
		g.line("{")
		g.indent++
		g.stmt(s.Init)
	}
	if s.Cond == nil {
		g.line(label(s.Label) + "loop {")
	} else {
		g.line(label(s.Label) + "while " + g.condition(s.Cond) + " {")
	}
	g.indent++
	g.stmts(s.Body.Stmts)
	if s.Post != nil {
		g.line(g.expr(s.Post) + ";")
	}
	g.indent--
	g.line("}")
	if wrapped {
		g.indent--
		g.line("}")
	}
	g.popScope()
}

// switchStmt lowers to match. Multi-value cases join with or-patterns, a
// trailing break in a case body is dropped, and a wildcard arm keeps the
// match exhaustive when no default exists.
func (g *Generator) switchStmt(s *ast.SwitchStmt) {
	g.line("match " + g.condition(s.Scrutinee) + " {")
	g.indent++
	for _, c := range s.Cases {
		values := make([]string, len(c.Values))
		for i, v := range c.Values {
			values[i] = g.expr(v)
		}
		g.line(strings.Join(values, " | ") + " => {")
		g.indent++
		g.pushScope()
		g.stmts(dropTrailingBreak(c.Body.Stmts))
		g.popScope()
		g.indent--
		g.line("}")
	}
	if s.Default != nil {
		g.line("_ => {")
		g.indent++
		g.pushScope()
		g.stmts(dropTrailingBreak(s.Default.Stmts))
		g.popScope()
		g.indent--
		g.line("}")
	} else {
		g.line("_ => {}")
	}
	g.indent--
	g.line("}")
}

func dropTrailingBreak(stmts []ast.Stmt) []ast.Stmt {
	if n := len(stmts); n > 0 {
		if br, ok := stmts[n-1].(*ast.BreakStmt); ok && br.Label == "" {
			return stmts[:n-1]
		}
	}
	return stmts
}

// closure renders a nested function as a closure binding. A descriptor that
// mutates its captures needs a mut binding for the FnMut call.
func (g *Generator) closure(s *ast.NestedFnStmt) {
	kw := "let "
	if desc, ok := g.captures[s.ID]; ok && desc.Mutable {
		kw = "let mut "
	}
	params := make([]string, len(s.Fn.Params))
	for i, p := range s.Fn.Params {
		name := p.Name
		if p.Mutable {
			name = "mut " + name
		}
		params[i] = name + ": " + g.typeString(p.Type)
	}
	g.line(kw + s.Fn.Name + " = |" + strings.Join(params, ", ") + "|" + g.returnClause(s.Fn.Return) + " {")
	g.bindLocal(s.Fn.Name)
	g.indent++
	g.pushScope()
	for _, p := range s.Fn.Params {
		g.bindLocal(p.Name)
	}
	if s.Fn.Body != nil {
		g.stmts(s.Fn.Body.Stmts)
	}
	g.popScope()
	g.indent--
	g.line("};")
}

package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"ferric/internal/ast"
	"ferric/internal/token"
)

func (g *Generator) item(item ast.Item) {
	switch it := item.(type) {
	case *ast.FnItem:
		g.fnItem(it)
	case *ast.StructItem:
		g.structItem(it)
	case *ast.EnumItem:
		g.enumItem(it)
	case *ast.TypedefItem:
		g.line("type " + it.Name + " = " + g.typeString(it.Target) + ";")
	case *ast.NamespaceItem:
		g.line("mod " + it.Name + " {")
		g.indent++
		for _, inner := range it.Items {
			g.item(inner)
		}
		g.indent--
		g.line("}")
	case *ast.ImportItem:
		g.line("use " + strings.Join(it.Segments, "::") + ";")
	case *ast.ExternItem:
		g.line(`extern "C" {`)
		g.indent++
		for _, decl := range it.Decls {
			g.line("fn " + decl.Name + "(" + g.params(decl.Params) + ")" + g.returnClause(decl.Return) + ";")
		}
		g.indent--
		g.line("}")
	case *ast.ConstItem:
		g.line("const " + it.Name + ": " + g.declaredType(it.Type) + " = " + g.expr(it.Value) + ";")
	case *ast.StaticItem:
		kw := "static "
		if it.Mutable {
			kw = "static mut "
		}
		g.line(kw + it.Name + ": " + g.declaredType(it.Type) + " = " + g.expr(it.Value) + ";")
	case *ast.MacroItem:
		g.macroItem(it)
	}
}

func (g *Generator) declaredType(t ast.Type) string {
	if t == nil {
		return "_"
	}
	return g.typeString(t)
}

func (g *Generator) params(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		name := p.Name
		if p.Mutable {
			name = "mut " + name
		}
		parts[i] = name + ": " + g.typeString(p.Type)
	}
	return strings.Join(parts, ", ")
}

func (g *Generator) returnClause(ret ast.Type) string {
	if ret == nil {
		return ""
	}
	return " -> " + g.typeString(ret)
}

func (g *Generator) fnItem(fn *ast.FnItem) {
	if fn.Body == nil {
		g.line("fn " + fn.Name + "(" + g.params(fn.Params) + ")" + g.returnClause(fn.Return) + ";")
		return
	}
	g.line("fn " + fn.Name + "(" + g.params(fn.Params) + ")" + g.returnClause(fn.Return) + " {")
	g.indent++
	g.pushScope()
	for _, p := range fn.Params {
		g.bindLocal(p.Name)
	}
	g.stmts(fn.Body.Stmts)
	g.popScope()
	g.indent--
	g.line("}")
}

func (g *Generator) structItem(st *ast.StructItem) {
	g.line("struct " + st.Name + " {")
	g.indent++
	for _, f := range st.Fields {
		g.line(f.Name + ": " + g.typeString(f.Type) + ",")
	}
	g.indent--
	g.line("}")
	if len(st.Methods) == 0 {
		return
	}
	g.buf.WriteByte('\n')
	g.line("impl " + st.Name + " {")
	g.indent++
	for i, m := range st.Methods {
		if i > 0 {
			g.buf.WriteByte('\n')
		}
		g.method(m)
	}
	g.indent--
	g.line("}")
}

func (g *Generator) method(m *ast.FnItem) {
	recv := ""
	if m.SelfRecv {
		recv = "&self"
		if mutatesSelf(m.Body) {
			recv = "&mut self"
		}
		if len(m.Params) > 0 {
			recv += ", "
		}
	}
	g.line("fn " + m.Name + "(" + recv + g.params(m.Params) + ")" + g.returnClause(m.Return) + " {")
	g.indent++
	g.pushScope()
	for _, p := range m.Params {
		g.bindLocal(p.Name)
	}
	g.stmts(m.Body.Stmts)
	g.popScope()
	g.indent--
	g.line("}")
}

func (g *Generator) enumItem(en *ast.EnumItem) {
	g.line("enum " + en.Name + " {")
	g.indent++
	for _, v := range en.Variants {
		if v.HasValue {
			g.line(fmt.Sprintf("%s = %d,", v.Name, v.Value))
		} else {
			g.line(v.Name + ",")
		}
	}
	g.indent--
	g.line("}")
}

// macroItem rewrites a #define into a macro_rules! definition. Parameters
// become expression captures; body tokens pass through with parameter names
// rewritten to their captures.
func (g *Generator) macroItem(m *ast.MacroItem) {
	captures := make([]string, len(m.Params))
	param := make(map[string]bool, len(m.Params))
	for i, p := range m.Params {
		captures[i] = "$" + p + ":expr"
		param[p] = true
	}
	g.line("macro_rules! " + g.macroName[m.Name] + " {")
	g.indent++
	g.line("(" + strings.Join(captures, ", ") + ") => {")
	g.indent++
	g.line(macroBody(m.Body, param))
	g.indent--
	g.line("};")
	g.indent--
	g.line("}")
}

func macroBody(toks []token.Token, param map[string]bool) string {
	var sb strings.Builder
	for i, tok := range toks {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case tok.Kind == token.Ident && param[tok.Text]:
			sb.WriteString("$" + tok.Text)
		case tok.Kind == token.StringLit:
			sb.WriteString(strconv.Quote(tok.Text))
		case tok.Kind == token.CharLit:
			for _, r := range tok.Text {
				sb.WriteString(strconv.QuoteRune(r))
				break
			}
		default:
			sb.WriteString(tok.Text)
		}
	}
	return sb.String()
}

// mutatesSelf reports whether any statement writes through self, which
// upgrades the receiver borrow.
func mutatesSelf(body *ast.Block) bool {
	if body == nil {
		return false
	}
	for _, s := range body.Stmts {
		if stmtMutatesSelf(s) {
			return true
		}
	}
	return false
}

func stmtMutatesSelf(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.BindStmt:
		return s.Init != nil && exprMutatesSelf(s.Init)
	case *ast.Block:
		return mutatesSelf(s)
	case *ast.ExprStmt:
		return exprMutatesSelf(s.X)
	case *ast.ReturnStmt:
		return s.X != nil && exprMutatesSelf(s.X)
	case *ast.IfStmt:
		if exprMutatesSelf(s.Cond) || stmtMutatesSelf(s.Then) {
			return true
		}
		return s.Else != nil && stmtMutatesSelf(s.Else)
	case *ast.WhileStmt:
		return exprMutatesSelf(s.Cond) || stmtMutatesSelf(s.Body)
	case *ast.ForStmt:
		if s.Init != nil && stmtMutatesSelf(s.Init) {
			return true
		}
		if s.Cond != nil && exprMutatesSelf(s.Cond) {
			return true
		}
		if s.Post != nil && exprMutatesSelf(s.Post) {
			return true
		}
		return stmtMutatesSelf(s.Body)
	case *ast.ForInStmt:
		return exprMutatesSelf(s.Iter) || stmtMutatesSelf(s.Body)
	case *ast.SwitchStmt:
		if exprMutatesSelf(s.Scrutinee) {
			return true
		}
		for _, c := range s.Cases {
			if stmtMutatesSelf(c.Body) {
				return true
			}
		}
		return s.Default != nil && stmtMutatesSelf(s.Default)
	}
	return false
}

func exprMutatesSelf(e ast.Expr) bool {
	switch ex := e.(type) {
	case *ast.BinaryExpr:
		if ex.Op.IsAssignOp() && rootIsSelf(ex.Left) {
			return true
		}
		return exprMutatesSelf(ex.Left) || exprMutatesSelf(ex.Right)
	case *ast.UnaryExpr:
		if (ex.Op == token.PlusPlus || ex.Op == token.MinusMinus) && rootIsSelf(ex.X) {
			return true
		}
		return exprMutatesSelf(ex.X)
	case *ast.ParenExpr:
		return exprMutatesSelf(ex.X)
	case *ast.TernaryExpr:
		return exprMutatesSelf(ex.Cond) || exprMutatesSelf(ex.Then) || exprMutatesSelf(ex.Else)
	case *ast.CallExpr:
		if exprMutatesSelf(ex.Callee) {
			return true
		}
		for _, arg := range ex.Args {
			if exprMutatesSelf(arg) {
				return true
			}
		}
	case *ast.MethodCallExpr:
		if exprMutatesSelf(ex.Recv) {
			return true
		}
		for _, arg := range ex.Args {
			if exprMutatesSelf(arg) {
				return true
			}
		}
	}
	return false
}

func rootIsSelf(e ast.Expr) bool {
	for {
		switch ex := e.(type) {
		case *ast.IdentExpr:
			return ex.Name == "self"
		case *ast.FieldExpr:
			e = ex.X
		case *ast.IndexExpr:
			e = ex.X
		case *ast.ParenExpr:
			e = ex.X
		case *ast.UnaryExpr:
			e = ex.X
		default:
			return false
		}
	}
}

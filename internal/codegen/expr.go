package codegen

import (
	"strconv"
	"strings"

	"ferric/internal/ast"
	"ferric/internal/token"
)

// expr renders one expression. Grouping survives through the preserved
// paren nodes, so no re-parenthesizing is needed.
func (g *Generator) expr(e ast.Expr) string {
	switch ex := e.(type) {
	case *ast.IntLit:
		return ex.Text
	case *ast.FloatLit:
		return ex.Text
	case *ast.StringLit:
		return strconv.Quote(ex.Value)
	case *ast.CharLit:
		return strconv.QuoteRune(ex.Value)
	case *ast.BoolLit:
		if ex.Value {
			return "true"
		}
		return "false"
	case *ast.NullLit:
		return "None"
	case *ast.IdentExpr:
		if owner, ok := g.variantOf[ex.Name]; ok && !g.isShadowed(ex.Name) {
			return owner + "::" + ex.Name
		}
		return ex.Name
	case *ast.BinaryExpr:
		return g.expr(ex.Left) + " " + ex.Op.String() + " " + g.expr(ex.Right)
	case *ast.UnaryExpr:
		return g.unary(ex)
	case *ast.ParenExpr:
		return "(" + g.expr(ex.X) + ")"
	case *ast.CallExpr:
		return g.expr(ex.Callee) + "(" + g.args(ex.Args) + ")"
	case *ast.MacroCallExpr:
		name := ex.Name
		if renamed, ok := g.macroName[name]; ok {
			name = renamed
		} else {
			name = macroIdent(name)
		}
		return name + "!(" + g.args(ex.Args) + ")"
	case *ast.MethodCallExpr:
		return g.expr(ex.Recv) + "." + ex.Name + "(" + g.args(ex.Args) + ")"
	case *ast.PathCallExpr:
		return ex.TypeName + "::" + ex.Name + "(" + g.args(ex.Args) + ")"
	case *ast.GenericCallExpr:
		typeArgs := make([]string, len(ex.TypeArgs))
		for i, t := range ex.TypeArgs {
			typeArgs[i] = g.typeString(t)
		}
		return ex.TypeName + "::<" + strings.Join(typeArgs, ", ") + ">::" +
			ex.Name + "(" + g.args(ex.Args) + ")"
	case *ast.FieldExpr:
		return g.expr(ex.X) + "." + ex.Name
	case *ast.IndexExpr:
		return g.expr(ex.X) + "[" + g.expr(ex.Index) + "]"
	case *ast.CastExpr:
		return g.expr(ex.X) + " as " + g.typeString(ex.To)
	case *ast.SizeofExpr:
		return "std::mem::size_of::<" + g.typeString(ex.T) + ">()"
	case *ast.TernaryExpr:
		return "if " + g.condition(ex.Cond) + " { " + g.expr(ex.Then) +
			" } else { " + g.expr(ex.Else) + " }"
	case *ast.StructLit:
		fields := make([]string, len(ex.Fields))
		for i, f := range ex.Fields {
			fields[i] = f.Name + ": " + g.expr(f.Value)
		}
		return ex.Name + " { " + strings.Join(fields, ", ") + " }"
	case *ast.ArrayLit:
		return "[" + g.args(ex.Elems) + "]"
	case *ast.TupleLit:
		return "(" + g.args(ex.Elems) + ")"
	case *ast.RangeExpr:
		return g.expr(ex.Low) + ".." + g.expr(ex.High)
	case *ast.RawExpr:
		return ex.Text
	case *ast.TryExpr:
		return g.expr(ex.X) + "?"
	}
	return ""
}

func (g *Generator) unary(e *ast.UnaryExpr) string {
	switch e.Op {
	case token.PlusPlus:
		return g.expr(e.X) + " += 1"
	case token.MinusMinus:
		return g.expr(e.X) + " -= 1"
	case token.Bang:
		return "!" + g.expr(e.X)
	case token.Tilde:
		// Bitwise not shares the logical-not spelling in the target.
		return "!" + g.expr(e.X)
	case token.Minus:
		return "-" + g.expr(e.X)
	case token.Amp:
		return "&" + g.expr(e.X)
	case token.Star:
		return "*" + g.expr(e.X)
	}
	return e.Op.String() + g.expr(e.X)
}

func (g *Generator) args(list []ast.Expr) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = g.expr(e)
	}
	return strings.Join(parts, ", ")
}

// condition drops redundant outer parens; the target idiom spells
// `if x`, not `if (x)`.
func (g *Generator) condition(e ast.Expr) string {
	if p, ok := e.(*ast.ParenExpr); ok {
		return g.expr(p.X)
	}
	return g.expr(e)
}

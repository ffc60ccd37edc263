// Package codegen renders an analyzed file into target-dialect source text.
// Generation is purely syntactic: it trusts the analyzer's verdicts and
// always produces candidate output, even for files that carried errors.
package codegen

import (
	"strings"

	"ferric/internal/ast"
	"ferric/internal/sema"
)

// Generator holds the output buffer and the per-file lookup state built by a
// prescan over the item list.
type Generator struct {
	buf    strings.Builder
	indent int

	// variantOf maps bare enumerator names to their enum, so uses emit
	// qualified paths.
	variantOf map[string]string
	// macroName maps source macro names to their rendered names.
	macroName map[string]string
	captures  map[int]sema.CaptureDescriptor

	// shadow stacks local bindings that reuse an enumerator name, one frame
	// per lexical scope. A rebound name renders bare, not enum-qualified.
	shadow []map[string]bool
}

// New returns a generator for one file. captures may be nil when the file
// has no nested functions.
func New(captures map[int]sema.CaptureDescriptor) *Generator {
	return &Generator{
		variantOf: make(map[string]string),
		macroName: make(map[string]string),
		captures:  captures,
	}
}

// Generate renders the whole file and returns the target text.
func Generate(file *ast.File, captures map[int]sema.CaptureDescriptor) string {
	g := New(captures)
	g.prescan(file.Items)
	for i, item := range file.Items {
		if i > 0 {
			g.buf.WriteByte('\n')
		}
		g.item(item)
	}
	return g.buf.String()
}

// ExprString renders a single expression fragment.
func ExprString(e ast.Expr) string {
	g := New(nil)
	return g.expr(e)
}

// TypeString renders a single type fragment.
func TypeString(t ast.Type) string {
	g := New(nil)
	return g.typeString(t)
}

// prescan records enumerator owners and macro renames before any item is
// rendered, so forward uses resolve the same as backward ones.
func (g *Generator) prescan(items []ast.Item) {
	for _, item := range items {
		switch it := item.(type) {
		case *ast.EnumItem:
			for _, v := range it.Variants {
				g.variantOf[v.Name] = it.Name
			}
		case *ast.MacroItem:
			g.macroName[it.Name] = macroIdent(it.Name)
		case *ast.NamespaceItem:
			g.prescan(it.Items)
		}
	}
}

func (g *Generator) pushScope() {
	g.shadow = append(g.shadow, nil)
}

func (g *Generator) popScope() {
	g.shadow = g.shadow[:len(g.shadow)-1]
}

// bindLocal records a binding, but only when it hides an enumerator; other
// names never affect rendering.
func (g *Generator) bindLocal(name string) {
	if len(g.shadow) == 0 {
		return
	}
	if _, clash := g.variantOf[name]; !clash {
		return
	}
	top := len(g.shadow) - 1
	if g.shadow[top] == nil {
		g.shadow[top] = make(map[string]bool)
	}
	g.shadow[top][name] = true
}

func (g *Generator) isShadowed(name string) bool {
	for i := len(g.shadow) - 1; i >= 0; i-- {
		if g.shadow[i][name] {
			return true
		}
	}
	return false
}

// macroIdent renders a macro name: underscore affixes dropped, lowercased.
func macroIdent(name string) string {
	return strings.ToLower(strings.Trim(name, "_"))
}

func (g *Generator) line(s string) {
	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("    ")
	}
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

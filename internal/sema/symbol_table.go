package sema

import (
	"ferric/internal/ast"
	"ferric/internal/source"
)

// SymbolKind distinguishes what a name refers to.
type SymbolKind uint8

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolType
	SymbolConst
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolType:
		return "type"
	case SymbolConst:
		return "constant"
	}
	return "unknown"
}

// Symbol is one named entity visible in some scope.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Type    ast.Type
	Mutable bool
	Span    source.Span
}

type scope struct {
	symbols map[string]*Symbol
}

// SymbolTable is a stack of flat scopes. The bottom scope is the file-global
// scope and is never popped; lookups walk innermost to outermost.
type SymbolTable struct {
	scopes []scope
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		scopes: []scope{{symbols: make(map[string]*Symbol)}},
	}
}

// EnterScope pushes a fresh empty scope.
func (t *SymbolTable) EnterScope() {
	t.scopes = append(t.scopes, scope{symbols: make(map[string]*Symbol)})
}

// ExitScope pops the innermost scope. Popping the global scope is a no-op.
func (t *SymbolTable) ExitScope() {
	if len(t.scopes) > 1 {
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
}

// Depth reports the number of live scopes, counting the global one.
func (t *SymbolTable) Depth() int {
	return len(t.scopes)
}

// Insert adds a symbol to the innermost scope. It reports false when the name
// is already bound in that same scope; outer bindings do not conflict.
func (t *SymbolTable) Insert(sym *Symbol) bool {
	inner := t.scopes[len(t.scopes)-1]
	if _, ok := inner.symbols[sym.Name]; ok {
		return false
	}
	inner.symbols[sym.Name] = sym
	return true
}

// Lookup resolves a name against the scope stack, innermost first.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupInCurrentScope resolves a name against the innermost scope only.
func (t *SymbolTable) LookupInCurrentScope(name string) (*Symbol, bool) {
	sym, ok := t.scopes[len(t.scopes)-1].symbols[name]
	return sym, ok
}

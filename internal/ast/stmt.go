package ast

import (
	"ferric/internal/source"
)

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmt()
}

// BindKind distinguishes the three binding statements.
type BindKind uint8

const (
	BindLet BindKind = iota
	BindVar
	BindConst
)

func (k BindKind) String() string {
	switch k {
	case BindLet:
		return "let"
	case BindVar:
		return "var"
	case BindConst:
		return "const"
	}
	return "invalid"
}

// BindStmt is a let/var/const binding. DeclType and Init may each be nil.
// var bindings are unconditionally mutable; let honors the mut marker.
type BindStmt struct {
	Kind     BindKind
	Name     string
	Mutable  bool
	DeclType Type
	Init     Expr
	SpanV    source.Span
}

// Block is a braced statement list with its own scope.
type Block struct {
	Stmts []Stmt
	SpanV source.Span
}

// ExprStmt evaluates an expression for its effects.
type ExprStmt struct {
	X     Expr
	SpanV source.Span
}

// ReturnStmt returns from the enclosing function; X may be nil.
type ReturnStmt struct {
	X     Expr
	SpanV source.Span
}

// IfStmt is a conditional; Else is nil, a *Block, or another *IfStmt.
type IfStmt struct {
	Cond  Expr
	Then  *Block
	Else  Stmt
	SpanV source.Span
}

// WhileStmt is a condition loop, optionally labeled.
type WhileStmt struct {
	Label string
	Cond  Expr
	Body  *Block
	SpanV source.Span
}

// ForStmt is a C-style three-part loop. Init, Cond, and Post may be nil.
type ForStmt struct {
	Label string
	Init  Stmt
	Cond  Expr
	Post  Expr
	Body  *Block
	SpanV source.Span
}

// ForInStmt iterates a variable over an iterator expression.
type ForInStmt struct {
	Label string
	Var   string
	Iter  Expr
	Body  *Block
	SpanV source.Span
}

// SwitchCase is one case arm with one or more values.
type SwitchCase struct {
	Values []Expr
	Body   *Block
	SpanV  source.Span
}

// SwitchStmt matches a scrutinee against case values; Default may be nil.
type SwitchStmt struct {
	Scrutinee Expr
	Cases     []SwitchCase
	Default   *Block
	SpanV     source.Span
}

// BreakStmt exits a loop or switch; Label may be empty.
type BreakStmt struct {
	Label string
	SpanV source.Span
}

// ContinueStmt resumes a loop; Label may be empty.
type ContinueStmt struct {
	Label string
	SpanV source.Span
}

// NestedFnStmt defines a function inside another function body. ID is the
// file-scoped identity the capture analyzer keys its descriptors by.
type NestedFnStmt struct {
	ID    int
	Fn    *FnItem
	SpanV source.Span
}

func (*BindStmt) stmt()     {}
func (*Block) stmt()        {}
func (*ExprStmt) stmt()     {}
func (*ReturnStmt) stmt()   {}
func (*IfStmt) stmt()       {}
func (*WhileStmt) stmt()    {}
func (*ForStmt) stmt()      {}
func (*ForInStmt) stmt()    {}
func (*SwitchStmt) stmt()   {}
func (*BreakStmt) stmt()    {}
func (*ContinueStmt) stmt() {}
func (*NestedFnStmt) stmt() {}

func (s *BindStmt) Span() source.Span     { return s.SpanV }
func (s *Block) Span() source.Span        { return s.SpanV }
func (s *ExprStmt) Span() source.Span     { return s.SpanV }
func (s *ReturnStmt) Span() source.Span   { return s.SpanV }
func (s *IfStmt) Span() source.Span       { return s.SpanV }
func (s *WhileStmt) Span() source.Span    { return s.SpanV }
func (s *ForStmt) Span() source.Span      { return s.SpanV }
func (s *ForInStmt) Span() source.Span    { return s.SpanV }
func (s *SwitchStmt) Span() source.Span   { return s.SpanV }
func (s *BreakStmt) Span() source.Span    { return s.SpanV }
func (s *ContinueStmt) Span() source.Span { return s.SpanV }
func (s *NestedFnStmt) Span() source.Span { return s.SpanV }

package sema

import (
	"fmt"

	"ferric/internal/ast"
	"ferric/internal/source"
)

// Analyzer walks one parsed file and collects semantic errors in traversal
// order. It owns the symbol table, the type environment, and the capture
// descriptors for nested functions.
type Analyzer struct {
	symbols  *SymbolTable
	types    *TypeEnv
	errs     []Error
	captures map[int]CaptureDescriptor
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		symbols:  NewSymbolTable(),
		types:    NewTypeEnv(),
		captures: make(map[int]CaptureDescriptor),
	}
}

// Errors returns the collected error list in traversal order.
func (a *Analyzer) Errors() []Error { return a.errs }

// Captures returns the nested-function capture descriptors keyed by the
// parser-assigned ids.
func (a *Analyzer) Captures() map[int]CaptureDescriptor { return a.captures }

// Types exposes the populated type environment for later stages.
func (a *Analyzer) Types() *TypeEnv { return a.types }

func (a *Analyzer) errorf(kind ErrorKind, span source.Span, format string, args ...any) {
	a.errs = append(a.errs, Error{
		Span:    span,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// AnalyzeFile checks every item in declaration order and returns the error
// list. Declarations are forward-only: an item sees the ones above it.
func (a *Analyzer) AnalyzeFile(file *ast.File) []Error {
	for _, item := range file.Items {
		a.analyzeItem(item)
	}
	return a.errs
}

func (a *Analyzer) analyzeItem(item ast.Item) {
	switch it := item.(type) {
	case *ast.FnItem:
		a.declareFn(it)
		a.analyzeFnBody(it, "")
	case *ast.StructItem:
		a.declareStruct(it)
	case *ast.EnumItem:
		a.declareEnum(it)
	case *ast.TypedefItem:
		a.declareTypedef(it)
	case *ast.NamespaceItem:
		a.symbols.EnterScope()
		for _, inner := range it.Items {
			a.analyzeItem(inner)
		}
		a.symbols.ExitScope()
	case *ast.ImportItem:
		// Imports resolve at generation time.
	case *ast.ExternItem:
		for _, decl := range it.Decls {
			a.declareFn(decl)
		}
	case *ast.ConstItem:
		a.declareBindingItem(it.Name, it.Type, it.Value, SymbolConst, false, it.SpanV)
	case *ast.StaticItem:
		a.declareBindingItem(it.Name, it.Type, it.Value, SymbolVariable, it.Mutable, it.SpanV)
	case *ast.MacroItem:
		// Macro bodies are opaque token streams; calls type as unknown.
	}
}

func fnSignature(fn *ast.FnItem) *ast.FnType {
	sig := &ast.FnType{SpanV: fn.SpanV}
	for _, p := range fn.Params {
		sig.Params = append(sig.Params, p.Type)
	}
	sig.Return = fn.Return
	return sig
}

func (a *Analyzer) declareFn(fn *ast.FnItem) {
	ok := a.symbols.Insert(&Symbol{
		Name: fn.Name,
		Kind: SymbolFunction,
		Type: fnSignature(fn),
		Span: fn.SpanV,
	})
	if !ok {
		a.errorf(DuplicateDefinition, fn.SpanV, "'%s' is already defined in this scope", fn.Name)
	}
}

// analyzeFnBody checks a function body in its own scope with the parameters
// bound. recvType is non-empty for struct methods and binds self.
func (a *Analyzer) analyzeFnBody(fn *ast.FnItem, recvType string) {
	if fn.Body == nil {
		return
	}
	a.symbols.EnterScope()
	if fn.SelfRecv && recvType != "" {
		a.symbols.Insert(&Symbol{
			Name: "self",
			Kind: SymbolVariable,
			Type: &ast.NamedType{Name: recvType, SpanV: fn.SpanV},
			Span: fn.SpanV,
		})
	}
	for _, p := range fn.Params {
		ok := a.symbols.Insert(&Symbol{
			Name:    p.Name,
			Kind:    SymbolVariable,
			Type:    p.Type,
			Mutable: p.Mutable,
			Span:    p.SpanV,
		})
		if !ok {
			a.errorf(DuplicateDefinition, p.SpanV, "parameter '%s' is already defined", p.Name)
		}
	}
	for _, stmt := range fn.Body.Stmts {
		a.analyzeStmt(stmt)
	}
	a.symbols.ExitScope()
}

func (a *Analyzer) declareStruct(st *ast.StructItem) {
	info := &TypeInfo{Name: st.Name, Kind: InfoStruct}
	for _, f := range st.Fields {
		info.Fields = append(info.Fields, FieldInfo{Name: f.Name, Type: f.Type})
	}
	a.declareType(st.Name, info, st.SpanV)
	for _, m := range st.Methods {
		a.analyzeFnBody(m, st.Name)
	}
}

func (a *Analyzer) declareEnum(en *ast.EnumItem) {
	info := &TypeInfo{Name: en.Name, Kind: InfoEnum}
	for _, v := range en.Variants {
		info.Variants = append(info.Variants, v.Name)
	}
	a.declareType(en.Name, info, en.SpanV)
	// Enumerators live alongside the enum, usable as bare constants.
	for _, v := range en.Variants {
		ok := a.symbols.Insert(&Symbol{
			Name: v.Name,
			Kind: SymbolConst,
			Type: &ast.NamedType{Name: en.Name, SpanV: v.SpanV},
			Span: v.SpanV,
		})
		if !ok {
			a.errorf(DuplicateDefinition, v.SpanV, "'%s' is already defined in this scope", v.Name)
		}
	}
}

func (a *Analyzer) declareTypedef(td *ast.TypedefItem) {
	a.declareType(td.Name, &TypeInfo{Name: td.Name, Kind: InfoAlias, Alias: td.Target}, td.SpanV)
}

// declareType registers a named type in both the environment and the symbol
// table. A collision in either reports one duplicate, not two.
func (a *Analyzer) declareType(name string, info *TypeInfo, span source.Span) {
	registered := a.types.Register(info)
	inserted := a.symbols.Insert(&Symbol{
		Name: name,
		Kind: SymbolType,
		Type: &ast.NamedType{Name: name, SpanV: span},
		Span: span,
	})
	if !registered || !inserted {
		a.errorf(DuplicateDefinition, span, "type '%s' is already defined", name)
	}
}

func (a *Analyzer) declareBindingItem(name string, declared ast.Type, value ast.Expr, kind SymbolKind, mutable bool, span source.Span) {
	var valueType ast.Type = ast.Unknown()
	if value != nil {
		valueType = a.analyzeExpr(value)
	}
	bound := declared
	if bound == nil {
		bound = valueType
	} else if value != nil && !a.types.Compatible(bound, valueType) {
		a.errorf(TypeMismatch, span, "cannot initialize '%s' of type %s with %s",
			name, ast.TypeText(bound), ast.TypeText(valueType))
	}
	ok := a.symbols.Insert(&Symbol{
		Name:    name,
		Kind:    kind,
		Type:    bound,
		Mutable: mutable,
		Span:    span,
	})
	if !ok {
		a.errorf(DuplicateDefinition, span, "'%s' is already defined in this scope", name)
	}
}

// ReportUnion records the rejection of a union declaration. Unions have no
// safe translation, so the driver reports them directly.
func (a *Analyzer) ReportUnion(name string, span source.Span) {
	a.errorf(UnsupportedFeature, span,
		"union '%s' is not supported; use an enum with payload variants instead", name)
}

// ReportGoto records the rejection of a goto statement.
func (a *Analyzer) ReportGoto(label string, span source.Span) {
	a.errorf(UnsupportedFeature, span,
		"goto '%s' is not supported; restructure with labeled loops, break, or continue", label)
}

// ReportInclude records the rejection of a textual #include directive.
func (a *Analyzer) ReportInclude(path string, span source.Span) {
	a.errorf(UnsupportedFeature, span,
		"#include %q is not supported; use an import declaration instead", path)
}

// ReportIncompats forwards every recorded untranslatable construct. The
// parser collects them; nothing in the item tree reaches them.
func (a *Analyzer) ReportIncompats(file *ast.File) {
	for _, inc := range file.Incompats {
		switch inc.Kind {
		case ast.IncompatUnion:
			a.ReportUnion(inc.Name, inc.Span)
		case ast.IncompatGoto:
			a.ReportGoto(inc.Name, inc.Span)
		case ast.IncompatInclude:
			a.ReportInclude(inc.Name, inc.Span)
		}
	}
}

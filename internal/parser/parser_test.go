package parser

import (
	"testing"

	"ferric/internal/ast"
	"ferric/internal/diag"
	"ferric/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cy", []byte(src))
	bag := diag.NewBag(64)
	file := ParseFile(fs.Get(id), bag)
	return file, bag
}

func parseClean(t *testing.T, src string) *ast.File {
	t.Helper()
	file, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	return file
}

func TestParseFn(t *testing.T) {
	file := parseClean(t, `
fn add(a: int, b: int) -> int {
	return a + b;
}
`)
	if len(file.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(file.Items))
	}
	fn, ok := file.Items[0].(*ast.FnItem)
	if !ok {
		t.Fatalf("item is %T, want *ast.FnItem", file.Items[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("fn = %q with %d params", fn.Name, len(fn.Params))
	}
	if prim, ok := fn.Return.(*ast.PrimType); !ok || prim.Kind != ast.PrimInt {
		t.Fatalf("return type = %v", ast.TypeText(fn.Return))
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("body stmts = %d", len(fn.Body.Stmts))
	}
}

func TestParseStructWithMethods(t *testing.T) {
	file := parseClean(t, `
struct Point {
	x: int,
	y: int,
	fn sum(self) -> int {
		return self.x + self.y;
	}
}
`)
	st, ok := file.Items[0].(*ast.StructItem)
	if !ok {
		t.Fatalf("item is %T", file.Items[0])
	}
	if len(st.Fields) != 2 || len(st.Methods) != 1 {
		t.Fatalf("fields=%d methods=%d", len(st.Fields), len(st.Methods))
	}
	if !st.Methods[0].SelfRecv {
		t.Fatalf("method does not take self")
	}
}

func TestParseEnumDiscriminants(t *testing.T) {
	file := parseClean(t, `enum Status { Ok = 0, NotFound = 404, Other }`)
	en := file.Items[0].(*ast.EnumItem)
	if len(en.Variants) != 3 {
		t.Fatalf("variants = %d", len(en.Variants))
	}
	if !en.Variants[1].HasValue || en.Variants[1].Value != 404 {
		t.Fatalf("NotFound = %+v", en.Variants[1])
	}
	if en.Variants[2].HasValue {
		t.Fatalf("Other should have no explicit value")
	}
}

func TestParseBindForms(t *testing.T) {
	file := parseClean(t, `
fn main() {
	let a: int = 1;
	let mut b = 2;
	var c = 3;
	const D: int = 4;
}
`)
	body := file.Items[0].(*ast.FnItem).Body.Stmts
	if len(body) != 4 {
		t.Fatalf("stmts = %d", len(body))
	}
	checks := []struct {
		kind    ast.BindKind
		mutable bool
	}{
		{ast.BindLet, false},
		{ast.BindLet, true},
		{ast.BindVar, true},
		{ast.BindConst, false},
	}
	for i, want := range checks {
		bind := body[i].(*ast.BindStmt)
		if bind.Kind != want.kind || bind.Mutable != want.mutable {
			t.Fatalf("stmt %d: kind=%v mutable=%v, want %v %v",
				i, bind.Kind, bind.Mutable, want.kind, want.mutable)
		}
	}
}

func TestParseForHeaders(t *testing.T) {
	file := parseClean(t, `
fn main() {
	for (var i: int = 0; i < 10; i = i + 1) { }
	for (x in items) { }
}
`)
	body := file.Items[0].(*ast.FnItem).Body.Stmts
	if _, ok := body[0].(*ast.ForStmt); !ok {
		t.Fatalf("first loop is %T", body[0])
	}
	fin, ok := body[1].(*ast.ForInStmt)
	if !ok {
		t.Fatalf("second loop is %T", body[1])
	}
	if fin.Var != "x" {
		t.Fatalf("for-in var = %q", fin.Var)
	}
}

func TestParseLabeledLoops(t *testing.T) {
	file := parseClean(t, `
fn main() {
	outer: while (true) {
		break outer;
		continue outer;
	}
}
`)
	loop := file.Items[0].(*ast.FnItem).Body.Stmts[0].(*ast.WhileStmt)
	if loop.Label != "outer" {
		t.Fatalf("label = %q", loop.Label)
	}
	brk := loop.Body.Stmts[0].(*ast.BreakStmt)
	if brk.Label != "outer" {
		t.Fatalf("break label = %q", brk.Label)
	}
}

func TestParseSwitch(t *testing.T) {
	file := parseClean(t, `
fn main() {
	switch (x) {
	case 1, 2:
		y = 1;
	case 3:
		y = 2;
	default:
		y = 3;
	}
}
`)
	sw := file.Items[0].(*ast.FnItem).Body.Stmts[0].(*ast.SwitchStmt)
	if len(sw.Cases) != 2 || sw.Default == nil {
		t.Fatalf("cases=%d default=%v", len(sw.Cases), sw.Default != nil)
	}
	if len(sw.Cases[0].Values) != 2 {
		t.Fatalf("first case values = %d", len(sw.Cases[0].Values))
	}
}

func TestParseExpressions(t *testing.T) {
	file := parseClean(t, `
fn main() {
	let a = 1 + 2 * 3;
	let b = c ? d : e;
	let t = (1, 2);
	let arr = [1, 2, 3];
	let p = Point { x: 1, y: 2 };
	let s = sizeof(int);
	let cast = a as i64;
	let r = 0..10;
	i++;
	--j;
	let deref = *ptr;
	let addr = &value;
	let res = fallible()!;
}
`)
	body := file.Items[0].(*ast.FnItem).Body.Stmts

	mul := body[0].(*ast.BindStmt).Init.(*ast.BinaryExpr)
	if _, ok := mul.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("precedence wrong: right = %T", mul.Right)
	}
	if _, ok := body[1].(*ast.BindStmt).Init.(*ast.TernaryExpr); !ok {
		t.Fatalf("ternary missing")
	}
	if tup := body[2].(*ast.BindStmt).Init.(*ast.TupleLit); len(tup.Elems) != 2 {
		t.Fatalf("tuple elems = %d", len(tup.Elems))
	}
	if arr := body[3].(*ast.BindStmt).Init.(*ast.ArrayLit); len(arr.Elems) != 3 {
		t.Fatalf("array elems = %d", len(arr.Elems))
	}
	lit := body[4].(*ast.BindStmt).Init.(*ast.StructLit)
	if lit.Name != "Point" || len(lit.Fields) != 2 {
		t.Fatalf("struct literal = %+v", lit)
	}
	if _, ok := body[5].(*ast.BindStmt).Init.(*ast.SizeofExpr); !ok {
		t.Fatalf("sizeof missing")
	}
	if _, ok := body[6].(*ast.BindStmt).Init.(*ast.CastExpr); !ok {
		t.Fatalf("cast missing")
	}
	if _, ok := body[7].(*ast.BindStmt).Init.(*ast.RangeExpr); !ok {
		t.Fatalf("range missing")
	}
	inc := body[8].(*ast.ExprStmt).X.(*ast.UnaryExpr)
	if !inc.Postfix {
		t.Fatalf("i++ not postfix")
	}
	dec := body[9].(*ast.ExprStmt).X.(*ast.UnaryExpr)
	if dec.Postfix {
		t.Fatalf("--j parsed as postfix")
	}
	if _, ok := body[12].(*ast.BindStmt).Init.(*ast.TryExpr); !ok {
		t.Fatalf("error propagation missing")
	}
}

func TestParseCallsAndPaths(t *testing.T) {
	file := parseClean(t, `
fn main() {
	plain(1, 2);
	obj.method(3);
	Vec::new();
	Vec<int>::with_capacity(10);
	let cmp = a < b;
}
`)
	body := file.Items[0].(*ast.FnItem).Body.Stmts
	if _, ok := body[0].(*ast.ExprStmt).X.(*ast.CallExpr); !ok {
		t.Fatalf("plain call missing")
	}
	if _, ok := body[1].(*ast.ExprStmt).X.(*ast.MethodCallExpr); !ok {
		t.Fatalf("method call missing")
	}
	if _, ok := body[2].(*ast.ExprStmt).X.(*ast.PathCallExpr); !ok {
		t.Fatalf("path call missing")
	}
	gc, ok := body[3].(*ast.ExprStmt).X.(*ast.GenericCallExpr)
	if !ok {
		t.Fatalf("generic call missing: %T", body[3].(*ast.ExprStmt).X)
	}
	if gc.TypeName != "Vec" || gc.Name != "with_capacity" || len(gc.TypeArgs) != 1 {
		t.Fatalf("generic call = %+v", gc)
	}
	cmp, ok := body[4].(*ast.BindStmt).Init.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("a < b did not stay a comparison: %T", body[4].(*ast.BindStmt).Init)
	}
	_ = cmp
}

func TestParseMacroDefAndCall(t *testing.T) {
	file := parseClean(t, `
#define MAX(a, b) { (a > b) ? a : b }

fn main() {
	let m = MAX(1, 2);
}
`)
	macro, ok := file.Items[0].(*ast.MacroItem)
	if !ok {
		t.Fatalf("first item is %T", file.Items[0])
	}
	if macro.Name != "MAX" || len(macro.Params) != 2 || len(macro.Body) == 0 {
		t.Fatalf("macro = %+v", macro)
	}
	call, ok := file.Items[1].(*ast.FnItem).Body.Stmts[0].(*ast.BindStmt).Init.(*ast.MacroCallExpr)
	if !ok {
		t.Fatalf("MAX(1, 2) did not parse as macro call")
	}
	if call.Name != "MAX" || len(call.Args) != 2 {
		t.Fatalf("macro call = %+v", call)
	}
}

func TestParseNestedFnIDs(t *testing.T) {
	file := parseClean(t, `
fn outer() {
	fn first() { }
	fn second() { }
}
`)
	body := file.Items[0].(*ast.FnItem).Body.Stmts
	a := body[0].(*ast.NestedFnStmt)
	b := body[1].(*ast.NestedFnStmt)
	if a.ID == b.ID {
		t.Fatalf("nested fn ids collide: %d", a.ID)
	}
	if file.NestedFnCount != 2 {
		t.Fatalf("NestedFnCount = %d", file.NestedFnCount)
	}
}

func TestParseNestedFnIDsEncounterOrder(t *testing.T) {
	file := parseClean(t, `
fn outer() {
	fn mid() {
		fn inner() { }
	}
}
`)
	mid := file.Items[0].(*ast.FnItem).Body.Stmts[0].(*ast.NestedFnStmt)
	inner := mid.Fn.Body.Stmts[0].(*ast.NestedFnStmt)
	if mid.ID != 0 || inner.ID != 1 {
		t.Fatalf("ids = mid %d, inner %d, want 0, 1", mid.ID, inner.ID)
	}
}

func TestParseIncompats(t *testing.T) {
	file, _ := parseSrc(t, `
#include "stdio.h"
union U { }
fn main() {
	goto done;
}
`)
	kinds := map[ast.IncompatKind]string{}
	for _, inc := range file.Incompats {
		kinds[inc.Kind] = inc.Name
	}
	if kinds[ast.IncompatInclude] != "stdio.h" {
		t.Fatalf("include record = %q", kinds[ast.IncompatInclude])
	}
	if _, ok := kinds[ast.IncompatUnion]; !ok {
		t.Fatalf("union not recorded")
	}
	if kinds[ast.IncompatGoto] != "done" {
		t.Fatalf("goto record = %q", kinds[ast.IncompatGoto])
	}
}

func TestParseTypes(t *testing.T) {
	file := parseClean(t, `
fn f(a: *mut int, b: &char, c: [int; 4], d: [int], e: (int, bool), g: Vec<Box<int>>, h: fn(int) -> bool, i: int?) {
}
`)
	params := file.Items[0].(*ast.FnItem).Params
	wants := []string{
		"*mut int", "&char", "[int; 4]", "[int]", "(int, bool)",
		"Vec<Box<int>>", "fn(int) -> bool", "int?",
	}
	for i, want := range wants {
		if got := ast.TypeText(params[i].Type); got != want {
			t.Fatalf("param %d type = %q, want %q", i, got, want)
		}
	}
}

func TestParseRawBlock(t *testing.T) {
	file := parseClean(t, `
fn main() {
	let v = raw { Vec::with_capacity(4) };
}
`)
	rawExpr, ok := file.Items[0].(*ast.FnItem).Body.Stmts[0].(*ast.BindStmt).Init.(*ast.RawExpr)
	if !ok {
		t.Fatalf("raw block missing")
	}
	if rawExpr.Text != "Vec::with_capacity(4)" {
		t.Fatalf("raw text = %q", rawExpr.Text)
	}
}

func TestParseRecovery(t *testing.T) {
	file, bag := parseSrc(t, `
@ @
fn good() { }
`)
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics")
	}
	found := false
	for _, item := range file.Items {
		if fn, ok := item.(*ast.FnItem); ok && fn.Name == "good" {
			found = true
		}
	}
	if !found {
		t.Fatalf("parser did not recover to the next item")
	}
}

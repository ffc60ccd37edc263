package codegen

import (
	"strings"
	"testing"

	"ferric/internal/ast"
	"ferric/internal/diag"
	"ferric/internal/parser"
	"ferric/internal/sema"
	"ferric/internal/source"
	"ferric/internal/token"
)

func genSrc(t *testing.T, src string) string {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cy", []byte(src))
	bag := diag.NewBag(64)
	file := parser.ParseFile(fs.Get(id), bag)
	if bag.HasErrors() {
		t.Fatalf("parse diagnostics: %+v", bag.Items())
	}
	a := sema.NewAnalyzer()
	if errs := a.AnalyzeFile(file); len(errs) != 0 {
		t.Fatalf("semantic errors: %+v", errs)
	}
	return Generate(file, a.Captures())
}

func wantContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestGenBindings(t *testing.T) {
	out := genSrc(t, `
fn f() {
	let a: int = 1;
	var b: int = 2;
	let mut c: int = 3;
}
`)
	wantContains(t, out,
		"let a: i32 = 1;",
		"let mut b: i32 = 2;",
		"let mut c: i32 = 3;",
	)
}

func TestGenLabeledLoop(t *testing.T) {
	out := genSrc(t, `
fn f() {
	outer: while (true) {
		break outer;
	}
}
`)
	wantContains(t, out, "'outer: while true {", "break 'outer;")
}

func TestGenPointerTypesBecomeReferences(t *testing.T) {
	out := genSrc(t, `
fn f(a: *int, b: *mut int, c: &int, d: &mut int) { }
`)
	wantContains(t, out, "a: &i32", "b: &mut i32", "c: &i32", "d: &mut i32")
}

func TestGenSizeof(t *testing.T) {
	out := genSrc(t, `
fn f() {
	let n: u64 = sizeof(int);
}
`)
	wantContains(t, out, "std::mem::size_of::<i32>()")
}

func TestGenNullBecomesNone(t *testing.T) {
	out := genSrc(t, `
fn f() {
	let p = NULL;
}
`)
	wantContains(t, out, "let p = None;")
}

func TestGenCast(t *testing.T) {
	out := genSrc(t, `
fn f() {
	let a: i64 = 1 as i64;
}
`)
	wantContains(t, out, "1 as i64")
}

func TestGenIncrementDecrement(t *testing.T) {
	out := genSrc(t, `
fn f() {
	var n: int = 0;
	n++;
	n--;
}
`)
	wantContains(t, out, "n += 1;", "n -= 1;")
}

func TestGenSwitchToMatch(t *testing.T) {
	out := genSrc(t, `
fn f(x: int) {
	switch (x) {
	case 1, 2:
		x + 1;
		break;
	case 3:
		break;
	}
}
`)
	wantContains(t, out, "match x {", "1 | 2 => {", "3 => {", "_ => {}")
	if strings.Contains(out, "break;") {
		t.Errorf("trailing break survived into match arm:\n%s", out)
	}
}

func TestGenSwitchDefault(t *testing.T) {
	out := genSrc(t, `
fn f(x: int) {
	switch (x) {
	case 1:
		break;
	default:
		x + 1;
	}
}
`)
	wantContains(t, out, "_ => {")
	if strings.Contains(out, "_ => {}") {
		t.Errorf("empty wildcard emitted despite default arm:\n%s", out)
	}
}

func TestGenForLowersToWhile(t *testing.T) {
	out := genSrc(t, `
fn f() {
	for (let i: int = 0; i < 10; i++) {
		let x: int = i;
	}
}
`)
	wantContains(t, out, "let i: i32 = 0;", "while i < 10 {", "i += 1;")
	// The increment lands after the body statements.
	if strings.Index(out, "let x: i32 = i;") > strings.Index(out, "i += 1;") {
		t.Errorf("increment emitted before body:\n%s", out)
	}
}

func TestGenForWithoutConditionLoops(t *testing.T) {
	out := genSrc(t, `
fn f() {
	for (;;) {
		break;
	}
}
`)
	wantContains(t, out, "loop {")
}

func TestGenForIn(t *testing.T) {
	out := genSrc(t, `
fn f() {
	let xs: [int; 2] = [1, 2];
	for (x in xs) {
		let y = x;
	}
}
`)
	wantContains(t, out, "for x in xs {")
}

func TestGenTernary(t *testing.T) {
	out := genSrc(t, `
fn f(c: bool) {
	let x: int = c ? 1 : 2;
}
`)
	wantContains(t, out, "let x: i32 = if c { 1 } else { 2 };")
}

func TestGenTryAndFallible(t *testing.T) {
	out := genSrc(t, `
fn parse(s: string) -> int? {
	return 4;
}
fn g() -> int? {
	let n: int = parse("4")!;
	return n;
}
`)
	wantContains(t, out,
		"fn parse(s: &str) -> Result<i32, String> {",
		`parse("4")?`,
	)
}

func TestGenTypedef(t *testing.T) {
	out := genSrc(t, `typedef Meters = int;`)
	wantContains(t, out, "type Meters = i32;")
}

func TestGenEnumKeepsDiscriminants(t *testing.T) {
	out := genSrc(t, `
enum Color { Red, Green = 3, Blue }
fn f() {
	let c: Color = Green;
}
`)
	wantContains(t, out, "enum Color {", "Red,", "Green = 3,", "Blue,", "let c: Color = Color::Green;")
}

func TestGenShadowedVariantStaysBare(t *testing.T) {
	out := genSrc(t, `
enum Color { Red, Green }
fn shadowed() -> int {
	let Red: int = 1;
	return Red;
}
fn qualified() -> Color {
	return Red;
}
`)
	wantContains(t, out, "let Red: i32 = 1;", "return Red;", "return Color::Red;")
	first, _, _ := strings.Cut(out, "fn qualified")
	if strings.Contains(first, "Color::Red") {
		t.Fatalf("shadowed binding was qualified:\n%s", out)
	}
}

func TestGenStructAndMethods(t *testing.T) {
	out := genSrc(t, `
struct Counter {
	count: int,
	fn get(self) -> int {
		return self.count;
	}
	fn bump(self) {
		self.count = self.count + 1;
	}
}
`)
	wantContains(t, out,
		"struct Counter {",
		"count: i32,",
		"impl Counter {",
		"fn get(&self) -> i32 {",
		"fn bump(&mut self) {",
		"self.count = self.count + 1;",
	)
}

func TestGenStructLiteralTransparent(t *testing.T) {
	out := genSrc(t, `
struct Point { x: int, y: int }
fn f() {
	let p: Point = Point { x: 1, y: 2 };
	let t: (int, bool) = (1, true);
	let a: [int; 2] = [1, 2];
}
`)
	wantContains(t, out,
		"Point { x: 1, y: 2 }",
		"let t: (i32, bool) = (1, true);",
		"let a: [i32; 2] = [1, 2];",
	)
}

func TestGenMacro(t *testing.T) {
	out := genSrc(t, `
#define _MAX_(a, b) { (a) > (b) ? (a) : (b) }
fn f() {
	let m = _MAX_(1, 2);
}
`)
	wantContains(t, out,
		"macro_rules! max {",
		"($a:expr, $b:expr) => {",
		"let m = max!(1, 2);",
	)
}

func TestGenClosures(t *testing.T) {
	out := genSrc(t, `
fn outer() {
	let a: int = 1;
	var total: int = 0;
	fn read(x: int) -> int {
		return a + x;
	}
	fn accumulate(x: int) {
		total = total + x;
	}
}
`)
	wantContains(t, out,
		"let read = |x: i32| -> i32 {",
		"let mut accumulate = |x: i32| {",
	)
}

func TestGenNamespaceImportExtern(t *testing.T) {
	out := genSrc(t, `
import std::collections;
namespace geometry {
	fn area(w: int, h: int) -> int {
		return w * h;
	}
}
extern {
	fn puts(s: string) -> int;
}
`)
	wantContains(t, out,
		"use std::collections;",
		"mod geometry {",
		`extern "C" {`,
		"fn puts(s: &str) -> i32;",
	)
}

func TestGenStatics(t *testing.T) {
	out := genSrc(t, `
const LIMIT: int = 10;
static mut counter: int = 0;
`)
	wantContains(t, out, "const LIMIT: i32 = 10;", "static mut counter: i32 = 0;")
}

func TestGenGenericAndPathCalls(t *testing.T) {
	out := genSrc(t, `
fn f() {
	let v = Vec<int>::new();
	let w = Vec::with_capacity(4);
}
`)
	wantContains(t, out, "Vec::<i32>::new()", "Vec::with_capacity(4)")
}

func TestGenRawPassthrough(t *testing.T) {
	out := genSrc(t, `
fn f() {
	let v = raw { vec![1, 2, 3] };
}
`)
	wantContains(t, out, "vec![1, 2, 3]")
}

func TestExprString(t *testing.T) {
	e := &ast.BinaryExpr{
		Op:    token.Plus,
		Left:  &ast.IntLit{Value: 1, Text: "1"},
		Right: &ast.IntLit{Value: 2, Text: "2"},
	}
	if got := ExprString(e); got != "1 + 2" {
		t.Fatalf("ExprString = %q, want %q", got, "1 + 2")
	}
}

func TestTypeString(t *testing.T) {
	ty := &ast.FallibleType{Inner: &ast.GenericType{
		Name: "Vec",
		Args: []ast.Type{ast.Prim(ast.PrimString)},
	}}
	if got := TypeString(ty); got != "Result<Vec<&str>, String>" {
		t.Fatalf("TypeString = %q", got)
	}
}

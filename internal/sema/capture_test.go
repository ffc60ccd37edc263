package sema

import "testing"

func TestCaptureReadsOuterVariables(t *testing.T) {
	a, errs := analyzeSrc(t, `
fn outer() {
	let a: int = 1;
	let b: int = 2;
	fn inner(x: int) -> int {
		return a + b + x;
	}
}
`)
	wantErrors(t, errs)
	desc, ok := a.Captures()[0]
	if !ok {
		t.Fatalf("no descriptor for nested fn 0")
	}
	if len(desc.Captured) != 2 || desc.Captured[0].Name != "a" || desc.Captured[1].Name != "b" {
		t.Fatalf("captured = %+v, want a then b", desc.Captured)
	}
	if desc.Mutable {
		t.Fatalf("read-only captures marked mutable")
	}
	if desc.Captures("x") {
		t.Fatalf("parameter x treated as capture")
	}
}

func TestCaptureMutationMarksMutable(t *testing.T) {
	a, errs := analyzeSrc(t, `
fn outer() {
	var count: int = 0;
	fn bump() {
		count = count + 1;
	}
}
`)
	wantErrors(t, errs)
	desc := a.Captures()[0]
	if !desc.Captures("count") || !desc.Mutable {
		t.Fatalf("descriptor = %+v, want mutable capture of count", desc)
	}
}

func TestCaptureIncrementMarksMutable(t *testing.T) {
	a, errs := analyzeSrc(t, `
fn outer() {
	var n: int = 0;
	fn tick() {
		n++;
	}
}
`)
	wantErrors(t, errs)
	if !a.Captures()[0].Mutable {
		t.Fatalf("increment of captured n did not mark descriptor mutable")
	}
}

func TestCaptureIgnoresOwnLocals(t *testing.T) {
	a, errs := analyzeSrc(t, `
fn outer() {
	let a: int = 1;
	fn inner() -> int {
		let a: int = 5;
		return a;
	}
}
`)
	wantErrors(t, errs)
	desc := a.Captures()[0]
	if len(desc.Captured) != 0 {
		t.Fatalf("captured = %+v, want none", desc.Captured)
	}
}

func TestCaptureIgnoresFunctionsAndConstants(t *testing.T) {
	a, errs := analyzeSrc(t, `
enum Color { Red, Green }
fn helper() -> int { return 1; }
fn outer() {
	fn inner() -> int {
		let c: Color = Red;
		return helper();
	}
}
`)
	wantErrors(t, errs)
	desc := a.Captures()[0]
	if len(desc.Captured) != 0 {
		t.Fatalf("captured = %+v, want none", desc.Captured)
	}
}

func TestDoublyNestedDescriptorsAreIndependent(t *testing.T) {
	a, errs := analyzeSrc(t, `
fn outer() {
	let a: int = 1;
	fn mid() {
		let m: int = 2;
		fn inner() -> int {
			return a + m;
		}
	}
}
`)
	wantErrors(t, errs)
	// Ids follow encounter order: mid is 0, inner is 1.
	midDesc := a.Captures()[0]
	if len(midDesc.Captured) != 0 {
		t.Fatalf("mid captured = %+v, want none", midDesc.Captured)
	}
	innerDesc := a.Captures()[1]
	if !innerDesc.Captures("a") || !innerDesc.Captures("m") {
		t.Fatalf("inner captured = %+v, want a and m", innerDesc.Captured)
	}
}

func TestCaptureLoopVariableLocal(t *testing.T) {
	a, errs := analyzeSrc(t, `
fn outer() {
	let xs: [int; 2] = [1, 2];
	fn sum() -> int {
		var total: int = 0;
		for (x in xs) {
			total = total + x;
		}
		return total;
	}
}
`)
	wantErrors(t, errs)
	desc := a.Captures()[0]
	if !desc.Captures("xs") {
		t.Fatalf("xs not captured: %+v", desc.Captured)
	}
	if desc.Captures("x") || desc.Captures("total") {
		t.Fatalf("loop variable or local captured: %+v", desc.Captured)
	}
	if desc.Mutable {
		t.Fatalf("mutating only locals marked descriptor mutable")
	}
}

package source

import (
	"testing"
)

func TestAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.cy", []byte("let a = 1;\nlet b = 2;\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected virtual flag")
	}

	// "b" sits on line 2, column 5
	start, _ := fs.Resolve(Span{File: id, Start: 15, End: 16})
	if start.Line != 2 || start.Col != 5 {
		t.Fatalf("Resolve = %d:%d, want 2:5", start.Line, start.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.cy", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Fatalf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatalf("expected change")
	}
	if string(out) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q", out)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 2, End: 7}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 10 {
		t.Fatalf("Cover = %v", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files must be identity, got %v", got)
	}
}

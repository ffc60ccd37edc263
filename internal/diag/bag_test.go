package diag

import (
	"testing"

	"ferric/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		added := b.Error(SemTypeMismatch, source.Span{Start: uint32(i)}, "boom")
		if i < 2 && !added {
			t.Fatalf("diagnostic %d dropped below limit", i)
		}
		if i == 2 && added {
			t.Fatalf("diagnostic above limit was added")
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Error(SemTypeMismatch, source.Span{File: 1, Start: 20, End: 21}, "late")
	b.Error(SemUndefinedVariable, source.Span{File: 1, Start: 5, End: 6}, "early")
	b.Error(SemTypeMismatch, source.Span{File: 1, Start: 20, End: 21}, "late again")

	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("after dedup len = %d, want 2", len(items))
	}
	if items[0].Code != SemUndefinedVariable {
		t.Fatalf("sort order wrong: first = %v", items[0].Code)
	}
}

func TestBagMergeAndHasErrors(t *testing.T) {
	a := NewBag(1)
	a.Warning(LexBadNumber, source.Span{}, "odd digits")
	if a.HasErrors() {
		t.Fatalf("warning counted as error")
	}

	b := NewBag(1)
	b.Error(SynUnexpectedToken, source.Span{}, "what")
	a.Merge(b)

	if !a.HasErrors() || a.Len() != 2 {
		t.Fatalf("merge lost items: len=%d hasErrors=%v", a.Len(), a.HasErrors())
	}
}

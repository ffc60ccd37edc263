package diag

import (
	"fmt"
	"sort"

	"ferric/internal/source"
)

// Bag accumulates diagnostics up to a fixed limit.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag creates a bag that holds at most max diagnostics.
func NewBag(max int) *Bag {
	if max < 1 {
		max = 1
	}
	if max > int(^uint16(0)) {
		max = int(^uint16(0))
	}
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max), // #nosec G115 -- clamped above
	}
}

// Add appends a diagnostic, honoring the limit.
// Returns false if the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Error is shorthand for Add with error severity.
func (b *Bag) Error(code Code, span source.Span, msg string) bool {
	return b.Add(Diagnostic{Severity: SevError, Code: code, Message: msg, Primary: span})
}

// Warning is shorthand for Add with warning severity.
func (b *Bag) Warning(code Code, span source.Span, msg string) bool {
	return b.Add(Diagnostic{Severity: SevWarning, Code: code, Message: msg, Primary: span})
}

// HasErrors reports whether any diagnostic is error-severity.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the collected diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Truncate drops diagnostics past the first n. Speculative parsers use it
// to roll back findings from a rejected interpretation.
func (b *Bag) Truncate(n int) {
	if n >= 0 && n < len(b.items) {
		b.items = b.items[:n]
	}
}

// Merge appends diagnostics from another bag, growing the limit if needed.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if newTotal > int(b.max) && newTotal <= int(^uint16(0)) {
		b.max = uint16(newTotal) // #nosec G115 -- bounded above
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, start, end, severity (desc), code for
// stable deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup removes diagnostics repeating the same code at the same span.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code, d.Primary)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, d)
	}
	b.items = kept
}

package ast

import (
	"ferric/internal/source"
)

// File is the root of one parsed compilation unit. It is produced once by
// the parser and read-only to every later stage.
type File struct {
	FileID source.FileID
	Items  []Item

	// Incompats records constructs the dialect cannot translate (union,
	// goto, #include). The driver forwards them to the analyzer.
	Incompats []Incompat

	// NestedFnCount is the number of nested fn statements in this file.
	// The parser assigns ids 0..NestedFnCount-1 in encounter order.
	NestedFnCount int
}

// IncompatKind classifies an untranslatable construct.
type IncompatKind uint8

const (
	IncompatUnion IncompatKind = iota
	IncompatGoto
	IncompatInclude
)

// Incompat records one untranslatable construct with the name, label, or
// path it carried.
type Incompat struct {
	Kind IncompatKind
	Name string
	Span source.Span
}

// Package sema implements semantic analysis for the ferric dialect: scoped
// symbol resolution, structural type compatibility, statement and expression
// type checking, and closure-capture analysis. Analysis never aborts on the
// first problem; errors accumulate in traversal order.
package sema

import (
	"fmt"

	"ferric/internal/diag"
	"ferric/internal/source"
)

// ErrorKind classifies a semantic error.
type ErrorKind uint8

const (
	// DuplicateDefinition is a same-scope name collision.
	DuplicateDefinition ErrorKind = iota
	// TypeMismatch is a structural incompatibility between expected and
	// found types.
	TypeMismatch
	// UndefinedVariable is an unresolved identifier.
	UndefinedVariable
	// InvalidOperation is an operation applied to a type that cannot
	// support it.
	InvalidOperation
	// UnsupportedFeature is a source construct with no sound translation.
	UnsupportedFeature
)

func (k ErrorKind) String() string {
	switch k {
	case DuplicateDefinition:
		return "duplicate definition"
	case TypeMismatch:
		return "type mismatch"
	case UndefinedVariable:
		return "undefined variable"
	case InvalidOperation:
		return "invalid operation"
	case UnsupportedFeature:
		return "unsupported feature"
	}
	return "unknown"
}

// Code maps the error kind onto its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case DuplicateDefinition:
		return diag.SemDuplicateDefinition
	case TypeMismatch:
		return diag.SemTypeMismatch
	case UndefinedVariable:
		return diag.SemUndefinedVariable
	case InvalidOperation:
		return diag.SemInvalidOperation
	case UnsupportedFeature:
		return diag.SemUnsupportedFeature
	}
	return diag.UnknownCode
}

// Error is one semantic finding. Errors are plain values; the ordered list
// collected by the analyzer is the analysis result.
type Error struct {
	Span    source.Span
	Kind    ErrorKind
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ToBag converts an error list into diagnostics for rendering.
func ToBag(errs []Error, bag *diag.Bag) {
	for _, e := range errs {
		bag.Error(e.Kind.Code(), e.Span, e.Message)
	}
}

package ast

import (
	"weave/internal/source"
)

// TypeSynKind enumerates type syntax kinds. Syntax only; resolution to
// actual types happens in sema.
type TypeSynKind uint8

const (
	// TypeSynName is a named type: Int, Float, Bool, String.
	TypeSynName TypeSynKind = iota
	// TypeSynUnit is the unit type ().
	TypeSynUnit
	// TypeSynTuple is a tuple type (A, B, ...).
	TypeSynTuple
	// TypeSynFn is a function type (A, B) -> R.
	TypeSynFn
)

// TypeSyn is a type as written in source.
type TypeSyn struct {
	Kind TypeSynKind
	Span source.Span

	Name   string
	Elems  []*TypeSyn
	Params []*TypeSyn
	Result *TypeSyn
}

package ast

import (
	"weave/internal/source"
)

// File is the root of one parsed program: a flat statement list.
type File struct {
	Stmts []*Stmt
	Span  source.Span
}

package ast

import (
	"weave/internal/source"
)

// FnStmt is the payload of StmtFn:
//
//	fn name(a: Int, b: Int) -> Int = a + b
type FnStmt struct {
	Name     string
	NameSpan source.Span
	Params   []FnParam
	Result   *TypeSyn
	Body     *Expr

	FnSpan source.Span
	EqSpan source.Span
}

// FnParam is one declared parameter.
type FnParam struct {
	Name     string
	NameSpan source.Span
	Type     *TypeSyn
	Span     source.Span
}

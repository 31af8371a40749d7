package ast

import (
	"weave/internal/source"
)

// StmtKind enumerates the different kinds of statements.
type StmtKind uint8

const (
	// StmtVal represents a val declaration.
	StmtVal StmtKind = iota
	// StmtFn represents a function declaration.
	StmtFn
	// StmtExpr represents a bare expression statement.
	StmtExpr
)

// Stmt represents a statement node. Exactly one payload field is set,
// matching Kind.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	Val  *ValStmt
	Fn   *FnStmt
	Expr *Expr
}

// ValStmt is the payload of StmtVal:
//
//	val name = expr
//	val name: Type = expr
//	val (a, b) = expr
type ValStmt struct {
	Pattern *Pattern
	Type    *TypeSyn // nil if inferred
	Value   *Expr

	ValSpan source.Span
	EqSpan  source.Span
}

// PatternKind enumerates binding pattern kinds.
type PatternKind uint8

const (
	// PatternName binds a single name.
	PatternName PatternKind = iota
	// PatternTuple destructures a tuple into element patterns.
	PatternTuple
)

// Pattern is a binding pattern on the left of a val declaration.
type Pattern struct {
	Kind PatternKind
	Span source.Span

	Name  string
	Elems []*Pattern
}

// Names appends every bound name in source order.
func (p *Pattern) Names(dst []string) []string {
	switch p.Kind {
	case PatternName:
		return append(dst, p.Name)
	case PatternTuple:
		for _, e := range p.Elems {
			dst = e.Names(dst)
		}
	}
	return dst
}

// Package document holds the runtime result of executing an instrumented
// program: sections of statements, each with its captured output and
// bound values, assembled through the builder the program drives.
package document

import (
	"weave/internal/vm"
)

// Pos is a recorded range in original snippet coordinates, 1-based.
type Pos struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Binder is one recorded name/value pair of a statement. Line and Col
// point at the name in the original snippet.
type Binder struct {
	Name  string
	Value vm.Value
	Line  int
	Col   int
}

// Statement mirrors one source statement at run time.
type Statement struct {
	// Pos is the recorded original range, nil when the section's mode
	// records no positions.
	Pos *Pos
	// Binders in bind-call order. Unit values are dropped on arrival.
	Binders []Binder
	// Output is everything the statement printed, verbatim.
	Output string
}

// Section mirrors one snippet: one runtime statement per source
// statement, same order.
type Section struct {
	Stmts []Statement
}

// RuntimeDocument is the completed, ordered sections of one execution.
type RuntimeDocument struct {
	Sections []Section
}

// Empty reports whether the document carries no sections.
func (d RuntimeDocument) Empty() bool {
	return len(d.Sections) == 0
}

// PositionedFailure locates a runtime failure: the section that was
// executing and the last position the program recorded before failing.
type PositionedFailure struct {
	// Section is the index of the active section, 0 when the program
	// failed before opening one.
	Section int
	// Pos is the last recorded original position, nil when the failing
	// section recorded none.
	Pos *Pos
	// Err is the underlying runtime error.
	Err *vm.RuntimeError
}

func (f *PositionedFailure) Error() string {
	return f.Err.Error()
}

func (f *PositionedFailure) Unwrap() error {
	return f.Err
}

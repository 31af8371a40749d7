package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"weave/internal/ast"
	"weave/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span stays within the file content bounds
// 2) every statement span is non-empty and fully contained in file.Span
// 3) statements appear in source order without overlap
// A file without statements may carry an empty span.
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file or source")
	}

	// file span sanity
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	if f.Span.End < f.Span.Start {
		return fmt.Errorf("inverted file span: %v", f.Span)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}
	if len(f.Stmts) > 0 && f.Span.Empty() {
		return fmt.Errorf("file span is empty with %d statements", len(f.Stmts))
	}

	// statement spans inside the file span, ordered and non-overlapping
	prevEnd := f.Span.Start
	for i, stmt := range f.Stmts {
		if stmt == nil {
			return fmt.Errorf("nil statement at index %d", i)
		}
		sp := stmt.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty statement span at index %d: %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("statement span file mismatch at index %d: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("statement span %v is outside file span %v", sp, f.Span)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("statement span %v overlaps the previous statement ending at %d", sp, prevEnd)
		}
		prevEnd = sp.End
	}
	return nil
}

package vm

import "io"

// Host is the callback surface instrumented programs drive. The document
// builder implements the section/statement half; the engine supplies the
// probe compiler and the output sink.
type Host interface {
	// BeginSection opens a runtime section.
	BeginSection()
	// EndSection closes the open section.
	EndSection()
	// RecordPosition associates the next statement with its span in the
	// original snippet, 1-based lines and columns.
	RecordPosition(startLine, startCol, endLine, endCol int)
	// AddBinder appends one binder to the current statement.
	AddBinder(name string, value Value, line, col int)
	// EndStatement closes the current statement's binder list.
	EndStatement()
	// Probe compiles one statement in isolation and reports the outcome.
	Probe(text string) *ProbeResult
	// Stdout receives everything the program prints.
	Stdout() io.Writer
}

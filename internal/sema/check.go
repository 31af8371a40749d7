package sema

import (
	"fmt"

	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/source"
	"weave/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
}

// Result carries the semantic side tables later passes consume.
type Result struct {
	// FnTypes maps each function declaration to its interned fn type,
	// so the evaluator can stamp function values without re-resolving
	// the written parameter types.
	FnTypes map[*ast.FnStmt]types.TypeID

	// LastType is the type of the file's final statement, NoTypeID for an
	// empty file or a statement that failed to check. Compile probes read
	// it to report what a statement would evaluate to.
	LastType types.TypeID
}

// Checker owns the document scope. Snippet programs of one document are
// checked against the same Checker, so a name bound in an early snippet
// resolves in every later one. Probes get a fresh Checker instead.
type Checker struct {
	types  *types.Interner
	global *Scope
}

// NewChecker constructs a checker whose document scope holds only the
// built-in functions and the runtime intrinsics.
func NewChecker(typesIn *types.Interner) *Checker {
	c := &Checker{types: typesIn}
	c.Reset()
	return c
}

// Reset drops every user binding and re-seeds the built-ins.
func (c *Checker) Reset() {
	c.global = newScope(nil)
	declareBuiltins(c.global)
}

// Types returns the interner the checker registers composite types in.
func (c *Checker) Types() *types.Interner {
	return c.types
}

// Lookup resolves a name in the document scope.
func (c *Checker) Lookup(name string) *Symbol {
	return c.global.Lookup(name)
}

// CheckFile type-checks the file and binds its declarations into the
// document scope. Diagnostics go to opts.Reporter; ok is false when at
// least one error was emitted.
//
// Bindings from failed statements still enter the scope with NoTypeID so
// later references do not cascade into unresolved-name errors.
func (c *Checker) CheckFile(file *ast.File, opts Options) (Result, bool) {
	res := Result{FnTypes: make(map[*ast.FnStmt]types.TypeID)}
	fc := &fileChecker{
		types:    c.types,
		reporter: opts.Reporter,
		scope:    c.global,
		result:   &res,
	}
	fc.checkFile(file)
	return res, fc.errors == 0
}

// fileChecker is the per-run state: one CheckFile call, one fileChecker.
type fileChecker struct {
	types    *types.Interner
	reporter diag.Reporter
	scope    *Scope
	result   *Result
	errors   uint
}

func (fc *fileChecker) checkFile(file *ast.File) {
	if file == nil {
		return
	}
	for _, stmt := range file.Stmts {
		fc.checkStmt(stmt)
	}
}

func (fc *fileChecker) report(code diag.Code, span source.Span, format string, args ...any) {
	fc.errors++
	if fc.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportError(fc.reporter, code, span, msg); b != nil {
		b.Emit()
	}
}

func (fc *fileChecker) typeLabel(id types.TypeID) string {
	return types.Label(fc.types, id)
}

func (fc *fileChecker) builtins() types.Builtins {
	return fc.types.Builtins()
}

package vm

import (
	"fmt"

	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/sema"
	"weave/internal/source"
	"weave/internal/types"
)

// maxCallDepth bounds user recursion so a runaway factorial ends in a
// reportable failure instead of a Go stack overflow.
const maxCallDepth = 1000

// RuntimeError is a failure raised while executing a snippet program.
// The span points into the instrumented text; the builder pairs it with
// the last recorded original position.
type RuntimeError struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func errRuntime(code diag.Code, span source.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Span: span, Msg: fmt.Sprintf(format, args...)}
}

// VM executes instrumented programs against a Host. One VM is reused for
// every program of a document render, so document-scope bindings persist
// between runs the same way the checker's scope does.
type VM struct {
	types   *types.Interner
	host    Host
	globals *env
	depth   int
}

type env struct {
	parent *env
	vars   map[string]Value
}

func newEnv(parent *env) *env {
	return &env{parent: parent, vars: make(map[string]Value, 8)}
}

func (e *env) lookup(name string) (Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

func (e *env) bind(name string, v Value) {
	e.vars[name] = v
}

// New constructs a VM sharing the front end's type interner.
func New(typesIn *types.Interner, host Host) *VM {
	vm := &VM{types: typesIn, host: host}
	vm.Reset()
	return vm
}

// Reset drops the document scope.
func (vm *VM) Reset() {
	vm.globals = newEnv(nil)
	vm.depth = 0
}

// Lookup resolves a name in the document scope. Used by tests and the
// engine's binder sanity checks.
func (vm *VM) Lookup(name string) (Value, bool) {
	return vm.globals.lookup(name)
}

// Run executes the program top to bottom. semaRes must come from the
// checker pass over the same file. The returned error is always a
// *RuntimeError; the host has already received every callback issued
// before the failure.
func (vm *VM) Run(file *ast.File, semaRes sema.Result) error {
	if file == nil {
		return nil
	}
	for _, stmt := range file.Stmts {
		if err := vm.execStmt(stmt, semaRes); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) builtins() types.Builtins {
	return vm.types.Builtins()
}

package vm

import (
	"io"
	"unicode/utf8"

	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/sema"
	"weave/internal/source"
)

// callBuiltin handles built-in and instrumentation intrinsic calls. The
// checker has already validated arity and argument types, so shape
// errors here indicate a front-end bug and surface as runtime failures.
func (vm *VM) callBuiltin(e *ast.Expr, env *env, semaRes sema.Result) (Value, error) {
	name := e.Call.Callee.Ident
	args, err := vm.evalArgs(e.Call.Args, env, semaRes)
	if err != nil {
		return Value{}, err
	}

	switch name {
	case sema.NameSect:
		vm.host.BeginSection()
		return MakeUnit(vm.builtins().Unit), nil

	case sema.NameClose:
		vm.host.EndSection()
		return MakeUnit(vm.builtins().Unit), nil

	case sema.NamePos:
		return vm.handlePos(e, args)

	case sema.NameBind:
		return vm.handleBind(e, args)

	case sema.NameEnd:
		vm.host.EndStatement()
		return MakeUnit(vm.builtins().Unit), nil

	case sema.NameProbe:
		return vm.handleProbe(e, args)

	case "println":
		return vm.handlePrintln(args)

	case "print":
		return vm.handlePrint(e, args)

	case "len":
		return vm.handleLen(e, args)

	case "str":
		return vm.handleStr(e, args)

	case "abs":
		return vm.handleAbs(e, args)

	case "min", "max":
		return vm.handleMinMax(e, name, args)

	default:
		return Value{}, errRuntime(diag.RunFailure, e.Span, "unknown built-in %q", name)
	}
}

func (vm *VM) handlePos(e *ast.Expr, args []Value) (Value, error) {
	if len(args) != 4 {
		return Value{}, vm.badIntrinsic(e.Span, sema.NamePos, args)
	}
	for _, a := range args {
		if a.Kind != VKInt {
			return Value{}, vm.badIntrinsic(e.Span, sema.NamePos, args)
		}
	}
	vm.host.RecordPosition(int(args[0].Int), int(args[1].Int), int(args[2].Int), int(args[3].Int))
	return MakeUnit(vm.builtins().Unit), nil
}

func (vm *VM) handleBind(e *ast.Expr, args []Value) (Value, error) {
	if len(args) != 4 || args[0].Kind != VKString || args[2].Kind != VKInt || args[3].Kind != VKInt {
		return Value{}, vm.badIntrinsic(e.Span, sema.NameBind, args)
	}
	vm.host.AddBinder(args[0].Str, args[1], int(args[2].Int), int(args[3].Int))
	return MakeUnit(vm.builtins().Unit), nil
}

func (vm *VM) handleProbe(e *ast.Expr, args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != VKString {
		return Value{}, vm.badIntrinsic(e.Span, sema.NameProbe, args)
	}
	res := vm.host.Probe(args[0].Str)
	if res == nil {
		return Value{}, errRuntime(diag.RunFailure, e.Span, "host returned no probe result")
	}
	return MakeProbe(res, vm.builtins().Probe), nil
}

func (vm *VM) handlePrintln(args []Value) (Value, error) {
	line := "\n"
	if len(args) == 1 {
		line = DisplayValue(args[0]) + "\n"
	}
	_, _ = io.WriteString(vm.host.Stdout(), line)
	return MakeUnit(vm.builtins().Unit), nil
}

func (vm *VM) handlePrint(e *ast.Expr, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, vm.badIntrinsic(e.Span, "print", args)
	}
	_, _ = io.WriteString(vm.host.Stdout(), DisplayValue(args[0]))
	return MakeUnit(vm.builtins().Unit), nil
}

func (vm *VM) handleLen(e *ast.Expr, args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != VKString {
		return Value{}, vm.badIntrinsic(e.Span, "len", args)
	}
	// len counts runes, not bytes.
	return MakeInt(int64(utf8.RuneCountInString(args[0].Str)), vm.builtins().Int), nil
}

func (vm *VM) handleStr(e *ast.Expr, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, vm.badIntrinsic(e.Span, "str", args)
	}
	return MakeString(DisplayValue(args[0]), vm.builtins().String), nil
}

func (vm *VM) handleAbs(e *ast.Expr, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, vm.badIntrinsic(e.Span, "abs", args)
	}
	v := args[0]
	switch v.Kind {
	case VKInt:
		if v.Int < 0 {
			return MakeInt(-v.Int, v.TypeID), nil
		}
		return v, nil
	case VKFloat:
		if v.Float < 0 {
			return MakeFloat(-v.Float, v.TypeID), nil
		}
		return v, nil
	default:
		return Value{}, vm.badIntrinsic(e.Span, "abs", args)
	}
}

func (vm *VM) handleMinMax(e *ast.Expr, name string, args []Value) (Value, error) {
	if len(args) != 2 || args[0].Kind != args[1].Kind {
		return Value{}, vm.badIntrinsic(e.Span, name, args)
	}
	a, b := args[0], args[1]
	wantMin := name == "min"
	switch a.Kind {
	case VKInt:
		if (a.Int < b.Int) == wantMin {
			return a, nil
		}
		return b, nil
	case VKFloat:
		if (a.Float < b.Float) == wantMin {
			return a, nil
		}
		return b, nil
	default:
		return Value{}, vm.badIntrinsic(e.Span, name, args)
	}
}

func (vm *VM) badIntrinsic(sp source.Span, name string, args []Value) error {
	kinds := make([]string, len(args))
	for i, a := range args {
		kinds[i] = a.Kind.String()
	}
	return errRuntime(diag.RunFailure, sp, "bad arguments to %s: %v", name, kinds)
}

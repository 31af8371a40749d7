package sema

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/types"
)

func (fc *fileChecker) inferCall(e *ast.Expr) types.TypeID {
	call := e.Call
	// Built-ins in callee position resolve specially: they are overloaded
	// and carry no fn type of their own.
	if call.Callee.Kind == ast.ExprIdent {
		if sym := fc.scope.Lookup(call.Callee.Ident); sym != nil &&
			(sym.Kind == SymbolBuiltin || sym.Kind == SymbolIntrinsic) {
			return fc.checkBuiltinCall(e, sym)
		}
	}

	calleeType := fc.inferExpr(call.Callee)
	if calleeType == types.NoTypeID {
		fc.inferArgs(call.Args)
		return types.NoTypeID
	}
	info, ok := fc.types.FnInfo(calleeType)
	if !ok {
		fc.report(diag.SemaNotCallable, call.Callee.Span,
			"value of type %s is not callable", fc.typeLabel(calleeType))
		fc.inferArgs(call.Args)
		return types.NoTypeID
	}
	if len(call.Args) != len(info.Params) {
		fc.report(diag.SemaWrongArgCount, e.Span,
			"call takes %d arguments, got %d", len(info.Params), len(call.Args))
		fc.inferArgs(call.Args)
		return info.Result
	}
	for i, arg := range call.Args {
		argType := fc.inferExpr(arg)
		if argType != types.NoTypeID && argType != info.Params[i] {
			fc.report(diag.SemaTypeMismatch, arg.Span,
				"argument %d is %s, expected %s",
				i+1, fc.typeLabel(argType), fc.typeLabel(info.Params[i]))
		}
	}
	return info.Result
}

func (fc *fileChecker) inferArgs(args []*ast.Expr) []types.TypeID {
	out := make([]types.TypeID, len(args))
	for i, arg := range args {
		out[i] = fc.inferExpr(arg)
	}
	return out
}

func (fc *fileChecker) checkBuiltinCall(e *ast.Expr, sym *Symbol) types.TypeID {
	args := fc.inferArgs(e.Call.Args)
	b := fc.builtins()

	switch sym.Builtin {
	case BuiltinPrintln:
		if len(args) > 1 {
			fc.report(diag.SemaWrongArgCount, e.Span,
				"println takes at most one argument, got %d", len(args))
		}
		return b.Unit
	case BuiltinPrint:
		fc.requireArgCount(e, sym.Name, 1, len(args))
		return b.Unit
	case BuiltinLen:
		if fc.requireArgCount(e, sym.Name, 1, len(args)) &&
			args[0] != types.NoTypeID && args[0] != b.String {
			fc.report(diag.SemaTypeMismatch, e.Call.Args[0].Span,
				"len expects String, got %s", fc.typeLabel(args[0]))
		}
		return b.Int
	case BuiltinStr:
		fc.requireArgCount(e, sym.Name, 1, len(args))
		return b.String
	case BuiltinAbs:
		if !fc.requireArgCount(e, sym.Name, 1, len(args)) || args[0] == types.NoTypeID {
			return types.NoTypeID
		}
		if args[0] == b.Int || args[0] == b.Float {
			return args[0]
		}
		fc.report(diag.SemaTypeMismatch, e.Call.Args[0].Span,
			"abs expects Int or Float, got %s", fc.typeLabel(args[0]))
		return types.NoTypeID
	case BuiltinMin, BuiltinMax:
		if !fc.requireArgCount(e, sym.Name, 2, len(args)) ||
			args[0] == types.NoTypeID || args[1] == types.NoTypeID {
			return types.NoTypeID
		}
		if args[0] == args[1] && (args[0] == b.Int || args[0] == b.Float) {
			return args[0]
		}
		fc.report(diag.SemaTypeMismatch, e.Span,
			"%s expects two Int or two Float arguments, got %s and %s",
			sym.Name, fc.typeLabel(args[0]), fc.typeLabel(args[1]))
		return types.NoTypeID

	case IntrinsicSect, IntrinsicClose, IntrinsicEnd:
		fc.requireArgCount(e, sym.Name, 0, len(args))
		return b.Unit
	case IntrinsicPos:
		if fc.requireArgCount(e, sym.Name, 4, len(args)) {
			for i, at := range args {
				if at != types.NoTypeID && at != b.Int {
					fc.report(diag.SemaTypeMismatch, e.Call.Args[i].Span,
						"argument %d of %s is %s, expected Int",
						i+1, sym.Name, fc.typeLabel(at))
				}
			}
		}
		return b.Unit
	case IntrinsicBind:
		// (name String, value of any type, line Int, col Int)
		if fc.requireArgCount(e, sym.Name, 4, len(args)) {
			if args[0] != types.NoTypeID && args[0] != b.String {
				fc.report(diag.SemaTypeMismatch, e.Call.Args[0].Span,
					"argument 1 of %s is %s, expected String",
					sym.Name, fc.typeLabel(args[0]))
			}
			for _, i := range [...]int{2, 3} {
				if args[i] != types.NoTypeID && args[i] != b.Int {
					fc.report(diag.SemaTypeMismatch, e.Call.Args[i].Span,
						"argument %d of %s is %s, expected Int",
						i+1, sym.Name, fc.typeLabel(args[i]))
				}
			}
		}
		return b.Unit
	case IntrinsicProbe:
		if fc.requireArgCount(e, sym.Name, 1, len(args)) &&
			args[0] != types.NoTypeID && args[0] != b.String {
			fc.report(diag.SemaTypeMismatch, e.Call.Args[0].Span,
				"argument of %s is %s, expected String",
				sym.Name, fc.typeLabel(args[0]))
		}
		return b.Probe
	default:
		return types.NoTypeID
	}
}

func (fc *fileChecker) requireArgCount(e *ast.Expr, name string, want, got int) bool {
	if got == want {
		return true
	}
	fc.report(diag.SemaWrongArgCount, e.Span,
		"%s takes %d arguments, got %d", name, want, got)
	return false
}

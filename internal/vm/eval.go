package vm

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/sema"
	"weave/internal/types"
)

func (vm *VM) execStmt(stmt *ast.Stmt, semaRes sema.Result) error {
	switch stmt.Kind {
	case ast.StmtVal:
		return vm.execVal(stmt.Val, semaRes)
	case ast.StmtFn:
		return vm.execFn(stmt.Fn, semaRes)
	case ast.StmtExpr:
		_, err := vm.evalExpr(stmt.Expr, vm.globals, semaRes)
		return err
	default:
		return errRuntime(diag.RunFailure, stmt.Span, "unknown statement kind %d", stmt.Kind)
	}
}

func (vm *VM) execVal(val *ast.ValStmt, semaRes sema.Result) error {
	v, err := vm.evalExpr(val.Value, vm.globals, semaRes)
	if err != nil {
		return err
	}
	return vm.bindPattern(val.Pattern, v, vm.globals)
}

// execFn stamps the declaration into the document scope. The fn type was
// resolved by the checker; re-deriving it here would mean re-resolving
// type syntax, so the side table is authoritative.
func (vm *VM) execFn(fn *ast.FnStmt, semaRes sema.Result) error {
	fnType := types.NoTypeID
	if semaRes.FnTypes != nil {
		fnType = semaRes.FnTypes[fn]
	}
	vm.globals.bind(fn.Name, MakeFn(fn.Name, fn, fnType))
	return nil
}

func (vm *VM) bindPattern(pat *ast.Pattern, v Value, env *env) error {
	switch pat.Kind {
	case ast.PatternName:
		env.bind(pat.Name, v)
		return nil
	case ast.PatternTuple:
		if v.Kind != VKTuple || len(v.Elems) != len(pat.Elems) {
			return errRuntime(diag.RunFailure, pat.Span, "cannot destructure %s into %d names", v.Kind, len(pat.Elems))
		}
		for i, elem := range pat.Elems {
			if err := vm.bindPattern(elem, v.Elems[i], env); err != nil {
				return err
			}
		}
		return nil
	default:
		return errRuntime(diag.RunFailure, pat.Span, "unknown pattern kind %d", pat.Kind)
	}
}

func (vm *VM) evalExpr(e *ast.Expr, env *env, semaRes sema.Result) (Value, error) {
	switch e.Kind {
	case ast.ExprIdent:
		return vm.evalIdent(e, env)
	case ast.ExprLit:
		return vm.evalLit(e)
	case ast.ExprGroup:
		return vm.evalExpr(e.Group, env, semaRes)
	case ast.ExprTuple:
		return vm.evalTuple(e, env, semaRes)
	case ast.ExprUnary:
		return vm.evalUnary(e, env, semaRes)
	case ast.ExprBinary:
		return vm.evalBinary(e, env, semaRes)
	case ast.ExprTernary:
		return vm.evalTernary(e, env, semaRes)
	case ast.ExprCall:
		return vm.evalCall(e, env, semaRes)
	default:
		return Value{}, errRuntime(diag.RunFailure, e.Span, "unknown expression kind %d", e.Kind)
	}
}

func (vm *VM) evalIdent(e *ast.Expr, env *env) (Value, error) {
	if v, ok := env.lookup(e.Ident); ok {
		return v, nil
	}
	// The checker resolved the name, so a miss here can only be a
	// built-in used as a callee; evalCall handles those before
	// evaluating the callee expression.
	return Value{}, errRuntime(diag.RunFailure, e.Span, "undefined name %q", e.Ident)
}

func (vm *VM) evalLit(e *ast.Expr) (Value, error) {
	b := vm.builtins()
	switch e.Lit.Kind {
	case ast.LitInt:
		return MakeInt(e.Lit.Int, b.Int), nil
	case ast.LitFloat:
		return MakeFloat(e.Lit.Float, b.Float), nil
	case ast.LitString:
		return MakeString(e.Lit.Str, b.String), nil
	case ast.LitBool:
		return MakeBool(e.Lit.Bool, b.Bool), nil
	case ast.LitUnit:
		return MakeUnit(b.Unit), nil
	default:
		return Value{}, errRuntime(diag.RunFailure, e.Span, "unknown literal kind %d", e.Lit.Kind)
	}
}

func (vm *VM) evalTuple(e *ast.Expr, env *env, semaRes sema.Result) (Value, error) {
	elems := make([]Value, len(e.Tuple))
	elemTypes := make([]types.TypeID, len(e.Tuple))
	for i, el := range e.Tuple {
		v, err := vm.evalExpr(el, env, semaRes)
		if err != nil {
			return Value{}, err
		}
		elems[i] = v
		elemTypes[i] = v.TypeID
	}
	return MakeTuple(elems, vm.types.RegisterTuple(elemTypes)), nil
}

func (vm *VM) evalTernary(e *ast.Expr, env *env, semaRes sema.Result) (Value, error) {
	cond, err := vm.evalExpr(e.Ternary.Cond, env, semaRes)
	if err != nil {
		return Value{}, err
	}
	if cond.Bool {
		return vm.evalExpr(e.Ternary.Then, env, semaRes)
	}
	return vm.evalExpr(e.Ternary.Else, env, semaRes)
}

func (vm *VM) evalCall(e *ast.Expr, env *env, semaRes sema.Result) (Value, error) {
	callee := e.Call.Callee
	if callee.Kind == ast.ExprIdent {
		if _, bound := env.lookup(callee.Ident); !bound {
			// Not a document value, so the checker accepted it as a
			// built-in or intrinsic call.
			return vm.callBuiltin(e, env, semaRes)
		}
	}
	fnVal, err := vm.evalExpr(callee, env, semaRes)
	if err != nil {
		return Value{}, err
	}
	if fnVal.Kind != VKFn || fnVal.Fn == nil {
		return Value{}, errRuntime(diag.RunFailure, callee.Span, "value of kind %s is not callable", fnVal.Kind)
	}
	args, err := vm.evalArgs(e.Call.Args, env, semaRes)
	if err != nil {
		return Value{}, err
	}
	return vm.applyFn(e, fnVal.Fn, args, semaRes)
}

func (vm *VM) evalArgs(exprs []*ast.Expr, env *env, semaRes sema.Result) ([]Value, error) {
	args := make([]Value, len(exprs))
	for i, arg := range exprs {
		v, err := vm.evalExpr(arg, env, semaRes)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// applyFn runs a user function body in a fresh frame. Bodies see their
// parameters and the document scope, nothing in between.
func (vm *VM) applyFn(call *ast.Expr, fn *FnValue, args []Value, semaRes sema.Result) (Value, error) {
	if vm.depth >= maxCallDepth {
		return Value{}, errRuntime(diag.RunRecursionLimit, call.Span, "call depth exceeds %d in %q", maxCallDepth, fn.Name)
	}
	frame := newEnv(vm.globals)
	for i, p := range fn.Decl.Params {
		frame.bind(p.Name, args[i])
	}
	vm.depth++
	v, err := vm.evalExpr(fn.Decl.Body, frame, semaRes)
	vm.depth--
	return v, err
}

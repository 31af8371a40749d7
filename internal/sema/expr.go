package sema

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/types"
)

// inferExpr returns the type of the expression, reporting on the way.
// NoTypeID means the expression (or a subexpression) already reported;
// callers propagate it silently to avoid error cascades.
func (fc *fileChecker) inferExpr(e *ast.Expr) types.TypeID {
	if e == nil {
		return types.NoTypeID
	}
	switch e.Kind {
	case ast.ExprIdent:
		return fc.inferIdent(e)
	case ast.ExprLit:
		return fc.literalType(e.Lit)
	case ast.ExprGroup:
		return fc.inferExpr(e.Group)
	case ast.ExprTuple:
		return fc.inferTuple(e)
	case ast.ExprUnary:
		return fc.inferUnary(e)
	case ast.ExprBinary:
		return fc.inferBinary(e)
	case ast.ExprTernary:
		return fc.inferTernary(e)
	case ast.ExprCall:
		return fc.inferCall(e)
	default:
		return types.NoTypeID
	}
}

func (fc *fileChecker) inferIdent(e *ast.Expr) types.TypeID {
	sym := fc.scope.Lookup(e.Ident)
	if sym == nil {
		fc.report(diag.SemaUnresolvedSymbol, e.Span, "undefined name %q", e.Ident)
		return types.NoTypeID
	}
	if sym.Kind == SymbolBuiltin || sym.Kind == SymbolIntrinsic {
		// Overloaded built-ins have no single fn type and are not values.
		fc.report(diag.SemaTypeMismatch, e.Span,
			"built-in function %q is not a value", e.Ident)
		return types.NoTypeID
	}
	return sym.Type
}

func (fc *fileChecker) literalType(lit *ast.Lit) types.TypeID {
	if lit == nil {
		return types.NoTypeID
	}
	b := fc.builtins()
	switch lit.Kind {
	case ast.LitInt:
		return b.Int
	case ast.LitFloat:
		return b.Float
	case ast.LitString:
		return b.String
	case ast.LitBool:
		return b.Bool
	case ast.LitUnit:
		return b.Unit
	default:
		return types.NoTypeID
	}
}

func (fc *fileChecker) inferTuple(e *ast.Expr) types.TypeID {
	elems := make([]types.TypeID, len(e.Tuple))
	for i, el := range e.Tuple {
		elems[i] = fc.inferExpr(el)
	}
	if containsNoType(elems) {
		return types.NoTypeID
	}
	return fc.types.RegisterTuple(elems)
}

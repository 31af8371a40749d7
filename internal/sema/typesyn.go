package sema

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/types"
)

// resolveTypeSyn lowers a written type to an interned TypeID. Unknown
// names report and yield NoTypeID.
func (fc *fileChecker) resolveTypeSyn(ts *ast.TypeSyn) types.TypeID {
	if ts == nil {
		return types.NoTypeID
	}
	switch ts.Kind {
	case ast.TypeSynName:
		b := fc.builtins()
		switch ts.Name {
		case "Int":
			return b.Int
		case "Float":
			return b.Float
		case "Bool":
			return b.Bool
		case "String":
			return b.String
		default:
			fc.report(diag.SemaUnknownType, ts.Span, "unknown type %q", ts.Name)
			return types.NoTypeID
		}
	case ast.TypeSynUnit:
		return fc.builtins().Unit
	case ast.TypeSynTuple:
		elems := make([]types.TypeID, len(ts.Elems))
		for i, e := range ts.Elems {
			elems[i] = fc.resolveTypeSyn(e)
		}
		if containsNoType(elems) {
			return types.NoTypeID
		}
		return fc.types.RegisterTuple(elems)
	case ast.TypeSynFn:
		params := make([]types.TypeID, len(ts.Params))
		for i, p := range ts.Params {
			params[i] = fc.resolveTypeSyn(p)
		}
		result := fc.resolveTypeSyn(ts.Result)
		if result == types.NoTypeID || containsNoType(params) {
			return types.NoTypeID
		}
		return fc.types.RegisterFn(params, result)
	default:
		return types.NoTypeID
	}
}

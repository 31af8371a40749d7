package types

import (
	"strings"
)

// Label returns the surface syntax for a TypeID, the way declarations
// and rendered binder lines spell it: Int, Float, Bool, String, (),
// (Int, String), (Int, Int) -> Int.
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if typesIn == nil || id == NoTypeID {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindUnit:
		return "()"
	case KindProbe:
		return "Probe"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindTuple:
		info, ok := typesIn.TupleInfo(id)
		if !ok {
			return "?"
		}
		parts := make([]string, len(info.Elems))
		for i, e := range info.Elems {
			parts[i] = labelDepth(typesIn, e, depth+1)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindFn:
		info, ok := typesIn.FnInfo(id)
		if !ok {
			return "?"
		}
		parts := make([]string, len(info.Params))
		for i, p := range info.Params {
			parts[i] = labelDepth(typesIn, p, depth+1)
		}
		return "(" + strings.Join(parts, ", ") + ") -> " + labelDepth(typesIn, info.Result, depth+1)
	default:
		return "?"
	}
}

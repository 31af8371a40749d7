package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindString
	KindInt
	KindFloat
	KindTuple
	KindFn
	// KindProbe is the result of a compile probe. Never written by
	// users; carried so probe bindings are not unit-typed.
	KindProbe
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTuple:
		return "tuple"
	case KindFn:
		return "fn"
	case KindProbe:
		return "probe"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type. Composite kinds
// (tuple, fn) keep their element lists in a payload slot.
type Type struct {
	Kind    Kind
	Payload uint32
}

// IsNumeric reports whether id is Int or Float.
func IsNumeric(in *Interner, id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && (tt.Kind == KindInt || tt.Kind == KindFloat)
}

// IsOrdered reports whether values of the type support < <= > >=.
func IsOrdered(in *Interner, id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindInt, KindFloat, KindString:
		return true
	default:
		return false
	}
}

// IsEquatable reports whether values of the type support == and !=.
// Tuples are equatable when every element is; functions never are.
func IsEquatable(in *Interner, id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindUnit, KindBool, KindString, KindInt, KindFloat:
		return true
	case KindTuple:
		info, ok := in.TupleInfo(id)
		if !ok {
			return false
		}
		for _, e := range info.Elems {
			if !IsEquatable(in, e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

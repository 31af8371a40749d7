// Package vm implements a tree-walking evaluator for instrumented
// snippet programs. Results flow to a Host instead of a terminal, so
// the document builder can capture binders and side output.
package vm

import (
	"fmt"
	"strings"

	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/types"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKInvalid represents an invalid value.
	VKInvalid ValueKind = iota
	// VKUnit represents the unit value.
	VKUnit
	// VKInt represents a signed integer value.
	VKInt
	// VKFloat represents a floating point value.
	VKFloat
	// VKBool represents a boolean value.
	VKBool
	// VKString represents a string value.
	VKString
	// VKTuple represents a fixed-arity tuple value.
	VKTuple
	// VKFn represents a function value.
	VKFn
	// VKProbe represents the outcome of a compile probe.
	VKProbe
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case VKInvalid:
		return "invalid"
	case VKUnit:
		return "unit"
	case VKInt:
		return "int"
	case VKFloat:
		return "float"
	case VKBool:
		return "bool"
	case VKString:
		return "string"
	case VKTuple:
		return "tuple"
	case VKFn:
		return "fn"
	case VKProbe:
		return "probe"
	default:
		return fmt.Sprintf("ValueKind(%d)", k)
	}
}

// Value represents a runtime value. TypeID carries the static type so
// binder rendering never has to re-derive it from structure.
type Value struct {
	TypeID types.TypeID
	Kind   ValueKind
	Int    int64
	Float  float64
	Bool   bool
	Str    string
	Elems  []Value      // for VKTuple
	Fn     *FnValue     // for VKFn
	Probe  *ProbeResult // for VKProbe
}

// FnValue is a named function bound to its declaration. The language has
// no closures: bodies only see parameters and the document scope.
type FnValue struct {
	Name string
	Decl *ast.FnStmt
}

// IsZero reports whether this is the zero/invalid value.
func (v Value) IsZero() bool {
	return v.Kind == VKInvalid
}

// IsUnit reports whether the value is the unit value.
func (v Value) IsUnit() bool {
	return v.Kind == VKUnit
}

// Equal compares two values structurally. Functions and probes are never
// equal to anything; the checker rejects comparing them before it runs.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case VKUnit:
		return true
	case VKInt:
		return v.Int == other.Int
	case VKFloat:
		return v.Float == other.Float
	case VKBool:
		return v.Bool == other.Bool
	case VKString:
		return v.Str == other.Str
	case VKTuple:
		if len(v.Elems) != len(other.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(other.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns a debug representation. Rendering for documents goes
// through FormatValue instead.
func (v Value) String() string {
	switch v.Kind {
	case VKInvalid:
		return "<invalid>"
	case VKUnit:
		return "()"
	case VKInt:
		return fmt.Sprintf("%d", v.Int)
	case VKFloat:
		return fmt.Sprintf("%g", v.Float)
	case VKBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case VKString:
		return v.Str
	case VKTuple:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case VKFn:
		if v.Fn != nil {
			return "<fn " + v.Fn.Name + ">"
		}
		return "<fn>"
	case VKProbe:
		return "<probe>"
	default:
		return fmt.Sprintf("<unknown:%d>", v.Kind)
	}
}

// MakeUnit creates the unit value.
func MakeUnit(typeID types.TypeID) Value {
	return Value{TypeID: typeID, Kind: VKUnit}
}

// MakeInt creates an integer value.
func MakeInt(n int64, typeID types.TypeID) Value {
	return Value{TypeID: typeID, Kind: VKInt, Int: n}
}

// MakeFloat creates a floating point value.
func MakeFloat(f float64, typeID types.TypeID) Value {
	return Value{TypeID: typeID, Kind: VKFloat, Float: f}
}

// MakeBool creates a boolean value.
func MakeBool(b bool, typeID types.TypeID) Value {
	return Value{TypeID: typeID, Kind: VKBool, Bool: b}
}

// MakeString creates a string value.
func MakeString(s string, typeID types.TypeID) Value {
	return Value{TypeID: typeID, Kind: VKString, Str: s}
}

// MakeTuple creates a tuple value.
func MakeTuple(elems []Value, typeID types.TypeID) Value {
	return Value{TypeID: typeID, Kind: VKTuple, Elems: elems}
}

// MakeFn creates a function value.
func MakeFn(name string, decl *ast.FnStmt, typeID types.TypeID) Value {
	return Value{TypeID: typeID, Kind: VKFn, Fn: &FnValue{Name: name, Decl: decl}}
}

// MakeProbe creates a probe outcome value.
func MakeProbe(res *ProbeResult, typeID types.TypeID) Value {
	return Value{TypeID: typeID, Kind: VKProbe, Probe: res}
}

// ProbeStatus classifies the outcome of compiling one statement in
// isolation.
type ProbeStatus uint8

const (
	// ProbeTypeChecked means the statement compiled; Label holds its type.
	ProbeTypeChecked ProbeStatus = iota
	// ProbeParseError means the statement failed to parse.
	ProbeParseError
	// ProbeTypeError means the statement parsed but failed the checker.
	ProbeTypeError
)

// String returns a short name for the probe status.
func (s ProbeStatus) String() string {
	switch s {
	case ProbeTypeChecked:
		return "type-checked"
	case ProbeParseError:
		return "parse-error"
	case ProbeTypeError:
		return "type-error"
	default:
		return fmt.Sprintf("ProbeStatus(%d)", s)
	}
}

// ProbeResult is the value bound for one Fail-mode statement.
type ProbeResult struct {
	Status ProbeStatus
	// Text is the statement exactly as written in the snippet.
	Text string
	// Label is the inferred type when Status is ProbeTypeChecked.
	Label string
	// Diags holds the compile diagnostics otherwise.
	Diags []diag.Diagnostic
}

// Message returns the first error diagnostic's message, empty for a
// type-checked probe.
func (r *ProbeResult) Message() string {
	for _, d := range r.Diags {
		if d.Severity == diag.SevError {
			return d.Message
		}
	}
	return ""
}

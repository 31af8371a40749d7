package sema

// BuiltinID identifies a built-in function or a runtime intrinsic.
type BuiltinID uint8

const (
	NoBuiltin BuiltinID = iota

	BuiltinPrintln
	BuiltinPrint
	BuiltinLen
	BuiltinStr
	BuiltinAbs
	BuiltinMin
	BuiltinMax

	IntrinsicSect
	IntrinsicClose
	IntrinsicPos
	IntrinsicBind
	IntrinsicEnd
	IntrinsicProbe
)

// Intrinsic names exactly as the instrumenter writes them into snippet
// programs. The evaluator dispatches on the same constants.
const (
	NameSect  = "__w_sect"
	NameClose = "__w_close"
	NamePos   = "__w_pos"
	NameBind  = "__w_bind"
	NameEnd   = "__w_end"
	NameProbe = "__w_probe"
)

type builtinSpec struct {
	name string
	id   BuiltinID
	kind SymbolKind
}

var builtinSpecs = []builtinSpec{
	{name: "println", id: BuiltinPrintln, kind: SymbolBuiltin},
	{name: "print", id: BuiltinPrint, kind: SymbolBuiltin},
	{name: "len", id: BuiltinLen, kind: SymbolBuiltin},
	{name: "str", id: BuiltinStr, kind: SymbolBuiltin},
	{name: "abs", id: BuiltinAbs, kind: SymbolBuiltin},
	{name: "min", id: BuiltinMin, kind: SymbolBuiltin},
	{name: "max", id: BuiltinMax, kind: SymbolBuiltin},

	{name: NameSect, id: IntrinsicSect, kind: SymbolIntrinsic},
	{name: NameClose, id: IntrinsicClose, kind: SymbolIntrinsic},
	{name: NamePos, id: IntrinsicPos, kind: SymbolIntrinsic},
	{name: NameBind, id: IntrinsicBind, kind: SymbolIntrinsic},
	{name: NameEnd, id: IntrinsicEnd, kind: SymbolIntrinsic},
	{name: NameProbe, id: IntrinsicProbe, kind: SymbolIntrinsic},
}

// declareBuiltins seeds a fresh document scope. Built-ins carry no fn type
// of their own: several are overloaded over Int and Float, so their calls
// are checked per call site and the symbols are not first-class values.
func declareBuiltins(scope *Scope) {
	for _, spec := range builtinSpecs {
		scope.Declare(&Symbol{Name: spec.name, Kind: spec.kind, Builtin: spec.id})
	}
}

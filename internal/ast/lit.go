package ast

// LitKind enumerates literal kinds.
type LitKind uint8

const (
	// LitInt represents an integer literal.
	LitInt LitKind = iota
	// LitFloat represents a floating point literal.
	LitFloat
	// LitString represents a string literal.
	LitString
	// LitBool represents true/false.
	LitBool
	// LitUnit represents the unit literal ().
	LitUnit
)

// Lit is the payload of ExprLit. Text is the raw source slice;
// the decoded value lives in the field matching Kind.
type Lit struct {
	Kind LitKind
	Text string

	Int   int64
	Float float64
	Str   string
	Bool  bool
}

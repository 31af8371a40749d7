package token

// Kind enumerates all lexical token kinds.
type Kind uint8

const (
	// Invalid is an invalid or unrecognized token.
	Invalid Kind = iota
	// EOF is the end of file/input marker.
	EOF

	// Ident is an identifier, including built-in type names.
	Ident

	// KwVal is the `val` keyword.
	KwVal
	// KwFn is the `fn` keyword.
	KwFn
	// KwTrue is the `true` literal keyword.
	KwTrue
	// KwFalse is the `false` literal keyword.
	KwFalse

	// IntLit is an integer literal, e.g. `42`.
	IntLit
	// FloatLit is a floating point literal, e.g. `3.14`.
	FloatLit
	// StringLit is a double-quoted string literal.
	StringLit

	// Plus is `+`.
	Plus
	// Minus is `-`.
	Minus
	// Star is `*`.
	Star
	// Slash is `/`.
	Slash
	// Percent is `%`.
	Percent

	// Assign is `=`.
	Assign
	// EqEq is `==`.
	EqEq
	// Bang is `!`.
	Bang
	// BangEq is `!=`.
	BangEq
	// Lt is `<`.
	Lt
	// LtEq is `<=`.
	LtEq
	// Gt is `>`.
	Gt
	// GtEq is `>=`.
	GtEq
	// AndAnd is `&&`.
	AndAnd
	// OrOr is `||`.
	OrOr

	// Question is `?`.
	Question
	// Colon is `:`.
	Colon
	// Semicolon is `;`.
	Semicolon
	// Comma is `,`.
	Comma
	// Arrow is `->`.
	Arrow

	// LParen is `(`.
	LParen
	// RParen is `)`.
	RParen

	kindCount
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwVal:     "KwVal",
	KwFn:      "KwFn",
	KwTrue:    "KwTrue",
	KwFalse:   "KwFalse",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Percent:   "Percent",
	Assign:    "Assign",
	EqEq:      "EqEq",
	Bang:      "Bang",
	BangEq:    "BangEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	AndAnd:    "AndAnd",
	OrOr:      "OrOr",
	Question:  "Question",
	Colon:     "Colon",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	Arrow:     "Arrow",
	LParen:    "LParen",
	RParen:    "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

package ast

import (
	"weave/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent represents an identifier expression.
	ExprIdent ExprKind = iota
	// ExprLit represents a literal expression.
	ExprLit
	// ExprCall represents a function call expression.
	ExprCall
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprUnary represents a unary expression.
	ExprUnary
	// ExprGroup represents a parenthesized expression.
	ExprGroup
	ExprTuple
	ExprTernary
)

// Expr represents an expression node. Exactly one payload field is set,
// matching Kind.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Ident   string
	Lit     *Lit
	Call    *CallExpr
	Binary  *BinaryExpr
	Unary   *UnaryExpr
	Group   *Expr
	Tuple   []*Expr
	Ternary *TernaryExpr
}

// CallExpr is the payload of ExprCall.
type CallExpr struct {
	Callee *Expr
	Args   []*Expr
}

// BinaryExpr is the payload of ExprBinary.
type BinaryExpr struct {
	Op     ExprBinaryOp
	OpSpan source.Span
	Left   *Expr
	Right  *Expr
}

// UnaryExpr is the payload of ExprUnary.
type UnaryExpr struct {
	Op      ExprUnaryOp
	OpSpan  source.Span
	Operand *Expr
}

// TernaryExpr is the payload of ExprTernary (cond ? then : else).
type TernaryExpr struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// Арифметические

	// ExprBinaryAdd represents the addition operator (+).
	ExprBinaryAdd ExprBinaryOp = iota
	// ExprBinarySub represents the subtraction operator (-).
	ExprBinarySub
	// ExprBinaryMul represents the multiplication operator (*).
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	// Логические

	// ExprBinaryLogicalAnd represents the logical AND operator (&&).
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	// Сравнения

	// ExprBinaryEq represents the equality operator (==).
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
)

var binaryLexemes = [...]string{
	ExprBinaryAdd:        "+",
	ExprBinarySub:        "-",
	ExprBinaryMul:        "*",
	ExprBinaryDiv:        "/",
	ExprBinaryMod:        "%",
	ExprBinaryLogicalAnd: "&&",
	ExprBinaryLogicalOr:  "||",
	ExprBinaryEq:         "==",
	ExprBinaryNotEq:      "!=",
	ExprBinaryLess:       "<",
	ExprBinaryLessEq:     "<=",
	ExprBinaryGreater:    ">",
	ExprBinaryGreaterEq:  ">=",
}

// Lexeme returns the operator as written in source, for diagnostics.
func (op ExprBinaryOp) Lexeme() string {
	if int(op) < len(binaryLexemes) {
		return binaryLexemes[op]
	}
	return "?"
}

// IsComparison reports whether the operator yields Bool from two
// operands of one comparable type.
func (op ExprBinaryOp) IsComparison() bool {
	switch op {
	case ExprBinaryEq, ExprBinaryNotEq, ExprBinaryLess, ExprBinaryLessEq, ExprBinaryGreater, ExprBinaryGreaterEq:
		return true
	default:
		return false
	}
}

// IsLogical reports whether the operator is && or ||.
func (op ExprBinaryOp) IsLogical() bool {
	return op == ExprBinaryLogicalAnd || op == ExprBinaryLogicalOr
}

// ExprUnaryOp enumerates unary operator kinds.
type ExprUnaryOp uint8

const (
	// ExprUnaryNeg represents arithmetic negation (-).
	ExprUnaryNeg ExprUnaryOp = iota
	// ExprUnaryNot represents logical negation (!).
	ExprUnaryNot
)

// Lexeme returns the operator as written in source, for diagnostics.
func (op ExprUnaryOp) Lexeme() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryNot:
		return "!"
	default:
		return "?"
	}
}

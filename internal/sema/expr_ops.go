package sema

import (
	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/types"
)

func (fc *fileChecker) inferUnary(e *ast.Expr) types.TypeID {
	u := e.Unary
	operand := fc.inferExpr(u.Operand)
	if operand == types.NoTypeID {
		return types.NoTypeID
	}
	b := fc.builtins()
	switch u.Op {
	case ast.ExprUnaryNeg:
		if operand == b.Int || operand == b.Float {
			return operand
		}
		fc.report(diag.SemaInvalidUnaryOperand, e.Span,
			"operator %s expects Int or Float, got %s",
			u.Op.Lexeme(), fc.typeLabel(operand))
	case ast.ExprUnaryNot:
		if operand == b.Bool {
			return b.Bool
		}
		fc.report(diag.SemaInvalidUnaryOperand, e.Span,
			"operator %s expects Bool, got %s",
			u.Op.Lexeme(), fc.typeLabel(operand))
	}
	return types.NoTypeID
}

func (fc *fileChecker) inferBinary(e *ast.Expr) types.TypeID {
	bin := e.Binary
	left := fc.inferExpr(bin.Left)
	right := fc.inferExpr(bin.Right)
	if left == types.NoTypeID || right == types.NoTypeID {
		return types.NoTypeID
	}
	b := fc.builtins()
	op := bin.Op
	switch {
	case op.IsLogical():
		if left != b.Bool || right != b.Bool {
			fc.report(diag.SemaInvalidBinaryOperands, bin.OpSpan,
				"operator %s expects Bool operands, got %s and %s",
				op.Lexeme(), fc.typeLabel(left), fc.typeLabel(right))
			return types.NoTypeID
		}
		return b.Bool
	case op.IsComparison():
		return fc.inferComparison(bin, left, right)
	default:
		return fc.inferArith(bin, left, right)
	}
}

func (fc *fileChecker) inferComparison(bin *ast.BinaryExpr, left, right types.TypeID) types.TypeID {
	if left != right {
		fc.report(diag.SemaInvalidBinaryOperands, bin.OpSpan,
			"cannot compare %s with %s", fc.typeLabel(left), fc.typeLabel(right))
		return types.NoTypeID
	}
	equality := bin.Op == ast.ExprBinaryEq || bin.Op == ast.ExprBinaryNotEq
	if equality {
		if !types.IsEquatable(fc.types, left) {
			fc.report(diag.SemaInvalidBinaryOperands, bin.OpSpan,
				"values of type %s cannot be compared for equality", fc.typeLabel(left))
			return types.NoTypeID
		}
	} else if !types.IsOrdered(fc.types, left) {
		fc.report(diag.SemaInvalidBinaryOperands, bin.OpSpan,
			"operator %s expects ordered operands, got %s",
			bin.Op.Lexeme(), fc.typeLabel(left))
		return types.NoTypeID
	}
	return fc.builtins().Bool
}

// inferArith covers + - * / %. Operands must share one numeric type;
// the one non-numeric form is string concatenation with +.
func (fc *fileChecker) inferArith(bin *ast.BinaryExpr, left, right types.TypeID) types.TypeID {
	b := fc.builtins()
	if bin.Op == ast.ExprBinaryAdd && left == b.String && right == b.String {
		return b.String
	}
	if bin.Op == ast.ExprBinaryMod {
		if left == b.Int && right == b.Int {
			return b.Int
		}
		fc.report(diag.SemaInvalidBinaryOperands, bin.OpSpan,
			"operator %% expects Int operands, got %s and %s",
			fc.typeLabel(left), fc.typeLabel(right))
		return types.NoTypeID
	}
	if left == right && (left == b.Int || left == b.Float) {
		return left
	}
	fc.report(diag.SemaInvalidBinaryOperands, bin.OpSpan,
		"operator %s expects matching numeric operands, got %s and %s",
		bin.Op.Lexeme(), fc.typeLabel(left), fc.typeLabel(right))
	return types.NoTypeID
}

func (fc *fileChecker) inferTernary(e *ast.Expr) types.TypeID {
	t := e.Ternary
	cond := fc.inferExpr(t.Cond)
	if cond != types.NoTypeID && cond != fc.builtins().Bool {
		fc.report(diag.SemaInvalidCondition, t.Cond.Span,
			"condition is %s, expected Bool", fc.typeLabel(cond))
	}
	thenType := fc.inferExpr(t.Then)
	elseType := fc.inferExpr(t.Else)
	if thenType == types.NoTypeID || elseType == types.NoTypeID {
		return types.NoTypeID
	}
	if thenType != elseType {
		fc.report(diag.SemaTypeMismatch, t.Else.Span,
			"ternary branches disagree: %s vs %s",
			fc.typeLabel(thenType), fc.typeLabel(elseType))
		return types.NoTypeID
	}
	return thenType
}

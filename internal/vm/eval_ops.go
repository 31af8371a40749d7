package vm

import (
	"math"

	"weave/internal/ast"
	"weave/internal/diag"
	"weave/internal/sema"
	"weave/internal/source"
)

func (vm *VM) evalUnary(e *ast.Expr, env *env, semaRes sema.Result) (Value, error) {
	v, err := vm.evalExpr(e.Unary.Operand, env, semaRes)
	if err != nil {
		return Value{}, err
	}
	switch e.Unary.Op {
	case ast.ExprUnaryNeg:
		switch v.Kind {
		case VKInt:
			return MakeInt(-v.Int, v.TypeID), nil
		case VKFloat:
			return MakeFloat(-v.Float, v.TypeID), nil
		}
	case ast.ExprUnaryNot:
		if v.Kind == VKBool {
			return MakeBool(!v.Bool, v.TypeID), nil
		}
	}
	return Value{}, errRuntime(diag.RunFailure, e.Span, "operator %s cannot take %s", e.Unary.Op.Lexeme(), v.Kind)
}

func (vm *VM) evalBinary(e *ast.Expr, env *env, semaRes sema.Result) (Value, error) {
	bin := e.Binary
	if bin.Op.IsLogical() {
		return vm.evalLogical(e, env, semaRes)
	}
	left, err := vm.evalExpr(bin.Left, env, semaRes)
	if err != nil {
		return Value{}, err
	}
	right, err := vm.evalExpr(bin.Right, env, semaRes)
	if err != nil {
		return Value{}, err
	}
	if bin.Op.IsComparison() {
		return vm.evalCompare(bin.Op, left, right, bin.OpSpan)
	}
	return vm.evalArith(bin.Op, left, right, bin.OpSpan)
}

// evalLogical short-circuits: the right operand is only evaluated when
// the left one does not decide the result.
func (vm *VM) evalLogical(e *ast.Expr, env *env, semaRes sema.Result) (Value, error) {
	bin := e.Binary
	left, err := vm.evalExpr(bin.Left, env, semaRes)
	if err != nil {
		return Value{}, err
	}
	if bin.Op == ast.ExprBinaryLogicalAnd && !left.Bool {
		return left, nil
	}
	if bin.Op == ast.ExprBinaryLogicalOr && left.Bool {
		return left, nil
	}
	return vm.evalExpr(bin.Right, env, semaRes)
}

func (vm *VM) evalCompare(op ast.ExprBinaryOp, left, right Value, sp source.Span) (Value, error) {
	b := vm.builtins()
	switch op {
	case ast.ExprBinaryEq:
		return MakeBool(left.Equal(right), b.Bool), nil
	case ast.ExprBinaryNotEq:
		return MakeBool(!left.Equal(right), b.Bool), nil
	}
	var cmp int
	switch {
	case left.Kind == VKInt && right.Kind == VKInt:
		cmp = compareInt(left.Int, right.Int)
	case left.Kind == VKFloat && right.Kind == VKFloat:
		cmp = compareFloat(left.Float, right.Float)
	case left.Kind == VKString && right.Kind == VKString:
		cmp = compareString(left.Str, right.Str)
	default:
		return Value{}, errRuntime(diag.RunFailure, sp, "operator %s cannot compare %s with %s", op.Lexeme(), left.Kind, right.Kind)
	}
	var out bool
	switch op {
	case ast.ExprBinaryLess:
		out = cmp < 0
	case ast.ExprBinaryLessEq:
		out = cmp <= 0
	case ast.ExprBinaryGreater:
		out = cmp > 0
	case ast.ExprBinaryGreaterEq:
		out = cmp >= 0
	}
	return MakeBool(out, b.Bool), nil
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareFloat orders NaN below everything, so comparisons stay total.
func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return -1
	default:
		return 1
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (vm *VM) evalArith(op ast.ExprBinaryOp, left, right Value, sp source.Span) (Value, error) {
	switch {
	case left.Kind == VKInt && right.Kind == VKInt:
		return vm.evalIntArith(op, left, right, sp)
	case left.Kind == VKFloat && right.Kind == VKFloat:
		return vm.evalFloatArith(op, left, right, sp)
	case left.Kind == VKString && right.Kind == VKString && op == ast.ExprBinaryAdd:
		return MakeString(left.Str+right.Str, left.TypeID), nil
	default:
		return Value{}, errRuntime(diag.RunFailure, sp, "operator %s cannot take %s and %s", op.Lexeme(), left.Kind, right.Kind)
	}
}

func (vm *VM) evalIntArith(op ast.ExprBinaryOp, left, right Value, sp source.Span) (Value, error) {
	switch op {
	case ast.ExprBinaryAdd:
		return MakeInt(left.Int+right.Int, left.TypeID), nil
	case ast.ExprBinarySub:
		return MakeInt(left.Int-right.Int, left.TypeID), nil
	case ast.ExprBinaryMul:
		return MakeInt(left.Int*right.Int, left.TypeID), nil
	case ast.ExprBinaryDiv:
		if right.Int == 0 {
			return Value{}, errRuntime(diag.RunDivideByZero, sp, "division by zero")
		}
		return MakeInt(left.Int/right.Int, left.TypeID), nil
	case ast.ExprBinaryMod:
		if right.Int == 0 {
			return Value{}, errRuntime(diag.RunDivideByZero, sp, "modulo by zero")
		}
		return MakeInt(left.Int%right.Int, left.TypeID), nil
	default:
		return Value{}, errRuntime(diag.RunFailure, sp, "operator %s cannot take Int operands", op.Lexeme())
	}
}

// evalFloatArith follows IEEE 754: dividing by zero yields an infinity
// instead of a runtime failure.
func (vm *VM) evalFloatArith(op ast.ExprBinaryOp, left, right Value, sp source.Span) (Value, error) {
	switch op {
	case ast.ExprBinaryAdd:
		return MakeFloat(left.Float+right.Float, left.TypeID), nil
	case ast.ExprBinarySub:
		return MakeFloat(left.Float-right.Float, left.TypeID), nil
	case ast.ExprBinaryMul:
		return MakeFloat(left.Float*right.Float, left.TypeID), nil
	case ast.ExprBinaryDiv:
		return MakeFloat(left.Float/right.Float, left.TypeID), nil
	default:
		return Value{}, errRuntime(diag.RunFailure, sp, "operator %s cannot take Float operands", op.Lexeme())
	}
}

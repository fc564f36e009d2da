package eval

import (
	"ctfe/ast"
	"ctfe/report"
	"ctfe/sema"
	"ctfe/types"
	"ctfe/util"
	"math"
)

// evalFloatConstant evaluates the expression of a constant declared with a
// floating-point type and returns the IEEE bit pattern of the result at the
// declared width.
func evalFloatConstant(ctx Context, pt types.PrimitiveType, expr ast.Expr) (uint64, error) {
	x, err := evalFloat(ctx, expr)
	if err != nil {
		return 0, err
	}

	if pt == types.PrimF32 {
		return uint64(math.Float32bits(float32(x))), nil
	}

	return math.Float64bits(x), nil
}

// evalFloat evaluates an expression in a floating-point context.  Only the
// arithmetic operators and sign operators are defined on floats.
func evalFloat(ctx Context, expr ast.Expr) (float64, error) {
	switch v := expr.(type) {
	case *ast.FloatLit:
		if x, ok := util.ParseF64(v.Value); ok {
			return x, nil
		}

		return 0, report.Raise(report.ErrMalformedLiteral, v.Span(), "malformed float literal `%s`", v.Value)
	case *ast.IntLit, *ast.CharLit, *ast.SizeOf, *ast.AlignOf:
		n, err := EvalExpr(ctx, v)
		return float64(n), err
	case *ast.Ident:
		c, err := lookupOperand(ctx, v)
		if err != nil {
			return 0, err
		}

		bits, err := EvalConstant(ctx, c)
		if err != nil {
			return 0, err
		}

		return constantAsFloat(c, bits), nil
	case *ast.UnaryOp:
		x, err := evalFloat(ctx, v.Operand)
		if err != nil {
			return 0, err
		}

		switch v.Op.Kind {
		case ast.OP_NEG:
			return -x, nil
		case ast.OP_POS:
			return x, nil
		}

		return 0, unsupportedFloatOp(v.Op)
	case *ast.BinaryOp:
		lhs, err := evalFloat(ctx, v.Lhs)
		if err != nil {
			return 0, err
		}

		rhs, err := evalFloat(ctx, v.Rhs)
		if err != nil {
			return 0, err
		}

		switch v.Op.Kind {
		case ast.OP_ADD:
			return lhs + rhs, nil
		case ast.OP_SUB:
			return lhs - rhs, nil
		case ast.OP_MUL:
			return lhs * rhs, nil
		case ast.OP_DIV:
			if rhs == 0 {
				return 0, report.Raise(report.ErrDivisionByZero, v.Span(), "division by zero")
			}

			return lhs / rhs, nil
		}

		return 0, unsupportedFloatOp(v.Op)
	}

	report.ReportICE("evaluation of unknown expression node %T", expr)
	return 0, nil
}

// constantAsFloat reinterprets the value of a constant as a float according to
// its declared type.
func constantAsFloat(c *sema.Constant, bits uint64) float64 {
	if pt, ok := c.Type.(types.PrimitiveType); ok {
		switch {
		case pt == types.PrimF32:
			return float64(math.Float32frombits(uint32(bits)))
		case pt == types.PrimF64:
			return math.Float64frombits(bits)
		case pt.IsSigned():
			return float64(int64(bits))
		}
	}

	return float64(bits)
}

func unsupportedFloatOp(op ast.Oper) error {
	return report.Raise(report.ErrTypeMismatch, op.Span, "operator `%s` is not defined on floating-point values", op.Kind)
}

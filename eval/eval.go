package eval

import (
	"ctfe/ast"
	"ctfe/report"
	"ctfe/sema"
	"ctfe/types"
	"ctfe/util"
	"unicode/utf8"
)

// Context is the semantic context an expression is evaluated in.  It is
// satisfied by *sema.Sema.
type Context interface {
	// PointerSize returns the target pointer size in bytes.
	PointerSize() uint64

	// LookupConstant looks up a declared constant by name.
	LookupConstant(name string) (*sema.Constant, bool)
}

// EvalExpr evaluates an integer constant expression.  All arithmetic is
// performed on unsigned 64-bit values and wraps on overflow: the caller
// reinterprets the result as needed.  Binary operands are evaluated left
// before right.  Named constants are evaluated on first reference and their
// results memoized.
func EvalExpr(ctx Context, expr ast.Expr) (uint64, error) {
	switch v := expr.(type) {
	case *ast.IntLit:
		if n, ok := util.ParseU64(v.Value); ok {
			return n, nil
		}

		return 0, report.Raise(report.ErrMalformedLiteral, v.Span(), "malformed integer literal `%s`", v.Value)
	case *ast.CharLit:
		return evalCharLit(v)
	case *ast.FloatLit:
		return 0, report.Raise(
			report.ErrTypeMismatch,
			v.Span(),
			"floating-point literal `%s` used in an integer constant expression",
			v.Value,
		)
	case *ast.Ident:
		c, err := lookupOperand(ctx, v)
		if err != nil {
			return 0, err
		}

		if pt, ok := c.Type.(types.PrimitiveType); ok && pt.IsFloating() {
			return 0, report.Raise(
				report.ErrTypeMismatch,
				v.Span(),
				"floating-point constant `%s` used in an integer constant expression",
				v.Name,
			)
		}

		return EvalConstant(ctx, c)
	case *ast.UnaryOp:
		operand, err := EvalExpr(ctx, v.Operand)
		if err != nil {
			return 0, err
		}

		return applyUnaryOp(v.Op.Kind, operand), nil
	case *ast.BinaryOp:
		lhs, err := EvalExpr(ctx, v.Lhs)
		if err != nil {
			return 0, err
		}

		rhs, err := EvalExpr(ctx, v.Rhs)
		if err != nil {
			return 0, err
		}

		return applyBinaryOp(v, lhs, rhs)
	case *ast.SizeOf:
		if v.Type == nil {
			return 0, report.Raise(report.ErrUnresolvedType, v.Span(), "operand of sizeof has not been resolved")
		}

		return EvalSizeOf(ctx, v.Type), nil
	case *ast.AlignOf:
		if v.Type == nil {
			return 0, report.Raise(report.ErrUnresolvedType, v.Span(), "operand of alignof has not been resolved")
		}

		return EvalAlignOf(ctx, v.Type), nil
	}

	report.ReportICE("evaluation of unknown expression node %T", expr)
	return 0, nil
}

// EvalConstant computes the value of a named constant.  The result, whether a
// value or an error, is memoized on the constant.  The value of a constant
// whose declared type is floating-point is its IEEE bit pattern.
func EvalConstant(ctx Context, c *sema.Constant) (uint64, error) {
	switch c.Color {
	case sema.ColorBlack:
		return c.Value, c.Err
	case sema.ColorGrey:
		return 0, circularConstant(c.Name, c.Span)
	}

	c.Color = sema.ColorGrey

	var value uint64
	var err error
	if pt, ok := c.Type.(types.PrimitiveType); ok && pt.IsFloating() {
		value, err = evalFloatConstant(ctx, pt, c.Expr)
	} else {
		value, err = EvalExpr(ctx, c.Expr)
	}

	if err != nil {
		err = report.Locate(err, c.Src)
	}

	c.Value, c.Err, c.Color = value, err, sema.ColorBlack
	return value, err
}

// -----------------------------------------------------------------------------

// lookupOperand finds the constant an identifier refers to.  It fails if the
// constant is undefined or is still being evaluated.
func lookupOperand(ctx Context, ident *ast.Ident) (*sema.Constant, error) {
	c, ok := ctx.LookupConstant(ident.Name)
	if !ok {
		return nil, report.Raise(report.ErrUndefinedConstant, ident.Span(), "undefined constant `%s`", ident.Name)
	}

	if c.Color == sema.ColorGrey {
		return nil, circularConstant(ident.Name, ident.Span())
	}

	return c, nil
}

func circularConstant(name string, span *report.TextSpan) error {
	return report.Raise(report.ErrCircularConstant, span, "constant `%s` depends on its own value", name)
}

// evalCharLit evaluates a character literal to its code point.
func evalCharLit(lit *ast.CharLit) (uint64, error) {
	r, size := utf8.DecodeRuneInString(lit.Value)
	if size == 0 || size != len(lit.Value) || (r == utf8.RuneError && size == 1) {
		return 0, report.Raise(report.ErrMalformedLiteral, lit.Span(), "character literal must contain exactly one character")
	}

	return uint64(r), nil
}

// boolValue converts a truth value to 0 or 1.
func boolValue(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

// applyUnaryOp applies a unary operator.  No unary operator can fail.
func applyUnaryOp(op ast.OpKind, operand uint64) uint64 {
	switch op {
	case ast.OP_NEG:
		return -operand
	case ast.OP_COMPL:
		return ^operand
	case ast.OP_NOT:
		return boolValue(operand == 0)
	case ast.OP_POS:
		return operand
	}

	report.ReportICE("evaluation of unknown unary operator %d", op)
	return 0
}

// applyBinaryOp applies a binary operator to already evaluated operands.
func applyBinaryOp(bop *ast.BinaryOp, lhs, rhs uint64) (uint64, error) {
	switch bop.Op.Kind {
	case ast.OP_ADD:
		return lhs + rhs, nil
	case ast.OP_SUB:
		return lhs - rhs, nil
	case ast.OP_MUL:
		return lhs * rhs, nil
	case ast.OP_DIV, ast.OP_MOD:
		if rhs == 0 {
			return 0, report.Raise(report.ErrDivisionByZero, bop.Span(), "division by zero")
		}

		if bop.Op.Kind == ast.OP_DIV {
			return lhs / rhs, nil
		}

		return lhs % rhs, nil
	case ast.OP_BWAND:
		return lhs & rhs, nil
	case ast.OP_BWOR:
		return lhs | rhs, nil
	case ast.OP_BWXOR:
		return lhs ^ rhs, nil
	case ast.OP_SHL:
		if rhs >= 64 {
			return 0, nil
		}

		return lhs << rhs, nil
	case ast.OP_SHR:
		if rhs >= 64 {
			return 0, nil
		}

		return lhs >> rhs, nil
	case ast.OP_EQ:
		return boolValue(lhs == rhs), nil
	case ast.OP_NEQ:
		return boolValue(lhs != rhs), nil
	case ast.OP_LT:
		return boolValue(lhs < rhs), nil
	case ast.OP_GT:
		return boolValue(lhs > rhs), nil
	case ast.OP_LTEQ:
		return boolValue(lhs <= rhs), nil
	case ast.OP_GTEQ:
		return boolValue(lhs >= rhs), nil
	case ast.OP_LAND:
		return boolValue(lhs != 0 && rhs != 0), nil
	case ast.OP_LOR:
		return boolValue(lhs != 0 || rhs != 0), nil
	}

	report.ReportICE("evaluation of unknown binary operator %d", bop.Op.Kind)
	return 0, nil
}

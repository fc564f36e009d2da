package resolve

import (
	"ctfe/ast"
	"ctfe/eval"
	"ctfe/report"
	"ctfe/sema"
	"ctfe/types"
)

// resolveConstant resolves the declared type of a constant and the operand
// types of its expression along with those of every constant it refers to.  A
// constant that fails to resolve is marked as evaluated with the error.
func (r *Resolver) resolveConstant(c *sema.Constant) error {
	switch r.prepared[c] {
	case sema.ColorBlack:
		return c.Err
	case sema.ColorGrey:
		return report.Raise(report.ErrCircularConstant, c.Span, "constant `%s` depends on its own value", c.Name)
	}

	r.prepared[c] = sema.ColorGrey

	var err error
	if c.TypeLabel != nil {
		c.Type, err = r.resolveLabel(c.TypeLabel, false)
	}

	if err == nil {
		err = r.resolveExpr(c.Expr)
	}

	r.prepared[c] = sema.ColorBlack

	if err != nil {
		err = report.Locate(err, c.Src)
		c.Err, c.Color = err, sema.ColorBlack
	}

	return err
}

// resolveExpr attaches the resolved types of all `sizeof` and `alignof`
// operands in expr and resolves every constant it refers to.  Undefined
// constants are left for the evaluator to report.
func (r *Resolver) resolveExpr(expr ast.Expr) (err error) {
	switch v := expr.(type) {
	case *ast.SizeOf:
		v.Type, err = r.resolveLabel(v.TypeLabel, false)
	case *ast.AlignOf:
		v.Type, err = r.resolveLabel(v.TypeLabel, false)
	case *ast.UnaryOp:
		err = r.resolveExpr(v.Operand)
	case *ast.BinaryOp:
		if err = r.resolveExpr(v.Lhs); err == nil {
			err = r.resolveExpr(v.Rhs)
		}
	case *ast.Ident:
		if c, ok := r.sema.LookupConstant(v.Name); ok {
			if r.prepared[c] == sema.ColorGrey {
				return report.Raise(report.ErrCircularConstant, v.Span(), "constant `%s` depends on its own value", v.Name)
			}

			err = r.resolveConstant(c)
		}
	}

	return
}

// checkFits checks whether the value of an evaluated constant is representable
// in its declared type.  It returns a warning if not.
func (r *Resolver) checkFits(c *sema.Constant) error {
	var bits uint64
	var signed bool

	switch v := c.Type.(type) {
	case nil:
		return nil
	case types.PrimitiveType:
		switch {
		case v.IsFloating():
			return nil
		case v == types.PrimUnit:
			return r.noIntRepr(c)
		case v == types.PrimBool:
			bits = 1
		default:
			bits, signed = 8*eval.EvalSizeOf(r.sema, v), v.IsSigned()
		}
	case *types.PointerType:
		bits = 8 * r.sema.PointerSize()
	default:
		return r.noIntRepr(c)
	}

	if bits >= 64 {
		return nil
	}

	if signed {
		x, bound := int64(c.Value), int64(1)<<(bits-1)
		if -bound <= x && x < bound {
			return nil
		}

		return report.Raise(report.ErrTypeMismatch, c.Span, "value %d does not fit in `%s`", x, c.Type.Repr())
	}

	if c.Value < 1<<bits {
		return nil
	}

	return report.Raise(report.ErrTypeMismatch, c.Span, "value %d does not fit in `%s`", c.Value, c.Type.Repr())
}

func (r *Resolver) noIntRepr(c *sema.Constant) error {
	return report.Raise(
		report.ErrTypeMismatch,
		c.Span,
		"constant `%s` of type `%s` has no integer representation",
		c.Name,
		c.Type.Repr(),
	)
}

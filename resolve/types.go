package resolve

import (
	"ctfe/ast"
	"ctfe/eval"
	"ctfe/report"
	"ctfe/sema"
	"ctfe/types"
)

/*
Type Resolution
---------------

Declared types may refer to each other in any order, so they are resolved
lazily using a three-color depth-first search.

All named types start white.  When a named type is visited, it is colored grey
and its type label is resolved: any named types the label refers to are
visited in turn.  Once the label is resolved, the type is colored black and its
result (a type or an error) is kept.

Before visiting a referenced named type, its color is checked.  A black type is
not visited again: its result is reused.  A grey type is still being resolved
and so the reference is a cycle: the type contains itself and has no finite
size.

Everything under a pointer is resolved indirectly.  A pointer does not depend
on the size of its element, so a declared struct reached indirectly is not
visited at all: every declared struct exists from the moment it is declared
and its fields are filled in when it is resolved.  Any other named type reached
indirectly is followed through its label without being colored, so aliases of
structs and arrays of structs may point back at the type being resolved.  A
named type followed twice in the same chain has no struct to stop at and
contains itself.

Array lengths are evaluated during resolution.  A length that depends on the
size of the type being declared is found as a cycle in the same way.  Arrays
and structs whose size does not fit in 64 bits are rejected as too large.
*/

// resolveNamed resolves a named type.  refSpan is the span of the reference
// being resolved.
func (r *Resolver) resolveNamed(nt *namedType, refSpan *report.TextSpan) (types.Type, error) {
	switch nt.color {
	case sema.ColorBlack:
		return nt.typ, nt.err
	case sema.ColorGrey:
		return nil, report.Raise(report.ErrCircularType, refSpan, "type `%s` contains itself", nt.name)
	}

	nt.color = sema.ColorGrey

	var err error
	if sl, ok := nt.decl.TypeLabel.(*ast.StructTypeLabel); ok {
		err = r.resolveFields(nt.typ.(*types.StructType), sl, false)
	} else {
		nt.typ, err = r.resolveLabel(nt.decl.TypeLabel, false)
	}

	if err != nil {
		err = report.Locate(err, nt.src)
	}

	nt.color, nt.err = sema.ColorBlack, err
	return nt.typ, err
}

// resolveLabel converts a type label into a type.  indirect is set for labels
// under a pointer.
func (r *Resolver) resolveLabel(label ast.TypeLabel, indirect bool) (types.Type, error) {
	switch v := label.(type) {
	case *ast.NamedTypeLabel:
		return r.lookupNamed(v, indirect)
	case *ast.PointerTypeLabel:
		elem, err := r.resolveLabel(v.Elem, true)
		if err != nil {
			return nil, err
		}

		return &types.PointerType{ElemType: elem}, nil
	case *ast.ArrayTypeLabel:
		length, err := r.evalArrayLen(v.Len)
		if err != nil {
			return nil, err
		}

		elem, err := r.resolveLabel(v.Elem, indirect)
		if err != nil {
			return nil, err
		}

		at := &types.ArrayType{ElemType: elem, Len: length}
		if _, ok := eval.CheckedSizeOf(r.sema, at); !ok {
			return nil, report.Raise(report.ErrTypeMismatch, v.Span(), "type `%s` is too large", at.Repr())
		}

		return at, nil
	case *ast.StructTypeLabel:
		st := &types.StructType{}
		if err := r.resolveFields(st, v, indirect); err != nil {
			return nil, err
		}

		return st, nil
	}

	report.ReportICE("resolution of unknown type label %T", label)
	return nil, nil
}

// lookupNamed resolves a reference to a type by name.
func (r *Resolver) lookupNamed(label *ast.NamedTypeLabel, indirect bool) (types.Type, error) {
	if typ, ok := lookupUniverse(label.Name); ok {
		return typ, nil
	}

	if nt, ok := r.named[label.Name]; ok {
		if indirect {
			return r.followIndirect(nt, label.Span())
		}

		return r.resolveNamed(nt, label.Span())
	}

	return nil, report.Raise(report.ErrUndefinedType, label.Span(), "undefined type `%s`", label.Name)
}

// followIndirect resolves a named type reached under a pointer.  refSpan is the
// span of the reference being resolved.
func (r *Resolver) followIndirect(nt *namedType, refSpan *report.TextSpan) (types.Type, error) {
	if st, ok := nt.typ.(*types.StructType); ok {
		return st, nil
	} else if nt.color == sema.ColorBlack {
		return nt.typ, nt.err
	} else if r.following[nt] {
		return nil, report.Raise(report.ErrCircularType, refSpan, "type `%s` contains itself", nt.name)
	}

	r.following[nt] = true
	defer delete(r.following, nt)

	typ, err := r.resolveLabel(nt.decl.TypeLabel, true)
	if err != nil {
		// The type cannot resolve directly either: keep the error so that it
		// is only reported once.
		err = report.Locate(err, nt.src)
		if nt.color == sema.ColorWhite {
			nt.color, nt.err = sema.ColorBlack, err
		}

		return nil, err
	}

	return typ, nil
}

// resolveFields resolves the fields of a struct type label into st.
func (r *Resolver) resolveFields(st *types.StructType, sl *ast.StructTypeLabel, indirect bool) error {
	seen := make(map[string]struct{})

	for _, field := range sl.Fields {
		if _, ok := seen[field.Name]; ok {
			return report.Raise(
				report.ErrDuplicateDefinition,
				field.Span,
				"field `%s` is declared multiple times",
				field.Name,
			)
		}

		seen[field.Name] = struct{}{}

		typ, err := r.resolveLabel(field.Type, indirect)
		if err != nil {
			return err
		}

		st.Fields = append(st.Fields, types.StructField{Name: field.Name, Type: typ})
	}

	if _, ok := eval.CheckedSizeOf(r.sema, st); !ok {
		return report.Raise(report.ErrTypeMismatch, sl.Span(), "type `%s` is too large", st.Repr())
	}

	return nil
}

// maxArrayLen is the exclusive upper bound on array lengths: larger lengths
// are almost always negative values that have wrapped.
const maxArrayLen = 1 << 63

// evalArrayLen evaluates the length of an array type.
func (r *Resolver) evalArrayLen(expr ast.Expr) (uint64, error) {
	if err := r.resolveExpr(expr); err != nil {
		return 0, err
	}

	length, err := eval.EvalExpr(r.sema, expr)
	if err != nil {
		return 0, err
	}

	if length >= maxArrayLen {
		return 0, report.Raise(report.ErrTypeMismatch, expr.Span(), "array length %d is out of range", int64(length))
	}

	return length, nil
}

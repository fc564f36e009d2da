package eval

import (
	"ctfe/report"
	"ctfe/types"
	"math"
)

// EvalSizeOf returns the size of a type in bytes on the target.  Structs use
// C-like natural layout: each field is placed at the next offset aligned to
// the field's alignment and the struct is padded out to a multiple of its own
// alignment.
func EvalSizeOf(ctx Context, typ types.Type) uint64 {
	switch v := typ.(type) {
	case types.PrimitiveType:
		return primSize(ctx, v)
	case *types.PointerType:
		return ctx.PointerSize()
	case *types.ArrayType:
		return v.Len * EvalSizeOf(ctx, v.ElemType)
	case *types.StructType:
		size, _ := structLayout(ctx, v)
		return size
	}

	report.ReportICE("sizeof called on unknown type: %s", typ.Repr())
	return 0
}

// CheckedSizeOf returns the size of a type like EvalSizeOf.  The boolean is
// false if the size does not fit in 64 bits.
func CheckedSizeOf(ctx Context, typ types.Type) (uint64, bool) {
	switch v := typ.(type) {
	case *types.ArrayType:
		elemSize, ok := CheckedSizeOf(ctx, v.ElemType)
		if !ok || (elemSize > 0 && v.Len > math.MaxUint64/elemSize) {
			return 0, false
		}

		return v.Len * elemSize, true
	case *types.StructType:
		var size, align uint64 = 0, 1

		for _, field := range v.Fields {
			fieldSize, ok := CheckedSizeOf(ctx, field.Type)
			if !ok {
				return 0, false
			}

			fieldAlign := EvalAlignOf(ctx, field.Type)
			if fieldAlign > align {
				align = fieldAlign
			}

			if size, ok = checkedAlignUp(size, fieldAlign); !ok || fieldSize > math.MaxUint64-size {
				return 0, false
			}

			size += fieldSize
		}

		return checkedAlignUp(size, align)
	}

	return EvalSizeOf(ctx, typ), true
}

// EvalAlignOf returns the alignment of a type in bytes on the target.  The
// alignment is always at least one.
func EvalAlignOf(ctx Context, typ types.Type) uint64 {
	switch v := typ.(type) {
	case types.PrimitiveType:
		if size := primSize(ctx, v); size > 0 {
			return size
		}

		return 1
	case *types.PointerType:
		return ctx.PointerSize()
	case *types.ArrayType:
		return EvalAlignOf(ctx, v.ElemType)
	case *types.StructType:
		_, align := structLayout(ctx, v)
		return align
	}

	report.ReportICE("alignof called on unknown type: %s", typ.Repr())
	return 0
}

// FieldOffsets returns the byte offset of each field of a struct.
func FieldOffsets(ctx Context, st *types.StructType) []uint64 {
	offsets := make([]uint64, len(st.Fields))

	var offset uint64
	for i, field := range st.Fields {
		offset = alignUp(offset, EvalAlignOf(ctx, field.Type))
		offsets[i] = offset
		offset += EvalSizeOf(ctx, field.Type)
	}

	return offsets
}

// -----------------------------------------------------------------------------

// primSize returns the size of a primitive type.
func primSize(ctx Context, pt types.PrimitiveType) uint64 {
	switch pt {
	case types.PrimI8, types.PrimU8, types.PrimBool:
		return 1
	case types.PrimI16, types.PrimU16:
		return 2
	case types.PrimI32, types.PrimU32, types.PrimF32:
		return 4
	case types.PrimI64, types.PrimU64, types.PrimF64:
		return 8
	case types.PrimUnit:
		return 0
	default:
		// pointer-sized primitives
		return ctx.PointerSize()
	}
}

// structLayout computes the size and alignment of a struct.  An empty struct
// has size zero and alignment one.
func structLayout(ctx Context, st *types.StructType) (uint64, uint64) {
	var size, align uint64 = 0, 1

	for _, field := range st.Fields {
		fieldAlign := EvalAlignOf(ctx, field.Type)
		if fieldAlign > align {
			align = fieldAlign
		}

		size = alignUp(size, fieldAlign) + EvalSizeOf(ctx, field.Type)
	}

	return alignUp(size, align), align
}

// checkedAlignUp is alignUp which fails instead of overflowing.
func checkedAlignUp(n, align uint64) (uint64, bool) {
	if align > 1 && n > math.MaxUint64-(align-1) {
		return 0, false
	}

	return alignUp(n, align), true
}

// alignUp rounds n up to the nearest multiple of align.
func alignUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}

	return (n + align - 1) / align * align
}

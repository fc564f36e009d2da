package types

import (
	"fmt"
	"strings"
)

// Type represents a resolved data type.  The set of types is closed: a type is
// a primitive, a pointer, an array, or a struct.  Sizes and alignments depend
// on the target and so are computed by the evaluator.
type Type interface {
	// Repr returns the representative string of the type.
	Repr() string

	typeNode()
}

// PrimitiveType represents a primitive type.  It must be one of the enumerated
// primitive types below.
type PrimitiveType int

// Enumeration of the different primitive types.
const (
	PrimI8 PrimitiveType = iota
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimF32
	PrimF64
	PrimBool
	PrimUnit

	// The pointer-sized primitives: their size is that of the target's
	// pointers.
	PrimIsize
	PrimUsize
	PrimRawptr
)

var primNames = [...]string{
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"f32", "f64",
	"bool", "unit",
	"isize", "usize", "rawptr",
}

func (pt PrimitiveType) Repr() string {
	if int(pt) < len(primNames) {
		return primNames[pt]
	}

	return fmt.Sprintf("<prim %d>", int(pt))
}

func (PrimitiveType) typeNode() {}

// IsIntegral returns whether the primitive holds integer values.  Booleans and
// pointers are not integral.
func (pt PrimitiveType) IsIntegral() bool {
	return pt <= PrimU64 || pt == PrimIsize || pt == PrimUsize
}

// IsSigned returns whether the primitive is a signed integer type.
func (pt PrimitiveType) IsSigned() bool {
	return pt <= PrimI64 || pt == PrimIsize
}

// IsFloating returns whether the primitive is a floating-point type.
func (pt PrimitiveType) IsFloating() bool {
	return pt == PrimF32 || pt == PrimF64
}

// IsPointerSized returns whether the primitive's size is the target pointer
// size.
func (pt PrimitiveType) IsPointerSized() bool {
	return pt >= PrimIsize
}

// PrimitiveByName looks up a primitive type by its name.
func PrimitiveByName(name string) (PrimitiveType, bool) {
	for i, pname := range primNames {
		if pname == name {
			return PrimitiveType(i), true
		}
	}

	return 0, false
}

// PrimitiveTypes returns all the primitive types in enumeration order.
func PrimitiveTypes() []PrimitiveType {
	prims := make([]PrimitiveType, len(primNames))
	for i := range prims {
		prims[i] = PrimitiveType(i)
	}

	return prims
}

// -----------------------------------------------------------------------------

// PointerType represents a pointer type.
type PointerType struct {
	// The element type of the pointer.
	ElemType Type
}

func (pt *PointerType) Repr() string {
	return "^" + pt.ElemType.Repr()
}

func (*PointerType) typeNode() {}

// ArrayType represents a fixed-length array type.
type ArrayType struct {
	// The element type of the array.
	ElemType Type

	// The number of elements in the array.
	Len uint64
}

func (at *ArrayType) Repr() string {
	return fmt.Sprintf("[%d]%s", at.Len, at.ElemType.Repr())
}

func (*ArrayType) typeNode() {}

// StructField represents a field of a struct type.
type StructField struct {
	Name string
	Type Type
}

// StructType represents a struct type.  Fields are laid out in declaration
// order.
type StructType struct {
	// The name of the declared type this struct belongs to.  This is empty for
	// anonymous structs.
	Name string

	Fields []StructField
}

func (st *StructType) Repr() string {
	if st.Name != "" {
		return st.Name
	}

	sb := strings.Builder{}
	sb.WriteString("struct{")

	for i, field := range st.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(field.Name)
		sb.WriteString(": ")
		sb.WriteString(field.Type.Repr())
	}

	sb.WriteRune('}')
	return sb.String()
}

func (*StructType) typeNode() {}

// -----------------------------------------------------------------------------

// Equals returns whether two types are identical.  Structs are compared
// nominally unless both are anonymous.
func Equals(a, b Type) bool {
	switch v := a.(type) {
	case PrimitiveType:
		if pb, ok := b.(PrimitiveType); ok {
			return v == pb
		}
	case *PointerType:
		if pb, ok := b.(*PointerType); ok {
			return Equals(v.ElemType, pb.ElemType)
		}
	case *ArrayType:
		if ab, ok := b.(*ArrayType); ok {
			return v.Len == ab.Len && Equals(v.ElemType, ab.ElemType)
		}
	case *StructType:
		if sb, ok := b.(*StructType); ok {
			if v == sb {
				return true
			}

			if v.Name != "" || sb.Name != "" || len(v.Fields) != len(sb.Fields) {
				return false
			}

			for i, field := range v.Fields {
				if field.Name != sb.Fields[i].Name || !Equals(field.Type, sb.Fields[i].Type) {
					return false
				}
			}

			return true
		}
	}

	return false
}

package types

import "testing"

func TestRepr(t *testing.T) {
	point := &StructType{
		Name: "Point",
		Fields: []StructField{
			{Name: "x", Type: PrimI32},
			{Name: "y", Type: PrimI32},
		},
	}

	tests := []struct {
		typ  Type
		want string
	}{
		{PrimU8, "u8"},
		{PrimRawptr, "rawptr"},
		{&PointerType{ElemType: PrimUnit}, "^unit"},
		{&ArrayType{ElemType: PrimF64, Len: 4}, "[4]f64"},
		{&ArrayType{ElemType: &PointerType{ElemType: point}, Len: 2}, "[2]^Point"},
		{&StructType{Fields: point.Fields}, "struct{x: i32, y: i32}"},
		{&StructType{}, "struct{}"},
	}

	for _, test := range tests {
		if got := test.typ.Repr(); got != test.want {
			t.Errorf("Repr() = %q, want %q", got, test.want)
		}
	}
}

func TestPrimitiveClassification(t *testing.T) {
	for _, prim := range PrimitiveTypes() {
		name := prim.Repr()

		got, ok := PrimitiveByName(name)
		if !ok || got != prim {
			t.Errorf("PrimitiveByName(%q) = %v, %v", name, got, ok)
		}

		if prim.IsIntegral() && prim.IsFloating() {
			t.Errorf("%s is both integral and floating", name)
		}

		if prim.IsSigned() && !prim.IsIntegral() {
			t.Errorf("%s is signed but not integral", name)
		}
	}

	if _, ok := PrimitiveByName("u128"); ok {
		t.Error("PrimitiveByName accepted an unknown name")
	}

	for _, prim := range []PrimitiveType{PrimIsize, PrimUsize, PrimRawptr} {
		if !prim.IsPointerSized() {
			t.Errorf("%s should be pointer-sized", prim.Repr())
		}
	}

	if PrimU64.IsPointerSized() || PrimRawptr.IsIntegral() || PrimBool.IsIntegral() {
		t.Error("misclassified primitive")
	}
}

func TestEquals(t *testing.T) {
	a := &StructType{Name: "A", Fields: []StructField{{Name: "x", Type: PrimU8}}}
	b := &StructType{Name: "B", Fields: []StructField{{Name: "x", Type: PrimU8}}}
	anonA := &StructType{Fields: a.Fields}
	anonB := &StructType{Fields: []StructField{{Name: "x", Type: PrimU8}}}

	if !Equals(&ArrayType{ElemType: PrimU8, Len: 3}, &ArrayType{ElemType: PrimU8, Len: 3}) {
		t.Error("identical arrays should be equal")
	}

	if Equals(&ArrayType{ElemType: PrimU8, Len: 3}, &ArrayType{ElemType: PrimU8, Len: 4}) {
		t.Error("arrays of different lengths should differ")
	}

	if Equals(a, b) {
		t.Error("distinct named structs should differ")
	}

	if !Equals(a, a) || !Equals(anonA, anonB) {
		t.Error("structurally identical anonymous structs should be equal")
	}

	if Equals(PrimUsize, PrimU64) || Equals(&PointerType{ElemType: PrimU8}, PrimRawptr) {
		t.Error("distinct primitives should differ")
	}
}

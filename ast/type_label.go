package ast

import "ctfe/report"

// TypeLabel is the syntactic form of a type as written in source text.  Type
// labels are resolved into types by the resolver.
type TypeLabel interface {
	Span() *report.TextSpan

	typeLabelNode()
}

// TypeLabelBase is the base struct for all type labels.
type TypeLabelBase struct {
	span *report.TextSpan
}

// NewTypeLabelBase creates a new type label base spanning the given text.
func NewTypeLabelBase(span *report.TextSpan) TypeLabelBase {
	return TypeLabelBase{span: span}
}

func (tlb *TypeLabelBase) Span() *report.TextSpan {
	return tlb.span
}

func (tlb *TypeLabelBase) typeLabelNode() {}

// NamedTypeLabel refers to a primitive or declared type by name.
type NamedTypeLabel struct {
	TypeLabelBase

	Name string
}

// PointerTypeLabel is `^T`.
type PointerTypeLabel struct {
	TypeLabelBase

	Elem TypeLabel
}

// ArrayTypeLabel is `[N]T`.  The length is a constant expression.
type ArrayTypeLabel struct {
	TypeLabelBase

	Len  Expr
	Elem TypeLabel
}

// StructTypeLabel is `struct { a: T, ... }`.
type StructTypeLabel struct {
	TypeLabelBase

	Fields []*FieldLabel
}

// FieldLabel is a single named field of a struct type label.
type FieldLabel struct {
	Name string
	Span *report.TextSpan
	Type TypeLabel
}

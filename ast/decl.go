package ast

import "ctfe/report"

// File is a parsed source file.
type File struct {
	Src   *report.Source
	Decls []Decl
}

// Decl is a top-level declaration.
type Decl interface {
	Span() *report.TextSpan

	declNode()
}

// DeclBase is the base struct for all declarations.
type DeclBase struct {
	span *report.TextSpan
}

// NewDeclBase creates a new declaration base spanning the given text.
func NewDeclBase(span *report.TextSpan) DeclBase {
	return DeclBase{span: span}
}

func (db *DeclBase) Span() *report.TextSpan {
	return db.span
}

func (db *DeclBase) declNode() {}

// ConstDecl is `NAME : [T] = expr`.  TypeLabel is nil if the constant is
// untyped.
type ConstDecl struct {
	DeclBase

	Name      string
	TypeLabel TypeLabel
	Value     Expr
}

// TypeDecl is `NAME :: T`.
type TypeDecl struct {
	DeclBase

	Name      string
	TypeLabel TypeLabel
}

// AssertDecl is `#assert expr [, "message"]`: a static assertion that expr
// evaluates to a non-zero value.
type AssertDecl struct {
	DeclBase

	Cond    Expr
	Message string
}

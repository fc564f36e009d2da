package ast

import (
	"ctfe/report"
	"ctfe/types"
)

// Expr represents an expression.  The set of expressions is closed: every
// expression node is one of the node types in this file.  Nodes are immutable
// once the resolver has attached the types of their `sizeof` and `alignof`
// operands.
type Expr interface {
	// Span returns the spanning position of the whole expression.
	Span() *report.TextSpan

	exprNode()
}

// ExprBase is the base struct for all expressions.
type ExprBase struct {
	span *report.TextSpan
}

// NewExprBase creates a new expression base spanning the given text.
func NewExprBase(span *report.TextSpan) ExprBase {
	return ExprBase{span: span}
}

func (eb *ExprBase) Span() *report.TextSpan {
	return eb.span
}

func (eb *ExprBase) exprNode() {}

// -----------------------------------------------------------------------------

// IntLit is an integer literal.  The value is the literal's source text.
type IntLit struct {
	ExprBase

	Value string
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	ExprBase

	Value string
}

// CharLit is a character literal.  The value is the character itself with its
// escape sequence already replaced.
type CharLit struct {
	ExprBase

	Value string
}

// Ident is a reference to a named constant.
type Ident struct {
	ExprBase

	Name string
}

// -----------------------------------------------------------------------------

// OpKind is the kind of an operator.  It must be one of the enumerated operator
// kinds.
type OpKind int

// Enumeration of operator kinds.
const (
	OP_NEG OpKind = iota
	OP_POS
	OP_COMPL
	OP_NOT

	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV
	OP_MOD

	OP_BWAND
	OP_BWOR
	OP_BWXOR
	OP_SHL
	OP_SHR

	OP_EQ
	OP_NEQ
	OP_LT
	OP_GT
	OP_LTEQ
	OP_GTEQ

	OP_LAND
	OP_LOR
)

var opNames = map[OpKind]string{
	OP_NEG:   "-",
	OP_POS:   "+",
	OP_COMPL: "~",
	OP_NOT:   "!",
	OP_ADD:   "+",
	OP_SUB:   "-",
	OP_MUL:   "*",
	OP_DIV:   "/",
	OP_MOD:   "%",
	OP_BWAND: "&",
	OP_BWOR:  "|",
	OP_BWXOR: "~",
	OP_SHL:   "<<",
	OP_SHR:   ">>",
	OP_EQ:    "==",
	OP_NEQ:   "!=",
	OP_LT:    "<",
	OP_GT:    ">",
	OP_LTEQ:  "<=",
	OP_GTEQ:  ">=",
	OP_LAND:  "&&",
	OP_LOR:   "||",
}

func (k OpKind) String() string {
	return opNames[k]
}

// Oper is an operator used in the AST.
type Oper struct {
	Kind OpKind
	Span *report.TextSpan
}

// UnaryOp represents a unary operator application.
type UnaryOp struct {
	ExprBase

	Op      Oper
	Operand Expr
}

// BinaryOp represents a binary operator application.
type BinaryOp struct {
	ExprBase

	Op       Oper
	Lhs, Rhs Expr
}

// -----------------------------------------------------------------------------

// SizeOf is a `sizeof(T)` expression.  Type is nil until the type label has
// been resolved.
type SizeOf struct {
	ExprBase

	TypeLabel TypeLabel
	Type      types.Type
}

// AlignOf is an `alignof(T)` expression.  Type is nil until the type label has
// been resolved.
type AlignOf struct {
	ExprBase

	TypeLabel TypeLabel
	Type      types.Type
}

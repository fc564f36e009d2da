package sema

import (
	"ctfe/ast"
	"ctfe/report"
	"ctfe/types"
)

// Color is the visitation state of a declaration during depth-first
// resolution and evaluation.
type Color int

// Enumeration of colors.
const (
	ColorWhite Color = iota // not yet visited
	ColorGrey               // being visited
	ColorBlack              // finished
)

// Constant is a declared named constant.
type Constant struct {
	// Name is the name of the constant.
	Name string

	// Src is the source the constant was declared in.
	Src *report.Source

	// Span is the span of the whole declaration.
	Span *report.TextSpan

	// TypeLabel is the declared type label of the constant.  It is nil if the
	// constant is untyped.
	TypeLabel ast.TypeLabel

	// Type is the resolved declared type.  It is nil until resolved and for
	// untyped constants.
	Type types.Type

	// Expr is the defining expression.
	Expr ast.Expr

	// Value is the computed value.  It is valid only once the constant is
	// colored black and Err is nil.
	Value uint64

	// Err is the error produced while evaluating the constant if any.
	Err error

	// Color is the evaluation state of the constant: grey constants are
	// being evaluated and black constants have a memoized result.
	Color Color
}

// Diagnostic is an error or warning produced while analyzing a source file.
type Diagnostic struct {
	Src     *report.Source
	Err     error
	Warning bool
}

// Sema is the semantic context of a set of source files.  It stores the
// declared types and constants along with all the diagnostics produced while
// resolving them.
//
// Sema is not safe for concurrent use.  Resolution and evaluation are depth
// first and reenter the context: a lock held across a recursive lookup would
// deadlock.
type Sema struct {
	// pointerSize is the size of a pointer on the target in bytes.
	pointerSize uint64

	types     map[string]types.Type
	typeOrder []string

	constants  map[string]*Constant
	constOrder []string

	// Diagnostics is the list of diagnostics in the order they were produced.
	Diagnostics []Diagnostic
}

// NewSema creates a new semantic context for a target with the given pointer
// size.
func NewSema(pointerSize uint64) *Sema {
	return &Sema{
		pointerSize: pointerSize,
		types:       make(map[string]types.Type),
		constants:   make(map[string]*Constant),
	}
}

// PointerSize returns the target pointer size in bytes.
func (s *Sema) PointerSize() uint64 {
	return s.pointerSize
}

// -----------------------------------------------------------------------------

// DefineType binds a name to a resolved type.  It returns false if the name is
// already bound to a type.
func (s *Sema) DefineType(name string, typ types.Type) bool {
	if _, ok := s.types[name]; ok {
		return false
	}

	s.types[name] = typ
	s.typeOrder = append(s.typeOrder, name)
	return true
}

// LookupType looks up a declared type by name.
func (s *Sema) LookupType(name string) (types.Type, bool) {
	typ, ok := s.types[name]
	return typ, ok
}

// TypeNames returns the names of all declared types in declaration order.
func (s *Sema) TypeNames() []string {
	return s.typeOrder
}

// DefineConstant declares a new constant.  It returns false if a constant by
// the same name already exists.
func (s *Sema) DefineConstant(c *Constant) bool {
	if _, ok := s.constants[c.Name]; ok {
		return false
	}

	s.constants[c.Name] = c
	s.constOrder = append(s.constOrder, c.Name)
	return true
}

// LookupConstant looks up a constant by name.
func (s *Sema) LookupConstant(name string) (*Constant, bool) {
	c, ok := s.constants[name]
	return c, ok
}

// Constants returns all the declared constants in declaration order.
func (s *Sema) Constants() []*Constant {
	consts := make([]*Constant, len(s.constOrder))
	for i, name := range s.constOrder {
		consts[i] = s.constants[name]
	}

	return consts
}

// -----------------------------------------------------------------------------

// Error records an error produced while analyzing src.  The same error is
// only recorded once: errors propagate to everything that depends on the
// erroneous declaration.
func (s *Sema) Error(src *report.Source, err error) {
	s.record(Diagnostic{Src: src, Err: report.Locate(err, src)})
}

// Warn records a warning produced while analyzing src.
func (s *Sema) Warn(src *report.Source, err error) {
	s.record(Diagnostic{Src: src, Err: report.Locate(err, src), Warning: true})
}

func (s *Sema) record(diag Diagnostic) {
	for _, prev := range s.Diagnostics {
		if prev.Err == diag.Err {
			return
		}
	}

	s.Diagnostics = append(s.Diagnostics, diag)
}

// AnyErrors returns whether any error diagnostics have been recorded.
func (s *Sema) AnyErrors() bool {
	for _, diag := range s.Diagnostics {
		if !diag.Warning {
			return true
		}
	}

	return false
}

// AnyFatal returns whether any fatal errors have been recorded.
func (s *Sema) AnyFatal() bool {
	for _, diag := range s.Diagnostics {
		if !diag.Warning && report.IsFatal(diag.Err) {
			return true
		}
	}

	return false
}

// Flush reports all the recorded diagnostics and clears them.
func (s *Sema) Flush() {
	for _, diag := range s.Diagnostics {
		if diag.Warning {
			report.ReportWarning(diag.Src, diag.Err)
		} else {
			report.ReportError(diag.Src, diag.Err)
		}
	}

	s.Diagnostics = nil
}

package resolve

import (
	"ctfe/ast"
	"ctfe/eval"
	"ctfe/report"
	"ctfe/sema"
	"ctfe/types"
)

// namedType is a declared type undergoing resolution.
type namedType struct {
	name string
	src  *report.Source
	decl *ast.TypeDecl

	// color is the visitation state of the type.  See types.go for the
	// resolution algorithm.
	color sema.Color

	// typ is the resolved type.  Declared structs are created when they are
	// declared and have their fields filled in when they are resolved.
	typ types.Type

	// err is the error that stopped resolution if any.
	err error
}

// assertion is a collected static assertion.
type assertion struct {
	src  *report.Source
	decl *ast.AssertDecl
}

// Resolver is responsible for turning the declarations of a set of parsed
// files into the resolved types and evaluated constants of a semantic context.
// All problems are recorded as diagnostics of the context.
type Resolver struct {
	sema *sema.Sema

	named      map[string]*namedType
	namedOrder []*namedType

	// following holds the named types being followed under a pointer.
	following map[*namedType]bool

	// prepared holds the resolution state of each constant: the state of
	// evaluation is stored on the constant itself.
	prepared map[*sema.Constant]sema.Color

	asserts []assertion
}

// NewResolver creates a new resolver populating s.
func NewResolver(s *sema.Sema) *Resolver {
	return &Resolver{
		sema:      s,
		named:     make(map[string]*namedType),
		following: make(map[*namedType]bool),
		prepared:  make(map[*sema.Constant]sema.Color),
	}
}

// AddFile declares all the declarations of a file.  Nothing is resolved until
// Resolve is called.
func (r *Resolver) AddFile(file *ast.File) {
	for _, decl := range file.Decls {
		switch v := decl.(type) {
		case *ast.TypeDecl:
			r.declareType(file.Src, v)
		case *ast.ConstDecl:
			c := &sema.Constant{
				Name:      v.Name,
				Src:       file.Src,
				Span:      v.Span(),
				TypeLabel: v.TypeLabel,
				Expr:      v.Value,
			}

			if !r.sema.DefineConstant(c) {
				r.sema.Error(file.Src, report.Raise(
					report.ErrDuplicateDefinition,
					v.Span(),
					"constant `%s` is already declared",
					v.Name,
				))
			}
		case *ast.AssertDecl:
			r.asserts = append(r.asserts, assertion{src: file.Src, decl: v})
		}
	}
}

// declareType declares a named type.
func (r *Resolver) declareType(src *report.Source, decl *ast.TypeDecl) {
	if _, ok := lookupUniverse(decl.Name); ok {
		r.sema.Error(src, report.Raise(
			report.ErrDuplicateDefinition,
			decl.Span(),
			"cannot redeclare primitive type `%s`",
			decl.Name,
		))

		return
	}

	if _, ok := r.named[decl.Name]; ok {
		r.sema.Error(src, report.Raise(
			report.ErrDuplicateDefinition,
			decl.Span(),
			"type `%s` is already declared",
			decl.Name,
		))

		return
	}

	nt := &namedType{name: decl.Name, src: src, decl: decl}
	if _, ok := decl.TypeLabel.(*ast.StructTypeLabel); ok {
		nt.typ = &types.StructType{Name: decl.Name}
	}

	r.named[decl.Name] = nt
	r.namedOrder = append(r.namedOrder, nt)
}

// -----------------------------------------------------------------------------

// Resolve resolves and evaluates all declarations.  Processing runs in phases:
// types, then constant types and `sizeof` operands, then constant values, then
// assertions.  A fatal error stops processing at the end of its phase.  It
// returns whether all phases ran.
func (r *Resolver) Resolve() bool {
	phases := []func(){
		r.resolveTypes,
		r.resolveConstants,
		r.evaluateConstants,
		r.checkAsserts,
	}

	for _, phase := range phases {
		phase()

		if r.sema.AnyFatal() {
			return false
		}
	}

	return true
}

// resolveTypes resolves every declared type and binds it in the context.
func (r *Resolver) resolveTypes() {
	for _, nt := range r.namedOrder {
		if typ, err := r.resolveNamed(nt, nil); err != nil {
			r.sema.Error(nt.src, err)
		} else {
			r.sema.DefineType(nt.name, typ)
		}
	}
}

// resolveConstants resolves the declared type of every constant along with the
// types of all the `sizeof` and `alignof` operands in its expression.
func (r *Resolver) resolveConstants() {
	for _, c := range r.sema.Constants() {
		if err := r.resolveConstant(c); err != nil {
			r.sema.Error(c.Src, err)
		}
	}
}

// evaluateConstants evaluates every constant and checks that its value fits
// its declared type.
func (r *Resolver) evaluateConstants() {
	for _, c := range r.sema.Constants() {
		if _, err := eval.EvalConstant(r.sema, c); err != nil {
			r.sema.Error(c.Src, err)
		} else if warning := r.checkFits(c); warning != nil {
			r.sema.Warn(c.Src, warning)
		}
	}
}

// checkAsserts evaluates every static assertion.
func (r *Resolver) checkAsserts() {
	for _, a := range r.asserts {
		if err := r.resolveExpr(a.decl.Cond); err != nil {
			r.sema.Error(a.src, err)
			continue
		}

		value, err := eval.EvalExpr(r.sema, a.decl.Cond)
		if err != nil {
			r.sema.Error(a.src, err)
		} else if value == 0 {
			msg := a.decl.Message
			if msg == "" {
				msg = "static assertion failed"
			}

			r.sema.Error(a.src, report.Raise(report.ErrAssertionFailed, a.decl.Cond.Span(), "%s", msg))
		}
	}
}

package syntax

import (
	"ctfe/ast"
	"ctfe/report"
	"fmt"
	"strings"
	"testing"
)

// sexpr renders an expression as a fully parenthesised prefix expression.
func sexpr(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.IntLit:
		return v.Value
	case *ast.FloatLit:
		return v.Value
	case *ast.CharLit:
		return fmt.Sprintf("%q", v.Value)
	case *ast.Ident:
		return v.Name
	case *ast.UnaryOp:
		return fmt.Sprintf("(%s %s)", v.Op.Kind, sexpr(v.Operand))
	case *ast.BinaryOp:
		return fmt.Sprintf("(%s %s %s)", v.Op.Kind, sexpr(v.Lhs), sexpr(v.Rhs))
	case *ast.SizeOf:
		return fmt.Sprintf("(sizeof %s)", slabel(v.TypeLabel))
	case *ast.AlignOf:
		return fmt.Sprintf("(alignof %s)", slabel(v.TypeLabel))
	}

	return "?"
}

// slabel renders a type label in its source form.
func slabel(label ast.TypeLabel) string {
	switch v := label.(type) {
	case *ast.NamedTypeLabel:
		return v.Name
	case *ast.PointerTypeLabel:
		return "^" + slabel(v.Elem)
	case *ast.ArrayTypeLabel:
		return fmt.Sprintf("[%s]%s", sexpr(v.Len), slabel(v.Elem))
	case *ast.StructTypeLabel:
		fields := make([]string, len(v.Fields))
		for i, field := range v.Fields {
			fields[i] = field.Name + ": " + slabel(field.Type)
		}

		return "struct{" + strings.Join(fields, ", ") + "}"
	}

	return "?"
}

// sdecl renders a declaration on a single line.
func sdecl(decl ast.Decl) string {
	switch v := decl.(type) {
	case *ast.ConstDecl:
		if v.TypeLabel == nil {
			return fmt.Sprintf("const %s = %s", v.Name, sexpr(v.Value))
		}

		return fmt.Sprintf("const %s %s = %s", v.Name, slabel(v.TypeLabel), sexpr(v.Value))
	case *ast.TypeDecl:
		return fmt.Sprintf("type %s %s", v.Name, slabel(v.TypeLabel))
	case *ast.AssertDecl:
		return fmt.Sprintf("assert %s %q", sexpr(v.Cond), v.Message)
	}

	return "?"
}

func parse(t *testing.T, text string) (*ast.File, []*report.CompileError) {
	t.Helper()

	file, warnings, err := ParseSource(report.NewSource("test.ct", text), 0)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}

	return file, warnings
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1", "1"},
		{"(2 + 3) * 4", "(* (+ 2 3) 4)"},
		{"2 + 3 * 4", "(+ 2 (* 3 4))"},
		{"10 - 4 - 3", "(- (- 10 4) 3)"},
		{"1 << 2 + 1", "(+ (<< 1 2) 1)"},
		{"a >> b & c", "(& (>> a b) c)"},
		{"a | b ~ c", "(~ (| a b) c)"},
		{"a == b && c != d", "(&& (== a b) (!= c d))"},
		{"a < b || a >= c && b <= c", "(|| (< a b) (&& (>= a c) (<= b c)))"},
		{"a > b", "(> a b)"},
		{"a < < b", "(< a ?)"},
		{"-x", "(- x)"},
		{"- -1", "(- (- 1))"},
		{"!~+x", "(! (~ (+ x)))"},
		{"-a * b", "(* (- a) b)"},
		{"a & & b", "(& a ?)"},
		{"'a' + 1.5", "(+ \"a\" 1.5)"},
		{"sizeof(u64) * alignof(^u8)", "(* (sizeof u64) (alignof ^u8))"},
		{"sizeof([N + 1]struct{a: u8, b: [2]^T})", "(sizeof [(+ N 1)]struct{a: u8, b: [2]^T})"},
		{"((x))", "x"},
	}

	for _, test := range tests {
		if strings.Contains(test.want, "?") {
			// these inputs are rejected below
			continue
		}

		file, _ := parse(t, "X := "+test.src)
		if len(file.Decls) != 1 {
			t.Fatalf("%q: got %d decls", test.src, len(file.Decls))
		}

		got := sexpr(file.Decls[0].(*ast.ConstDecl).Value)
		if got != test.want {
			t.Errorf("%q: got %s, want %s", test.src, got, test.want)
		}
	}
}

func TestParseDecls(t *testing.T) {
	src := `
// constants
A := 1; B : u16 = A + 2
C: ^u8 = 0
Point :: struct { x: i32, y: i32, }
Buf :: [sizeof(Point)]u8
Empty :: struct{}
#assert B == 3, "B should be three"
#assert 1
`

	want := []string{
		"const A = 1",
		"const B u16 = (+ A 2)",
		"const C ^u8 = 0",
		"type Point struct{x: i32, y: i32}",
		"type Buf [(sizeof Point)]u8",
		"type Empty struct{}",
		`assert (== B 3) "B should be three"`,
		`assert 1 ""`,
	}

	file, warnings := parse(t, src)
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if len(file.Decls) != len(want) {
		t.Fatalf("got %d decls, want %d", len(file.Decls), len(want))
	}

	for i, decl := range file.Decls {
		if got := sdecl(decl); got != want[i] {
			t.Errorf("decl %d: got %s, want %s", i, got, want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
		line int
		col  int
	}{
		{"X := ", "unexpected end of file", 1, 5},
		{"X = 1", "unexpected token: `=`", 1, 3},
		{"X := (1 + 2", "unexpected end of file", 1, 12},
		{"X := 1 +", "unexpected end of file", 1, 9},
		{"X := a < < b", "unexpected token: `<`", 1, 10},
		{"X := a & & b", "unexpected token: `&`", 1, 10},
		{"X := \"str\"", "string literals may only be used as assertion messages", 1, 6},
		{"1 := 2", "unexpected token: `1`", 1, 1},
		{"sizeof := 2", "`sizeof` is reserved and cannot be declared", 1, 1},
		{"T :: struct{ a u8 }", "unexpected token: `u8`", 1, 16},
		{"T :: [4 u8", "unexpected token: `u8`", 1, 9},
		{"#assert X, Y", "unexpected token: `Y`", 1, 12},
		{"X := sizeof u8", "unexpected token: `u8`", 1, 13},
	}

	for _, test := range tests {
		_, _, err := ParseSource(report.NewSource("test.ct", test.src), 0)
		if err == nil {
			t.Errorf("%q: expected an error", test.src)
			continue
		}

		cerr, ok := err.(*report.CompileError)
		if !ok {
			t.Fatalf("%q: got a %T", test.src, err)
		}

		if cerr.Kind != report.ErrSyntax || cerr.Message != test.want {
			t.Errorf("%q: got %s: %s, want %s", test.src, cerr.Kind, cerr.Message, test.want)
		}

		if cerr.Span.StartLine != test.line || cerr.Span.StartCol != test.col {
			t.Errorf("%q: error at %d:%d, want %d:%d", test.src, cerr.Span.StartLine, cerr.Span.StartCol, test.line, test.col)
		}
	}
}

func TestUnknownDirectiveIsSkipped(t *testing.T) {
	file, warnings := parse(t, "#pragma pack(1) X := 3\nY := 4")

	if len(file.Decls) != 1 || sdecl(file.Decls[0]) != "const Y = 4" {
		t.Errorf("got decls %v", file.Decls)
	}

	if len(warnings) != 1 || warnings[0].Message != "unknown directive `#pragma`: skipping to end of line" {
		t.Errorf("got warnings %v", warnings)
	}
}

func TestParseSpans(t *testing.T) {
	file, _ := parse(t, "X : u8 =\n  (A + 10) * B")

	decl := file.Decls[0].(*ast.ConstDecl)
	want := report.TextSpan{StartLine: 1, StartCol: 1, EndLine: 2, EndCol: 15}
	if *decl.Span() != want {
		t.Errorf("decl span = %+v, want %+v", *decl.Span(), want)
	}

	mul := decl.Value.(*ast.BinaryOp)
	if *mul.Op.Span != (report.TextSpan{StartLine: 2, StartCol: 12, EndLine: 2, EndCol: 13}) {
		t.Errorf("operator span = %+v", *mul.Op.Span)
	}

	add := mul.Lhs.(*ast.BinaryOp)
	if *add.Span() != (report.TextSpan{StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 10}) {
		t.Errorf("operand span = %+v", *add.Span())
	}

	file, _ = parse(t, "Y := a <= b")
	cmp := file.Decls[0].(*ast.ConstDecl).Value.(*ast.BinaryOp)
	if *cmp.Op.Span != (report.TextSpan{StartLine: 1, StartCol: 8, EndLine: 1, EndCol: 10}) {
		t.Errorf("joined operator span = %+v", *cmp.Op.Span)
	}

	// Spans cover the source text of a literal, not its rendered text.
	file, _ = parse(t, "X := 1 + '\\q'")
	add = file.Decls[0].(*ast.ConstDecl).Value.(*ast.BinaryOp)
	if *add.Span() != (report.TextSpan{StartLine: 1, StartCol: 6, EndLine: 1, EndCol: 14}) {
		t.Errorf("escaped literal span = %+v", *add.Span())
	}
}

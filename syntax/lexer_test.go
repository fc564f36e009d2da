package syntax

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"golang.org/x/tools/txtar"

	"ctfe/report"
)

// tok is a shorthand for building expected tokens.
func tok(kind TokenKind, value string) Token {
	if !kind.IsLiteral() && kind != TOK_NONE {
		return NewPunctToken(kind)
	}

	return Token{Kind: kind, Value: value}
}

func mustTokenize(t *testing.T, src string) ([]Token, []Cursor) {
	t.Helper()

	tokens, cursors, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %s", src, err)
	}

	if len(tokens) != len(cursors) {
		t.Fatalf("Tokenize(%q) returned %d tokens but %d cursors", src, len(tokens), len(cursors))
	}

	return tokens, cursors
}

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "Empty",
			input:    "",
			expected: nil,
		},
		{
			name:  "Punctuation",
			input: ": ; = < > ( ) { } [ ] , . ^ + - * / % \\ | & ~ ! _ ?",
			expected: []Token{
				tok(TOK_COLON, ""), tok(TOK_SEMI, ""), tok(TOK_EQUAL, ""),
				tok(TOK_LANGLE, ""), tok(TOK_RANGLE, ""),
				tok(TOK_LPAREN, ""), tok(TOK_RPAREN, ""),
				tok(TOK_LBRACE, ""), tok(TOK_RBRACE, ""),
				tok(TOK_LBRACKET, ""), tok(TOK_RBRACKET, ""),
				tok(TOK_COMMA, ""), tok(TOK_DOT, ""), tok(TOK_CARET, ""),
				tok(TOK_PLUS, ""), tok(TOK_MINUS, ""), tok(TOK_STAR, ""),
				tok(TOK_SLASH, ""), tok(TOK_PERCENT, ""), tok(TOK_BACKSLASH, ""),
				tok(TOK_BAR, ""), tok(TOK_AMP, ""), tok(TOK_TILDE, ""),
				tok(TOK_EXCLAIM, ""), tok(TOK_UNDERSCORE, ""), tok(TOK_QUESTION, ""),
			},
		},
		{
			name:  "Adjacent punctuation",
			input: "a:=b<<2",
			expected: []Token{
				tok(TOK_IDENT, "a"), tok(TOK_COLON, ""), tok(TOK_EQUAL, ""),
				tok(TOK_IDENT, "b"), tok(TOK_LANGLE, ""), tok(TOK_LANGLE, ""),
				tok(TOK_INTLIT, "2"),
			},
		},
		{
			name:  "Identifiers",
			input: "x _x x_1 _ über",
			expected: []Token{
				tok(TOK_IDENT, "x"), tok(TOK_IDENT, "_x"), tok(TOK_IDENT, "x_1"),
				tok(TOK_UNDERSCORE, ""), tok(TOK_IDENT, "über"),
			},
		},
		{
			name:  "Integers",
			input: "0b101 0o17 0x1A 1_000 0",
			expected: []Token{
				tok(TOK_INTLIT, "0b101"), tok(TOK_INTLIT, "0o17"), tok(TOK_INTLIT, "0x1A"),
				tok(TOK_INTLIT, "1_000"), tok(TOK_INTLIT, "0"),
			},
		},
		{
			name:  "Incomplete base prefixes",
			input: "0x 0b2",
			expected: []Token{
				tok(TOK_INTLIT, "0"), tok(TOK_IDENT, "x"),
				tok(TOK_INTLIT, "0"), tok(TOK_IDENT, "b2"),
			},
		},
		{
			name:  "Floats",
			input: "3.14 1. 1.5.3",
			expected: []Token{
				tok(TOK_FLOATLIT, "3.14"),
				tok(TOK_INTLIT, "1"), tok(TOK_DOT, ""),
				tok(TOK_FLOATLIT, "1.5"), tok(TOK_DOT, ""), tok(TOK_INTLIT, "3"),
			},
		},
		{
			name:  "Maximal munch",
			input: "12ab 0x1fg",
			expected: []Token{
				tok(TOK_INTLIT, "12"), tok(TOK_IDENT, "ab"),
				tok(TOK_INTLIT, "0x1f"), tok(TOK_IDENT, "g"),
			},
		},
		{
			name:  "Strings",
			input: `"a\"b" "c\\d" "" "x\ny"`,
			expected: []Token{
				tok(TOK_STRLIT, `a"b`), tok(TOK_STRLIT, `c\d`),
				tok(TOK_STRLIT, ""), tok(TOK_STRLIT, "x\ny"),
			},
		},
		{
			name:  "Chars",
			input: `'\\' 'a' '\''`,
			expected: []Token{
				tok(TOK_CHARLIT, `\`), tok(TOK_CHARLIT, "a"), tok(TOK_CHARLIT, "'"),
			},
		},
		{
			name:  "Directives",
			input: "#assert x #if(y) #",
			expected: []Token{
				tok(TOK_DIRECTIVE, "#assert"), tok(TOK_IDENT, "x"),
				tok(TOK_DIRECTIVE, "#if"), tok(TOK_LPAREN, ""), tok(TOK_IDENT, "y"), tok(TOK_RPAREN, ""),
				tok(TOK_DIRECTIVE, "#"),
			},
		},
		{
			name:  "Comments",
			input: "a // b c\nd /* e\nf */ g /*/ h */ i",
			expected: []Token{
				tok(TOK_IDENT, "a"), tok(TOK_IDENT, "d"), tok(TOK_IDENT, "g"), tok(TOK_IDENT, "i"),
			},
		},
		{
			name:  "Division is not a comment",
			input: "a / b",
			expected: []Token{
				tok(TOK_IDENT, "a"), tok(TOK_SLASH, ""), tok(TOK_IDENT, "b"),
			},
		},
		{
			name:     "Unknown characters are dropped",
			input:    "a @ $b",
			expected: []Token{tok(TOK_IDENT, "a"), tok(TOK_IDENT, "b")},
		},
		{
			name:     "NUL ends the source",
			input:    "a\x00b",
			expected: []Token{tok(TOK_IDENT, "a")},
		},
		{
			name:     "Unterminated block comment",
			input:    "x /* never closed y",
			expected: []Token{tok(TOK_IDENT, "x")},
		},
		{
			name:     "Unterminated string",
			input:    `x "abc`,
			expected: []Token{tok(TOK_IDENT, "x"), tok(TOK_STRLIT, "abc")},
		},
		{
			name:     "Unterminated escape",
			input:    `"abc\`,
			expected: []Token{tok(TOK_STRLIT, "abc")},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, _ := mustTokenize(t, test.input)

			if diff := pretty.Diff(test.expected, tokens); len(diff) > 0 {
				t.Errorf("unexpected tokens for %q:\n%s", test.input, strings.Join(diff, "\n"))
			}
		})
	}
}

func TestLexCursors(t *testing.T) {
	tokens, cursors := mustTokenize(t, "// comment\nx : u8 = 0x0F\n")

	expected := []Token{
		tok(TOK_IDENT, "x"),
		tok(TOK_COLON, ""),
		tok(TOK_IDENT, "u8"),
		tok(TOK_EQUAL, ""),
		tok(TOK_INTLIT, "0x0F"),
	}
	if diff := pretty.Diff(expected, tokens); len(diff) > 0 {
		t.Fatalf("unexpected tokens:\n%s", strings.Join(diff, "\n"))
	}

	expectedCursors := []Cursor{{2, 1}, {2, 3}, {2, 5}, {2, 8}, {2, 10}}
	if diff := pretty.Diff(expectedCursors, cursors); len(diff) > 0 {
		t.Errorf("unexpected cursors:\n%s", strings.Join(diff, "\n"))
	}
}

func TestLexMultilineCursors(t *testing.T) {
	_, cursors := mustTokenize(t, "a\n  b /* x\ny */ c\n\te")

	expected := []Cursor{{1, 1}, {2, 3}, {3, 6}, {4, 2}}
	if diff := pretty.Diff(expected, cursors); len(diff) > 0 {
		t.Errorf("unexpected cursors:\n%s", strings.Join(diff, "\n"))
	}
}

func TestLexLiteralsEndAtNewline(t *testing.T) {
	tests := []struct {
		input   string
		tokens  []Token
		cursors []Cursor
	}{
		{"\"ab\nx", []Token{tok(TOK_STRLIT, "ab"), tok(TOK_IDENT, "x")}, []Cursor{{1, 1}, {2, 1}}},
		{"\"a\\\nx", []Token{tok(TOK_STRLIT, "a"), tok(TOK_IDENT, "x")}, []Cursor{{1, 1}, {2, 1}}},
		{"'a\nx", []Token{tok(TOK_CHARLIT, "a"), tok(TOK_IDENT, "x")}, []Cursor{{1, 1}, {2, 1}}},
	}

	for _, test := range tests {
		tokens, cursors := mustTokenize(t, test.input)

		if diff := pretty.Diff(test.tokens, tokens); len(diff) > 0 {
			t.Errorf("Tokenize(%q): unexpected tokens:\n%s", test.input, strings.Join(diff, "\n"))
		}

		if diff := pretty.Diff(test.cursors, cursors); len(diff) > 0 {
			t.Errorf("Tokenize(%q): unexpected cursors:\n%s", test.input, strings.Join(diff, "\n"))
		}
	}
}

func TestLexEnds(t *testing.T) {
	l := NewLexer("x := '\\q' + \"a\\tb\"", 0)
	if err := l.Tokenize(); err != nil {
		t.Fatalf("Tokenize failed: %s", err)
	}

	expected := []Cursor{{1, 2}, {1, 4}, {1, 5}, {1, 10}, {1, 12}, {1, 19}}
	if diff := pretty.Diff(expected, l.Ends()); len(diff) > 0 {
		t.Errorf("unexpected ends:\n%s", strings.Join(diff, "\n"))
	}
}

func TestLexWarnings(t *testing.T) {
	tests := []struct {
		input string
		kind  report.ErrorKind
	}{
		{`"abc`, report.ErrUnterminatedLiteral},
		{`'a`, report.ErrUnterminatedLiteral},
		{"'a\nb", report.ErrUnterminatedLiteral},
		{"\"ab\ncd\"", report.ErrUnterminatedLiteral},
		{"\"a\\\nb", report.ErrUnterminatedLiteral},
		{`'ab'`, report.ErrMalformedLiteral},
		{`''`, report.ErrMalformedLiteral},
	}

	for _, test := range tests {
		l := NewLexer(test.input, 0)
		if err := l.Tokenize(); err != nil {
			t.Fatalf("Tokenize(%q) failed: %s", test.input, err)
		}

		found := false
		for _, w := range l.Warnings() {
			if w.Kind == test.kind {
				found = true
			}
		}

		if !found {
			t.Errorf("Tokenize(%q): expected a %s warning, got %v", test.input, test.kind, l.Warnings())
		}
	}

	l := NewLexer("x := 'a' + \"b\"", 0)
	if err := l.Tokenize(); err != nil || len(l.Warnings()) != 0 {
		t.Errorf("well-formed input produced warnings: %v, %v", err, l.Warnings())
	}
}

func TestLexemeTooLong(t *testing.T) {
	l := NewLexer("x "+strings.Repeat("a", 20), 16)

	err := l.Tokenize()
	if kind, ok := report.KindOf(err); !ok || kind != report.ErrLexemeTooLong {
		t.Fatalf("expected a lexeme too long error, got %v", err)
	}

	if !report.IsFatal(err) {
		t.Error("lexeme too long must be fatal")
	}

	// Exactly at the limit is fine, and so are long comments and many tokens.
	src := strings.Repeat("b", 16) + " // " + strings.Repeat("c", 100) + "\n" + strings.Repeat("d ", 100)
	if err := NewLexer(src, 16).Tokenize(); err != nil {
		t.Errorf("unexpected error: %s", err)
	}

	if _, _, err := Tokenize(`"` + strings.Repeat("s", 300) + `"`); err == nil {
		t.Error("expected the default limit to reject a 300 byte string")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := []Token{
		tok(TOK_IDENT, "value_1"),
		tok(TOK_INTLIT, "0x1F"),
		tok(TOK_INTLIT, "1_000"),
		tok(TOK_FLOATLIT, "2.5"),
		tok(TOK_CHARLIT, "'"),
		tok(TOK_CHARLIT, "\\"),
		tok(TOK_CHARLIT, "\n"),
		tok(TOK_STRLIT, "say \"hi\"\t\\ now\x00"),
		tok(TOK_STRLIT, ""),
		tok(TOK_DIRECTIVE, "#assert"),
	}

	for kind := range punctText {
		tokens = append(tokens, NewPunctToken(kind))
	}

	for _, want := range tokens {
		got, _ := mustTokenize(t, want.Source())
		if len(got) != 1 || got[0] != want {
			t.Errorf("round trip of %s through %q gave %v", want, want.Source(), got)
		}
	}
}

func TestCommentsAndWhitespaceAreIgnored(t *testing.T) {
	base, _ := mustTokenize(t, `x:u8=0x0F;y:=sizeof(x)+'c'`)

	padded, _ := mustTokenize(t, "x /* a */ :\n\tu8 = // b\n 0x0F ;  y : /**/ = sizeof ( x ) + 'c' // end")

	if diff := pretty.Diff(base, padded); len(diff) > 0 {
		t.Errorf("padding changed the token stream:\n%s", strings.Join(diff, "\n"))
	}
}

func TestTokenStrings(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{tok(TOK_IDENT, "x"), "identifier(x)"},
		{tok(TOK_INTLIT, "0x0F"), "integer literal(0x0F)"},
		{tok(TOK_COLON, ""), "`:`"},
		{NoneToken(), "none"},
	}

	for _, test := range tests {
		if got := test.tok.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}

	if TOK_STRLIT.String() != "string literal" {
		t.Errorf("TOK_STRLIT.String() = %q", TOK_STRLIT.String())
	}
}

func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}

	if len(paths) == 0 {
		t.Fatal("no golden files found")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}

			sections := make(map[string]string)
			for _, file := range archive.Files {
				sections[file.Name] = string(file.Data)
			}

			tokens, cursors := mustTokenize(t, sections["input"])

			buf := &bytes.Buffer{}
			PrintTokens(buf, tokens, cursors)

			want := strings.TrimSpace(sections["tokens"])
			if got := strings.TrimSpace(buf.String()); got != want {
				t.Errorf("token dump mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
			}
		})
	}
}

package syntax

import (
	"fmt"
	"io"
	"strings"
)

// TokenKind is the kind of a token.  This must be one of the enumerated token
// kinds below.
type TokenKind int

// Enumeration of token kinds.
const (
	TOK_IDENT TokenKind = iota
	TOK_INTLIT
	TOK_FLOATLIT
	TOK_CHARLIT
	TOK_STRLIT
	TOK_DIRECTIVE

	TOK_COLON
	TOK_SEMI

	TOK_EQUAL
	TOK_LANGLE
	TOK_RANGLE

	TOK_LPAREN
	TOK_RPAREN

	TOK_LBRACE
	TOK_RBRACE

	TOK_LBRACKET
	TOK_RBRACKET

	TOK_COMMA
	TOK_DOT
	TOK_CARET

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_SLASH
	TOK_PERCENT
	TOK_BACKSLASH

	TOK_BAR
	TOK_AMP
	TOK_TILDE
	TOK_EXCLAIM

	TOK_UNDERSCORE

	TOK_QUESTION

	TOK_NONE
)

// punctKinds maps each punctuation glyph to its token kind.
var punctKinds = map[rune]TokenKind{
	':':  TOK_COLON,
	';':  TOK_SEMI,
	'=':  TOK_EQUAL,
	'<':  TOK_LANGLE,
	'>':  TOK_RANGLE,
	'(':  TOK_LPAREN,
	')':  TOK_RPAREN,
	'{':  TOK_LBRACE,
	'}':  TOK_RBRACE,
	'[':  TOK_LBRACKET,
	']':  TOK_RBRACKET,
	',':  TOK_COMMA,
	'.':  TOK_DOT,
	'^':  TOK_CARET,
	'+':  TOK_PLUS,
	'-':  TOK_MINUS,
	'*':  TOK_STAR,
	'/':  TOK_SLASH,
	'%':  TOK_PERCENT,
	'\\': TOK_BACKSLASH,
	'|':  TOK_BAR,
	'&':  TOK_AMP,
	'~':  TOK_TILDE,
	'!':  TOK_EXCLAIM,
	'_':  TOK_UNDERSCORE,
	'?':  TOK_QUESTION,
}

// punctText is the shared text of every punctuation token kind.
var punctText = make(map[TokenKind]string)

func init() {
	for c, kind := range punctKinds {
		punctText[kind] = string(c)
	}
}

// kindNames is the human-readable name of each token kind.
var kindNames = map[TokenKind]string{
	TOK_IDENT:     "identifier",
	TOK_INTLIT:    "integer literal",
	TOK_FLOATLIT:  "float literal",
	TOK_CHARLIT:   "char literal",
	TOK_STRLIT:    "string literal",
	TOK_DIRECTIVE: "directive",
	TOK_NONE:      "none",
}

// String returns the human-readable name of the token kind: eg. `identifier`
// or, for punctuation, the glyph itself in backticks.
func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	if text, ok := punctText[k]; ok {
		return "`" + text + "`"
	}

	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsLiteral returns whether the token kind carries its own text.
func (k TokenKind) IsLiteral() bool {
	return k <= TOK_DIRECTIVE
}

// -----------------------------------------------------------------------------

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.
	Kind TokenKind

	// The text of the token.  This may not directly correspond to its source
	// text: eg. the value of a string token has its quotes trimmed off and its
	// escape sequences replaced.  Punctuation tokens share the glyph text of
	// their kind.  Only the none token has no text.
	Value string
}

// Cursor is the one-indexed position of the first character of a token.
type Cursor struct {
	Row, Col int
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// NewPunctToken returns the token for a punctuation kind.
func NewPunctToken(kind TokenKind) Token {
	return Token{Kind: kind, Value: punctText[kind]}
}

// NoneToken returns the sentinel token.  It can be appended to a token stream
// to simplify lookahead.
func NoneToken() Token {
	return Token{Kind: TOK_NONE}
}

// String renders the kind and text of the token: eg. `identifier(x)`.
func (t Token) String() string {
	switch {
	case t.Kind == TOK_NONE:
		return t.Kind.String()
	case t.Kind.IsLiteral():
		return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
	default:
		return t.Kind.String()
	}
}

// Source renders the token back into source text.  Tokenizing the returned text
// yields an equivalent token.
func (t Token) Source() string {
	switch t.Kind {
	case TOK_STRLIT:
		return `"` + escapeText(t.Value, '"') + `"`
	case TOK_CHARLIT:
		return `'` + escapeText(t.Value, '\'') + `'`
	case TOK_NONE:
		return ""
	default:
		return t.Value
	}
}

// escapeText escapes the text of a quoted literal delimited by quote.
func escapeText(s string, quote rune) string {
	sb := strings.Builder{}

	for _, c := range s {
		switch c {
		case quote, '\\':
			sb.WriteRune('\\')
			sb.WriteRune(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteRune(c)
		}
	}

	return sb.String()
}

// PrintTokens writes one line per token: its position, kind and text.  The
// cursors must be index-aligned with the tokens.
func PrintTokens(w io.Writer, tokens []Token, cursors []Cursor) {
	for i, tok := range tokens {
		if tok.Kind.IsLiteral() {
			fmt.Fprintf(w, "%s %s %s\n", cursors[i], tok.Kind, tok.Source())
		} else {
			fmt.Fprintf(w, "%s %s\n", cursors[i], tok.Kind)
		}
	}
}

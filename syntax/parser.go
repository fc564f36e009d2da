package syntax

import (
	"ctfe/ast"
	"ctfe/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser over the token stream of a single
// source file.  All parsing functions assume that they begin with the parser
// centered on the first token of their production and must consume all tokens
// of their production, leaving the parser on the next token.  Parsing stops at
// the first syntax error.  Parsers are created once per file.
type Parser struct {
	// src is the source file being parsed.
	src *report.Source

	// The tokens being parsed and their index-aligned start and end
	// positions.  The token stream always ends with the none token.
	tokens  []Token
	cursors []Cursor
	ends    []Cursor

	// ndx is the index of the current token.
	ndx int

	// tok is the current token the parser is positioned on.
	tok Token

	// err is the first syntax error encountered.
	err *report.CompileError

	warnings []*report.CompileError
}

// NewParser creates a new parser over the tokens produced by a lexer which
// has finished tokenizing a source file.
func NewParser(src *report.Source, l *Lexer) *Parser {
	n := len(l.Tokens())
	p := &Parser{
		src:     src,
		tokens:  make([]Token, n, n+1),
		cursors: make([]Cursor, n, n+1),
		ends:    make([]Cursor, n, n+1),
	}

	copy(p.tokens, l.Tokens())
	copy(p.cursors, l.Cursors())
	copy(p.ends, l.Ends())

	// the none token is one column wide and sits just after the last token
	start := Cursor{Row: 1, Col: 1}
	if n > 0 {
		start = p.ends[n-1]
	}

	p.tokens = append(p.tokens, NoneToken())
	p.cursors = append(p.cursors, start)
	p.ends = append(p.ends, Cursor{Row: start.Row, Col: start.Col + 1})
	p.tok = p.tokens[0]

	return p
}

// ParseSource tokenizes and parses a source file.  It returns the parsed file,
// the recoverable problems found in the file, and the error that stopped
// processing if any.
func ParseSource(src *report.Source, maxLexemeLen int) (*ast.File, []*report.CompileError, error) {
	l := NewLexer(src.Text, maxLexemeLen)
	if err := l.Tokenize(); err != nil {
		return nil, l.Warnings(), err
	}

	p := NewParser(src, l)
	file, err := p.Parse()

	return file, append(l.Warnings(), p.Warnings()...), err
}

// Parse parses the whole token stream.
func (p *Parser) Parse() (*ast.File, error) {
	if decls, ok := p.parseFile(); ok {
		return &ast.File{Src: p.src, Decls: decls}, nil
	}

	return nil, p.err
}

// Warnings returns the warnings produced while parsing.
func (p *Parser) Warnings() []*report.CompileError {
	return p.warnings
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  The parser never moves past the
// none token.
func (p *Parser) next() {
	if p.ndx < len(p.tokens)-1 {
		p.ndx++
	}

	p.tok = p.tokens[p.ndx]
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind TokenKind) bool {
	return p.tok.Kind == kind
}

// gotKeyword returns true if the parser is on an identifier spelling the given
// keyword.
func (p *Parser) gotKeyword(keyword string) bool {
	return p.tok.Kind == TOK_IDENT && p.tok.Value == keyword
}

// assert checks if the parser is on a token of a given kind and rejects the
// token if not.
func (p *Parser) assert(kind TokenKind) bool {
	if p.got(kind) {
		return true
	}

	p.reject()
	return false
}

// assertAndNext performs an assert operation and moves the parser forward.
func (p *Parser) assertAndNext(kind TokenKind) bool {
	if p.assert(kind) {
		p.next()
		return true
	}

	return false
}

// joined returns the kind of the token immediately following the current one
// if the two are written with nothing between them.  Multi-glyph operators are
// built from joined single-glyph tokens.
func (p *Parser) joined() TokenKind {
	if p.ndx+1 >= len(p.tokens)-1 {
		return TOK_NONE
	}

	if p.ends[p.ndx] == p.cursors[p.ndx+1] {
		return p.tokens[p.ndx+1].Kind
	}

	return TOK_NONE
}

// -----------------------------------------------------------------------------

// span returns the text span of the current token.
func (p *Parser) span() *report.TextSpan {
	return p.spanAt(p.ndx)
}

// prevSpan returns the text span of the last token consumed.
func (p *Parser) prevSpan() *report.TextSpan {
	if p.ndx == 0 {
		return p.spanAt(0)
	}

	return p.spanAt(p.ndx - 1)
}

// spanAt returns the text span of the token at ndx.
func (p *Parser) spanAt(ndx int) *report.TextSpan {
	start, end := p.cursors[ndx], p.ends[ndx]
	return &report.TextSpan{
		StartLine: start.Row,
		StartCol:  start.Col,
		EndLine:   end.Row,
		EndCol:    end.Col,
	}
}

// -----------------------------------------------------------------------------

// reject records an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.got(TOK_NONE) {
		p.rejectWithMsg("unexpected end of file")
	} else {
		p.rejectWithMsg("unexpected token: `%s`", p.tok.Source())
	}
}

// rejectWithMsg rejects the current token with a specific message.  Only the
// first error is kept.
func (p *Parser) rejectWithMsg(msg string, a ...interface{}) {
	if p.err == nil {
		p.err = report.Raise(report.ErrSyntax, p.span(), msg, a...)
	}
}

// warnOn records a warning over the given span.
func (p *Parser) warnOn(span *report.TextSpan, kind report.ErrorKind, msg string, a ...interface{}) {
	p.warnings = append(p.warnings, report.Raise(kind, span, msg, a...))
}

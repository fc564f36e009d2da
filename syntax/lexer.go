package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"ctfe/common"
	"ctfe/report"
	"ctfe/util"
)

// lexState is the mode of the lexer's state machine.  Exactly one state is
// active at any time.
type lexState int

// Enumeration of lexer states.
const (
	stateDefault lexState = iota
	stateIdent
	stateNumber
	stateDirective
	stateLineComment
	stateBlockComment
	stateString
	stateStringEscape
	stateChar
	stateCharEscape
)

// eof is the rune returned by peek when the input is exhausted.
const eof rune = -1

// Lexer is responsible for tokenizing a source text.  It consumes the text one
// character at a time, producing a list of tokens and an index-aligned list of
// cursors giving the position of the first character of each token.
//
// Tokenizing never fails on malformed input: unterminated literals become
// best-effort tokens (recorded as warnings), unknown characters are dropped,
// and an unterminated block comment silently ends the token stream.  String
// and char literals cannot span lines: a newline ends them as unterminated.
// The only error is a lexeme longer than the lexer's maximum lexeme length.
type Lexer struct {
	// The source text.  A NUL byte ends the text early.
	src string

	// The byte offset of the next character in the source text.
	offset int

	// The position of the next character.
	row, col int

	// The position of the first character of the pending lexeme.
	start Cursor

	// The active state of the state machine.
	state lexState

	// The lexeme currently being built and the maximum number of bytes it may
	// grow to.
	pending      *strings.Builder
	maxLexemeLen int

	// The base of the numeric literal being lexed and whether it has a
	// fractional part.
	numBase  int
	numFloat bool

	tokens  []Token
	cursors []Cursor

	// ends holds the position just past the last character of each token.
	// The text of a token may be shorter or longer than its source text.
	ends []Cursor

	warnings []*report.CompileError
}

// NewLexer creates a new lexer for the given source text.  If maxLexemeLen is
// not positive, the default maximum lexeme length is used.
func NewLexer(src string, maxLexemeLen int) *Lexer {
	if maxLexemeLen <= 0 {
		maxLexemeLen = common.DefaultMaxLexemeLen
	}

	return &Lexer{
		src:          src,
		row:          1,
		col:          1,
		pending:      &strings.Builder{},
		maxLexemeLen: maxLexemeLen,
	}
}

// Tokenize runs a lexer with the default maximum lexeme length over src and
// returns its tokens and cursors.
func Tokenize(src string) ([]Token, []Cursor, error) {
	l := NewLexer(src, 0)
	if err := l.Tokenize(); err != nil {
		return nil, nil, err
	}

	return l.Tokens(), l.Cursors(), nil
}

// Tokenize consumes the whole source text.  It returns an error only if a
// lexeme exceeds the maximum lexeme length: that error is fatal and the tokens
// produced so far should be discarded.  A lexer can only be run once.
func (l *Lexer) Tokenize() error {
	for {
		c := l.peek()
		if c == eof {
			break
		}

		if err := l.step(c); err != nil {
			return err
		}
	}

	l.finish()
	return nil
}

// Tokens returns the tokens produced by the lexer.  The caller takes ownership
// of the returned slice.
func (l *Lexer) Tokens() []Token {
	return l.tokens
}

// Cursors returns the cursors of the tokens produced by the lexer.
func (l *Lexer) Cursors() []Cursor {
	return l.cursors
}

// Ends returns the end positions of the tokens produced by the lexer.
func (l *Lexer) Ends() []Cursor {
	return l.ends
}

// Warnings returns the recoverable problems found while tokenizing: ie.
// unterminated and malformed literals.
func (l *Lexer) Warnings() []*report.CompileError {
	return l.warnings
}

// -----------------------------------------------------------------------------

// step runs the state machine over one character.  A state that does not
// consume c leaves it to be reprocessed in the default state: it never moves
// the lexer past a character that starts the next token.
func (l *Lexer) step(c rune) error {
	switch l.state {
	case stateDefault:
		return l.stepDefault(c)
	case stateIdent:
		if isIdentChar(c) {
			return l.eat()
		}

		l.emitIdent()
	case stateDirective:
		if isIdentChar(c) {
			return l.eat()
		}

		l.emit(TOK_DIRECTIVE)
	case stateNumber:
		return l.stepNumber(c)
	case stateLineComment:
		l.skip()

		if c == '\n' {
			l.state = stateDefault
		}
	case stateBlockComment:
		l.skip()

		if c == '*' && l.peek() == '/' {
			l.skip()
			l.state = stateDefault
		}
	case stateString:
		switch c {
		case '"':
			l.skip()
			l.emit(TOK_STRLIT)
		case '\\':
			l.skip()
			l.state = stateStringEscape
		case '\n':
			// Leave the newline to the default state.
			l.warn(report.ErrUnterminatedLiteral, "unterminated string literal")
			l.emit(TOK_STRLIT)
		default:
			return l.eat()
		}
	case stateChar:
		switch c {
		case '\'':
			l.skip()
			l.emitChar()
		case '\\':
			l.skip()
			l.state = stateCharEscape
		case '\n':
			// Leave the newline to the default state.
			l.warn(report.ErrUnterminatedLiteral, "unterminated char literal")
			l.emitChar()
		default:
			return l.eat()
		}
	case stateStringEscape, stateCharEscape:
		if l.state == stateStringEscape {
			l.state = stateString
		} else {
			l.state = stateChar
		}

		// A newline cannot be escaped: it still ends the literal.
		if c == '\n' {
			return nil
		}

		l.skip()
		return l.push(unescape(c))
	}

	return nil
}

// stepDefault processes a character in the default state.  Every character is
// consumed here: either as whitespace, as the start of a new token, or dropped
// because it cannot begin any token.
func (l *Lexer) stepDefault(c rune) error {
	l.mark()

	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		l.skip()
	case '/':
		l.skip()

		switch l.peek() {
		case '/':
			l.skip()
			l.state = stateLineComment
		case '*':
			l.skip()
			l.state = stateBlockComment
		default:
			l.emitPunct(TOK_SLASH)
		}
	case '"':
		l.skip()
		l.state = stateString
	case '\'':
		l.skip()
		l.state = stateChar
	case '#':
		l.state = stateDirective
		return l.eat()
	default:
		if isDecimalDigit(c) {
			return l.startNumber()
		} else if isIdentStart(c) {
			l.state = stateIdent
			return l.eat()
		} else if kind, ok := punctKinds[c]; ok {
			l.skip()
			l.emitPunct(kind)
		} else {
			// Unknown characters are dropped.
			l.skip()
		}
	}

	return nil
}

// startNumber begins lexing a numeric literal.  A base prefix is only
// recognized if it is followed by a digit of its base: otherwise the leading
// `0` is a complete literal by itself.
func (l *Lexer) startNumber() error {
	l.state = stateNumber
	l.numBase = 10
	l.numFloat = false

	c := l.peek()
	if err := l.eat(); err != nil {
		return err
	}

	if c == '0' {
		base := 0
		switch l.peek() {
		case 'b':
			base = 2
		case 'o':
			base = 8
		case 'x':
			base = 16
		}

		if base != 0 && util.IsDigitOf(l.peekSecond(), base) {
			l.numBase = base
			return l.eat()
		}
	}

	return nil
}

// stepNumber processes a character inside a numeric literal.  Only base 10
// literals may have a fractional part, and only if a digit follows the dot.
func (l *Lexer) stepNumber(c rune) error {
	switch {
	case c == '_' || util.IsDigitOf(c, l.numBase):
		return l.eat()
	case c == '.' && l.numBase == 10 && !l.numFloat && isDecimalDigit(l.peekSecond()):
		l.numFloat = true
		return l.eat()
	}

	if l.numFloat {
		l.emit(TOK_FLOATLIT)
	} else {
		l.emit(TOK_INTLIT)
	}

	return nil
}

// finish flushes the pending lexeme once the input is exhausted.
func (l *Lexer) finish() {
	switch l.state {
	case stateIdent:
		l.emitIdent()
	case stateDirective:
		l.emit(TOK_DIRECTIVE)
	case stateNumber:
		l.stepNumber(eof)
	case stateString, stateStringEscape:
		l.warn(report.ErrUnterminatedLiteral, "unterminated string literal")
		l.emit(TOK_STRLIT)
	case stateChar, stateCharEscape:
		l.warn(report.ErrUnterminatedLiteral, "unterminated char literal")
		l.emitChar()
	}

	l.state = stateDefault
}

// -----------------------------------------------------------------------------

// mark sets the start of the pending lexeme to the lexer's current position.
func (l *Lexer) mark() {
	l.start = Cursor{Row: l.row, Col: l.col}
}

// emit produces a new token of the given kind from the pending lexeme and
// returns the lexer to the default state.
func (l *Lexer) emit(kind TokenKind) {
	l.tokens = append(l.tokens, Token{Kind: kind, Value: l.pending.String()})
	l.cursors = append(l.cursors, l.start)
	l.ends = append(l.ends, Cursor{Row: l.row, Col: l.col})

	l.pending.Reset()
	l.state = stateDefault
}

// emitIdent emits the pending identifier.  A lone `_` is its own token.
func (l *Lexer) emitIdent() {
	if l.pending.String() == "_" {
		l.pending.Reset()
		l.emitPunct(TOK_UNDERSCORE)
	} else {
		l.emit(TOK_IDENT)
	}
}

// emitChar emits the pending char literal.  The literal must contain exactly
// one character: if it does not, it is still emitted and a warning recorded.
func (l *Lexer) emitChar() {
	if utf8.RuneCountInString(l.pending.String()) != 1 {
		l.warn(report.ErrMalformedLiteral, "char literal must contain exactly one character")
	}

	l.emit(TOK_CHARLIT)
}

// emitPunct emits a punctuation token and returns to the default state.
func (l *Lexer) emitPunct(kind TokenKind) {
	l.tokens = append(l.tokens, NewPunctToken(kind))
	l.cursors = append(l.cursors, l.start)
	l.ends = append(l.ends, Cursor{Row: l.row, Col: l.col})

	l.state = stateDefault
}

// warn records a recoverable problem with the pending lexeme.
func (l *Lexer) warn(kind report.ErrorKind, msg string) {
	l.warnings = append(l.warnings, report.Raise(kind, l.getSpan(), msg))
}

// getSpan calculates a text span from the start of the pending lexeme to the
// lexer's current position.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.start.Row,
		StartCol:  l.start.Col,
		EndLine:   l.row,
		EndCol:    l.col,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one character and writes it to the pending
// lexeme.
func (l *Lexer) eat() error {
	c := l.peek()
	l.skip()
	return l.push(c)
}

// push writes a character to the pending lexeme.  Exceeding the maximum lexeme
// length is a fatal error.
func (l *Lexer) push(c rune) error {
	if l.pending.Len()+utf8.RuneLen(c) > l.maxLexemeLen {
		return report.Raise(
			report.ErrLexemeTooLong,
			l.getSpan(),
			"lexeme exceeds the maximum length of %d bytes",
			l.maxLexemeLen,
		)
	}

	l.pending.WriteRune(c)
	return nil
}

// skip moves the lexer forward one character without writing it to the pending
// lexeme.
func (l *Lexer) skip() {
	c, size := l.decode(l.offset)
	if c == eof {
		return
	}

	l.offset += size

	if c == '\n' {
		l.row++
		l.col = 1
	} else {
		l.col++
	}
}

// peek returns the next character without moving the lexer forward.
func (l *Lexer) peek() rune {
	c, _ := l.decode(l.offset)
	return c
}

// peekSecond returns the character after the next character.
func (l *Lexer) peekSecond() rune {
	c, size := l.decode(l.offset)
	if c == eof {
		return eof
	}

	c, _ = l.decode(l.offset + size)
	return c
}

// decode decodes the character at the given byte offset.  The end of the text
// and NUL both decode as eof.
func (l *Lexer) decode(offset int) (rune, int) {
	if offset >= len(l.src) {
		return eof, 0
	}

	c, size := utf8.DecodeRuneInString(l.src[offset:])
	if c == 0 {
		return eof, 0
	}

	return c, size
}

// -----------------------------------------------------------------------------

// unescape returns the character an escape sequence `\c` stands for.  Unknown
// escapes stand for the escaped character itself.
func unescape(c rune) rune {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return c
	}
}

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isIdentStart returns whether c could be the first rune of an identifier.
func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

// isIdentChar returns whether c could continue an identifier.
func isIdentChar(c rune) bool {
	return isIdentStart(c) || unicode.IsDigit(c)
}

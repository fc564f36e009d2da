package report

import (
	"errors"
	"fmt"
	"os"
)

// TextSpan represents a range or "span" of source text. It is used to specify
// erroneous or otherwise significant source text.  Lines and columns are
// one-indexed.  The start position is the position of the first character in
// the span and the end column is one past the last character in the span.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	if start == nil {
		return end
	} else if end == nil {
		return start
	}

	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// -----------------------------------------------------------------------------

// ErrorKind classifies a compile error.  It must be one of the enumerated error
// kinds below.
type ErrorKind int

// Enumeration of error kinds.  Kinds before ErrLexemeTooLong are local errors:
// the caller decides whether to continue.  The remaining kinds are fatal: they
// always stop the phase that raised them.
const (
	ErrSyntax ErrorKind = iota
	ErrMalformedLiteral
	ErrUnterminatedLiteral
	ErrUndefinedConstant
	ErrUndefinedType
	ErrUnresolvedType
	ErrDivisionByZero
	ErrTypeMismatch
	ErrDuplicateDefinition
	ErrAssertionFailed

	ErrLexemeTooLong
	ErrCircularConstant
	ErrCircularType
)

var errorKindNames = map[ErrorKind]string{
	ErrSyntax:              "syntax",
	ErrMalformedLiteral:    "malformed literal",
	ErrUnterminatedLiteral: "unterminated literal",
	ErrUndefinedConstant:   "undefined constant",
	ErrUndefinedType:       "undefined type",
	ErrUnresolvedType:      "unresolved type",
	ErrDivisionByZero:      "division by zero",
	ErrTypeMismatch:        "type mismatch",
	ErrDuplicateDefinition: "duplicate definition",
	ErrAssertionFailed:     "assertion failed",
	ErrLexemeTooLong:       "lexeme too long",
	ErrCircularConstant:    "circular constant definition",
	ErrCircularType:        "circular type definition",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Fatal returns whether errors of this kind belong to the fatal tier.
func (k ErrorKind) Fatal() bool {
	return k >= ErrLexemeTooLong
}

// CompileError is an error produced while processing source text.
type CompileError struct {
	// The kind of the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.  This may be nil if the position
	// is unknown: position enrichment is the job of the caller.
	Span *TextSpan

	// The source the span refers to.  This is nil until the error is located
	// by the code that owns the erroneous text.
	Src *Source
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise creates a new compile error.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// Locate sets the source of a compile error if it is not already known.  The
// innermost owner of the erroneous text should locate the error first.  The
// error is returned unchanged.
func Locate(err error, src *Source) error {
	var cerr *CompileError
	if errors.As(err, &cerr) && cerr.Src == nil {
		cerr.Src = src
	}

	return err
}

// KindOf returns the kind of a compile error wrapped by err.  The boolean is
// false if err is not a compile error.
func KindOf(err error) (ErrorKind, bool) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return cerr.Kind, true
	}

	return 0, false
}

// IsFatal returns whether err is a compile error of the fatal tier.
func IsFatal(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind.Fatal()
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error.  These are errors that
// specifically result for a bug or unexpected condition occurring with the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayICE(rep.out, fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error and exits.  These are errors that should
// cause all processing to stop immediately: missing files, invalid
// configuration, etc.  Only the driver should call this.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayFatal(rep.out, fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// ReportCompileError reports a compilation error: ie. erroneous input code. The
// span may be nil in which case no position information will be printed.
func ReportCompileError(src *Source, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayCompileMessage(rep.out, "error", src, span, fmt.Sprintf(message, args...))
	}
}

// ReportCompileWarning reports a compilation warning.  The arguments are of the
// same form as those to ReportCompileError.
func ReportCompileWarning(src *Source, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warningCount++

	if rep.logLevel > LogLevelError {
		displayCompileMessage(rep.out, "warning", src, span, fmt.Sprintf(message, args...))
	}
}

// ReportError reports an arbitrary error produced while processing src.
// Compile errors are displayed with their span and kind, all other errors are
// displayed as standard errors.
func ReportError(src *Source, err error) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		if cerr.Src != nil {
			src = cerr.Src
		}

		ReportCompileError(src, cerr.Span, "%s: %s", cerr.Kind, cerr.Message)
	} else {
		ReportStdError(src, err)
	}
}

// ReportWarning reports a compile error produced while processing src as a
// warning.
func ReportWarning(src *Source, err error) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		if cerr.Src != nil {
			src = cerr.Src
		}

		ReportCompileWarning(src, cerr.Span, "%s", cerr.Message)
	} else {
		ReportCompileWarning(src, nil, "%s", err)
	}
}

// ReportConfigWarning reports a problem with a configuration file which does
// not prevent it from being used.
func ReportConfigWarning(path, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warningCount++

	if rep.logLevel > LogLevelError {
		displayConfigWarning(rep.out, path, fmt.Sprintf(message, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(src *Source, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayStdError(rep.out, src.ReprPath, err)
	}
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether or not any errors were reported.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}

// Counts returns the number of errors and warnings reported.
func Counts() (int, int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount, rep.warningCount
}

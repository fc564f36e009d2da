package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// DisplayInfoMessage displays an informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel > LogLevelSilent {
		fmt.Fprintln(rep.out, InfoStyleBG.Sprint(tag), InfoColorFG.Sprint(msg))
	}
}

// DisplayFinished displays the concluding message of processing: the error and
// warning counts.  This is only displayed in verbose mode.
func DisplayFinished() {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel < LogLevelVerbose {
		return
	}

	if rep.errorCount == 0 {
		fmt.Fprint(rep.out, SuccessColorFG.Sprint("All done! "))
	} else {
		fmt.Fprint(rep.out, ErrorColorFG.Sprint("Oh no! "))
	}

	fmt.Fprintf(rep.out, "(%s, %s)\n", pluralize(rep.errorCount, "error"), pluralize(rep.warningCount, "warning"))
}

// pluralize formats a count of things.
func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}

	return strconv.Itoa(n) + " " + noun + "s"
}

// -----------------------------------------------------------------------------

// displayICE displays an internal compiler error message.
func displayICE(out io.Writer, message string) {
	fmt.Fprintf(out, "%s %s\n", ErrorStyleBG.Sprint("internal compiler error"), message)
	fmt.Fprint(out, "This error was not supposed to happen: please open an issue.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(out io.Writer, message string) {
	fmt.Fprintf(out, "%s %s\n\n", ErrorStyleBG.Sprint("fatal error"), ErrorColorFG.Sprint(message))
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func displayCompileMessage(out io.Writer, label string, src *Source, span *TextSpan, message string) {
	var styledLabel string
	if label == "error" {
		styledLabel = ErrorStyleBG.Sprint(label)
	} else {
		styledLabel = WarnStyleBG.Sprint(label)
	}

	if span == nil {
		fmt.Fprintf(out, "%s: %s: %s\n\n", src.ReprPath, styledLabel, message)
	} else {
		fmt.Fprintf(out, "%s:%d:%d: %s: %s\n", src.ReprPath, span.StartLine, span.StartCol, styledLabel, message)
		displaySourceText(out, src, span)
	}
}

// displayConfigWarning displays a warning about a configuration file.
func displayConfigWarning(out io.Writer, path, message string) {
	fmt.Fprintf(out, "%s: %s: %s\n\n", path, WarnStyleBG.Sprint("warning"), message)
}

// displayStdError displays a standard Go error.
func displayStdError(out io.Writer, reprPath string, err error) {
	fmt.Fprintf(out, "%s: %s: %s\n\n", reprPath, ErrorStyleBG.Sprint("error"), err)
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span
// and underlines the spanned text with carets.
func displaySourceText(out io.Writer, src *Source, span *TextSpan) {
	// Calculate the maximum line number length.
	maxLineNumLen := len(strconv.Itoa(span.EndLine))

	// Generate the format string for line numbers.
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for ln := span.StartLine; ln <= span.EndLine; ln++ {
		line, ok := src.Line(ln)
		if !ok {
			break
		}

		// Print the line number, separator bar and the source line.
		fmt.Fprintf(out, lineNumFmtStr, ln)
		fmt.Fprintln(out, line)

		// Print the bar used for the line for caret underlining.
		fmt.Fprint(out, strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining begins at the start column on the first line and at the
		// beginning of the line on all others.  The whitespace before the
		// carets copies the line so that tabs line up.
		startCol := 1
		if ln == span.StartLine {
			startCol = span.StartCol
		}

		endCol := len(line) + 1
		if ln == span.EndLine && span.EndCol <= endCol {
			endCol = span.EndCol
		}

		fmt.Fprint(out, caretPrefix(line, startCol-1))

		caretCount := endCol - startCol
		if caretCount < 1 {
			caretCount = 1
		}

		fmt.Fprintln(out, ErrorColorFG.Sprint(strings.Repeat("^", caretCount)))
	}

	// Print a newline after the source text.
	fmt.Fprintln(out)
}

// caretPrefix returns the whitespace to print before the carets: it is the
// first n characters of the line with every non-tab character blanked.
func caretPrefix(line string, n int) string {
	sb := strings.Builder{}

	for i, c := range []rune(line) {
		if i >= n {
			break
		}

		if c == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
	}

	for i := len([]rune(line)); i < n; i++ {
		sb.WriteRune(' ')
	}

	return sb.String()
}

package report

import "strings"

// Source is a source text being processed along with the path used to refer
// to it in messages.
type Source struct {
	// The representative path of the source: it is what is displayed to the
	// user, not necessarily an absolute path.
	ReprPath string

	// The complete source text.
	Text string

	// The lines of the source text.  This is computed lazily.
	lines []string
}

// NewSource creates a new source from a path and its contents.
func NewSource(reprPath, text string) *Source {
	return &Source{ReprPath: reprPath, Text: text}
}

// Line returns the one-indexed line of the source text.  The boolean is false
// if no such line exists.
func (s *Source) Line(n int) (string, bool) {
	if s.lines == nil {
		s.lines = strings.Split(strings.ReplaceAll(s.Text, "\r\n", "\n"), "\n")
	}

	if n < 1 || n > len(s.lines) {
		return "", false
	}

	return s.lines[n-1], true
}

package cmd

import (
	"ctfe/ast"
	"ctfe/report"
	"ctfe/syntax"
	"sync"
)

// parseSources lexes and parses all the source files concurrently.  The
// parsed files are stored in the same order as their sources.  It returns
// whether every file parsed successfully.
func (c *Compiler) parseSources(srcs []*report.Source) bool {
	c.files = make([]*ast.File, len(srcs))

	wg := &sync.WaitGroup{}
	for i, src := range srcs {
		wg.Add(1)

		go func(i int, src *report.Source) {
			c.files[i] = parseSource(src, c.cfg.MaxLexemeLen)
			wg.Done()
		}(i, src)
	}

	// Wait for parsing to finish.
	wg.Wait()

	return !report.AnyErrors()
}

// parseSource lexes and parses a single source file and reports all the
// problems found in it.  Malformed and unterminated literals are reported as
// errors: the tokens recovered from them are never what the user meant.
func parseSource(src *report.Source, maxLexemeLen int) *ast.File {
	l := syntax.NewLexer(src.Text, maxLexemeLen)
	if err := l.Tokenize(); err != nil {
		report.ReportError(src, err)
		return nil
	}

	for _, warning := range l.Warnings() {
		report.ReportError(src, warning)
	}

	p := syntax.NewParser(src, l)
	file, err := p.Parse()

	for _, warning := range p.Warnings() {
		report.ReportWarning(src, warning)
	}

	if err != nil {
		report.ReportError(src, err)
		return nil
	}

	return file
}

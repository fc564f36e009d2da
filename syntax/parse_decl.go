package syntax

import (
	"ctfe/ast"
	"ctfe/report"
)

// reservedNames are identifiers which have special meaning in expressions and
// type labels and so cannot be declared.
var reservedNames = map[string]struct{}{
	"sizeof":  {},
	"alignof": {},
	"struct":  {},
}

// file = {decl | ';'}
func (p *Parser) parseFile() ([]ast.Decl, bool) {
	var decls []ast.Decl

	for !p.got(TOK_NONE) {
		if p.got(TOK_SEMI) {
			p.next()
			continue
		}

		decl, ok := p.parseDecl()
		if !ok {
			return nil, false
		}

		// skipped directives produce no declaration
		if decl != nil {
			decls = append(decls, decl)
		}
	}

	return decls, true
}

// decl = assert_decl | type_decl | const_decl
func (p *Parser) parseDecl() (ast.Decl, bool) {
	switch p.tok.Kind {
	case TOK_DIRECTIVE:
		if p.tok.Value == "#assert" {
			return p.parseAssertDecl()
		}

		p.skipDirective()
		return nil, true
	case TOK_IDENT:
		return p.parseNamedDecl()
	}

	p.reject()
	return nil, false
}

// skipDirective skips an unknown directive along with the rest of the line it
// appears on.
func (p *Parser) skipDirective() {
	p.warnOn(p.span(), report.ErrSyntax, "unknown directive `%s`: skipping to end of line", p.tok.Value)

	row := p.cursors[p.ndx].Row
	for !p.got(TOK_NONE) && p.cursors[p.ndx].Row == row {
		p.next()
	}
}

// assert_decl = '#assert' expr [',' 'STRLIT']
func (p *Parser) parseAssertDecl() (ast.Decl, bool) {
	startSpan := p.span()
	p.next()

	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	var msg string
	if p.got(TOK_COMMA) {
		p.next()

		if !p.assert(TOK_STRLIT) {
			return nil, false
		}

		msg = p.tok.Value
		p.next()
	}

	return &ast.AssertDecl{
		DeclBase: ast.NewDeclBase(report.NewSpanOver(startSpan, p.prevSpan())),
		Cond:     cond,
		Message:  msg,
	}, true
}

// type_decl = 'IDENT' ':' ':' type_label
// const_decl = 'IDENT' ':' [type_label] '=' expr
func (p *Parser) parseNamedDecl() (ast.Decl, bool) {
	nameTok, startSpan := p.tok, p.span()
	if _, ok := reservedNames[nameTok.Value]; ok {
		p.rejectWithMsg("`%s` is reserved and cannot be declared", nameTok.Value)
		return nil, false
	}

	p.next()
	if !p.assertAndNext(TOK_COLON) {
		return nil, false
	}

	// type_decl
	if p.got(TOK_COLON) {
		p.next()

		label, ok := p.parseTypeLabel()
		if !ok {
			return nil, false
		}

		return &ast.TypeDecl{
			DeclBase:  ast.NewDeclBase(report.NewSpanOver(startSpan, p.prevSpan())),
			Name:      nameTok.Value,
			TypeLabel: label,
		}, true
	}

	// const_decl
	var label ast.TypeLabel
	if !p.got(TOK_EQUAL) {
		var ok bool
		if label, ok = p.parseTypeLabel(); !ok {
			return nil, false
		}
	}

	if !p.assertAndNext(TOK_EQUAL) {
		return nil, false
	}

	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	return &ast.ConstDecl{
		DeclBase:  ast.NewDeclBase(report.NewSpanOver(startSpan, p.prevSpan())),
		Name:      nameTok.Value,
		TypeLabel: label,
		Value:     value,
	}, true
}

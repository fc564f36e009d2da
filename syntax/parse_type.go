package syntax

import (
	"ctfe/ast"
	"ctfe/report"
)

// type_label = named_type | pointer_type | array_type | struct_type
// named_type = 'IDENT'
func (p *Parser) parseTypeLabel() (ast.TypeLabel, bool) {
	switch p.tok.Kind {
	case TOK_CARET:
		return p.parsePointerType()
	case TOK_LBRACKET:
		return p.parseArrayType()
	case TOK_IDENT:
		if p.gotKeyword("struct") {
			return p.parseStructType()
		}

		named := &ast.NamedTypeLabel{
			TypeLabelBase: ast.NewTypeLabelBase(p.span()),
			Name:          p.tok.Value,
		}

		p.next()
		return named, true
	}

	p.reject()
	return nil, false
}

// pointer_type = '^' type_label
func (p *Parser) parsePointerType() (ast.TypeLabel, bool) {
	startSpan := p.span()
	p.next()

	elem, ok := p.parseTypeLabel()
	if !ok {
		return nil, false
	}

	return &ast.PointerTypeLabel{
		TypeLabelBase: ast.NewTypeLabelBase(report.NewSpanOver(startSpan, elem.Span())),
		Elem:          elem,
	}, true
}

// array_type = '[' expr ']' type_label
func (p *Parser) parseArrayType() (ast.TypeLabel, bool) {
	startSpan := p.span()
	p.next()

	length, ok := p.parseExpr()
	if !ok || !p.assertAndNext(TOK_RBRACKET) {
		return nil, false
	}

	elem, ok := p.parseTypeLabel()
	if !ok {
		return nil, false
	}

	return &ast.ArrayTypeLabel{
		TypeLabelBase: ast.NewTypeLabelBase(report.NewSpanOver(startSpan, elem.Span())),
		Len:           length,
		Elem:          elem,
	}, true
}

// struct_type = 'struct' '{' [field {(',' | ';') field} [',' | ';']] '}'
// field = 'IDENT' ':' type_label
func (p *Parser) parseStructType() (ast.TypeLabel, bool) {
	startSpan := p.span()
	p.next()

	if !p.assertAndNext(TOK_LBRACE) {
		return nil, false
	}

	var fields []*ast.FieldLabel
	for !p.got(TOK_RBRACE) {
		if !p.assert(TOK_IDENT) {
			return nil, false
		}

		field := &ast.FieldLabel{Name: p.tok.Value, Span: p.span()}
		p.next()

		if !p.assertAndNext(TOK_COLON) {
			return nil, false
		}

		label, ok := p.parseTypeLabel()
		if !ok {
			return nil, false
		}

		field.Type = label
		fields = append(fields, field)

		if p.got(TOK_COMMA) || p.got(TOK_SEMI) {
			p.next()
		} else {
			break
		}
	}

	if !p.assertAndNext(TOK_RBRACE) {
		return nil, false
	}

	return &ast.StructTypeLabel{
		TypeLabelBase: ast.NewTypeLabelBase(report.NewSpanOver(startSpan, p.prevSpan())),
		Fields:        fields,
	}, true
}

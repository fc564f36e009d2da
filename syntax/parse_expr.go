package syntax

import (
	"ctfe/ast"
	"ctfe/report"
)

// expr = or_expr
func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinOpExpr(len(precTable))
}

// -----------------------------------------------------------------------------

// or_expr = and_expr {'||' and_expr}
// and_expr = comp_expr {'&&' comp_expr}
// comp_expr = add_expr {('==' | '!=' | '<' | '>' | '<=' | '>=') add_expr}
// add_expr = mul_expr {('+' | '-' | '|' | '~') mul_expr}
// mul_expr = unary_expr {('*' | '/' | '%' | '<<' | '>>' | '&') unary_expr}
func (p *Parser) parseBinOpExpr(maxPrec int) (ast.Expr, bool) {
	lhs, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	for {
		op, width, isOp := p.peekBinaryOp()
		if !isOp {
			break
		}

		// only operators binding tighter than our caller's are consumed here:
		// this makes all binary operators left associative
		prec := precOf(op)
		if prec >= maxPrec {
			break
		}

		opSpan := report.NewSpanOver(p.span(), p.spanAt(p.ndx+width-1))
		for i := 0; i < width; i++ {
			p.next()
		}

		rhs, ok := p.parseBinOpExpr(prec)
		if !ok {
			return nil, false
		}

		lhs = &ast.BinaryOp{
			ExprBase: ast.NewExprBase(report.NewSpanOver(lhs.Span(), rhs.Span())),
			Op:       ast.Oper{Kind: op, Span: opSpan},
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs, true
}

// precTable is the operator precedence table for binary operators. The table is
// ordered highest to lowest precedence.
var precTable = [][]ast.OpKind{
	{ast.OP_MUL, ast.OP_DIV, ast.OP_MOD, ast.OP_SHL, ast.OP_SHR, ast.OP_BWAND},
	{ast.OP_ADD, ast.OP_SUB, ast.OP_BWOR, ast.OP_BWXOR},
	{ast.OP_EQ, ast.OP_NEQ, ast.OP_LT, ast.OP_GT, ast.OP_LTEQ, ast.OP_GTEQ},
	{ast.OP_LAND},
	{ast.OP_LOR},
}

// precOf returns the index of the precedence level of a binary operator.
func precOf(op ast.OpKind) int {
	for prec, level := range precTable {
		for _, levelOp := range level {
			if levelOp == op {
				return prec
			}
		}
	}

	return len(precTable)
}

// peekBinaryOp returns the binary operator starting at the current token and
// the number of tokens it spans.
func (p *Parser) peekBinaryOp() (ast.OpKind, int, bool) {
	joined := p.joined()

	switch p.tok.Kind {
	case TOK_STAR:
		return ast.OP_MUL, 1, true
	case TOK_SLASH:
		return ast.OP_DIV, 1, true
	case TOK_PERCENT:
		return ast.OP_MOD, 1, true
	case TOK_PLUS:
		return ast.OP_ADD, 1, true
	case TOK_MINUS:
		return ast.OP_SUB, 1, true
	case TOK_TILDE:
		return ast.OP_BWXOR, 1, true
	case TOK_AMP:
		if joined == TOK_AMP {
			return ast.OP_LAND, 2, true
		}

		return ast.OP_BWAND, 1, true
	case TOK_BAR:
		if joined == TOK_BAR {
			return ast.OP_LOR, 2, true
		}

		return ast.OP_BWOR, 1, true
	case TOK_LANGLE:
		switch joined {
		case TOK_LANGLE:
			return ast.OP_SHL, 2, true
		case TOK_EQUAL:
			return ast.OP_LTEQ, 2, true
		}

		return ast.OP_LT, 1, true
	case TOK_RANGLE:
		switch joined {
		case TOK_RANGLE:
			return ast.OP_SHR, 2, true
		case TOK_EQUAL:
			return ast.OP_GTEQ, 2, true
		}

		return ast.OP_GT, 1, true
	case TOK_EQUAL:
		if joined == TOK_EQUAL {
			return ast.OP_EQ, 2, true
		}
	case TOK_EXCLAIM:
		if joined == TOK_EQUAL {
			return ast.OP_NEQ, 2, true
		}
	}

	return 0, 0, false
}

// -----------------------------------------------------------------------------

// unaryOps maps the tokens of prefix operators to their operator kinds.
var unaryOps = map[TokenKind]ast.OpKind{
	TOK_MINUS:   ast.OP_NEG,
	TOK_PLUS:    ast.OP_POS,
	TOK_TILDE:   ast.OP_COMPL,
	TOK_EXCLAIM: ast.OP_NOT,
}

// unary_expr = ['-' | '+' | '~' | '!'] unary_expr | atom
func (p *Parser) parseUnaryExpr() (ast.Expr, bool) {
	if op, ok := unaryOps[p.tok.Kind]; ok {
		opSpan := p.span()
		p.next()

		operand, ok := p.parseUnaryExpr()
		if !ok {
			return nil, false
		}

		return &ast.UnaryOp{
			ExprBase: ast.NewExprBase(report.NewSpanOver(opSpan, operand.Span())),
			Op:       ast.Oper{Kind: op, Span: opSpan},
			Operand:  operand,
		}, true
	}

	return p.parseAtom()
}

// atom = 'INTLIT' | 'FLOATLIT' | 'CHARLIT' | 'IDENT' | layout_expr
//   | '(' expr ')'
func (p *Parser) parseAtom() (ast.Expr, bool) {
	startTok, startSpan := p.tok, p.span()

	switch p.tok.Kind {
	case TOK_INTLIT:
		p.next()
		return &ast.IntLit{ExprBase: ast.NewExprBase(startSpan), Value: startTok.Value}, true
	case TOK_FLOATLIT:
		p.next()
		return &ast.FloatLit{ExprBase: ast.NewExprBase(startSpan), Value: startTok.Value}, true
	case TOK_CHARLIT:
		p.next()
		return &ast.CharLit{ExprBase: ast.NewExprBase(startSpan), Value: startTok.Value}, true
	case TOK_IDENT:
		if p.gotKeyword("sizeof") || p.gotKeyword("alignof") {
			return p.parseLayoutExpr()
		}

		p.next()
		return &ast.Ident{ExprBase: ast.NewExprBase(startSpan), Name: startTok.Value}, true
	case TOK_LPAREN:
		p.next()

		expr, ok := p.parseExpr()
		if !ok || !p.assertAndNext(TOK_RPAREN) {
			return nil, false
		}

		return expr, true
	case TOK_STRLIT:
		p.rejectWithMsg("string literals may only be used as assertion messages")
		return nil, false
	}

	p.reject()
	return nil, false
}

// layout_expr = ('sizeof' | 'alignof') '(' type_label ')'
func (p *Parser) parseLayoutExpr() (ast.Expr, bool) {
	isSizeOf, startSpan := p.tok.Value == "sizeof", p.span()
	p.next()

	if !p.assertAndNext(TOK_LPAREN) {
		return nil, false
	}

	label, ok := p.parseTypeLabel()
	if !ok || !p.assertAndNext(TOK_RPAREN) {
		return nil, false
	}

	base := ast.NewExprBase(report.NewSpanOver(startSpan, p.prevSpan()))
	if isSizeOf {
		return &ast.SizeOf{ExprBase: base, TypeLabel: label}, true
	}

	return &ast.AlignOf{ExprBase: base, TypeLabel: label}, true
}

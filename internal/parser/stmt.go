package parser

import (
	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	prog.Body = p.parseStatements()
	for !p.atAny(token.EOF, token.DataSection) {
		// лишний терминатор на верхнем уровне: end, }, ) ...
		p.unexpected("at top level")
		p.advance()
		more := p.parseStatements()
		prog.Body.Stmts = append(prog.Body.Stmts, more.Stmts...)
	}
	if p.at(token.DataSection) {
		tok := p.advance()
		prog.Data = tok.Text
		prog.DataLine = tok.Line
	}
	prog.Pos = ast.Pos{Line: 1, EndLine: p.last.EndLine}
	return prog
}

// isBodyTerminator - токены, которые закрывают последовательность инструкций.
func isBodyTerminator(k token.Kind) bool {
	switch k {
	case token.KwEnd, token.KwElse, token.KwElsif, token.KwWhen, token.KwIn,
		token.KwRescue, token.KwEnsure, token.RBrace, token.RParen, token.RBracket,
		token.EOF, token.DataSection:
		return true
	}
	return false
}

// parseStatements читает инструкции до терминатора (сам терминатор не съедается).
func (p *Parser) parseStatements() *ast.Body {
	body := &ast.Body{}
	for {
		for p.atAny(token.Newline, token.Semicolon) {
			p.advance()
		}
		if isBodyTerminator(p.peek().Kind) {
			break
		}
		before := p.peek().Span
		stmt := p.parseStatement()
		if stmt != nil {
			body.Stmts = append(body.Stmts, stmt)
		}
		if p.atAny(token.Newline, token.Semicolon) || isBodyTerminator(p.peek().Kind) {
			continue
		}
		p.unexpected("after statement")
		p.resyncStatement()
		if p.peek().Span == before {
			p.advance()
		}
	}
	if len(body.Stmts) > 0 {
		body.Line = body.Stmts[0].Lines().Line
		body.EndLine = body.Stmts[len(body.Stmts)-1].Lines().EndLine
	}
	return body
}

// parseStatement: выражение с модификаторами if/unless/while/until/rescue.
func (p *Parser) parseStatement() ast.Node {
	line := p.peek().Line
	var n ast.Node
	if p.at(token.Star) {
		n = p.parseMultiAssign(line, nil)
	} else {
		n = p.parseExprStmt()
		if p.at(token.Comma) && n != nil && isAssignable(n) {
			n = p.parseMultiAssign(line, n)
		} else if as, ok := n.(*ast.Assign); ok && as.Op == "=" && p.at(token.Comma) {
			// x = 1, 2
			as.Value = p.parseValueList(as.Value)
			as.Pos = p.pos(as.Line)
		}
	}
	if n == nil {
		return nil
	}
	for p.atAny(token.KwIf, token.KwUnless, token.KwWhile, token.KwUntil, token.KwRescue) {
		kw := p.advance()
		var cond ast.Node
		if kw.Kind == token.KwRescue {
			cond = p.parseExpr()
		} else {
			cond = p.parseExprStmt()
		}
		if cond == nil {
			return nil
		}
		// x = foo rescue nil - rescue относится к правой части
		if as, ok := n.(*ast.Assign); ok && kw.Kind == token.KwRescue {
			as.Value = &ast.Modifier{Pos: p.pos(as.Value.Lines().Line), Kw: kw.Text, Body: as.Value, Cond: cond}
			as.Pos = p.pos(as.Line)
			continue
		}
		n = &ast.Modifier{Pos: p.pos(line), Kw: kw.Text, Body: n, Cond: cond}
	}
	return n
}

// parseExprStmt: not/and/or - самые слабые операторы внутри инструкции.
func (p *Parser) parseExprStmt() ast.Node {
	line := p.peek().Line
	left := p.parseNotExpr()
	for left != nil && p.atAny(token.KwAnd, token.KwOr) {
		op := p.advance()
		right := p.parseNotExpr()
		if right == nil {
			return nil
		}
		left = &ast.Binary{Pos: p.pos(line), Op: op.Text, Left: left, Right: right, OpLine: op.Line}
	}
	return left
}

func (p *Parser) parseNotExpr() ast.Node {
	if !p.at(token.KwNot) {
		return p.parseExpr()
	}
	kw := p.advance()
	operand := p.parseNotExpr()
	if operand == nil {
		return nil
	}
	return &ast.Unary{Pos: p.pos(kw.Line), Op: "not", Operand: operand}
}

// parseMultiAssign: a, *b, c.d = value. first - уже разобранная первая цель.
func (p *Parser) parseMultiAssign(line int, first ast.Node) ast.Node {
	var targets []ast.Node
	if first == nil {
		first = p.parseMlhsItem()
		if first == nil {
			return nil
		}
	} else {
		p.declareTarget(first)
	}
	targets = append(targets, first)
	for p.eat(token.Comma) {
		if p.at(token.Assign) {
			break // a, = list
		}
		t := p.parseMlhsItem()
		if t == nil {
			return nil
		}
		targets = append(targets, t)
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in multiple assignment"); !ok {
		return nil
	}
	value := p.parseArg()
	if value == nil {
		return nil
	}
	if p.at(token.Comma) || isSplat(value) {
		value = p.parseValueList(value)
	}
	return &ast.MultiAssign{Pos: p.pos(line), Targets: targets, Value: value}
}

func (p *Parser) parseMlhsItem() ast.Node {
	if p.at(token.Star) {
		star := p.advance()
		var target ast.Node
		if !p.atAny(token.Comma, token.Assign, token.KwIn, token.Pipe, token.RParen) {
			target = p.parsePostfix()
			if target == nil {
				return nil
			}
			p.declareTarget(target)
		}
		return &ast.Splat{Pos: p.pos(star.Line), Op: "*", Value: target}
	}
	t := p.parsePostfix()
	if t == nil {
		return nil
	}
	if !isAssignable(t) {
		p.report(diag.SynBadAssignTarget, diag.SevError, p.lastSpan, "cannot assign to this expression")
		return nil
	}
	p.declareTarget(t)
	return t
}

// parseValueList собирает правую часть `1, *b, 3` в массив без скобок.
func (p *Parser) parseValueList(first ast.Node) ast.Node {
	line := first.Lines().Line
	elems := []ast.Node{first}
	for p.eat(token.Comma) {
		v := p.parseArg()
		if v == nil {
			return first
		}
		elems = append(elems, v)
	}
	return &ast.ArrayLit{Pos: p.pos(line), Elems: elems}
}

func isSplat(n ast.Node) bool {
	s, ok := n.(*ast.Splat)
	return ok && s.Op == "*"
}

func isAssignable(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Ident:
		return true
	case *ast.Index, *ast.Colon2:
		return true
	case *ast.Splat:
		return n.Op == "*"
	case *ast.Call:
		// атрибут: a.b = 1
		return n.Recv != nil && !n.Paren && len(n.Args) == 0 && n.Block == nil
	}
	return false
}

func (p *Parser) declareTarget(n ast.Node) {
	if id, ok := n.(*ast.Ident); ok && isLocalName(id.Name) {
		p.scope.declare(id.Name)
	}
}

// isLocalName: foo, _foo - но не @foo, $foo, Foo.
func isLocalName(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c == '_' || (c >= 'a' && c <= 'z') || c >= 0x80
}

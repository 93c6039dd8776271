package parser

import (
	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

func (p *Parser) expectEnd(what string) bool {
	_, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close "+quote(what))
	return ok
}

// parseIf разбирает if/unless/elsif; kw уже съеден. `end` съедает самая
// внутренняя ветка elsif.
func (p *Parser) parseIf(kw token.Token) ast.Node {
	n := &ast.If{Kw: kw.Text}
	n.Cond = p.parseExprStmt()
	if n.Cond == nil {
		return nil
	}
	p.eat(token.KwThen)
	n.Then = p.parseStatements()
	switch {
	case kw.Kind != token.KwUnless && p.at(token.KwElsif):
		e := p.advance()
		n.ElseLine = e.Line
		sub := p.parseIf(e)
		if sub == nil {
			return nil
		}
		n.Else = sub
		n.Pos = p.pos(kw.Line)
		return n
	case p.at(token.KwElse):
		e := p.advance()
		n.ElseLine = e.Line
		n.Else = p.parseStatements()
	}
	what := kw.Text
	if kw.Kind == token.KwElsif {
		what = "if"
	}
	if !p.expectEnd(what) {
		return nil
	}
	n.Pos = p.pos(kw.Line)
	return n
}

// parseLoopCond: условие while/until/for, где `do` относится к циклу.
func (p *Parser) parseLoopCond() ast.Node {
	p.noDo++
	defer func() { p.noDo-- }()
	return p.parseExprStmt()
}

func (p *Parser) parseWhile() ast.Node {
	kw := p.advance()
	cond := p.parseLoopCond()
	if cond == nil {
		return nil
	}
	p.eat(token.KwDo)
	body := p.parseStatements()
	if !p.expectEnd(kw.Text) {
		return nil
	}
	return &ast.While{Pos: p.pos(kw.Line), Kw: kw.Text, Cond: cond, Body: body}
}

func (p *Parser) parseFor() ast.Node {
	kw := p.advance()
	var vars []ast.Node
	for {
		v := p.parseMlhsItem()
		if v == nil {
			return nil
		}
		vars = append(vars, v)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after for variables"); !ok {
		return nil
	}
	iter := p.parseLoopCond()
	if iter == nil {
		return nil
	}
	p.eat(token.KwDo)
	body := p.parseStatements()
	if !p.expectEnd("for") {
		return nil
	}
	return &ast.For{Pos: p.pos(kw.Line), Vars: vars, Iter: iter, Body: body}
}

func (p *Parser) skipTerms() {
	for p.atAny(token.Newline, token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseCase() ast.Node {
	kw := p.advance()
	n := &ast.Case{}
	if !p.atAny(token.Newline, token.Semicolon) {
		n.Subject = p.parseExprStmt()
		if n.Subject == nil {
			return nil
		}
	}
	p.skipTerms()
	if p.at(token.KwIn) {
		p.err(diag.SynUnsupported, "pattern matching (case/in) is not supported")
		return nil
	}
	for p.at(token.KwWhen) {
		w := p.advance()
		when := &ast.When{}
		for {
			c := p.parseArg()
			if c == nil {
				return nil
			}
			when.Conds = append(when.Conds, c)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.eat(token.KwThen)
		when.Body = p.parseStatements()
		when.Pos = p.pos(w.Line)
		n.Whens = append(n.Whens, when)
	}
	if len(n.Whens) == 0 {
		p.err(diag.SynUnexpectedToken, "expected 'when' after 'case'")
		return nil
	}
	if p.at(token.KwElse) {
		e := p.advance()
		n.ElseLine = e.Line
		n.Else = p.parseStatements()
	}
	if !p.expectEnd("case") {
		return nil
	}
	n.Pos = p.pos(kw.Line)
	return n
}

// parseBodyStmt: тело с rescue/else/ensure (def, class, do-блок, begin).
func (p *Parser) parseBodyStmt(line int) *ast.Begin {
	b := &ast.Begin{}
	b.Body = p.parseStatements()
	for p.at(token.KwRescue) {
		r := p.parseRescue()
		if r == nil {
			return nil
		}
		b.Rescues = append(b.Rescues, r)
	}
	if p.at(token.KwElse) {
		e := p.advance()
		b.ElseLine = e.Line
		b.Else = p.parseStatements()
	}
	if p.at(token.KwEnsure) {
		e := p.advance()
		b.EnsureLine = e.Line
		b.Ensure = p.parseStatements()
	}
	b.Pos = p.pos(line)
	return b
}

func (p *Parser) parseRescue() *ast.Rescue {
	kw := p.advance()
	r := &ast.Rescue{}
	for !p.atAny(token.FatArrow, token.KwThen, token.Newline, token.Semicolon) && !isBodyTerminator(p.peek().Kind) {
		var c ast.Node
		if p.at(token.Star) {
			c = p.parseArg()
		} else {
			c = p.parseTernary()
		}
		if c == nil {
			return nil
		}
		r.Classes = append(r.Classes, c)
		if !p.eat(token.Comma) {
			break
		}
	}
	if p.eat(token.FatArrow) {
		v := p.parsePostfix()
		if v == nil {
			return nil
		}
		if !isAssignable(v) {
			p.report(diag.SynBadAssignTarget, diag.SevError, p.lastSpan, "cannot bind exception to this expression")
			return nil
		}
		p.declareTarget(v)
		r.Var = v
	}
	p.eat(token.KwThen)
	r.Body = p.parseStatements()
	r.Pos = p.pos(kw.Line)
	return r
}

func (p *Parser) parseBegin() ast.Node {
	kw := p.advance()
	b := p.parseBodyStmt(kw.Line)
	if b == nil || !p.expectEnd("begin") {
		return nil
	}
	b.Explicit = true
	b.Pos = p.pos(kw.Line)
	return b
}

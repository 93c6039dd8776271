package parser

import (
	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

// operatorMethods - операторы, которые можно определить через def.
var operatorMethods = map[token.Kind]bool{
	token.Plus: true, token.Minus: true, token.Star: true, token.Pow: true, token.Slash: true,
	token.Percent: true, token.EqEq: true, token.EqEqEq: true, token.NotEq: true, token.Match: true,
	token.NotMatch: true, token.Lt: true, token.LtEq: true, token.Gt: true, token.GtEq: true,
	token.Cmp: true, token.Bang: true, token.Amp: true, token.Pipe: true, token.Caret: true,
	token.Tilde: true, token.Shl: true, token.Shr: true,
}

func (p *Parser) parseDef() ast.Node {
	kw := p.advance()
	def := &ast.Def{}
	nameTok := p.advance()
	if p.at(token.Dot) && nameTok.Is(token.KwSelf, token.Ident, token.Const) {
		def.Singleton = &ast.Ident{Pos: ast.Pos{Line: nameTok.Line, EndLine: nameTok.Line}, Name: nameTok.Text}
		p.advance()
		nameTok = p.advance()
	}
	name, ok := p.defName(nameTok)
	if !ok {
		return nil
	}
	def.Name = name

	defer p.push(true)()
	switch {
	case p.at(token.LParen):
		def.Params = p.parseParamList(token.LParen)
		if def.Params == nil {
			return nil
		}
	case p.at(token.Assign):
		p.err(diag.SynUnsupported, "endless method definitions are not supported")
		return nil
	case !p.atAny(token.Newline, token.Semicolon):
		def.Params = p.parseBareParams()
		if def.Params == nil {
			return nil
		}
	}
	def.Body = p.parseBodyStmt(kw.Line)
	if def.Body == nil || !p.expectEnd("def") {
		return nil
	}
	def.Pos = p.pos(kw.Line)
	return def
}

// defName: foo, foo?, foo=, [], []=, ==, <=> ...
func (p *Parser) defName(tok token.Token) (string, bool) {
	switch {
	case tok.Is(token.Ident, token.Const) || tok.Kind.IsKeyword():
		name := tok.Text
		if next := p.peek(); next.Kind == token.Assign && !next.SpaceBefore {
			p.advance()
			name += "="
		}
		return name, true
	case tok.Kind == token.LBracket:
		if _, ok := p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']' in method name"); !ok {
			return "", false
		}
		if next := p.peek(); next.Kind == token.Assign && !next.SpaceBefore {
			p.advance()
			return "[]=", true
		}
		return "[]", true
	case operatorMethods[tok.Kind]:
		return tok.Text, true
	}
	p.report(diag.SynExpectIdentifier, diag.SevError, tok.Span, "expected method name after 'def'")
	return "", false
}

func (p *Parser) parseClass() ast.Node {
	kw := p.advance()
	if p.eat(token.Shl) {
		target := p.parseExpr()
		if target == nil {
			return nil
		}
		defer p.push(true)()
		body := p.parseBodyStmt(kw.Line)
		if body == nil || !p.expectEnd("class") {
			return nil
		}
		return &ast.SClass{Pos: p.pos(kw.Line), Target: target, Body: body}
	}
	path := p.parseCPath()
	if path == nil {
		return nil
	}
	n := &ast.Class{Path: path}
	if p.eat(token.Lt) {
		n.Super = p.parseExpr()
		if n.Super == nil {
			return nil
		}
	}
	defer p.push(true)()
	n.Body = p.parseBodyStmt(kw.Line)
	if n.Body == nil || !p.expectEnd("class") {
		return nil
	}
	n.Pos = p.pos(kw.Line)
	return n
}

func (p *Parser) parseModule() ast.Node {
	kw := p.advance()
	path := p.parseCPath()
	if path == nil {
		return nil
	}
	defer p.push(true)()
	body := p.parseBodyStmt(kw.Line)
	if body == nil || !p.expectEnd("module") {
		return nil
	}
	return &ast.Module{Pos: p.pos(kw.Line), Path: path, Body: body}
}

// parseCPath: Foo, Foo::Bar, ::Foo.
func (p *Parser) parseCPath() ast.Node {
	line := p.peek().Line
	var n ast.Node
	if p.eat(token.ColonColon) {
		name, ok := p.expect(token.Const, diag.SynExpectIdentifier, "expected constant name")
		if !ok {
			return nil
		}
		n = &ast.Colon2{Pos: p.pos(line), Name: name.Text}
	} else {
		name, ok := p.expect(token.Const, diag.SynExpectIdentifier, "expected constant name")
		if !ok {
			return nil
		}
		n = &ast.Ident{Pos: p.pos(line), Name: name.Text}
	}
	for p.eat(token.ColonColon) {
		name, ok := p.expect(token.Const, diag.SynExpectIdentifier, "expected constant name after '::'")
		if !ok {
			return nil
		}
		n = &ast.Colon2{Pos: p.pos(line), Scope: n, Name: name.Text}
	}
	return n
}

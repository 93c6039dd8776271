package parser

import (
	"strings"

	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

// parseParamList: (...) у def/лямбды/деструктуризации или |...| у блока.
func (p *Parser) parseParamList(open token.Kind) *ast.Params {
	closeKind, closeText := token.RParen, ")"
	if open == token.Pipe {
		closeKind, closeText = token.Pipe, "|"
	}
	restore := p.nested()
	defer restore()
	p.noPipe = open == token.Pipe

	start := p.advance()
	ps := &ast.Params{}
	p.skipNewlines()
	for !p.atAny(closeKind, token.EOF) {
		prm := p.parseParam(closeKind)
		if prm == nil {
			return nil
		}
		ps.List = append(ps.List, prm)
		p.skipNewlines()
		if !p.eat(token.Comma) {
			break
		}
		p.skipNewlines()
	}
	if open == token.Pipe && p.at(token.Semicolon) {
		p.err(diag.SynUnsupported, "block-local variables are not supported")
		return nil
	}
	if _, ok := p.expect(closeKind, diag.SynUnexpectedToken, "expected "+quote(closeText)+" to close parameter list"); !ok {
		return nil
	}
	ps.Pos = p.pos(start.Line)
	return ps
}

// parseBareParams: `def foo a, b` и `-> x, y { }` - до stop или конца строки.
func (p *Parser) parseBareParams(stop ...token.Kind) *ast.Params {
	line := p.peek().Line
	ps := &ast.Params{}
	for {
		prm := p.parseParam(stop...)
		if prm == nil {
			return nil
		}
		ps.List = append(ps.List, prm)
		if !p.eat(token.Comma) {
			break
		}
	}
	ps.Pos = p.pos(line)
	return ps
}

func (p *Parser) parseParam(stop ...token.Kind) *ast.Param {
	tok := p.peek()
	prm := &ast.Param{}
	switch tok.Kind {
	case token.Star:
		p.advance()
		prm.Kind = ast.ParamRest
		prm.Name = p.paramName()
	case token.Pow:
		p.advance()
		prm.Kind = ast.ParamKwRest
		if p.eat(token.KwNil) {
			prm.Kind = ast.ParamNoKw
		} else {
			prm.Name = p.paramName()
		}
	case token.Amp:
		p.advance()
		prm.Kind = ast.ParamBlock
		prm.Name = p.paramName()
	case token.DotDotDot:
		p.advance()
		prm.Kind = ast.ParamForward
	case token.Label:
		p.advance()
		prm.Kind = ast.ParamKey
		prm.Name = tok.Text
		p.scope.declare(strings.TrimSuffix(tok.Text, ":"))
		if !p.atAny(token.Comma, token.Newline, token.Semicolon, token.EOF) && !p.atAny(stop...) {
			prm.Default = p.parseTernary()
			if prm.Default == nil {
				return nil
			}
		}
	case token.Ident:
		p.advance()
		prm.Name = tok.Text
		p.scope.declare(tok.Text)
		if p.eat(token.Assign) {
			prm.Kind = ast.ParamOpt
			prm.Default = p.parseTernary()
			if prm.Default == nil {
				return nil
			}
		}
	case token.LParen:
		prm.Kind = ast.ParamDestructure
		prm.Sub = p.parseParamList(token.LParen)
		if prm.Sub == nil {
			return nil
		}
	default:
		p.unexpected("in parameter list")
		return nil
	}
	prm.Pos = p.pos(tok.Line)
	return prm
}

func (p *Parser) paramName() string {
	if !p.at(token.Ident) {
		return ""
	}
	name := p.advance().Text
	p.scope.declare(name)
	return name
}

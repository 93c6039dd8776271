package parser

import (
	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

var literalKinds = map[token.Kind]ast.LitKind{
	token.Int:     ast.LitInt,
	token.Float:   ast.LitFloat,
	token.String:  ast.LitString,
	token.XString: ast.LitXString,
	token.Symbol:  ast.LitSymbol,
	token.Regexp:  ast.LitRegexp,
	token.Words:   ast.LitWords,
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.peek()
	if kind, ok := literalKinds[tok.Kind]; ok {
		p.advance()
		lit := &ast.Literal{Pos: p.pos(tok.Line), Kind: kind, Text: tok.Text}
		if kind == ast.LitString && p.at(token.String) {
			return p.parseStrConcat(lit)
		}
		return lit
	}

	switch tok.Kind {
	case token.Heredoc:
		p.advance()
		h := tok.Heredoc
		return &ast.Heredoc{
			Pos:     p.pos(tok.Line),
			Opener:  tok.Text,
			Kind:    h.Kind,
			ID:      h.ID,
			Body:    h.Body,
			BodyEnd: h.EndLine,
		}
	case token.KwNil, token.KwTrue, token.KwFalse, token.KwSelf, token.KwRedo, token.KwRetry:
		p.advance()
		return &ast.Literal{Pos: p.pos(tok.Line), Kind: ast.LitKeyword, Text: tok.Text}
	case token.Ident:
		return p.parseIdentifier()
	case token.Const:
		p.advance()
		if next := p.peek(); next.Kind == token.LParen && !next.SpaceBefore {
			call := &ast.Call{Name: tok.Text}
			if !p.parseCallArgs(call) {
				return nil
			}
			call.Pos = p.pos(tok.Line)
			return call
		}
		return &ast.Ident{Pos: p.pos(tok.Line), Name: tok.Text}
	case token.IVar, token.CVar, token.GVar:
		p.advance()
		return &ast.Ident{Pos: p.pos(tok.Line), Name: tok.Text}
	case token.ColonColon:
		p.advance()
		name, ok := p.expect(token.Const, diag.SynExpectIdentifier, "expected constant after '::'")
		if !ok {
			return nil
		}
		return &ast.Colon2{Pos: p.pos(tok.Line), Name: name.Text}
	case token.LBracket:
		return p.parseArray()
	case token.LBrace:
		return p.parseHash()
	case token.LParen:
		return p.parseParen()
	case token.Lambda:
		return p.parseLambda()
	case token.KwIf, token.KwUnless:
		return p.parseIf(p.advance())
	case token.KwWhile, token.KwUntil:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwCase:
		return p.parseCase()
	case token.KwBegin:
		return p.parseBegin()
	case token.KwDef:
		return p.parseDef()
	case token.KwClass:
		return p.parseClass()
	case token.KwModule:
		return p.parseModule()
	case token.KwReturn, token.KwBreak, token.KwNext:
		return p.parseJump()
	case token.KwYield, token.KwSuper, token.KwDefined, token.KwUndef:
		p.advance()
		call := &ast.Call{Name: tok.Text}
		if tok.Kind == token.KwUndef {
			args, ok := p.parseCommandArgs()
			if !ok {
				return nil
			}
			call.Args = args
		} else if !p.parseCallArgs(call) {
			return nil
		}
		call.Pos = p.pos(tok.Line)
		return call
	case token.KwAlias:
		return p.parseAlias()
	case token.Label:
		p.err(diag.SynUnexpectedToken, "unexpected label "+quote(tok.Text)+" outside of arguments")
		p.advance()
		return nil
	}

	p.unexpected("in expression")
	if !isBodyTerminator(tok.Kind) && !tok.Is(token.Newline, token.Semicolon) {
		p.advance()
	}
	return nil
}

// parseIdentifier: локальная переменная, вызов со скобками или команда.
func (p *Parser) parseIdentifier() ast.Node {
	tok := p.advance()
	if next := p.peek(); next.Kind == token.LParen && !next.SpaceBefore {
		call := &ast.Call{Name: tok.Text}
		if !p.parseCallArgs(call) {
			return nil
		}
		call.Pos = p.pos(tok.Line)
		return call
	}
	if p.scope.isLocal(tok.Text) || !p.commandArgAhead() {
		return &ast.Ident{Pos: p.pos(tok.Line), Name: tok.Text}
	}
	args, ok := p.parseCommandArgs()
	if !ok {
		return nil
	}
	return &ast.Call{Pos: p.pos(tok.Line), Name: tok.Text, Args: args}
}

// parseStrConcat: "a" "b" - соседние литералы, возможно через `\` на разных строках.
func (p *Parser) parseStrConcat(first *ast.Literal) ast.Node {
	parts := []ast.Node{first}
	for p.at(token.String) {
		tok := p.advance()
		parts = append(parts, &ast.Literal{Pos: p.pos(tok.Line), Kind: ast.LitString, Text: tok.Text})
	}
	return &ast.StrConcat{Pos: p.pos(first.Line), Parts: parts}
}

func (p *Parser) parseArray() ast.Node {
	defer p.nested()()
	open := p.advance()
	elems, ok := p.parseArgList(token.RBracket)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array"); !ok {
		return nil
	}
	return &ast.ArrayLit{Pos: p.pos(open.Line), Elems: elems, Bracketed: true}
}

func (p *Parser) parseHash() ast.Node {
	defer p.nested()()
	open := p.advance()
	pairs, ok := p.parseArgList(token.RBrace)
	if !ok {
		return nil
	}
	for _, e := range pairs {
		switch e := e.(type) {
		case *ast.Pair:
			continue
		case *ast.Splat:
			if e.Op == "**" {
				continue
			}
		}
		p.report(diag.SynUnexpectedToken, diag.SevError, p.lastSpan, "expected 'key: value' or 'key => value' in hash literal")
		return nil
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close hash"); !ok {
		return nil
	}
	return &ast.HashLit{Pos: p.pos(open.Line), Pairs: pairs}
}

func (p *Parser) parseParen() ast.Node {
	defer p.nested()()
	open := p.advance()
	body := p.parseStatements()
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return nil
	}
	return &ast.Paren{Pos: p.pos(open.Line), Stmts: body.Stmts}
}

func (p *Parser) parseJump() ast.Node {
	kw := p.advance()
	j := &ast.Jump{Kw: kw.Text}
	if startsArg(p.peek()) {
		args, ok := p.parseCommandArgs()
		if !ok {
			return nil
		}
		j.Args = args
	}
	j.Pos = p.pos(kw.Line)
	return j
}

// parseAlias: alias new old (идентификаторы, символы или $глобальные).
func (p *Parser) parseAlias() ast.Node {
	kw := p.advance()
	var names [2]ast.Node
	for i := range names {
		tok := p.peek()
		switch tok.Kind {
		case token.Ident, token.Const, token.Symbol, token.GVar:
			p.advance()
			names[i] = &ast.Ident{Pos: p.pos(tok.Line), Name: tok.Text}
		default:
			if !tok.Kind.IsKeyword() {
				p.err(diag.SynExpectIdentifier, "expected method name in alias")
				return nil
			}
			p.advance()
			names[i] = &ast.Ident{Pos: p.pos(tok.Line), Name: tok.Text}
		}
	}
	return &ast.Alias{Pos: p.pos(kw.Line), New: names[0], Old: names[1]}
}

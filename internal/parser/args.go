package parser

import (
	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

// startsArg - может ли токен начинать аргумент команды или return.
// Модификаторы if/unless/while/until и '{' сюда не входят.
func startsArg(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.Const, token.IVar, token.CVar, token.GVar, token.Label,
		token.Int, token.Float, token.String, token.XString, token.Symbol, token.Regexp,
		token.Words, token.Heredoc,
		token.KwNil, token.KwTrue, token.KwFalse, token.KwSelf, token.KwDefined, token.KwSuper,
		token.KwYield, token.KwDef, token.KwCase, token.KwBegin,
		token.LParen, token.LBracket, token.Lambda, token.ColonColon,
		token.Minus, token.Plus, token.Bang, token.Tilde, token.Star, token.Pow, token.Amp:
		return true
	}
	return false
}

// commandArgAhead решает, начинается ли после имени метода командная форма:
// `foo -1` и `foo *args` - аргументы, `foo - 1` и `foo * 2` - операторы.
func (p *Parser) commandArgAhead() bool {
	next := p.peek()
	if !next.SpaceBefore {
		return false
	}
	switch next.Kind {
	case token.Minus, token.Plus, token.Star, token.Pow, token.Amp, token.ColonColon, token.Bang, token.Tilde:
		return !next.SpaceAfter
	}
	return startsArg(next)
}

func (p *Parser) parseParenArgs() ([]ast.Node, bool) {
	defer p.nested()()
	p.advance()
	args, ok := p.parseArgList(token.RParen)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list"); !ok {
		return nil, false
	}
	return args, true
}

// parseArgList читает аргументы через запятую до close (не съедая его).
// Переводы строк внутри скобок незначимы; висячая запятая допустима.
func (p *Parser) parseArgList(close token.Kind) ([]ast.Node, bool) {
	var args []ast.Node
	p.skipNewlines()
	for !p.atAny(close, token.EOF) {
		a := p.parseArg()
		if a == nil {
			return nil, false
		}
		args = append(args, a)
		p.skipNewlines()
		if !p.eat(token.Comma) {
			break
		}
		p.skipNewlines()
	}
	return args, true
}

func (p *Parser) parseCommandArgs() ([]ast.Node, bool) {
	p.cmdArgs++
	defer func() { p.cmdArgs-- }()
	var args []ast.Node
	for {
		a := p.parseArg()
		if a == nil {
			return nil, false
		}
		args = append(args, a)
		if !p.eat(token.Comma) {
			return args, true
		}
	}
}

// parseArg: позиционный аргумент, *splat, **opts, &blk, key: v или k => v.
func (p *Parser) parseArg() ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.Star, token.Pow, token.Amp:
		p.advance()
		s := &ast.Splat{Op: tok.Text}
		if startsArg(p.peek()) && !p.peek().SpaceBefore {
			s.Value = p.parseTernary()
			if s.Value == nil {
				return nil
			}
		}
		s.Pos = p.pos(tok.Line)
		return s
	case token.Label:
		p.advance()
		pair := &ast.Pair{Label: tok.Text}
		if p.cmdArgs == 0 {
			p.skipNewlines()
		}
		if startsArg(p.peek()) || p.atAny(token.KwIf, token.KwUnless, token.KwWhile, token.KwUntil, token.LBrace, token.KwNot) {
			pair.Value = p.parseExpr()
			if pair.Value == nil {
				return nil
			}
		}
		pair.Pos = p.pos(tok.Line)
		return pair
	}
	v := p.parseExpr()
	if v == nil {
		return nil
	}
	if p.at(token.FatArrow) {
		p.advance()
		val := p.parseExpr()
		if val == nil {
			return nil
		}
		return &ast.Pair{Pos: p.pos(tok.Line), Key: v, Value: val}
	}
	return v
}

// parseBlock: { |x| ... } или do |x| ... end.
func (p *Parser) parseBlock() *ast.Block {
	defer p.nested()()
	defer p.push(false)()
	open := p.advance()
	blk := &ast.Block{Brace: open.Kind == token.LBrace}
	if p.at(token.Pipe) {
		blk.Params = p.parseParamList(token.Pipe)
		if blk.Params == nil {
			return nil
		}
	}
	if blk.Brace {
		body := p.parseStatements()
		if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
			return nil
		}
		blk.Body = &ast.Begin{Pos: body.Pos, Body: body}
	} else {
		blk.Body = p.parseBodyStmt(open.Line)
		if blk.Body == nil {
			return nil
		}
		if _, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'do' block"); !ok {
			return nil
		}
	}
	blk.Pos = p.pos(open.Line)
	return blk
}

// parseLambda: ->(x) { }, -> x { }, -> do end.
func (p *Parser) parseLambda() ast.Node {
	defer p.push(false)()
	arrow := p.advance()
	lam := &ast.Lambda{}
	switch {
	case p.at(token.LParen):
		lam.Params = p.parseParamList(token.LParen)
		if lam.Params == nil {
			return nil
		}
	case p.atAny(token.Ident, token.Star, token.Pow, token.Amp, token.Label):
		lam.Params = p.parseBareParams(token.LBrace, token.KwDo)
		if lam.Params == nil {
			return nil
		}
	}
	switch {
	case p.at(token.LBrace):
		defer p.nested()()
		p.advance()
		lam.Brace = true
		body := p.parseStatements()
		if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close lambda"); !ok {
			return nil
		}
		lam.Body = &ast.Begin{Pos: body.Pos, Body: body}
	case p.at(token.KwDo):
		defer p.nested()()
		do := p.advance()
		lam.Body = p.parseBodyStmt(do.Line)
		if lam.Body == nil {
			return nil
		}
		if _, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close lambda"); !ok {
			return nil
		}
	default:
		p.unexpected("after lambda parameters")
		return nil
	}
	lam.Pos = p.pos(arrow.Line)
	return lam
}

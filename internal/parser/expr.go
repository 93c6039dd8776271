package parser

import (
	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

// parseExpr: присваивание (правоассоциативное) поверх тернарного оператора.
func (p *Parser) parseExpr() ast.Node {
	line := p.peek().Line
	left := p.parseTernary()
	if left == nil || !p.atAny(token.Assign, token.OpAssign) {
		return left
	}
	if !isAssignable(left) || isSplat(left) {
		p.report(diag.SynBadAssignTarget, diag.SevError, p.peek().Span, "cannot assign to this expression")
		p.advance()
		return nil
	}
	op := p.advance()
	p.declareTarget(left)
	var value ast.Node
	if p.at(token.Star) {
		value = p.parseArg()
	} else {
		value = p.parseExpr()
	}
	if value == nil {
		return nil
	}
	return &ast.Assign{Pos: p.pos(line), Target: left, Op: op.Text, Value: value}
}

func (p *Parser) parseTernary() ast.Node {
	line := p.peek().Line
	cond := p.parseRange()
	if cond == nil || !p.at(token.Question) {
		return cond
	}
	p.advance()
	then := p.parseTernary()
	if then == nil {
		return nil
	}
	p.skipNewlines()
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"); !ok {
		return nil
	}
	els := p.parseTernary()
	if els == nil {
		return nil
	}
	return &ast.Ternary{Pos: p.pos(line), Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseRange() ast.Node {
	line := p.peek().Line
	var lo ast.Node
	if !p.atAny(token.DotDot, token.DotDotDot) {
		lo = p.parseBinary(precLogicalOr)
		if lo == nil || !p.atAny(token.DotDot, token.DotDotDot) {
			return lo
		}
	}
	op := p.advance()
	var hi ast.Node
	if startsArg(p.peek()) {
		hi = p.parseBinary(precLogicalOr)
		if hi == nil {
			return nil
		}
	}
	return &ast.Range{Pos: p.pos(line), Lo: lo, Hi: hi, Op: op.Text}
}

// parseBinary - precedence climbing по таблице binaryPrec.
func (p *Parser) parseBinary(minPrec int) ast.Node {
	line := p.peek().Line
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		tok := p.peek()
		prec, rightAssoc := binaryPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			return left
		}
		if tok.Kind == token.Pipe && p.noPipe {
			return left
		}
		p.advance()
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right := p.parseBinary(next)
		if right == nil {
			return nil
		}
		left = &ast.Binary{Pos: p.pos(line), Op: tok.Text, Left: left, Right: right, OpLine: tok.Line}
	}
}

func (p *Parser) parseUnary() ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.Bang, token.Tilde, token.Plus:
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.Unary{Pos: p.pos(tok.Line), Op: tok.Text, Operand: operand}
	case token.Minus:
		p.advance()
		if !tok.SpaceAfter && p.atAny(token.Int, token.Float) {
			num := p.advance()
			kind := ast.LitInt
			if num.Kind == token.Float {
				kind = ast.LitFloat
			}
			return p.parsePostfixFrom(&ast.Literal{Pos: p.pos(tok.Line), Kind: kind, Text: "-" + num.Text})
		}
		operand := p.parseBinary(precPow)
		if operand == nil {
			return nil
		}
		return &ast.Unary{Pos: p.pos(tok.Line), Op: "-", Operand: operand}
	case token.KwNot:
		p.advance()
		operand := p.parseExpr()
		if operand == nil {
			return nil
		}
		return &ast.Unary{Pos: p.pos(tok.Line), Op: "not", Operand: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Node {
	n := p.parsePrimary()
	if n == nil {
		return nil
	}
	return p.parsePostfixFrom(n)
}

// parsePostfixFrom: .call, &.call, ::Const, [index], блоки.
func (p *Parser) parsePostfixFrom(n ast.Node) ast.Node {
	for n != nil {
		tok := p.peek()
		switch {
		case tok.Kind == token.Dot || tok.Kind == token.AndDot:
			n = p.parseMethodCall(n)
		case tok.Kind == token.ColonColon && !tok.SpaceBefore:
			n = p.parseColon2(n)
		case tok.Kind == token.LBracket && (!tok.SpaceBefore || p.isVariable(n)):
			n = p.parseIndex(n)
		case tok.Kind == token.LBrace && p.blockCall(n, true) != nil:
			n = p.attachBlock(n, true)
		case tok.Kind == token.KwDo && p.cmdArgs == 0 && p.noDo == 0 && p.blockCall(n, false) != nil:
			n = p.attachBlock(n, false)
		default:
			return n
		}
	}
	return nil
}

// isVariable: x [1] - индекс, если x переменная, иначе вызов с массивом.
func (p *Parser) isVariable(n ast.Node) bool {
	id, ok := n.(*ast.Ident)
	if !ok {
		return false
	}
	return !isLocalName(id.Name) || p.scope.isLocal(id.Name)
}

// blockCall возвращает вызов, к которому можно прицепить блок, или nil.
// Голый идентификатор, не являющийся переменной, превращается в вызов.
func (p *Parser) blockCall(n ast.Node, brace bool) *ast.Call {
	switch n := n.(type) {
	case *ast.Call:
		if n.Block != nil || n.Name == "yield" || n.Name == "defined?" {
			return nil
		}
		if brace && n.Command() {
			return nil
		}
		return n
	case *ast.Ident:
		if isLocalName(n.Name) && !p.scope.isLocal(n.Name) {
			return &ast.Call{Pos: n.Pos, Name: n.Name}
		}
	}
	return nil
}

func (p *Parser) attachBlock(n ast.Node, brace bool) ast.Node {
	call := p.blockCall(n, brace)
	blk := p.parseBlock()
	if blk == nil {
		return nil
	}
	call.Block = blk
	call.Pos = p.pos(call.Line)
	return call
}

func (p *Parser) parseMethodCall(recv ast.Node) ast.Node {
	dot := p.advance()
	name := p.peek()
	call := &ast.Call{Recv: recv, Op: dot.Text, DotLine: dot.Line}
	switch {
	case name.Kind == token.Ident || name.Kind == token.Const || name.Kind.IsKeyword():
		p.advance()
		call.Name = name.Text
	case name.Kind == token.LParen:
		// recv.() - вызов call
	default:
		p.err(diag.SynExpectIdentifier, "expected method name after "+quote(dot.Text))
		return nil
	}
	if !p.parseCallArgs(call) {
		return nil
	}
	call.Pos = p.pos(recv.Lines().Line)
	return call
}

// parseCallArgs разбирает аргументы в скобках или командную форму.
func (p *Parser) parseCallArgs(call *ast.Call) bool {
	next := p.peek()
	switch {
	case next.Kind == token.LParen && !next.SpaceBefore:
		args, ok := p.parseParenArgs()
		if !ok {
			return false
		}
		call.Args, call.Paren = args, true
	case p.commandArgAhead():
		args, ok := p.parseCommandArgs()
		if !ok {
			return false
		}
		call.Args = args
	}
	return true
}

func (p *Parser) parseColon2(scope ast.Node) ast.Node {
	p.advance()
	name := p.peek()
	switch name.Kind {
	case token.Const:
		p.advance()
		if next := p.peek(); next.Kind == token.LParen && !next.SpaceBefore {
			call := &ast.Call{Recv: scope, Op: "::", Name: name.Text, DotLine: name.Line}
			if !p.parseCallArgs(call) {
				return nil
			}
			call.Pos = p.pos(scope.Lines().Line)
			return call
		}
		return &ast.Colon2{Pos: p.pos(scope.Lines().Line), Scope: scope, Name: name.Text}
	case token.Ident:
		p.advance()
		call := &ast.Call{Recv: scope, Op: "::", Name: name.Text, DotLine: name.Line}
		if !p.parseCallArgs(call) {
			return nil
		}
		call.Pos = p.pos(scope.Lines().Line)
		return call
	}
	p.err(diag.SynExpectIdentifier, "expected constant or method name after '::'")
	return nil
}

func (p *Parser) parseIndex(recv ast.Node) ast.Node {
	defer p.nested()()
	p.advance()
	args, ok := p.parseArgList(token.RBracket)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close index"); !ok {
		return nil
	}
	return &ast.Index{Pos: p.pos(recv.Lines().Line), Recv: recv, Args: args}
}

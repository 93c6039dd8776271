package printer

import (
	"rbfmt/internal/ast"
	"rbfmt/internal/format"
)

func (p *printer) printCall(c *ast.Call) {
	ps := p.ps
	if c.Recv == nil {
		p.printCallTail(c)
		return
	}
	p.printExpr(c.Recv)
	if c.Op == "::" || c.DotLine <= c.Recv.Lines().EndLine {
		ps.EmitDirectPart(c.Op)
		p.printCallTail(c)
		return
	}
	// .method на следующей строке: перенос автора сохраняется
	ps.WithAbsorbingIndentBlock(func() {
		ps.EmitNewline()
		ps.OnLine(c.DotLine)
		ps.EmitIndent()
		ps.EmitLeadingDot(c.Op)
		p.printCallTail(c)
	})
}

func (p *printer) printCallTail(c *ast.Call) {
	ps := p.ps
	ps.EmitDirectPart(c.Name)
	switch {
	case c.Paren:
		ps.BreakableOf(format.MethodCallDelims, closeParenLine(c), func() { p.printList(c.Args) })
	case len(c.Args) > 0:
		p.printCommandArgs(c)
	}
	if c.Block != nil {
		p.printBlock(c.Block)
	}
}

// closeParenLine is the line of `)`: the call ends there unless a block
// follows, and the block opens on that line.
func closeParenLine(c *ast.Call) int {
	if c.Block != nil {
		return c.Block.Line
	}
	return c.EndLine
}

// printCommandArgs: `puts a, b`. Broken over several lines the arguments
// get parentheses; so does a command nested in another argument list.
func (p *printer) printCommandArgs(c *ast.Call) {
	ps := p.ps
	if c.Name == "undef" && c.Recv == nil {
		// undef не принимает скобок
		ps.EmitSpace()
		p.printJoined(c.Args)
		return
	}
	d := format.CommandArgsDelims
	if p.nestedCommand() {
		d = format.MethodCallDelims
	}
	ps.BreakableOf(d, 0, func() { p.printList(c.Args) })
}

func (p *printer) nestedCommand() bool {
	if p.ps.StartOfLine() {
		return false
	}
	switch p.ps.CurrentContext() {
	case format.CtxArgsList, format.CtxBinary:
		return true
	}
	return false
}

func (p *printer) printBlock(b *ast.Block) {
	ps := p.ps
	ps.EmitSpace()
	if b.Brace {
		p.printBraceBody(b.Params, b.Body, b.EndLine)
		return
	}
	ps.EmitKeyword("do")
	if b.Params.Len() > 0 {
		ps.EmitSpace()
		p.printBlockParams(b.Params)
	}
	ps.EmitNewline()
	p.printDoBody(b.Body, b.EndLine)
}

func (p *printer) printDoBody(body *ast.Begin, endLine int) {
	p.ps.WithFormattingContext(format.CtxMain, func() { p.printBlockBody(body, endLine) })
}

// printBraceBody: `{ |x| x + 1 }` in one line, one statement per line
// otherwise. Several statements always break.
func (p *printer) printBraceBody(params *ast.Params, body *ast.Begin, closeLine int) {
	ps := p.ps
	var stmts []ast.Node
	if body != nil && !body.Body.Empty() {
		stmts = body.Body.Stmts
	}
	d := format.BraceBlockDelims
	if params.Len() == 0 && len(stmts) == 0 {
		d = emptyBlockDelims
	}
	ps.InlineBreakableOf(d, closeLine, func() {
		if params.Len() > 0 {
			ps.EmitSpace()
			p.printBlockParams(params)
		}
		for i, s := range stmts {
			if i == 0 {
				ps.EmitBreakSpace()
			} else {
				ps.EmitNewline()
			}
			ps.OnLine(s.Lines().Line)
			ps.EmitSoftIndent()
			p.printInline(s)
		}
	})
}

// printBlockParams: `|a, b|`, one parameter per line when the author split
// them or they do not fit.
func (p *printer) printBlockParams(params *ast.Params) {
	p.ps.InlineBreakableOf(format.BlockParamsDelims, params.EndLine, func() { p.printParams(params.List, true) })
}

func (p *printer) printLambda(n *ast.Lambda) {
	ps := p.ps
	ps.EmitDirectPart("->")
	if n.Params.Len() > 0 {
		ps.EmitDelim("(")
		p.printParams(n.Params.List, false)
		ps.EmitDelim(")")
	}
	ps.EmitSpace()
	if n.Brace {
		p.printBraceBody(nil, n.Body, n.EndLine)
		return
	}
	ps.EmitKeyword("do")
	ps.EmitNewline()
	p.printDoBody(n.Body, n.EndLine)
}

// printParams: in a group (def, block) every parameter syncs to its line.
func (p *printer) printParams(list []*ast.Param, grouped bool) {
	ps := p.ps
	for i, prm := range list {
		if i > 0 {
			if grouped {
				ps.EmitListSeparator()
			} else {
				ps.EmitComma()
				ps.EmitSpace()
			}
		}
		if grouped {
			ps.OnLine(prm.Line)
		}
		p.printParam(prm)
	}
}

func (p *printer) printParam(prm *ast.Param) {
	ps := p.ps
	switch prm.Kind {
	case ast.ParamReq:
		ps.EmitDirectPart(prm.Name)
	case ast.ParamOpt:
		ps.EmitDirectPart(prm.Name)
		ps.EmitSpace()
		ps.EmitDirectPart("=")
		ps.EmitSpace()
		p.printArg(prm.Default)
	case ast.ParamRest:
		ps.EmitDirectPart("*" + prm.Name)
	case ast.ParamKey:
		ps.EmitDirectPart(prm.Name)
		if prm.Default != nil {
			ps.EmitSpace()
			p.printArg(prm.Default)
		}
	case ast.ParamKwRest:
		ps.EmitDirectPart("**" + prm.Name)
	case ast.ParamNoKw:
		ps.EmitDirectPart("**nil")
	case ast.ParamBlock:
		ps.EmitDirectPart("&" + prm.Name)
	case ast.ParamForward:
		ps.EmitDirectPart("...")
	case ast.ParamDestructure:
		ps.EmitDelim("(")
		p.printParams(prm.Sub.List, false)
		ps.EmitDelim(")")
	}
}

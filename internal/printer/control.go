package printer

import (
	"rbfmt/internal/ast"
	"rbfmt/internal/format"
)

func (p *printer) printCond(n ast.Node) {
	p.ps.WithFormattingContext(format.CtxIfOp, func() { p.printExpr(n) })
}

// printIf prints if/unless with its elsif/else chain. Comments before a
// branch keyword stay inside the branch above it.
func (p *printer) printIf(n *ast.If) {
	ps := p.ps
	ps.EmitKeyword(n.Kw)
	ps.EmitSpace()
	p.printCond(n.Cond)
	ps.EmitNewline()
	cur := n
	for {
		then, next := cur.Then, cur.ElseLine
		if next == 0 {
			next = n.EndLine
		}
		ps.NewBlock(func() {
			p.printBody(then)
			ps.OnLine(next)
		})
		switch e := cur.Else.(type) {
		case *ast.If:
			ps.EmitIndent()
			ps.EmitKeyword("elsif")
			ps.EmitSpace()
			p.printCond(e.Cond)
			ps.EmitNewline()
			cur = e
			continue
		case *ast.Body:
			ps.EmitIndent()
			ps.EmitKeyword("else")
			ps.EmitNewline()
			ps.NewBlock(func() {
				p.printBody(e)
				ps.OnLine(n.EndLine)
			})
		}
		break
	}
	ps.EmitIndent()
	ps.EmitKeyword("end")
}

func (p *printer) printModifier(n *ast.Modifier) {
	ps := p.ps
	p.printExpr(n.Body)
	ps.EmitSpace()
	ps.EmitModifierKeyword(n.Kw)
	ps.EmitSpace()
	p.printCond(n.Cond)
}

func (p *printer) printWhile(n *ast.While) {
	ps := p.ps
	ps.EmitKeyword(n.Kw)
	ps.EmitSpace()
	p.printCond(n.Cond)
	ps.EmitNewline()
	p.printLoopBody(n.Body, n.EndLine)
}

func (p *printer) printFor(n *ast.For) {
	ps := p.ps
	ps.EmitKeyword("for")
	ps.EmitSpace()
	p.printJoined(n.Vars)
	ps.EmitSpace()
	ps.EmitModifierKeyword("in")
	ps.EmitSpace()
	p.printCond(n.Iter)
	ps.EmitNewline()
	p.printLoopBody(n.Body, n.EndLine)
}

func (p *printer) printLoopBody(body *ast.Body, endLine int) {
	ps := p.ps
	ps.NewBlock(func() {
		p.printBody(body)
		ps.OnLine(endLine)
	})
	ps.EmitIndent()
	ps.EmitKeyword("end")
}

// printCase: `when` lines stay at the level of `case`.
func (p *printer) printCase(n *ast.Case) {
	ps := p.ps
	ps.EmitKeyword("case")
	if n.Subject != nil {
		ps.EmitSpace()
		p.printCond(n.Subject)
	}
	ps.EmitNewline()
	for i, w := range n.Whens {
		next := n.EndLine
		switch {
		case i+1 < len(n.Whens):
			next = n.Whens[i+1].Line
		case n.Else != nil:
			next = n.ElseLine
		}
		ps.OnLine(w.Line)
		ps.EmitIndent()
		ps.EmitKeyword("when")
		ps.EmitSpace()
		ps.InlineBreakableOf(format.WhenDelims, 0, func() { p.printList(w.Conds) })
		ps.EmitNewline()
		ps.NewBlock(func() {
			p.printBody(w.Body)
			ps.OnLine(next)
		})
	}
	if n.Else != nil {
		ps.EmitIndent()
		ps.EmitKeyword("else")
		ps.EmitNewline()
		ps.NewBlock(func() {
			p.printBody(n.Else)
			ps.OnLine(n.EndLine)
		})
	}
	ps.EmitIndent()
	ps.EmitKeyword("end")
}

func (p *printer) printBegin(n *ast.Begin) {
	ps := p.ps
	ps.EmitKeyword("begin")
	ps.EmitNewline()
	p.printBlockBody(n, n.EndLine)
}

func (p *printer) printDef(n *ast.Def) {
	ps := p.ps
	ps.EmitKeyword("def")
	ps.EmitSpace()
	if n.Singleton != nil {
		p.printExpr(n.Singleton)
		ps.EmitDirectPart(".")
	}
	ps.EmitDirectPart(n.Name)
	if n.Params.Len() > 0 {
		ps.BreakableOf(format.DefParamsDelims, n.Params.EndLine, func() { p.printParams(n.Params.List, true) })
	}
	ps.EmitNewline()
	ps.WithFormattingContext(format.CtxDef, func() { p.printBlockBody(n.Body, n.EndLine) })
}

func (p *printer) printClass(n *ast.Class) {
	ps := p.ps
	ps.EmitKeyword("class")
	ps.EmitSpace()
	p.printExpr(n.Path)
	if n.Super != nil {
		ps.EmitSpace()
		ps.EmitDirectPart("<")
		ps.EmitSpace()
		p.printExpr(n.Super)
	}
	ps.EmitNewline()
	ps.WithFormattingContext(format.CtxClassOrModule, func() { p.printBlockBody(n.Body, n.EndLine) })
}

func (p *printer) printSClass(n *ast.SClass) {
	ps := p.ps
	ps.EmitKeyword("class")
	ps.EmitSpace()
	ps.EmitDirectPart("<<")
	ps.EmitSpace()
	p.printExpr(n.Target)
	ps.EmitNewline()
	ps.WithFormattingContext(format.CtxClassOrModule, func() { p.printBlockBody(n.Body, n.EndLine) })
}

func (p *printer) printModule(n *ast.Module) {
	ps := p.ps
	ps.EmitKeyword("module")
	ps.EmitSpace()
	p.printExpr(n.Path)
	ps.EmitNewline()
	ps.WithFormattingContext(format.CtxClassOrModule, func() { p.printBlockBody(n.Body, n.EndLine) })
}

// printJump: `return a, b` turns into `return [...]` when it breaks.
func (p *printer) printJump(n *ast.Jump) {
	ps := p.ps
	ps.EmitKeyword(n.Kw)
	switch len(n.Args) {
	case 0:
	case 1:
		ps.EmitSpace()
		p.printArg(n.Args[0])
	default:
		ps.BreakableOf(format.ReturnDelims, 0, func() { p.printList(n.Args) })
	}
}

func (p *printer) printAlias(n *ast.Alias) {
	ps := p.ps
	ps.EmitKeyword("alias")
	ps.EmitSpace()
	p.printExpr(n.New)
	ps.EmitSpace()
	p.printExpr(n.Old)
}

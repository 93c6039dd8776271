package printer

import (
	"strings"

	"rbfmt/internal/ast"
	"rbfmt/internal/format"
)

func (p *printer) printLiteral(n *ast.Literal) {
	if n.Kind == ast.LitString {
		p.ps.EmitDirectPart(normalizeQuotes(n.Text))
		return
	}
	p.ps.EmitDirectPart(n.Text)
}

// normalizeQuotes turns 'abc' into "abc" when the body has nothing that
// double quotes would interpret.
func normalizeQuotes(s string) string {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return s
	}
	body := s[1 : len(s)-1]
	if strings.ContainsAny(body, "\"\\#") {
		return s
	}
	return `"` + body + `"`
}

func (p *printer) printHeredoc(n *ast.Heredoc) {
	p.ps.EmitDirectPart(n.Opener)
	p.ps.PushHeredoc(heredocKind(n.Kind), n.ID, n.Body, n.BodyEnd)
}

// printStrConcat keeps `"a" \` continuation lines.
func (p *printer) printStrConcat(n *ast.StrConcat) {
	ps := p.ps
	p.printExpr(n.Parts[0])
	for i := 1; i < len(n.Parts); i++ {
		prev, part := n.Parts[i-1], n.Parts[i]
		if part.Lines().Line <= prev.Lines().EndLine {
			ps.EmitSpace()
			p.printExpr(part)
			continue
		}
		ps.WithAbsorbingIndentBlock(func() {
			ps.EmitDirectPart(" \\")
			ps.EmitNewline()
			ps.OnLine(part.Lines().Line)
			ps.EmitIndent()
			p.printExpr(part)
		})
	}
}

func (p *printer) printArray(n *ast.ArrayLit) {
	if !n.Bracketed {
		// правая часть `x = 1, 2`
		p.printJoined(n.Elems)
		return
	}
	p.ps.BreakableOf(format.ArrayDelims, n.EndLine, func() { p.printList(n.Elems) })
}

func (p *printer) printHash(n *ast.HashLit) {
	if len(n.Pairs) == 0 {
		p.ps.EmitDirectPart("{}")
		return
	}
	p.ps.BreakableOf(format.HashDelims, n.EndLine, func() { p.printList(n.Pairs) })
}

func (p *printer) printPair(n *ast.Pair) {
	ps := p.ps
	if n.Label != "" {
		ps.EmitDirectPart(n.Label)
		if n.Value != nil {
			ps.EmitSpace()
			p.printExpr(n.Value)
		}
		return
	}
	p.printExpr(n.Key)
	ps.EmitSpace()
	ps.EmitDirectPart("=>")
	ps.EmitSpace()
	p.printExpr(n.Value)
}

func (p *printer) printRange(n *ast.Range) {
	if n.Lo != nil {
		p.printOperand(n.Lo)
	}
	p.ps.EmitDirectPart(n.Op)
	if n.Hi != nil {
		p.printOperand(n.Hi)
	}
}

func (p *printer) printUnary(n *ast.Unary) {
	p.ps.EmitDirectPart(n.Op)
	if n.Op == "not" {
		p.ps.EmitSpace()
	}
	p.printOperand(n.Operand)
}

// printOperand prints a sub-expression of an operator: a command call
// there needs parentheses.
func (p *printer) printOperand(n ast.Node) {
	ps := p.ps
	ps.WithStartOfLine(false, func() {
		ps.WithFormattingContext(format.CtxBinary, func() { p.printExpr(n) })
	})
}

// printBinary keeps a break after the operator with one extra level of
// indentation for the whole chain.
func (p *printer) printBinary(n *ast.Binary) {
	ps := p.ps
	p.printOperand(n.Left)
	ps.EmitSpace()
	ps.EmitDirectPart(n.Op)
	if n.Right.Lines().Line <= n.OpLine {
		ps.EmitSpace()
		p.printOperand(n.Right)
		return
	}
	ps.WithAbsorbingIndentBlock(func() {
		ps.EmitNewline()
		ps.OnLine(n.Right.Lines().Line)
		ps.EmitIndent()
		p.printOperand(n.Right)
	})
}

func (p *printer) printTernary(n *ast.Ternary) {
	ps := p.ps
	p.printOperand(n.Cond)
	ps.EmitSpace()
	ps.EmitDirectPart("?")
	ps.EmitSpace()
	p.printOperand(n.Then)
	ps.EmitSpace()
	ps.EmitDirectPart(":")
	ps.EmitSpace()
	p.printOperand(n.Else)
}

// printAssign moves a long simple right side to its own line:
//
//	x =
//	  some_long_expression
func (p *printer) printAssign(n *ast.Assign) {
	ps := p.ps
	p.printExpr(n.Target)
	ps.EmitSpace()
	ps.EmitDirectPart(n.Op)
	ps.WithFormattingContext(format.CtxAssign, func() {
		if !measurable(n.Value) {
			ps.EmitSpace()
			p.printExpr(n.Value)
			return
		}
		col := ps.ColumnEstimate() + 1
		fr := ps.Speculate(func() { p.printExpr(n.Value) })
		if !fr.RendersBeyond(col, ps.Width()) {
			ps.EmitSpace()
			ps.Splice(fr)
			return
		}
		ps.NewBlock(func() {
			ps.EmitNewline()
			ps.EmitIndent()
			ps.Splice(fr.Shifted(1))
		})
	})
}

// measurable: right sides that cannot break on their own and may be moved
// to the next line.
func measurable(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Literal, *ast.Ident, *ast.Colon2, *ast.Binary, *ast.Unary, *ast.Ternary, *ast.Range, *ast.StrConcat:
		return !hasHeredoc(n)
	case *ast.Call:
		return n.Block == nil && len(n.Args) == 0 && !hasHeredoc(n)
	}
	return false
}

// hasHeredoc is conservative: unknown constructs count as having one.
func hasHeredoc(n ast.Node) bool {
	switch n := n.(type) {
	case nil:
		return false
	case *ast.Heredoc:
		return true
	case *ast.Literal, *ast.Ident:
		return false
	case *ast.Colon2:
		return n.Scope != nil && hasHeredoc(n.Scope)
	case *ast.Binary:
		return hasHeredoc(n.Left) || hasHeredoc(n.Right)
	case *ast.Unary:
		return hasHeredoc(n.Operand)
	case *ast.Ternary:
		return hasHeredoc(n.Cond) || hasHeredoc(n.Then) || hasHeredoc(n.Else)
	case *ast.Range:
		return (n.Lo != nil && hasHeredoc(n.Lo)) || (n.Hi != nil && hasHeredoc(n.Hi))
	case *ast.StrConcat:
		return anyHeredoc(n.Parts)
	case *ast.Call:
		if n.Block != nil {
			return true
		}
		return (n.Recv != nil && hasHeredoc(n.Recv)) || anyHeredoc(n.Args)
	case *ast.Index:
		return hasHeredoc(n.Recv) || anyHeredoc(n.Args)
	case *ast.Splat:
		return n.Value != nil && hasHeredoc(n.Value)
	case *ast.Pair:
		return (n.Key != nil && hasHeredoc(n.Key)) || (n.Value != nil && hasHeredoc(n.Value))
	case *ast.ArrayLit:
		return anyHeredoc(n.Elems)
	case *ast.HashLit:
		return anyHeredoc(n.Pairs)
	}
	return true
}

func anyHeredoc(ns []ast.Node) bool {
	for _, n := range ns {
		if hasHeredoc(n) {
			return true
		}
	}
	return false
}

func (p *printer) printMultiAssign(n *ast.MultiAssign) {
	ps := p.ps
	for i, t := range n.Targets {
		if i > 0 {
			ps.EmitComma()
			ps.EmitSpace()
		}
		p.printExpr(t)
	}
	ps.EmitSpace()
	ps.EmitDirectPart("=")
	ps.EmitSpace()
	ps.WithFormattingContext(format.CtxAssign, func() { p.printExpr(n.Value) })
}

// printParen keeps explicit parentheses; several statements inside are
// joined with `;`.
func (p *printer) printParen(n *ast.Paren) {
	ps := p.ps
	ps.EmitDelim("(")
	for i, s := range n.Stmts {
		if i > 0 {
			ps.EmitDirectPart(";")
			ps.EmitSpace()
		}
		ps.WithFormattingContext(format.CtxMain, func() { p.printExpr(s) })
	}
	ps.EmitDelim(")")
}

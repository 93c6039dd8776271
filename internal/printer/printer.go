package printer

import (
	"fmt"

	"rbfmt/internal/ast"
	"rbfmt/internal/format"
)

type printer struct {
	ps *format.ParserState
}

// emptyBlockDelims: `{}` у пустого блока и лямбды.
var emptyBlockDelims = format.Delims{Name: "brace-block", SingleOpen: "{", SingleClose: "}", MultiOpen: "{", MultiClose: "}", Inline: true}

var indexDelims = format.Delims{Name: "index", SingleOpen: "[", SingleClose: "]", MultiOpen: "[", MultiClose: "]"}

func (p *printer) printBody(b *ast.Body) {
	if b.Empty() {
		return
	}
	for _, s := range b.Stmts {
		p.printStmt(s)
	}
}

// printStmt puts one statement on its own line.
func (p *printer) printStmt(n ast.Node) {
	ps := p.ps
	pos := n.Lines()
	ps.OnLine(pos.Line)
	ps.EmitIndent()
	p.printInline(n)
	ps.EmitNewline()
}

// printInline is a statement without its indentation and newline: the
// caller owns the line (brace block bodies).
func (p *printer) printInline(n ast.Node) {
	ps := p.ps
	ps.WithFormattingContext(format.CtxMain, func() {
		ps.WithStartOfLine(true, func() { p.printExpr(n) })
	})
	ps.OnLine(n.Lines().EndLine)
}

// printBlockBody prints a keyword block body (def, class, do, begin):
// statements, then rescue/else/ensure clauses one level up, then every
// comment up to the closing `end`.
func (p *printer) printBlockBody(b *ast.Begin, endLine int) {
	ps := p.ps
	ps.NewBlock(func() {
		if b == nil {
			ps.OnLine(endLine)
			return
		}
		p.printBody(b.Body)
		for _, r := range b.Rescues {
			ps.OnLine(r.Line)
			ps.Dedent(func() {
				ps.EmitIndent()
				p.printRescueClause(r)
				ps.EmitNewline()
			})
			p.printBody(r.Body)
		}
		if b.Else != nil {
			p.printClause("else", b.ElseLine, b.Else)
		}
		if b.Ensure != nil {
			p.printClause("ensure", b.EnsureLine, b.Ensure)
		}
		ps.OnLine(endLine)
	})
	ps.EmitIndent()
	ps.EmitKeyword("end")
}

// printClause prints `else`/`ensure` and its body; the caller is one level in.
func (p *printer) printClause(kw string, line int, body *ast.Body) {
	ps := p.ps
	ps.OnLine(line)
	ps.Dedent(func() {
		ps.EmitIndent()
		ps.EmitKeyword(kw)
		ps.EmitNewline()
	})
	p.printBody(body)
}

func (p *printer) printRescueClause(r *ast.Rescue) {
	ps := p.ps
	ps.EmitKeyword("rescue")
	if len(r.Classes) > 0 {
		ps.EmitSpace()
		ps.InlineBreakableOf(format.RescueDelims, 0, func() { p.printList(r.Classes) })
	}
	if r.Var != nil {
		ps.EmitSpace()
		ps.EmitDirectPart("=>")
		ps.EmitSpace()
		p.printExpr(r.Var)
	}
}

// printList emits the elements of a group; each element syncs to its own
// line so an author's one-per-line layout survives.
func (p *printer) printList(items []ast.Node) {
	ps := p.ps
	for i, it := range items {
		if i > 0 {
			ps.EmitListSeparator()
		}
		ps.OnLine(it.Lines().Line)
		p.printArg(it)
	}
}

func (p *printer) printArg(n ast.Node) {
	ps := p.ps
	ps.WithStartOfLine(false, func() {
		ps.WithFormattingContext(format.CtxArgsList, func() { p.printExpr(n) })
	})
}

// printJoined emits items separated by ", " without a group.
func (p *printer) printJoined(items []ast.Node) {
	ps := p.ps
	for i, it := range items {
		if i > 0 {
			ps.EmitComma()
			ps.EmitSpace()
		}
		p.printArg(it)
	}
}

func (p *printer) printExpr(n ast.Node) {
	switch n := n.(type) {
	case *ast.Literal:
		p.printLiteral(n)
	case *ast.Heredoc:
		p.printHeredoc(n)
	case *ast.StrConcat:
		p.printStrConcat(n)
	case *ast.Ident:
		p.ps.EmitDirectPart(n.Name)
	case *ast.Colon2:
		if n.Scope != nil {
			p.printExpr(n.Scope)
		}
		p.ps.EmitDirectPart("::" + n.Name)
	case *ast.ArrayLit:
		p.printArray(n)
	case *ast.HashLit:
		p.printHash(n)
	case *ast.Pair:
		p.printPair(n)
	case *ast.Splat:
		p.ps.EmitDirectPart(n.Op)
		if n.Value != nil {
			p.printExpr(n.Value)
		}
	case *ast.Range:
		p.printRange(n)
	case *ast.Unary:
		p.printUnary(n)
	case *ast.Binary:
		p.printBinary(n)
	case *ast.Ternary:
		p.printTernary(n)
	case *ast.Assign:
		p.printAssign(n)
	case *ast.MultiAssign:
		p.printMultiAssign(n)
	case *ast.Paren:
		p.printParen(n)
	case *ast.Call:
		p.printCall(n)
	case *ast.Index:
		p.printExpr(n.Recv)
		p.ps.BreakableOf(indexDelims, n.EndLine, func() { p.printList(n.Args) })
	case *ast.Lambda:
		p.printLambda(n)
	case *ast.If:
		p.printIf(n)
	case *ast.Modifier:
		p.printModifier(n)
	case *ast.While:
		p.printWhile(n)
	case *ast.For:
		p.printFor(n)
	case *ast.Case:
		p.printCase(n)
	case *ast.Begin:
		p.printBegin(n)
	case *ast.Def:
		p.printDef(n)
	case *ast.Class:
		p.printClass(n)
	case *ast.SClass:
		p.printSClass(n)
	case *ast.Module:
		p.printModule(n)
	case *ast.Jump:
		p.printJump(n)
	case *ast.Alias:
		p.printAlias(n)
	default:
		panic(fmt.Sprintf("printer: unexpected node %T", n))
	}
}

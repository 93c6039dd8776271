package parser

import (
	"fmt"
	"strings"
	"testing"

	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
	"rbfmt/internal/lexer"
	"rbfmt/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (*ast.Program, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rb", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := ParseFile(lx, Options{Reporter: rep})
	return res.Program, bag
}

// mustParse разбирает src и возвращает s-выражения инструкций верхнего уровня.
func mustParse(t *testing.T, src string) []string {
	t.Helper()
	prog, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	out := make([]string, len(prog.Body.Stmts))
	for i, s := range prog.Body.Stmts {
		out[i] = sexp(s)
	}
	return out
}

func sexpList(nodes []ast.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = sexp(n)
	}
	return strings.Join(parts, " ")
}

func sexpBody(b *ast.Body) string {
	if b == nil {
		return "()"
	}
	return "(" + sexpList(b.Stmts) + ")"
}

func sexpBegin(b *ast.Begin) string {
	if b == nil {
		return "()"
	}
	s := sexpBody(b.Body)
	for _, r := range b.Rescues {
		s += " " + sexp(r)
	}
	if b.Else != nil {
		s += " (else " + sexpBody(b.Else) + ")"
	}
	if b.Ensure != nil {
		s += " (ensure " + sexpBody(b.Ensure) + ")"
	}
	return s
}

func sexpParams(ps *ast.Params) string {
	if ps == nil {
		return ""
	}
	parts := make([]string, len(ps.List))
	for i, prm := range ps.List {
		switch prm.Kind {
		case ast.ParamOpt:
			parts[i] = prm.Name + "=" + sexp(prm.Default)
		case ast.ParamRest:
			parts[i] = "*" + prm.Name
		case ast.ParamKey:
			parts[i] = prm.Name
			if prm.Default != nil {
				parts[i] += sexp(prm.Default)
			}
		case ast.ParamKwRest:
			parts[i] = "**" + prm.Name
		case ast.ParamNoKw:
			parts[i] = "**nil"
		case ast.ParamBlock:
			parts[i] = "&" + prm.Name
		case ast.ParamForward:
			parts[i] = "..."
		case ast.ParamDestructure:
			parts[i] = "(" + sexpParams(prm.Sub) + ")"
		default:
			parts[i] = prm.Name
		}
	}
	return "|" + strings.Join(parts, " ") + "|"
}

func sexp(n ast.Node) string {
	switch n := n.(type) {
	case nil:
		return "nil"
	case *ast.Literal:
		return n.Text
	case *ast.Heredoc:
		return "(heredoc " + n.Opener + " " + fmt.Sprintf("%q", n.Body) + ")"
	case *ast.StrConcat:
		return "(concat " + sexpList(n.Parts) + ")"
	case *ast.Ident:
		return n.Name
	case *ast.Colon2:
		if n.Scope == nil {
			return "(:: " + n.Name + ")"
		}
		return "(:: " + sexp(n.Scope) + " " + n.Name + ")"
	case *ast.ArrayLit:
		return "[" + sexpList(n.Elems) + "]"
	case *ast.HashLit:
		return "{" + sexpList(n.Pairs) + "}"
	case *ast.Pair:
		if n.Label != "" {
			return "(" + n.Label + " " + sexp(n.Value) + ")"
		}
		return "(=> " + sexp(n.Key) + " " + sexp(n.Value) + ")"
	case *ast.Splat:
		if n.Value == nil {
			return n.Op
		}
		return n.Op + sexp(n.Value)
	case *ast.Range:
		return "(" + n.Op + " " + sexp(n.Lo) + " " + sexp(n.Hi) + ")"
	case *ast.Unary:
		return "(" + n.Op + " " + sexp(n.Operand) + ")"
	case *ast.Binary:
		return "(" + n.Op + " " + sexp(n.Left) + " " + sexp(n.Right) + ")"
	case *ast.Ternary:
		return "(? " + sexp(n.Cond) + " " + sexp(n.Then) + " " + sexp(n.Else) + ")"
	case *ast.Assign:
		return "(" + n.Op + " " + sexp(n.Target) + " " + sexp(n.Value) + ")"
	case *ast.MultiAssign:
		return "(masgn " + sexpList(n.Targets) + " " + sexp(n.Value) + ")"
	case *ast.Paren:
		return "(paren " + sexpList(n.Stmts) + ")"
	case *ast.Call:
		s := "(call "
		if n.Recv != nil {
			s += sexp(n.Recv) + n.Op
		}
		s += n.Name
		if n.Paren {
			s += "()"
		}
		if len(n.Args) > 0 {
			s += " " + sexpList(n.Args)
		}
		if n.Block != nil {
			s += " " + sexp(n.Block)
		}
		return s + ")"
	case *ast.Index:
		return "(index " + sexp(n.Recv) + " " + sexpList(n.Args) + ")"
	case *ast.Block:
		kind := "do"
		if n.Brace {
			kind = "{}"
		}
		s := "(block " + kind
		if n.Params != nil {
			s += " " + sexpParams(n.Params)
		}
		return s + " " + sexpBegin(n.Body) + ")"
	case *ast.Lambda:
		return "(lambda " + sexpParams(n.Params) + " " + sexpBegin(n.Body) + ")"
	case *ast.If:
		s := "(" + n.Kw + " " + sexp(n.Cond) + " " + sexpBody(n.Then)
		switch e := n.Else.(type) {
		case *ast.If:
			s += " " + sexp(e)
		case *ast.Body:
			s += " (else " + sexpBody(e) + ")"
		}
		return s + ")"
	case *ast.Modifier:
		return "(" + n.Kw + "-mod " + sexp(n.Body) + " " + sexp(n.Cond) + ")"
	case *ast.While:
		return "(" + n.Kw + " " + sexp(n.Cond) + " " + sexpBody(n.Body) + ")"
	case *ast.For:
		return "(for " + sexpList(n.Vars) + " " + sexp(n.Iter) + " " + sexpBody(n.Body) + ")"
	case *ast.Case:
		s := "(case " + sexp(n.Subject)
		for _, w := range n.Whens {
			s += " (when " + sexpList(w.Conds) + " " + sexpBody(w.Body) + ")"
		}
		if n.Else != nil {
			s += " (else " + sexpBody(n.Else) + ")"
		}
		return s + ")"
	case *ast.Begin:
		return "(begin " + sexpBegin(n) + ")"
	case *ast.Rescue:
		s := "(rescue"
		if len(n.Classes) > 0 {
			s += " " + sexpList(n.Classes)
		}
		if n.Var != nil {
			s += " => " + sexp(n.Var)
		}
		return s + " " + sexpBody(n.Body) + ")"
	case *ast.Def:
		name := n.Name
		if n.Singleton != nil {
			name = sexp(n.Singleton) + "." + name
		}
		s := "(def " + name
		if n.Params != nil {
			s += " " + sexpParams(n.Params)
		}
		return s + " " + sexpBegin(n.Body) + ")"
	case *ast.Class:
		return "(class " + sexp(n.Path) + " " + sexp(n.Super) + " " + sexpBegin(n.Body) + ")"
	case *ast.SClass:
		return "(sclass " + sexp(n.Target) + " " + sexpBegin(n.Body) + ")"
	case *ast.Module:
		return "(module " + sexp(n.Path) + " " + sexpBegin(n.Body) + ")"
	case *ast.Jump:
		if len(n.Args) == 0 {
			return "(" + n.Kw + ")"
		}
		return "(" + n.Kw + " " + sexpList(n.Args) + ")"
	case *ast.Alias:
		return "(alias " + sexp(n.New) + " " + sexp(n.Old) + ")"
	}
	return fmt.Sprintf("<%T>", n)
}

package lexer

import (
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

type opEntry struct {
	text string
	kind token.Kind
}

// Жадность: сначала длинные операторы, затем короткие.
var operators = []opEntry{
	{"**=", token.OpAssign}, {"||=", token.OpAssign}, {"&&=", token.OpAssign},
	{"<<=", token.OpAssign}, {">>=", token.OpAssign}, {"<=>", token.Cmp},
	{"===", token.EqEqEq}, {"...", token.DotDotDot},
	{"+=", token.OpAssign}, {"-=", token.OpAssign}, {"*=", token.OpAssign},
	{"/=", token.OpAssign}, {"%=", token.OpAssign}, {"|=", token.OpAssign},
	{"&=", token.OpAssign}, {"^=", token.OpAssign},
	{"**", token.Pow}, {"==", token.EqEq}, {"!=", token.NotEq}, {"=~", token.Match},
	{"!~", token.NotMatch}, {"<=", token.LtEq}, {">=", token.GtEq}, {"&&", token.AndAnd},
	{"||", token.OrOr}, {"<<", token.Shl}, {">>", token.Shr}, {"&.", token.AndDot},
	{"::", token.ColonColon}, {"..", token.DotDot}, {"=>", token.FatArrow}, {"->", token.Lambda},
	{"+", token.Plus}, {"-", token.Minus}, {"*", token.Star}, {"/", token.Slash},
	{"%", token.Percent}, {"=", token.Assign}, {"<", token.Lt}, {">", token.Gt},
	{"!", token.Bang}, {"&", token.Amp}, {"|", token.Pipe}, {"^", token.Caret},
	{"~", token.Tilde}, {".", token.Dot}, {"?", token.Question}, {":", token.Colon},
	{",", token.Comma}, {"(", token.LParen}, {")", token.RParen}, {"[", token.LBracket},
	{"]", token.RBracket}, {"{", token.LBrace}, {"}", token.RBrace},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range operators {
		if !lx.cursor.HasPrefix(op.text) {
			continue
		}
		// `||` сразу после `{`/`do` - пустые параметры блока, читаем как два '|'
		if op.kind == token.OrOr && (lx.prev.Kind == token.LBrace || lx.prev.Kind == token.KwDo) {
			continue
		}
		lx.cursor.Off += uint32(len(op.text)) // #nosec G115 -- operator literals
		switch op.kind {
		case token.Question:
			lx.ternary++
		case token.Colon:
			if lx.ternary > 0 {
				lx.ternary--
			}
		}
		return lx.emit(op.kind, start)
	}
	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quoteText(tok.Text))
	return tok
}

func (lx *Lexer) bumpRune() {
	b := lx.cursor.Bump()
	if b < utf8RuneSelf {
		return
	}
	for b := lx.cursor.Peek(); b >= 0x80 && b < 0xC0; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

func quoteText(s string) string {
	return "'" + s + "'"
}

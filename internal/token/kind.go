package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	Newline
	Semicolon

	Ident  // foo, foo?, foo!
	Const  // Foo
	IVar   // @foo
	CVar   // @@foo
	GVar   // $foo
	Label  // foo: (hash key / keyword argument)
	Int    // 42, 0x2A, 1_000
	Float  // 1.5, 1e3
	String // "..." '...' %q(...) ?a
	Symbol // :foo :"foo" :+
	Regexp // /.../i %r{...}
	Words  // %w[...] %i[...]
	XString
	Heredoc // <<~ID (body in Token.Heredoc)

	KwAlias
	KwAnd
	KwBegin
	KwBreak
	KwCase
	KwClass
	KwDef
	KwDefined
	KwDo
	KwElse
	KwElsif
	KwEnd
	KwEnsure
	KwFalse
	KwFor
	KwIf
	KwIn
	KwModule
	KwNext
	KwNil
	KwNot
	KwOr
	KwRedo
	KwRescue
	KwRetry
	KwReturn
	KwSelf
	KwSuper
	KwThen
	KwTrue
	KwUndef
	KwUnless
	KwUntil
	KwWhen
	KwWhile
	KwYield

	Plus       // +
	Minus      // -
	Star       // *
	Pow        // **
	Slash      // /
	Percent    // %
	Assign     // =
	OpAssign   // += -= ||= &&= <<= ... (Text holds the operator)
	EqEq       // ==
	EqEqEq     // ===
	NotEq      // !=
	Match      // =~
	NotMatch   // !~
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	Cmp        // <=>
	AndAnd     // &&
	OrOr       // ||
	Bang       // !
	Amp        // &
	Pipe       // |
	Caret      // ^
	Tilde      // ~
	Shl        // <<
	Shr        // >>
	Dot        // .
	AndDot     // &.
	ColonColon // ::
	DotDot     // ..
	DotDotDot  // ...
	Question   // ?
	Colon      // :
	Comma      // ,
	FatArrow   // =>
	Lambda     // ->
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	LBrace     // {
	RBrace     // }

	// DataSection is everything after a __END__ line, verbatim.
	DataSection
)

var kindNames = map[Kind]string{
	Invalid: "Invalid", EOF: "EOF", Newline: "Newline", Semicolon: "Semicolon",
	Ident: "Ident", Const: "Const", IVar: "IVar", CVar: "CVar", GVar: "GVar", Label: "Label",
	Int: "Int", Float: "Float", String: "String", Symbol: "Symbol", Regexp: "Regexp",
	Words: "Words", XString: "XString", Heredoc: "Heredoc",
	Plus: "Plus", Minus: "Minus", Star: "Star", Pow: "Pow", Slash: "Slash", Percent: "Percent",
	Assign: "Assign", OpAssign: "OpAssign", EqEq: "EqEq", EqEqEq: "EqEqEq", NotEq: "NotEq",
	Match: "Match", NotMatch: "NotMatch", Lt: "Lt", LtEq: "LtEq", Gt: "Gt", GtEq: "GtEq",
	Cmp: "Cmp", AndAnd: "AndAnd", OrOr: "OrOr", Bang: "Bang", Amp: "Amp", Pipe: "Pipe",
	Caret: "Caret", Tilde: "Tilde", Shl: "Shl", Shr: "Shr", Dot: "Dot", AndDot: "AndDot",
	ColonColon: "ColonColon", DotDot: "DotDot", DotDotDot: "DotDotDot", Question: "Question",
	Colon: "Colon", Comma: "Comma", FatArrow: "FatArrow", Lambda: "Lambda",
	LParen: "LParen", RParen: "RParen", LBracket: "LBracket", RBracket: "RBracket",
	LBrace: "LBrace", RBrace: "RBrace", DataSection: "DataSection",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	for text, kw := range keywords {
		if kw == k {
			return "Kw(" + text + ")"
		}
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwAlias && k <= KwYield
}

// IsLiteral reports whether k starts a literal value.
func (k Kind) IsLiteral() bool {
	switch k {
	case Int, Float, String, Symbol, Regexp, Words, XString, Heredoc:
		return true
	}
	return false
}

// BeginsExpression is true for operators after which a newline cannot end the statement.
func (k Kind) BeginsExpression() bool {
	switch k {
	case Plus, Minus, Star, Pow, Slash, Percent, Assign, OpAssign, EqEq, EqEqEq, NotEq,
		Match, NotMatch, Lt, LtEq, Gt, GtEq, Cmp, AndAnd, OrOr, Bang, Amp, Pipe, Caret,
		Tilde, Shl, Shr, Dot, AndDot, ColonColon, DotDot, DotDotDot, Question, Colon,
		Comma, FatArrow, Lambda, LParen, LBracket, LBrace, KwAnd, KwOr, KwNot:
		return true
	}
	return false
}

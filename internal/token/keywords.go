package token

var keywords = map[string]Kind{
	"alias":    KwAlias,
	"and":      KwAnd,
	"begin":    KwBegin,
	"break":    KwBreak,
	"case":     KwCase,
	"class":    KwClass,
	"def":      KwDef,
	"defined?": KwDefined,
	"do":       KwDo,
	"else":     KwElse,
	"elsif":    KwElsif,
	"end":      KwEnd,
	"ensure":   KwEnsure,
	"false":    KwFalse,
	"for":      KwFor,
	"if":       KwIf,
	"in":       KwIn,
	"module":   KwModule,
	"next":     KwNext,
	"nil":      KwNil,
	"not":      KwNot,
	"or":       KwOr,
	"redo":     KwRedo,
	"rescue":   KwRescue,
	"retry":    KwRetry,
	"return":   KwReturn,
	"self":     KwSelf,
	"super":    KwSuper,
	"then":     KwThen,
	"true":     KwTrue,
	"undef":    KwUndef,
	"unless":   KwUnless,
	"until":    KwUntil,
	"when":     KwWhen,
	"while":    KwWhile,
	"yield":    KwYield,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

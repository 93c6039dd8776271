package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0
	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedHeredoc Code = 1003
	LexBadNumber           Code = 1004
	LexUnterminatedEmbdoc  Code = 1005
	LexUnterminatedRegexp  Code = 1006

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynExpectEnd        Code = 2003
	SynExpectIdentifier Code = 2004
	SynUnclosedParen    Code = 2005
	SynUnclosedBracket  Code = 2006
	SynUnclosedBrace    Code = 2007
	SynUnsupported      Code = 2008
	SynBadAssignTarget  Code = 2009

	// Форматтер
	FmtInfo              Code = 3000
	FmtInternalInvariant Code = 3001
	FmtNotIdempotent     Code = 3002
	FmtLostComment       Code = 3003
)

var codeTitle = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexUnknownChar:         "Unknown character",
	LexUnterminatedString:  "Unterminated string literal",
	LexUnterminatedHeredoc: "Unterminated heredoc",
	LexBadNumber:           "Invalid number literal",
	LexUnterminatedEmbdoc:  "Unterminated =begin block",
	LexUnterminatedRegexp:  "Unterminated regexp literal",
	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynExpectExpression:    "Expected expression",
	SynExpectEnd:           "Missing 'end'",
	SynExpectIdentifier:    "Expected identifier",
	SynUnclosedParen:       "Unclosed parenthesis",
	SynUnclosedBracket:     "Unclosed bracket",
	SynUnclosedBrace:       "Unclosed brace",
	SynUnsupported:         "Unsupported syntax",
	SynBadAssignTarget:     "Invalid assignment target",
	FmtInfo:                "Formatter information",
	FmtInternalInvariant:   "Formatter internal invariant violated",
	FmtNotIdempotent:       "Formatting is not idempotent",
	FmtLostComment:         "Comment lost during formatting",
}

// ID returns the stable short identifier, e.g. "SYN2001".
func (c Code) ID() string {
	switch {
	case c >= 3000:
		return fmt.Sprintf("FMT%04d", uint16(c))
	case c >= 2000:
		return fmt.Sprintf("SYN%04d", uint16(c))
	case c >= 1000:
		return fmt.Sprintf("LEX%04d", uint16(c))
	}
	return fmt.Sprintf("E%04d", uint16(c))
}

func (c Code) Title() string {
	if t, ok := codeTitle[c]; ok {
		return t
	}
	return codeTitle[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

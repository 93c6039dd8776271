package lexer

import (
	"unicode/utf8"
)

const utf8RuneSelf = utf8.RuneSelf

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b >= utf8RuneSelf
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\f' || b == '\v' }

// closingDelimiter returns the matching close for bracket-like percent delimiters.
func closingDelimiter(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	case '<':
		return '>'
	}
	return open
}

package parser

import "rbfmt/internal/token"

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precLogicalOr      = 1  // ||
	precLogicalAnd     = 2  // &&
	precEquality       = 3  // <=> == === != =~ !~
	precComparison     = 4  // < <= > >=
	precBitwiseOr      = 5  // | ^
	precBitwiseAnd     = 6  // &
	precShift          = 7  // << >>
	precAdditive       = 8  // + -
	precMultiplicative = 9  // * / %
	precUnaryMinus     = 10 // -x
	precPow            = 11 // ** (правоассоциативный)
)

// binaryPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.Cmp, token.EqEq, token.EqEqEq, token.NotEq, token.Match, token.NotMatch:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Pipe, token.Caret:
		return precBitwiseOr, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	case token.Pow:
		return precPow, true
	default:
		return -1, false // не бинарный оператор
	}
}

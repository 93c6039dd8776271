// Package fuzztests houses Go fuzz harnesses for the Ruby front end and the
// formatter core: source -> lexer -> parser -> format.
//
// Назначение: ловить паники, зависания и нарушения инвариантов вывода на
// произвольном входе. Без -fuzz гоняются только семена.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/printer, internal/format, internal/testkit.
package fuzztests

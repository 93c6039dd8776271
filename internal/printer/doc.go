// Package printer walks the Ruby syntax tree and drives format.ParserState.
//
// Назначение: Frontend (лексер + парсер + сбор комментариев) и визитор,
// который решает стиль: какие конструкции становятся группами, где
// сохраняются переносы автора, как нормализуются строки.
// Не делает: раскладки по ширине; это делает internal/format.
// Зависимости: internal/ast, internal/parser, internal/lexer, internal/format.
package printer

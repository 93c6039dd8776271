// Package format is the formatting core: a token stream with breakable groups,
// comment reattachment, heredoc deferral and the final resolution pass.
//
// Назначение: ParserState принимает эмиссию от визитора (internal/printer),
// Write разрешает абстрактные токены и пишет текст через построчный intermediary.
// Не делает: разбора Ruby и обхода AST; это дело Frontend/Program.
// Зависимости: internal/trace, go-runewidth.
package format

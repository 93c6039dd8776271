// Package token defines lexical token kinds and trivia for the Ruby front end.
// Invariants:
//   - Token.Text is the exact source text of the token (literals keep their quotes).
//   - Newlines that terminate statements are real tokens (Newline); newlines the
//     lexer can prove are continuations (after an operator or comma, before a
//     leading '.') are swallowed.
//   - Comments never reach the token stream. They are Trivia on the next token
//     and are also reported to the comment sink for the formatter.
//   - Heredoc bodies are attached to the opener token; the stream resumes after
//     the opener as if the body were not there.
package token

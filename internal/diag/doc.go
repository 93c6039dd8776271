// Package diag defines the diagnostic model shared by the lexer, parser and
// formatter.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form, a short Message, the Primary span and optional Notes.
//
// Producers emit through a Reporter (BagReporter collects into a Bag, and
// DedupReporter filters repeats). Rendering lives in internal/diagfmt; the
// package itself performs no IO.
package diag

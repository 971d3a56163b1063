// Package token defines lexical token kinds for MiNI sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Type names (int, double, bool) are keywords: the language has no user types.
//   - Comments are skipped by the lexer and never appear in the token stream.
package token

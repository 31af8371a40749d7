// Package token defines lexical token kinds and trivia for the weave
// snippet language.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Newlines never appear in the token stream; they are leading trivia,
//     and the parser consults them for statement termination.
//   - Built-in type names (Int, String, ...) are identifiers. They are
//     recognized by the semantic layer, not the lexer.
package token

// Package token defines lexical token kinds for the ferric source dialect.
// Invariants:
//   - Token.Text holds the exact source spelling of the token.
//   - Token.Span matches Text byte-for-byte.
//   - Built-in type names (int, u8, f64, ...) are identifiers here; the
//     semantic layer recognizes them, not the lexer.
//   - Preprocessor directives surface as Hash followed by an Ident token
//     ("define", "include"); the parser interprets them.
package token

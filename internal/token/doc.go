// Package token defines lexical token kinds and trivia for the Rust item
// subset understood by rsderive.
// Invariants:
//   - Token.Text is the source text of the token, except identifiers, which
//     are NFC-normalized and have a raw `r#` prefix stripped.
//   - Token.Span always covers the original source bytes.
//   - Lifetimes (`'a`, `'static`) are single tokens of Kind Lifetime.
//   - Comments and whitespace are leading Trivia and never appear in the
//     main token stream. Doc comments stay trivia too: derives ignore them.
//   - Primitive type names (u8, String, Vec) are identifiers; the lexer
//     knows only the strict keywords of the language.
package token

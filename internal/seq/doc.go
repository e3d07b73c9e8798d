// Package seq expands item-level `seq!(N in 0..4 { ... })` invocations.
//
// The header is `ident in start..end` (or `..=` for an inclusive end)
// followed by a braced body. The body is emitted once per integer with the
// loop identifier replaced by the integer literal. `name~N` pastes the value
// into an identifier. When the body contains `#( ... )*` sections only those
// sections repeat and the rest of the body is emitted once.
//
// Nothing here is shared with the derive generators.
package seq

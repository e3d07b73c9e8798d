// Package rsemit renders AST fragments back to canonical Rust text and
// provides the indenting writer used by the generators.
//
// Назначение: печать типов, путей, bounds и generics для сгенерированного кода.
// Не делает: форматирования исходных файлов и разбора.
// Зависимости: internal/ast.
package rsemit

// Package fuzztests houses Go fuzz harnesses for the rsderive front end and
// generators (source -> lexer -> parser -> expander). They guard against
// panics and hangs on arbitrary input.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// derive.Expander.
//
// Не делает: запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/ast, internal/derive, internal/testkit.

package fuzztests

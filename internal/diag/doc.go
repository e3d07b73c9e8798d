// Package diag defines the diagnostic model shared by every rsderive phase.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, the parser, the derive synthesizers and seq! expansion.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Package diag does not format anything for humans. Rendering lives in
// internal/diagfmt; collection per file lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form: LEX1xxx, SYN2xxx, IO40xx, DRV41xx (derive), DRV42xx (seq!), OBS6xxx.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter. The parser and the derive entry point build a
// ReportBuilder via NewReportBuilder (or ReportError/ReportWarning/ReportInfo),
// chain WithNote and call Emit. BagReporter aggregates into a Bag, which
// supports sorting and deduplication; DedupReporter filters repeats on the fly.
package diag

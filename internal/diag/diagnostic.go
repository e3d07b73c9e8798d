package diag

import (
	"rsderive/internal/source"
)

// Note is a secondary span with a short explanation.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

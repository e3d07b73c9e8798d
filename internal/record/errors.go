package record

import (
	"errors"
	"fmt"

	"rsderive/internal/diag"
	"rsderive/internal/source"
)

// Error is a generation-time failure tied to a source location. Generators
// return it instead of reporting directly so that one request stays a pure
// function of its input.
type Error struct {
	Code  diag.Code
	Span  source.Span
	Msg   string
	Notes []diag.Note
}

func (e *Error) Error() string {
	return e.Msg
}

// Errorf builds a located error.
func Errorf(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

// WithNote appends a secondary location.
func (e *Error) WithNote(sp source.Span, msg string) *Error {
	e.Notes = append(e.Notes, diag.Note{Span: sp, Msg: msg})
	return e
}

// Report sends the error to r as a diagnostic.
func (e *Error) Report(r diag.Reporter) {
	b := diag.ReportError(r, e.Code, e.Span, e.Msg)
	for _, n := range e.Notes {
		b.WithNote(n.Span, n.Msg)
	}
	b.Emit()
}

// AsError unwraps err into a located error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

package derive

import (
	"rsderive/internal/record"
	"rsderive/internal/rsemit"
	"rsderive/internal/source"
)

// Fragment is the generated text for one request: one derive on one item,
// or one seq! invocation.
type Fragment struct {
	Derive string
	Item   string
	Span   source.Span
	Text   string
	// Err is set when generation failed; Text then holds a compile_error!.
	Err *record.Error
}

// Failed reports whether the fragment carries an error.
func (f *Fragment) Failed() bool {
	return f.Err != nil
}

// compileError renders the error so the Rust compiler reports it as well
// when the generated file is included.
func compileError(msg string) string {
	return "::core::compile_error!(" + rsemit.Quote(msg) + ");\n"
}

func failed(derive, item string, sp source.Span, err *record.Error) Fragment {
	return Fragment{Derive: derive, Item: item, Span: sp, Text: compileError(err.Msg), Err: err}
}

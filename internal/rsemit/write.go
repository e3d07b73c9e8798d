package rsemit

import (
	"fmt"
)

// Writer accumulates generated output and tracks indentation.
type Writer struct {
	buf         []byte
	indentWidth int
	indentLevel int
	atLineStart bool
}

// NewWriter creates a writer indenting by four spaces.
func NewWriter() *Writer {
	return &Writer{
		buf:         make([]byte, 0, 1024),
		indentWidth: 4,
		atLineStart: true,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) String() string {
	return string(w.buf)
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for range w.indentLevel * w.indentWidth {
		w.buf = append(w.buf, ' ')
	}
	w.atLineStart = false
}

// WriteString writes a string to the output, handling indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Line writes one indented line.
func (w *Writer) Line(s string) {
	w.WriteString(s)
	w.Newline()
}

// Linef is Line with formatting.
func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Newline ends the current line. Unlike the formatter writer it always
// writes, so callers can emit empty lines explicitly.
func (w *Writer) Newline() {
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// Open writes `header {` and indents.
func (w *Writer) Open(header string) {
	if header == "" {
		w.Line("{")
	} else {
		w.Line(header + " {")
	}
	w.IndentPush()
}

// Close dedents and writes `}` followed by suffix.
func (w *Writer) Close(suffix string) {
	w.IndentPop()
	w.Line("}" + suffix)
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

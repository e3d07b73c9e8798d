package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rsderive/internal/diag"
	"rsderive/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		start, _ := fs.Resolve(d.Primary)
		sev := pal.severity(d.Severity)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			location(fs, d.Primary, opts.PathMode), start.Line, start.Col,
			sev.Sprint(d.Severity.String()), sev.Sprint(d.Code.ID()), pal.bold.Sprint(d.Message))
		writeSnippet(w, fs, d.Primary, opts, pal)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				pal.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), ns.Line, ns.Col, n.Msg)
			if n.Span.File == d.Primary.File && !sameLine(fs, n.Span, d.Primary) {
				writeSnippet(w, fs, n.Span, opts, pal)
			}
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	return formatPath(mode, f.FormatPath, fs.BaseDir())
}

func sameLine(fs *source.FileSet, a, b source.Span) bool {
	as, _ := fs.Resolve(a)
	bs, _ := fs.Resolve(b)
	return as.Line == bs.Line
}

// writeSnippet печатает строки вокруг span и подчёркивание под первой строкой.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, pal palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	ctx := uint32(max(opts.Context, 0))
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	width := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		if ln > uint32(len(f.LineIdx))+1 {
			break
		}
		text := clip(f.GetLine(ln), opts.Width)
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprintf("%*d", width, ln), pal.gutter.Sprint("|"), text)
		if ln != start.Line {
			continue
		}
		caretEnd := end.Col
		if end.Line != start.Line {
			caretEnd = uint32(len(f.GetLine(ln))) + 1
		}
		fmt.Fprintf(w, " %s %s %s\n", strings.Repeat(" ", width), pal.gutter.Sprint("|"),
			pal.caret.Sprint(underline(f.GetLine(ln), start.Col, caretEnd)))
	}
}

// underline строит `^~~~` под байтами [from, to) строки (колонки 1-based),
// учитывая ширину символов и табы.
func underline(line string, from, to uint32) string {
	if to <= from {
		to = from + 1
	}
	var sb strings.Builder
	col := uint32(1)
	marked := false
	for _, r := range line {
		if col >= to {
			break
		}
		n := uint32(len(string(r)))
		switch {
		case col < from:
			if r == '\t' {
				sb.WriteByte('\t')
			} else {
				sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
			}
		case !marked:
			sb.WriteByte('^')
			sb.WriteString(strings.Repeat("~", max(runewidth.RuneWidth(r)-1, 0)))
			marked = true
		default:
			sb.WriteString(strings.Repeat("~", max(runewidth.RuneWidth(r), 1)))
		}
		col += n
	}
	if !marked {
		// span на конце строки или пустой
		sb.WriteByte('^')
	}
	return sb.String()
}

func clip(text string, width uint8) string {
	if width == 0 || runewidth.StringWidth(text) <= int(width) {
		return text
	}
	return runewidth.Truncate(text, int(width), "…")
}

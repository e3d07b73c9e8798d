package derive

import (
	"bytes"

	"rsderive/internal/ast"
	"rsderive/internal/diag"
	"rsderive/internal/record"
	"rsderive/internal/seq"
	"rsderive/internal/source"
	"rsderive/internal/trace"
)

// Derive names recognized in `#[derive(...)]` lists (last path segment).
const (
	NameBuilder = "Builder"
	NameDebug   = "CustomDebug"
	NameSeq     = "seq"
)

// Header is the first line of every generated file.
const Header = "// Code generated by rsderive. DO NOT EDIT."

// Expander runs the generators over the items of a parsed file.
type Expander struct {
	Config   Config
	Reporter diag.Reporter
	// Tracer receives one span per request; nil disables tracing.
	Tracer trace.Tracer
	Parent uint64
}

// Output holds the fragments of one file in item order.
type Output struct {
	Fragments []Fragment
}

// Empty reports whether the file requested nothing.
func (o *Output) Empty() bool {
	return len(o.Fragments) == 0
}

// Failures counts fragments that carry an error.
func (o *Output) Failures() int {
	n := 0
	for i := range o.Fragments {
		if o.Fragments[i].Failed() {
			n++
		}
	}
	return n
}

// Render produces the generated file content.
func (o *Output) Render(sourcePath string) []byte {
	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteString("\n// source: ")
	buf.WriteString(sourcePath)
	buf.WriteString("\n")
	for i := range o.Fragments {
		buf.WriteString("\n")
		buf.WriteString(o.Fragments[i].Text)
	}
	return buf.Bytes()
}

// ExpandFile expands every derive request and seq! invocation in fileID.
// Failures are reported to e.Reporter and replaced by compile_error! so the
// rest of the file still expands.
func (e *Expander) ExpandFile(b *ast.Builder, fileID ast.FileID) Output {
	var out Output
	file := b.Files.Get(fileID)
	if file == nil {
		return out
	}
	for _, id := range file.Items {
		item := b.Items.Get(id)
		if call, ok := b.Items.MacroCall(id); ok {
			if call.Name() == NameSeq {
				out.Fragments = append(out.Fragments, e.expandSeq(call, item.Span))
			}
			continue
		}
		for _, d := range record.Derives(item.Attrs) {
			switch d.Name {
			case NameBuilder, NameDebug:
				out.Fragments = append(out.Fragments, e.expandDerive(b, id, d))
			}
		}
	}
	return out
}

func (e *Expander) expandDerive(b *ast.Builder, id ast.ItemID, d record.Derive) Fragment {
	name := itemName(b, id)
	span := e.begin(d.Name + ":" + name)
	defer span.End("")

	decl, err := record.FromItem(b, id)
	if err != nil {
		return e.fail(d.Name, name, d.Span, err)
	}
	var text string
	switch d.Name {
	case NameBuilder:
		text, err = Builder(decl, e.Config)
	default:
		text, _, err = Debug(decl, e.Config)
	}
	if err != nil {
		return e.fail(d.Name, name, d.Span, err)
	}
	return Fragment{Derive: d.Name, Item: name, Span: decl.Span, Text: text}
}

func (e *Expander) expandSeq(call *ast.MacroCallItem, sp source.Span) Fragment {
	span := e.begin("seq")
	defer span.End("")

	inv, err := seq.Parse(call.Tokens, sp)
	if err != nil {
		return e.fail(NameSeq, "seq!", sp, err)
	}
	return Fragment{Derive: NameSeq, Item: "seq!", Span: sp, Text: inv.Expand()}
}

// fail reports err and turns it into a compile_error! fragment. Errors
// without a location are pinned to fallback.
func (e *Expander) fail(derive, item string, fallback source.Span, err error) Fragment {
	rerr, ok := record.AsError(err)
	if !ok {
		rerr = &record.Error{Code: diag.UnknownCode, Span: fallback, Msg: err.Error()}
	}
	if e.Reporter != nil {
		rerr.Report(e.Reporter)
	}
	return failed(derive, item, fallback, rerr)
}

func (e *Expander) begin(name string) *trace.Span {
	return trace.Begin(e.Tracer, trace.ScopeNode, name, e.Parent)
}

func itemName(b *ast.Builder, id ast.ItemID) string {
	if st, ok := b.Items.Struct(id); ok {
		return st.Name
	}
	if en, ok := b.Items.Enum(id); ok {
		return en.Name
	}
	return ""
}

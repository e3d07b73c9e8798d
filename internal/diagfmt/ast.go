package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"rsderive/internal/ast"
	"rsderive/internal/rsemit"
	"rsderive/internal/source"
)

// ASTNodeOutput is one node of the JSON AST dump.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTPretty печатает дерево элементов файла.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file not found")
	}
	header := "File"
	if fs != nil {
		if src := fs.Get(file.Span.File); src != nil {
			header = src.FormatPath("auto", fs.BaseDir())
		}
	}
	fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(file.Span, fs))

	printer := rsemit.NewPrinter(builder.Types)
	for i, itemID := range file.Items {
		node := itemTree(builder, printer, itemID, fs, i)
		writeTree(w, node, "", i == len(file.Items)-1)
	}
	return nil
}

func writeTree(w io.Writer, node *treeNode, prefix string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, node.label)
	for i, child := range node.children {
		writeTree(w, child, prefix+next, i == len(node.children)-1)
	}
}

func itemTree(b *ast.Builder, printer *rsemit.Printer, id ast.ItemID, fs *source.FileSet, idx int) *treeNode {
	item := b.Items.Get(id)
	if item == nil {
		return &treeNode{label: fmt.Sprintf("Item[%d]: <nil>", idx)}
	}
	kind := item.Kind.String()
	if item.Kind == ast.ItemOther && item.Keyword != "" {
		kind = item.Keyword
	}
	node := &treeNode{label: fmt.Sprintf("Item[%d]: %s (span: %s)", idx, kind, formatSpan(item.Span, fs))}
	if item.Vis.IsPub() {
		node.children = append(node.children, &treeNode{label: "Vis: " + item.Vis.Text})
	}
	for i := range item.Attrs {
		node.children = append(node.children, &treeNode{label: "Attr: " + attrText(&item.Attrs[i], fs)})
	}

	if st, ok := b.Items.Struct(id); ok {
		node.children = append(node.children, &treeNode{label: "Name: " + st.Name})
		if g := genericsText(printer, &st.Generics); g != "" {
			node.children = append(node.children, &treeNode{label: "Generics: " + g})
		}
		node.children = append(node.children, fieldsTree(printer, st.Style, st.Fields, fs))
	}
	if en, ok := b.Items.Enum(id); ok {
		node.children = append(node.children, &treeNode{label: "Name: " + en.Name})
		if g := genericsText(printer, &en.Generics); g != "" {
			node.children = append(node.children, &treeNode{label: "Generics: " + g})
		}
		variants := &treeNode{label: "Variants"}
		for i := range en.Variants {
			v := &en.Variants[i]
			vn := fieldsTree(printer, v.Style, v.Fields, fs)
			vn.label = v.Name + " (" + v.Style.String() + ")"
			variants.children = append(variants.children, vn)
		}
		node.children = append(node.children, variants)
	}
	if call, ok := b.Items.MacroCall(id); ok {
		node.children = append(node.children,
			&treeNode{label: "Macro: " + printer.Path(&call.Path) + "!"},
			&treeNode{label: fmt.Sprintf("Tokens: %d", len(call.Tokens))})
	}
	return node
}

func fieldsTree(printer *rsemit.Printer, style ast.StructStyle, fields []ast.Field, fs *source.FileSet) *treeNode {
	node := &treeNode{label: "Fields (" + style.String() + ")"}
	for i := range fields {
		f := &fields[i]
		name := f.Name
		if name == "" {
			name = fmt.Sprint(i)
		}
		fn := &treeNode{label: fmt.Sprintf("%s: %s", name, printer.Type(f.Type))}
		for j := range f.Attrs {
			fn.children = append(fn.children, &treeNode{label: "Attr: " + attrText(&f.Attrs[j], fs)})
		}
		node.children = append(node.children, fn)
	}
	return node
}

func genericsText(printer *rsemit.Printer, g *ast.Generics) string {
	return printer.DeclGenerics(g) + rsemit.WhereClause(printer.WherePredicates(g))
}

func attrText(a *ast.Attr, fs *source.FileSet) string {
	if fs != nil {
		return fs.Text(a.Span)
	}
	return a.Meta.Kind.String()
}

// FormatASTJSON выводит элементы файла в JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file not found")
	}
	printer := rsemit.NewPrinter(builder.Types)

	root := ASTNodeOutput{Type: "File", Span: file.Span}
	for _, itemID := range file.Items {
		root.Children = append(root.Children, itemJSON(builder, printer, itemID))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func itemJSON(b *ast.Builder, printer *rsemit.Printer, id ast.ItemID) ASTNodeOutput {
	item := b.Items.Get(id)
	node := ASTNodeOutput{Type: "Item", Kind: item.Kind.String(), Span: item.Span, Fields: map[string]any{}}
	if item.Keyword != "" {
		node.Fields["keyword"] = item.Keyword
	}
	if item.Vis.IsPub() {
		node.Fields["vis"] = item.Vis.Text
	}
	for i := range item.Attrs {
		node.Children = append(node.Children, attrJSON(printer, &item.Attrs[i]))
	}
	if st, ok := b.Items.Struct(id); ok {
		node.Text = st.Name
		node.Fields["style"] = st.Style.String()
		if g := genericsText(printer, &st.Generics); g != "" {
			node.Fields["generics"] = g
		}
		node.Children = append(node.Children, fieldsJSON(printer, st.Fields)...)
	}
	if en, ok := b.Items.Enum(id); ok {
		node.Text = en.Name
		if g := genericsText(printer, &en.Generics); g != "" {
			node.Fields["generics"] = g
		}
		for i := range en.Variants {
			v := &en.Variants[i]
			node.Children = append(node.Children, ASTNodeOutput{
				Type:     "Variant",
				Kind:     v.Style.String(),
				Span:     v.Span,
				Text:     v.Name,
				Children: fieldsJSON(printer, v.Fields),
			})
		}
	}
	if call, ok := b.Items.MacroCall(id); ok {
		node.Text = printer.Path(&call.Path)
		node.Fields["tokens"] = len(call.Tokens)
	}
	if len(node.Fields) == 0 {
		node.Fields = nil
	}
	return node
}

func fieldsJSON(printer *rsemit.Printer, fields []ast.Field) []ASTNodeOutput {
	out := make([]ASTNodeOutput, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		node := ASTNodeOutput{
			Type:   "Field",
			Span:   f.Span,
			Text:   f.Name,
			Fields: map[string]any{"type": printer.Type(f.Type)},
		}
		for j := range f.Attrs {
			node.Children = append(node.Children, attrJSON(printer, &f.Attrs[j]))
		}
		out = append(out, node)
	}
	return out
}

func attrJSON(printer *rsemit.Printer, a *ast.Attr) ASTNodeOutput {
	return ASTNodeOutput{Type: "Attr", Kind: a.Meta.Kind.String(), Span: a.Span, Text: printer.Path(&a.Meta.Path)}
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to start and end positions and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rsderive/internal/ast"
	"rsderive/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is within file content bounds (non-empty when items exist)
// 2) every item span is non-empty and fully contained in file.Span
// 3) file.Span covers the union of item spans (if any items exist)
// 4) struct field spans are non-empty and lie inside their item
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if len(f.Items) > 0 && f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	// 2) item spans within file span; 3) file covers union
	var union source.Span
	var haveItem bool
	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if !f.Span.Contains(sp) {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		if err := checkFields(b, it, sp); err != nil {
			return err
		}
		if !haveItem {
			union = sp
			haveItem = true
		} else {
			union = union.Cover(sp)
		}
	}

	if haveItem && !f.Span.Contains(union) {
		return fmt.Errorf("file span %v does not cover union of items %v", f.Span, union)
	}
	return nil
}

func checkFields(b *ast.Builder, id ast.ItemID, itemSpan source.Span) error {
	st, ok := b.Items.Struct(id)
	if !ok {
		return nil
	}
	if !itemSpan.Contains(st.NameSpan) {
		return fmt.Errorf("struct %s name span %v outside item %v", st.Name, st.NameSpan, itemSpan)
	}
	for i := range st.Fields {
		fl := &st.Fields[i]
		if fl.Span.End <= fl.Span.Start {
			return fmt.Errorf("%s: empty span for field #%d", st.Name, i)
		}
		if !itemSpan.Contains(fl.Span) {
			return fmt.Errorf("%s: field #%d span %v outside item %v", st.Name, i, fl.Span, itemSpan)
		}
		if ty := b.Types.Get(fl.Type); ty == nil {
			return fmt.Errorf("%s: field #%d has no type", st.Name, i)
		} else if !fl.Span.Contains(ty.Span) {
			return fmt.Errorf("%s: field #%d type span %v outside field %v", st.Name, i, ty.Span, fl.Span)
		}
	}
	return nil
}

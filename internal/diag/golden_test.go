package diag

import (
	"testing"

	"rsderive/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.rs", []byte("a\nb\n"), 0)
	otherFile := fs.Add("/workspace/src/lib.rs", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: otherFile, Start: 0, End: 0}, Msg: "declared here"},
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     DeriveAttrUnknownKey,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	expected := "note SYN2001 src/lib.rs:1:1 declared here\n" +
		"error SYN2001 testdata/golden/sample.rs:1:1 first line second\n" +
		"note SYN2001 testdata/golden/sample.rs:2:1 note line\n" +
		"warning DRV4102 testdata/golden/sample.rs:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestCodeIDPrefixes(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynExpectIdentifier, "SYN2003"},
		{IOLoadFileError, "IO4001"},
		{DeriveShapeNotNamedStruct, "DRV4101"},
		{SeqExpectIn, "DRV4202"},
		{ObsTimings, "OBS6001"},
		{Code(9999), "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	bag := NewBag(3)
	sp := func(start uint32) source.Span { return source.Span{File: 0, Start: start, End: start + 1} }

	bag.Add(Diagnostic{Severity: SevWarning, Code: SynUnexpectedToken, Primary: sp(5), Message: "w"})
	bag.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: sp(1), Message: "e"})
	bag.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: sp(1), Message: "e"})
	if bag.Add(Diagnostic{Severity: SevError, Primary: sp(0)}) {
		t.Fatalf("bag accepted diagnostic beyond its limit")
	}

	bag.Sort()
	bag.Dedup()
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].Primary.Start != 1 || items[1].Primary.Start != 5 {
		t.Fatalf("unexpected order: %+v", items)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(LexBadNumber, SevError, sp, "bad", nil)
	r.Report(LexBadNumber, SevError, sp, "bad", nil)
	ReportError(r, LexBadNumber, sp, "other").WithNote(sp, "n").Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if len(bag.Items()[1].Notes) != 1 {
		t.Fatalf("expected note to be forwarded")
	}
}

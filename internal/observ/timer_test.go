package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	tm.End(idx, "ok")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "ok" {
		t.Fatalf("report = %+v", r)
	}
	if (&Timer{}).Report().Phases != nil {
		t.Fatal("empty timer must give an empty report")
	}
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1}, {Name: "expand", DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "expand", DurationMS: 4}}}
	m := Merge(a, b)
	if m.TotalMS != 7 || len(m.Phases) != 2 {
		t.Fatalf("merged = %+v", m)
	}
	if m.Phases[1].Name != "expand" || m.Phases[1].DurationMS != 6 || m.Phases[1].Count != 2 {
		t.Fatalf("expand phase = %+v", m.Phases[1])
	}
	if got := m.Slowest(1); len(got) != 1 || got[0] != "expand" {
		t.Fatalf("slowest = %v", got)
	}
	if s := m.Summary(); !strings.Contains(s, "(x2)") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
}

package ui

import (
	"strings"
	"testing"

	"rsderive/internal/pipeline"
)

func TestProgressModelEvents(t *testing.T) {
	events := make(chan pipeline.Event)
	m := NewProgressModel("expand", []string{"a.rs", "b.rs"}, events).(*progressModel)

	m.Update(eventMsg(pipeline.Event{File: "a.rs", Stage: pipeline.StageParse, Status: pipeline.StatusWorking}))
	if m.items[0].status != "parsing" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.Update(eventMsg(pipeline.Event{File: "a.rs", Stage: pipeline.StageWrite, Status: pipeline.StatusDone, Detail: "2 fragments"}))
	m.Update(eventMsg(pipeline.Event{File: "b.rs", Stage: pipeline.StageExpand, Status: pipeline.StatusError}))
	m.Update(eventMsg(pipeline.Event{File: "unknown.rs", Status: pipeline.StatusDone}))

	view := m.View()
	for _, want := range []string{"a.rs", "2 fragments", "2/2 files", "1 with errors"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}

	m.Update(doneMsg{})
	if !m.done || !strings.Contains(m.View(), "done: expand") {
		t.Errorf("model did not finish:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/very/long/path.rs", 10); got != "src/..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a.rs", 10); got != "a.rs" {
		t.Errorf("truncate = %q", got)
	}
}

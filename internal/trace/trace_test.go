package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopePass, false},
		{LevelDetail, ScopePass, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	root := Begin(tr, ScopeDriver, "expand", 0)
	file := Begin(tr, ScopeFile, "file:lib.rs", root.ID())
	pass := Begin(tr, ScopePass, "parse", file.ID())
	node := Begin(tr, ScopeNode, "Builder:Command", pass.ID())
	node.End("")
	pass.WithExtra("tokens", "42").End("")
	file.End("2 fragments")
	root.End("")

	out := buf.String()
	for _, want := range []string{"→ expand", "→ file:lib.rs", "← parse {tokens=42}", "← file:lib.rs (2 fragments)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Builder:Command") {
		t.Errorf("node scope must be filtered at detail level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "seq", "4 iterations", 7)

	var ev jsonEvent
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid NDJSON %q: %v", buf.String(), err)
	}
	if ev.Kind != "point" || ev.Scope != "node" || ev.ParentID != 7 || ev.Detail != "4 iterations" {
		t.Errorf("event = %+v", ev)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("missing tracer must be Nop")
	}
	tr := NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != tr {
		t.Error("tracer not propagated")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 3})
	if CurrentSpan(ctx).SpanID != 3 {
		t.Error("span context not propagated")
	}
}

func TestNopSpan(t *testing.T) {
	s := Begin(nil, ScopeDriver, "x", 0)
	if s.ID() != 0 || s.End("") != 0 {
		t.Error("nil tracer must give an inert span")
	}
}

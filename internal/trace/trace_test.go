package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelFile, ScopeFile, true},
		{LevelFile, ScopePass, false},
		{LevelPass, ScopePass, true},
		{LevelPass, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestStartSpanNestsUnderCurrent(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx, file := StartSpan(ctx, ScopeFile, "compile:a.mini")
	_, pass := StartSpan(ctx, ScopePass, "parse")
	pass.End("ok")
	file.End("")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].Name != "parse" || events[1].ParentID != events[0].SpanID {
		t.Fatalf("pass span must nest under file span: %+v", events[1])
	}
	if events[2].Kind != KindSpanEnd || events[2].Detail != "ok" {
		t.Fatalf("unexpected end event %+v", events[2])
	}
}

func TestFilteredSpanKeepsParent(t *testing.T) {
	ring := NewRingTracer(16, LevelFile)
	ctx := WithTracer(context.Background(), ring)
	ctx, file := StartSpan(ctx, ScopeFile, "compile")
	inner, pass := StartSpan(ctx, ScopePass, "sema")
	if CurrentSpan(inner).SpanID != file.ID() {
		t.Fatalf("filtered span must keep the parent id")
	}
	pass.End("")
	file.End("")
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("pass events must be filtered, got %d events", n)
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeNode, name, "", 0)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Fatalf("ring kept %v", names)
	}
}

func TestStreamFormats(t *testing.T) {
	var text, nd bytes.Buffer
	tr := NewMultiTracer(LevelPass,
		NewStreamTracer(&text, LevelPass, FormatText),
		NewStreamTracer(&nd, LevelPass, FormatNDJSON))
	Begin(tr, ScopePass, "emit", 0).WithExtra("file", "a.mini").End("done")

	if !strings.Contains(text.String(), "← emit (done)") || !strings.Contains(text.String(), "{file=a.mini}") {
		t.Fatalf("unexpected text trace:\n%s", text.String())
	}
	lines := strings.Split(strings.TrimSpace(nd.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 ndjson lines, got %d", len(lines))
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid ndjson: %v", err)
	}
	if ev["kind"] != "end" || ev["name"] != "emit" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must give a disabled tracer (err=%v)", err)
	}
	tr, err = New(Config{Level: LevelPass, Mode: ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Ring(tr); !ok {
		t.Fatalf("both mode must expose the ring")
	}
	if _, err := ParseMode("spiral"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

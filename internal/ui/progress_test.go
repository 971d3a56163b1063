package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maciek-pioro/compiler/internal/buildpipeline"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("build", files, nil).(*progressModel)
}

func send(m *progressModel, file string, stage buildpipeline.Stage, status buildpipeline.Status) {
	m.Update(eventMsg(buildpipeline.Event{File: file, Stage: stage, Status: status}))
}

func TestApplyEventTracksStages(t *testing.T) {
	m := newModel("a.mini", "b.mini")
	send(m, "a.mini", buildpipeline.StageParse, buildpipeline.StatusWorking)
	if got := m.items[0].status; got != "parsing" {
		t.Fatalf("status = %q, want parsing", got)
	}
	// a phase finishing keeps the label of the phase in progress
	send(m, "a.mini", buildpipeline.StageParse, buildpipeline.StatusDone)
	if got := m.items[0].status; got != "parsing" {
		t.Fatalf("status = %q, want parsing", got)
	}
	send(m, "a.mini", buildpipeline.StageWrite, buildpipeline.StatusDone)
	if !m.items[0].final || m.items[0].status != "done" {
		t.Fatalf("item not final: %+v", m.items[0])
	}
	// events after the final one are ignored
	send(m, "a.mini", buildpipeline.StageSema, buildpipeline.StatusWorking)
	if m.items[0].status != "done" {
		t.Fatalf("final status overwritten: %q", m.items[0].status)
	}
	if f := m.fraction(); f != 0.5 {
		t.Fatalf("fraction = %v, want 0.5", f)
	}

	send(m, "b.mini", buildpipeline.StageSema, buildpipeline.StatusError)
	if !m.items[1].final || m.items[1].status != "error" {
		t.Fatalf("error not final: %+v", m.items[1])
	}
	if f := m.fraction(); f != 1.0 {
		t.Fatalf("fraction = %v, want 1", f)
	}
}

func TestUnknownFilesAndSummary(t *testing.T) {
	m := newModel("a.mini")
	send(m, "other.mini", buildpipeline.StageParse, buildpipeline.StatusWorking)
	if m.items[0].status != "queued" {
		t.Fatalf("unknown file changed state")
	}
	send(m, "", buildpipeline.StageWrite, buildpipeline.StatusDone)
	if m.summary != "done" {
		t.Fatalf("summary = %q", m.summary)
	}
}

func TestDoneQuitsAndViewLists(t *testing.T) {
	m := newModel("src/a.mini")
	send(m, "src/a.mini", buildpipeline.StageLoad, buildpipeline.StatusCached)
	_, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatalf("done must quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("done must return tea.Quit")
	}
	view := m.View()
	if !strings.Contains(view, "done: build") || !strings.Contains(view, "cached") || !strings.Contains(view, "src/a.mini") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestListenReportsClosedChannel(t *testing.T) {
	ch := make(chan buildpipeline.Event, 1)
	m := NewProgressModel("build", []string{"a"}, ch).(*progressModel)
	ch <- buildpipeline.Event{File: "a", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking}
	if _, ok := m.listenForEvent()().(eventMsg); !ok {
		t.Fatalf("want eventMsg")
	}
	close(ch)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatalf("want doneMsg")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a-very-long-path.mini", 10, "a-very-..."},
		{"abcdef", 3, "abc"},
		{"日本語のファイル", 7, "日本..."},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

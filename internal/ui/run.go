package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maciek-pioro/compiler/internal/buildpipeline"
)

// RunProgress drives the progress view until events is closed. The caller
// owns the channel and closes it when the build returns.
func RunProgress(title string, files []string, events <-chan buildpipeline.Event, out io.Writer) error {
	model := NewProgressModel(title, files, events)
	_, err := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil)).Run()
	return err
}

package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"spvdecomp/internal/pipeline"
	"spvdecomp/internal/ui"
)

// runWithUI runs fn while a Bubble Tea program on stderr shows its
// progress. stdout stays free for the decompiled text.
func runWithUI(title string, fn func(pipeline.ProgressSink) error) error {
	events := make(chan pipeline.Event, 256)
	outcome := make(chan error, 1)

	go func() {
		err := fn(pipeline.ChannelSink{Ch: events})
		close(events)
		outcome <- err
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, events),
		tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	// UI мог завершиться раньше: не даём fn заблокироваться на канале
	go func() {
		for range events {
		}
	}()
	err := <-outcome
	if uiErr != nil {
		return uiErr
	}
	return err
}

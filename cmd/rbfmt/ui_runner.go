package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rbfmt/internal/driver"
	"rbfmt/internal/pipeline"
	"rbfmt/internal/ui"
)

type fmtOutcome struct {
	results []driver.FormatResult
	err     error
}

// runFmtWithUI formats files while a bubbletea view follows the progress
// events. The model quits once the events channel is closed.
func runFmtWithUI(ctx context.Context, title string, files []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan fmtOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, files, optsCopy)
		outcomeCh <- fmtOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// view may stop early; keep the workers from blocking on a full channel
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

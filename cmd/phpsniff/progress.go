package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"phpsniff/internal/driver"
	"phpsniff/internal/engine"
	"phpsniff/internal/ui"
)

type runOutcome struct {
	report *driver.Report
	err    error
}

// runWithProgress runs the driver while a Bubble Tea view renders its events
// on stderr. Quitting the view cancels the run.
func runWithProgress(ctx context.Context, title string, eng *engine.Engine, paths []string, opts driver.Options) (*driver.Report, error) {
	files, err := driver.Discover(paths, eng.Config().Config.Files)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	opts.Events = events
	outcomeCh := make(chan runOutcome, 1)
	go func() {
		rep, err := driver.Run(ctx, eng, paths, opts)
		outcomeCh <- runOutcome{report: rep, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	uiFailed := uiErr != nil && ctx.Err() == nil

	// no-op unless the view was quit early
	cancel()
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if outcome.err != nil {
		return nil, outcome.err
	}
	if uiFailed {
		return outcome.report, uiErr
	}
	return outcome.report, nil
}

package main

import (
	"context"
	"os"

	"rsderive/internal/driver"
	"rsderive/internal/pipeline"
	"rsderive/internal/ui"
)

type expandOutcome struct {
	result *driver.Result
	err    error
}

// runExpandWithUI runs the driver in the background and renders its progress
// events until the run is over.
func runExpandWithUI(ctx context.Context, title, path string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan expandOutcome, 1)

	go func() {
		opts.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.Expand(ctx, path, opts)
		outcomeCh <- expandOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.Run(title, files, events, os.Stdout)
	// если UI завершился раньше, не блокируем отправителя
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

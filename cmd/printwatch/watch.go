package main

import (
	"fmt"

	"github.com/fwojciec/printwatch"
	pwslog "github.com/fwojciec/printwatch/slog"
	"github.com/fwojciec/printwatch/watch"
)

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	var results printwatch.ResultService
	if !c.NoStore {
		results = deps.Results
	}

	w := &watch.Watcher{
		Extractor:   pwslog.NewLoggingExtractor(deps.Extractor, deps.Logger),
		Writers:     outputWriters(c.JSONOut, c.CSVOut, c.PushURL),
		Results:     results,
		Logger:      deps.Logger,
		SourceMode:  printwatch.SourceMode(c.SourceMode),
		Concurrency: c.Concurrency,
		OnResult: func(result *printwatch.ExtractionResult) {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s\n",
				result.SourceFile, slicerLabel(result.Slicer), metricsLabel(result))
		},
	}

	if err := w.Run(deps.Ctx, c.Dir); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", printwatch.ErrorMessage(err))
		return err
	}
	return nil
}

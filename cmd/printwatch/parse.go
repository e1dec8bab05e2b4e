package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/printwatch"
	"github.com/fwojciec/printwatch/fs"
	pwhttp "github.com/fwojciec/printwatch/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	if c.JSONOut != "" && len(c.Files) > 1 {
		fmt.Fprintf(deps.Stderr, "error: --json-out accepts a single input file\n")
		return printwatch.Errorf(printwatch.EINVALID, "--json-out accepts a single input file")
	}

	writers := outputWriters(c.JSONOut, c.CSVOut, c.PushURL)
	mode := printwatch.SourceMode(c.SourceMode)

	// Extract concurrently, keeping results in input order.
	results := make([]*printwatch.ExtractionResult, len(c.Files))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for i, path := range c.Files {
		i, path := i, path
		g.Go(func() error {
			result, err := fs.ExtractFile(ctx, deps.Extractor, path, mode)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", printwatch.ErrorMessage(err))
		return err
	}

	for _, result := range results {
		for _, writer := range writers {
			if err := writer.WriteResult(deps.Ctx, result); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", printwatch.ErrorMessage(err))
				return err
			}
		}

		if !c.NoStore && deps.Results != nil {
			if err := deps.Results.CreateResult(deps.Ctx, result); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", printwatch.ErrorMessage(err))
				return err
			}
		}

		if !c.Quiet {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, string(out))
		}
	}

	return nil
}

// outputWriters assembles the writers selected by the shared output flags.
func outputWriters(jsonOut, csvOut, pushURL string) []printwatch.ResultWriter {
	var writers []printwatch.ResultWriter
	if jsonOut != "" {
		writers = append(writers, fs.NewJSONWriter(jsonOut))
	}
	if csvOut != "" {
		writers = append(writers, fs.NewCSVWriter(csvOut))
	}
	if pushURL != "" {
		writers = append(writers, pwhttp.NewPushWriter(pushURL, os.Getenv("PRINTWATCH_PUSH_TOKEN")))
	}
	return writers
}

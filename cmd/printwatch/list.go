package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/printwatch"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := printwatch.ResultFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.SourceFile != "" {
		filter.SourceFile = &c.SourceFile
	}
	if c.Slicer != "" {
		slicer := printwatch.Slicer(c.Slicer)
		filter.Slicer = &slicer
	}

	results, err := deps.Results.FindResults(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", printwatch.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found. Use 'printwatch parse' or 'printwatch watch' to extract some.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			r.ID, r.SourceFile, slicerLabel(r.Slicer), metricsLabel(r))
	}

	return nil
}

func slicerLabel(s printwatch.Slicer) string {
	if s == printwatch.SlicerUnknown {
		return "(unknown)"
	}
	return string(s)
}

// metricsLabel renders the present metric fields in a compact fixed order.
func metricsLabel(r *printwatch.ExtractionResult) string {
	var parts []string
	if r.FilamentMM != nil {
		parts = append(parts, strconv.FormatFloat(*r.FilamentMM, 'f', -1, 64)+"mm")
	}
	if r.FilamentG != nil {
		parts = append(parts, strconv.FormatFloat(*r.FilamentG, 'f', -1, 64)+"g")
	}
	if r.TimeSeconds != nil {
		parts = append(parts, printwatch.FormatSeconds(*r.TimeSeconds))
	}
	if len(parts) == 0 {
		return "(no metrics)"
	}
	return strings.Join(parts, "  ")
}

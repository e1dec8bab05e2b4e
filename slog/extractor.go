// Package slog provides logging decorators for the root package interfaces.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/printwatch"
)

// Ensure LoggingExtractor implements printwatch.Extractor.
var _ printwatch.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-file extraction logging.
type LoggingExtractor struct {
	next   printwatch.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next printwatch.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, r io.Reader, source string) (*printwatch.ExtractionResult, error) {
	begin := time.Now()
	result, err := e.next.Extract(ctx, r, source)
	if err != nil {
		e.logger.Error("extract",
			"source", source,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	slicer := string(result.Slicer)
	if result.Slicer == printwatch.SlicerUnknown {
		slicer = "(unknown)"
	}
	e.logger.Info("extract",
		"source", source,
		"slicer", slicer,
		"metrics", result.MetricFields(),
		"duration", time.Since(begin),
	)
	return result, nil
}

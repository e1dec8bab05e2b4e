package mock

import (
	"context"

	"github.com/fwojciec/printwatch"
)

var _ printwatch.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of printwatch.ResultWriter.
type ResultWriter struct {
	WriteResultFn func(ctx context.Context, result *printwatch.ExtractionResult) error
}

func (w *ResultWriter) WriteResult(ctx context.Context, result *printwatch.ExtractionResult) error {
	return w.WriteResultFn(ctx, result)
}

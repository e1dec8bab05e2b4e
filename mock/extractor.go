package mock

import (
	"context"
	"io"

	"github.com/fwojciec/printwatch"
)

var _ printwatch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of printwatch.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, r io.Reader, source string) (*printwatch.ExtractionResult, error)
}

func (e *Extractor) Extract(ctx context.Context, r io.Reader, source string) (*printwatch.ExtractionResult, error) {
	return e.ExtractFn(ctx, r, source)
}

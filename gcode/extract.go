package gcode

import (
	"bufio"
	"context"
	"io"

	"github.com/fwojciec/printwatch"
)

// maxLineBytes bounds scanner line length. Slicer comment lines are short,
// but G-code bodies can carry long encoded thumbnails.
const maxLineBytes = 1024 * 1024

// Ensure Engine implements printwatch.Extractor at compile time.
var _ printwatch.Extractor = (*Engine)(nil)

// Engine streams a file's lines once through the classifier and
// accumulator, feeding the slicer detector in the same pass. Extractions of
// different files share no state and are safe to run concurrently.
type Engine struct {
	classifier printwatch.LineClassifier
	detector   printwatch.SlicerDetector
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier replaces the default line classifier.
func WithClassifier(c printwatch.LineClassifier) Option {
	return func(e *Engine) {
		e.classifier = c
	}
}

// WithDetector replaces the default slicer detector.
func WithDetector(d printwatch.SlicerDetector) Option {
	return func(e *Engine) {
		e.detector = d
	}
}

// NewEngine creates an Engine with the default classifier and detector.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		classifier: NewClassifier(),
		detector:   NewDetector(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans the line stream and returns the finalized result. A file
// with zero recognizable metrics produces a valid, all-absent result; only
// a read failure of the stream itself is an error.
func (e *Engine) Extract(ctx context.Context, r io.Reader, source string) (*printwatch.ExtractionResult, error) {
	acc := NewAccumulator(source)
	slicer := printwatch.SlicerUnknown

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := scanner.Text()

		// Identity is first-seen-wins: the generator tag is a header
		// line, while metric totals are last-seen-wins in Apply.
		if slicer == printwatch.SlicerUnknown {
			slicer = e.detector.Detect(line)
		}

		for _, m := range e.classifier.Classify(line) {
			if m.Kind == printwatch.MetricSlicerHint {
				// Already covered by the per-line detection above.
				continue
			}
			acc.Apply(m)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, printwatch.Errorf(printwatch.EINTERNAL, "read %s: %v", source, err)
	}

	return acc.Finalize(slicer), nil
}

package printwatch

import (
	"context"
	"io"
)

// MetricKind identifies what a classified comment line encodes.
type MetricKind string

// Metric kinds recognized by the line classifier.
const (
	// MetricFilamentMM is a filament length already labeled in millimeters.
	MetricFilamentMM MetricKind = "filament_mm"

	// MetricFilamentG is a filament mass already labeled in grams.
	MetricFilamentG MetricKind = "filament_g"

	// MetricFilamentUsed is a filament amount whose unit is carried inline
	// in the value (e.g. "1.2m", "3.4g") or implied by slicer convention.
	MetricFilamentUsed MetricKind = "filament_used"

	// MetricTimeEstimate is an estimated print duration in any supported
	// textual shape (component, clock, or bare seconds).
	MetricTimeEstimate MetricKind = "time_estimate"

	// MetricSlicerHint is a line carrying a slicer-identifying signature.
	MetricSlicerHint MetricKind = "slicer_hint"
)

// Match is a single metric report recovered from one comment line. RawValue
// is the unparsed value text; normalization to canonical units happens in
// the accumulator.
type Match struct {
	Kind     MetricKind
	RawValue string
}

// LineClassifier reports the metrics a single comment line encodes.
// Unrecognized lines yield zero matches; comment noise is expected and
// common.
type LineClassifier interface {
	Classify(line string) []Match
}

// SlicerDetector identifies the originating slicer from comment lines.
// Lines are scanned in order and the first recognized signature wins;
// SlicerUnknown is returned when nothing matches.
type SlicerDetector interface {
	Detect(lines ...string) Slicer
}

// Extractor produces an ExtractionResult from a stream of G-code lines.
// Per-line and per-metric problems are recovered internally; only a
// stream-level read failure is returned as an error. A result with no
// metrics found is a valid success.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader, source string) (*ExtractionResult, error)
}

package gcode

import "github.com/fwojciec/printwatch"

// Accumulator merges classified matches across all lines of one file into a
// single in-progress ExtractionResult. Duplicate reports of the same metric
// resolve last-seen-wins: cumulative "total" lines conventionally appear
// after per-object breakdowns, so the later report is the better one. Only
// canonical units (mm, g, seconds) are ever stored.
type Accumulator struct {
	result *printwatch.ExtractionResult

	// pending holds filament amounts with no inline unit; their meaning
	// depends on slicer convention and is resolved at finalization.
	pending []string
}

// NewAccumulator creates an Accumulator for one source file.
func NewAccumulator(source string) *Accumulator {
	return &Accumulator{
		result: &printwatch.ExtractionResult{SourceFile: source},
	}
}

// Apply folds one classified match into the result. A recognized label
// whose value cannot be normalized is treated the same as an absent one:
// the match is dropped, nothing fails.
func (a *Accumulator) Apply(m printwatch.Match) {
	switch m.Kind {
	case printwatch.MetricFilamentMM:
		value, unit, err := SplitAmount(m.RawValue)
		if err != nil {
			return
		}
		if mm, err := Millimeters(value, unit); err == nil {
			a.result.FilamentMM = &mm
		}

	case printwatch.MetricFilamentG:
		value, unit, err := SplitAmount(m.RawValue)
		if err != nil {
			return
		}
		if g, err := Grams(value, unit); err == nil {
			a.result.FilamentG = &g
		}

	case printwatch.MetricFilamentUsed:
		a.applyFilamentUsed(m.RawValue)

	case printwatch.MetricTimeEstimate:
		if secs, err := Seconds(m.RawValue); err == nil && secs >= 0 {
			a.result.TimeSeconds = &secs
		}
	}
}

// applyFilamentUsed dispatches an inline-unit filament amount to the length
// or mass field. Amounts without a unit are held pending until the slicer
// is known.
func (a *Accumulator) applyFilamentUsed(raw string) {
	value, unit, err := SplitAmount(raw)
	if err != nil {
		return
	}
	switch unit {
	case "mm", "cm", "m":
		if mm, err := Millimeters(value, unit); err == nil {
			a.result.FilamentMM = &mm
		}
	case "g", "kg":
		if g, err := Grams(value, unit); err == nil {
			a.result.FilamentG = &g
		}
	case "":
		a.pending = append(a.pending, raw)
	}
}

// Finalize resolves pending convention-dependent amounts against the
// detected slicer and returns the completed result. Explicit-unit reports
// outrank convention-resolved ones; among pending amounts the last seen
// wins. When the slicer is unknown the pending amounts are dropped: absent
// is preferred over wrong.
func (a *Accumulator) Finalize(slicer printwatch.Slicer) *printwatch.ExtractionResult {
	a.result.Slicer = slicer

	// Cura reports bare filament lengths in meters.
	if a.result.FilamentMM == nil && slicer == printwatch.SlicerCura {
		for _, raw := range a.pending {
			value, _, err := SplitAmount(raw)
			if err != nil {
				continue
			}
			if mm, err := Millimeters(value, "m"); err == nil {
				a.result.FilamentMM = &mm
			}
		}
	}
	a.pending = nil

	return a.result
}

package gcode

import (
	"regexp"
	"strings"

	"github.com/fwojciec/printwatch"
)

// Ensure Classifier implements printwatch.LineClassifier at compile time.
var _ printwatch.LineClassifier = (*Classifier)(nil)

// Classifier matches single comment lines against a table of label
// patterns. The table keeps the classifier open for new dialects without
// touching existing rules: adding a format means adding a row, not a
// branch.
type Classifier struct {
	rules    []rule
	detector *Detector
}

// rule maps one label pattern to the metric kind its value encodes.
type rule struct {
	kind printwatch.MetricKind
	re   *regexp.Regexp

	// split breaks the captured value on commas and yields one match per
	// piece, for dialects that pack several amounts into one line.
	split bool
}

// defaultRules covers the label families of the four recognized dialects.
// Order matters: the first matching rule in a segment wins, so specific
// labels precede generic ones.
func defaultRules() []rule {
	return []rule{
		// PrusaSlicer / Bambu Studio / OrcaSlicer filament totals.
		{printwatch.MetricFilamentMM, regexp.MustCompile(`(?i)filament used\s*\[mm\]\s*[=:]\s*(.+)$`), true},
		{printwatch.MetricFilamentG, regexp.MustCompile(`(?i)filament used\s*\[g\]\s*[=:]\s*(.+)$`), true},
		// Bambu Studio totals use "length"/"weight" instead of "used".
		{printwatch.MetricFilamentMM, regexp.MustCompile(`(?i)filament length\s*\[mm\]\s*[=:]\s*(.+)$`), true},
		{printwatch.MetricFilamentG, regexp.MustCompile(`(?i)filament weight\s*\[g\]\s*[=:]\s*(.+)$`), true},
		// Cura-style generic label; the unit rides inline in each value
		// ("0.84m", "2.5g") or is implied by slicer convention.
		{printwatch.MetricFilamentUsed, regexp.MustCompile(`(?i)^filament used\s*:\s*(.+)$`), true},
		// Cura machine-readable estimate in bare seconds.
		{printwatch.MetricTimeEstimate, regexp.MustCompile(`(?i)^time\s*:\s*([0-9]+)\s*$`), false},
		// Prusa-family human-readable estimate, with or without a mode
		// qualifier: "estimated printing time (normal mode) = 17h56m".
		{printwatch.MetricTimeEstimate, regexp.MustCompile(`(?i)estimated printing time.*?[=:]\s*(.+)$`), false},
		// Bambu Studio total; appears after the per-model breakdown.
		{printwatch.MetricTimeEstimate, regexp.MustCompile(`(?i)total estimated time\s*[=:]\s*(.+)$`), false},
		// Other variants: "; printing time: 1h 23m".
		{printwatch.MetricTimeEstimate, regexp.MustCompile(`(?i)(?:printing|print) time\s*[=:]\s*(.+)$`), false},
	}
}

// NewClassifier creates a Classifier with the default rule table.
func NewClassifier() *Classifier {
	return &Classifier{
		rules:    defaultRules(),
		detector: NewDetector(),
	}
}

// Classify reports the metrics a single line encodes. Lines matching no
// known pattern yield zero matches, never an error. A line is split on
// semicolons first, so composite lines that pack several reports into one
// physical line (Bambu Studio does this for time estimates) classify each
// segment independently; this also strips the leading comment marker.
func (c *Classifier) Classify(line string) []printwatch.Match {
	var matches []printwatch.Match
	for _, segment := range strings.Split(line, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		matches = append(matches, c.classifySegment(segment)...)
	}
	return matches
}

func (c *Classifier) classifySegment(segment string) []printwatch.Match {
	var matches []printwatch.Match

	if c.detector.Detect(segment) != printwatch.SlicerUnknown {
		matches = append(matches, printwatch.Match{
			Kind:     printwatch.MetricSlicerHint,
			RawValue: segment,
		})
	}

	for _, r := range c.rules {
		m := r.re.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(m[1])
		if !r.split {
			matches = append(matches, printwatch.Match{Kind: r.kind, RawValue: raw})
			break
		}
		for _, piece := range strings.Split(raw, ",") {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			matches = append(matches, printwatch.Match{Kind: r.kind, RawValue: piece})
		}
		break
	}

	return matches
}

package gcode

import (
	"regexp"

	"github.com/fwojciec/printwatch"
)

// Ensure Detector implements printwatch.SlicerDetector at compile time.
var _ printwatch.SlicerDetector = (*Detector)(nil)

// Detector infers the originating slicer from generator tags and other
// signature strings in comment lines. Signatures usually sit in the file
// header, but no ordering is assumed: every line offered is checked.
type Detector struct {
	signatures []signature
}

type signature struct {
	slicer printwatch.Slicer
	re     *regexp.Regexp
}

// NewDetector creates a Detector with the default signature table.
// Bambu Studio and OrcaSlicer are checked before PrusaSlicer because both
// are PrusaSlicer forks whose headers can mention the ancestor.
func NewDetector() *Detector {
	return &Detector{
		signatures: []signature{
			{printwatch.SlicerBambu, regexp.MustCompile(`(?i)bambu\s*studio`)},
			{printwatch.SlicerOrca, regexp.MustCompile(`(?i)orcaslicer`)},
			{printwatch.SlicerPrusa, regexp.MustCompile(`(?i)prusaslicer`)},
			{printwatch.SlicerCura, regexp.MustCompile(`(?i)cura_steamengine|\bcura\b`)},
		},
	}
}

// Detect scans lines in order and returns the slicer of the first matching
// signature. Returns SlicerUnknown when nothing matches.
func (d *Detector) Detect(lines ...string) printwatch.Slicer {
	for _, line := range lines {
		for _, sig := range d.signatures {
			if sig.re.MatchString(line) {
				return sig.slicer
			}
		}
	}
	return printwatch.SlicerUnknown
}

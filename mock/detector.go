package mock

import "github.com/fwojciec/printwatch"

var _ printwatch.SlicerDetector = (*SlicerDetector)(nil)

// SlicerDetector is a mock implementation of printwatch.SlicerDetector.
type SlicerDetector struct {
	DetectFn func(lines ...string) printwatch.Slicer
}

func (d *SlicerDetector) Detect(lines ...string) printwatch.Slicer {
	return d.DetectFn(lines...)
}

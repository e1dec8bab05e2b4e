package gcode_test

import (
	"testing"

	"github.com/fwojciec/printwatch"
	"github.com/fwojciec/printwatch/gcode"
	"github.com/stretchr/testify/assert"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("recognizes generator signatures", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			line string
			want printwatch.Slicer
		}{
			{"; generated by PrusaSlicer 2.7.1+win64 on 2024-03-02", printwatch.SlicerPrusa},
			{"; BambuStudio 01.08.04.51", printwatch.SlicerBambu},
			{"; Bambu Studio", printwatch.SlicerBambu},
			{"; generated by OrcaSlicer 1.9.0 on 2024-02-10", printwatch.SlicerOrca},
			{";Generated with Cura_SteamEngine 5.6.0", printwatch.SlicerCura},
			{";generated by cura", printwatch.SlicerCura},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, gcode.NewDetector().Detect(tt.line), "line %q", tt.line)
		}
	})

	t.Run("returns unknown without a signature", func(t *testing.T) {
		t.Parallel()

		d := gcode.NewDetector()
		assert.Equal(t, printwatch.SlicerUnknown, d.Detect())
		assert.Equal(t, printwatch.SlicerUnknown, d.Detect("G1 X10 Y10", "; layer 1", "M104 S210"))
	})

	t.Run("first signature wins across lines", func(t *testing.T) {
		t.Parallel()

		d := gcode.NewDetector()
		got := d.Detect(
			"; nozzle_diameter = 0.4",
			"; generated by OrcaSlicer 1.9.0",
			"; generated by PrusaSlicer 2.7.1",
		)
		assert.Equal(t, printwatch.SlicerOrca, got)
	})

	t.Run("does not assume header ordering", func(t *testing.T) {
		t.Parallel()

		d := gcode.NewDetector()
		got := d.Detect("G28", "G1 Z5", ";Generated with Cura_SteamEngine 5.6.0")
		assert.Equal(t, printwatch.SlicerCura, got)
	})
}

package fs_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/printwatch"
	"github.com/fwojciec/printwatch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *printwatch.ExtractionResult {
	mm := 1234.5
	secs := int64(3723)
	return &printwatch.ExtractionResult{
		SourceFile:  "benchy.gcode",
		Slicer:      printwatch.SlicerPrusa,
		FilamentMM:  &mm,
		TimeSeconds: &secs,
	}
}

func TestJSONWriter_WriteResult(t *testing.T) {
	t.Parallel()

	t.Run("writes one object with null for absent fields", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "latest.json")
		w := fs.NewJSONWriter(path)

		require.NoError(t, w.WriteResult(context.Background(), sampleResult()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, 1234.5, m["filament_mm"])
		assert.Nil(t, m["filament_g"])
		assert.Equal(t, float64(3723), m["time_seconds"])
		assert.Equal(t, "PrusaSlicer", m["slicer"])
		assert.Equal(t, "benchy.gcode", m["source_file"])
	})

	t.Run("overwrites with the latest result", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "latest.json")
		w := fs.NewJSONWriter(path)

		require.NoError(t, w.WriteResult(context.Background(), sampleResult()))

		second := sampleResult()
		second.SourceFile = "whistle.gcode"
		require.NoError(t, w.WriteResult(context.Background(), second))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "whistle.gcode")
		assert.NotContains(t, string(data), "benchy.gcode")
	})

	t.Run("rejects invalid result", func(t *testing.T) {
		t.Parallel()

		w := fs.NewJSONWriter(filepath.Join(t.TempDir(), "latest.json"))
		err := w.WriteResult(context.Background(), &printwatch.ExtractionResult{})
		require.Error(t, err)
		assert.Equal(t, printwatch.EINVALID, printwatch.ErrorCode(err))
	})
}

func TestCSVWriter_WriteResult(t *testing.T) {
	t.Parallel()

	t.Run("writes header once and appends rows", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "usage.csv")
		w := fs.NewCSVWriter(path)

		require.NoError(t, w.WriteResult(context.Background(), sampleResult()))

		second := &printwatch.ExtractionResult{SourceFile: "empty.gcode"}
		require.NoError(t, w.WriteResult(context.Background(), second))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, []string{"filament_mm", "filament_g", "time_seconds", "slicer", "source_file"}, rows[0])
		assert.Equal(t, []string{"1234.5", "", "3723", "PrusaSlicer", "benchy.gcode"}, rows[1])
		assert.Equal(t, []string{"", "", "", "", "empty.gcode"}, rows[2])
	})

	t.Run("rejects invalid result", func(t *testing.T) {
		t.Parallel()

		w := fs.NewCSVWriter(filepath.Join(t.TempDir(), "usage.csv"))
		err := w.WriteResult(context.Background(), &printwatch.ExtractionResult{})
		require.Error(t, err)
		assert.Equal(t, printwatch.EINVALID, printwatch.ErrorCode(err))
	})
}

package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/printwatch"
	main "github.com/fwojciec/printwatch/cmd/printwatch"
	"github.com/fwojciec/printwatch/gcode"
	"github.com/fwojciec/printwatch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prusaSample = `; generated by PrusaSlicer 2.7.0
; filament used [mm] = 1234.56
; filament used [g] = 3.81
; estimated printing time (normal mode) = 1h 2m 3s
G1 X10 Y10
`

func writeSample(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(prusaSample), 0o644))
	return path
}

func parseDeps(stdout, stderr *bytes.Buffer, results printwatch.ResultService) *main.Dependencies {
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Extractor: gcode.NewEngine(),
		Results:   results,
	}
}

func TestParseCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints result JSON and stores it", func(t *testing.T) {
		t.Parallel()

		path := writeSample(t, "benchy.gcode")

		var stored *printwatch.ExtractionResult
		results := &mock.ResultService{
			CreateResultFn: func(_ context.Context, result *printwatch.ExtractionResult) error {
				stored = result
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd := &main.ParseCmd{Files: []string{path}, SourceMode: "name", Concurrency: 1}

		err := cmd.Run(parseDeps(stdout, stderr, results))

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "benchy.gcode", stored.SourceFile)

		var decoded printwatch.ExtractionResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
		assert.Equal(t, printwatch.SlicerPrusa, decoded.Slicer)
		require.NotNil(t, decoded.TimeSeconds)
		assert.Equal(t, int64(3723), *decoded.TimeSeconds)
	})

	t.Run("quiet suppresses stdout", func(t *testing.T) {
		t.Parallel()

		path := writeSample(t, "quiet.gcode")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd := &main.ParseCmd{Files: []string{path}, SourceMode: "name", Quiet: true, NoStore: true, Concurrency: 1}

		err := cmd.Run(parseDeps(stdout, stderr, nil))

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
	})

	t.Run("no-store skips the result service", func(t *testing.T) {
		t.Parallel()

		path := writeSample(t, "nostore.gcode")

		results := &mock.ResultService{
			CreateResultFn: func(_ context.Context, _ *printwatch.ExtractionResult) error {
				t.Error("CreateResult should not be called with --no-store")
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd := &main.ParseCmd{Files: []string{path}, SourceMode: "name", Quiet: true, NoStore: true, Concurrency: 1}

		err := cmd.Run(parseDeps(stdout, stderr, results))

		require.NoError(t, err)
	})

	t.Run("writes JSON and CSV output files", func(t *testing.T) {
		t.Parallel()

		path := writeSample(t, "out.gcode")
		dir := t.TempDir()
		jsonOut := filepath.Join(dir, "result.json")
		csvOut := filepath.Join(dir, "results.csv")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd := &main.ParseCmd{
			Files:       []string{path},
			SourceMode:  "name",
			JSONOut:     jsonOut,
			CSVOut:      csvOut,
			Quiet:       true,
			NoStore:     true,
			Concurrency: 1,
		}

		err := cmd.Run(parseDeps(stdout, stderr, nil))

		require.NoError(t, err)
		jsonData, err := os.ReadFile(jsonOut)
		require.NoError(t, err)
		assert.Contains(t, string(jsonData), "PrusaSlicer")
		csvData, err := os.ReadFile(csvOut)
		require.NoError(t, err)
		assert.Contains(t, string(csvData), "filament_mm")
		assert.Contains(t, string(csvData), "out.gcode")
	})

	t.Run("rejects json-out with multiple inputs", func(t *testing.T) {
		t.Parallel()

		a := writeSample(t, "a.gcode")
		b := writeSample(t, "b.gcode")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd := &main.ParseCmd{
			Files:       []string{a, b},
			SourceMode:  "name",
			JSONOut:     filepath.Join(t.TempDir(), "out.json"),
			Concurrency: 1,
		}

		err := cmd.Run(parseDeps(stdout, stderr, nil))

		require.Error(t, err)
		assert.Equal(t, printwatch.EINVALID, printwatch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("parses multiple files in input order", func(t *testing.T) {
		t.Parallel()

		a := writeSample(t, "first.gcode")
		b := writeSample(t, "second.gcode")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd := &main.ParseCmd{Files: []string{a, b}, SourceMode: "name", NoStore: true, Concurrency: 4}

		err := cmd.Run(parseDeps(stdout, stderr, nil))

		require.NoError(t, err)
		output := stdout.String()
		first := bytes.Index(stdout.Bytes(), []byte("first.gcode"))
		second := bytes.Index(stdout.Bytes(), []byte("second.gcode"))
		require.Contains(t, output, "first.gcode")
		require.Contains(t, output, "second.gcode")
		assert.Less(t, first, second)
	})

	t.Run("returns error for a missing file", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		cmd := &main.ParseCmd{
			Files:       []string{filepath.Join(t.TempDir(), "missing.gcode")},
			SourceMode:  "name",
			NoStore:     true,
			Concurrency: 1,
		}

		err := cmd.Run(parseDeps(stdout, stderr, nil))

		require.Error(t, err)
		assert.Equal(t, printwatch.ENOTFOUND, printwatch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}

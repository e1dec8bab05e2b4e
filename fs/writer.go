package fs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/printwatch"
)

// Ensure writers implement printwatch.ResultWriter at compile time.
var (
	_ printwatch.ResultWriter = (*JSONWriter)(nil)
	_ printwatch.ResultWriter = (*CSVWriter)(nil)
)

// JSONWriter writes the latest result to a JSON file, one object per file.
// Absent metric fields are written as null.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a JSONWriter that writes to the given path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// WriteResult serializes the result, creating parent directories as needed.
func (w *JSONWriter) WriteResult(_ context.Context, result *printwatch.ExtractionResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return printwatch.Errorf(printwatch.EINTERNAL, "marshal result for %s: %v", result.SourceFile, err)
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return printwatch.Errorf(printwatch.EINTERNAL, "create output directory %s: %v", dir, err)
		}
	}

	return os.WriteFile(w.path, append(data, '\n'), 0644)
}

// csvHeader is the fixed column order of the CSV output.
var csvHeader = []string{"filament_mm", "filament_g", "time_seconds", "slicer", "source_file"}

// CSVWriter appends one row per result to a CSV file, writing the header
// row when the file does not yet exist. Absent fields become empty cells.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter that appends to the given path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// WriteResult appends the result as a CSV row.
func (w *CSVWriter) WriteResult(_ context.Context, result *printwatch.ExtractionResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return printwatch.Errorf(printwatch.EINTERNAL, "create output directory %s: %v", dir, err)
		}
	}

	_, statErr := os.Stat(w.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return printwatch.Errorf(printwatch.EINTERNAL, "open %s: %v", w.path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if writeHeader {
		if err := cw.Write(csvHeader); err != nil {
			return printwatch.Errorf(printwatch.EINTERNAL, "write header to %s: %v", w.path, err)
		}
	}
	if err := cw.Write(csvRow(result)); err != nil {
		return printwatch.Errorf(printwatch.EINTERNAL, "write row to %s: %v", w.path, err)
	}
	cw.Flush()

	return cw.Error()
}

func csvRow(result *printwatch.ExtractionResult) []string {
	row := make([]string, 0, len(csvHeader))

	if result.FilamentMM != nil {
		row = append(row, strconv.FormatFloat(*result.FilamentMM, 'f', -1, 64))
	} else {
		row = append(row, "")
	}
	if result.FilamentG != nil {
		row = append(row, strconv.FormatFloat(*result.FilamentG, 'f', -1, 64))
	} else {
		row = append(row, "")
	}
	if result.TimeSeconds != nil {
		row = append(row, strconv.FormatInt(*result.TimeSeconds, 10))
	} else {
		row = append(row, "")
	}

	return append(row, string(result.Slicer), result.SourceFile)
}

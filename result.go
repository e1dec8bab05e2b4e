package printwatch

import (
	"context"
	"encoding/json"
	"time"
)

// Slicer identifies the tool that generated a G-code file.
type Slicer string

// Slicers with recognized comment dialects.
const (
	SlicerUnknown Slicer = ""
	SlicerPrusa   Slicer = "PrusaSlicer"
	SlicerBambu   Slicer = "BambuStudio"
	SlicerOrca    Slicer = "OrcaSlicer"
	SlicerCura    Slicer = "Cura"
)

// MarshalJSON renders SlicerUnknown as null so that "not detected" is
// distinguishable from any real slicer name in exported output.
func (s Slicer) MarshalJSON() ([]byte, error) {
	if s == SlicerUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON accepts null as SlicerUnknown.
func (s *Slicer) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = SlicerUnknown
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Slicer(v)
	return nil
}

// ExtractionResult holds the metrics recovered from one G-code file.
//
// The metric fields are pointers because absence means "not found", never
// zero: a file may legitimately report filament in millimeters but not
// grams, or no print time at all. Nil fields marshal to JSON null.
type ExtractionResult struct {
	ID         string `json:"id,omitempty"`
	SourceFile string `json:"source_file"`

	// SourceHash is the xxHash of the file contents, used to avoid
	// re-processing the same file in watch mode.
	SourceHash string `json:"source_hash,omitempty"`

	Slicer      Slicer   `json:"slicer"`
	FilamentMM  *float64 `json:"filament_mm"`
	FilamentG   *float64 `json:"filament_g"`
	TimeSeconds *int64   `json:"time_seconds"`

	ExtractedAt time.Time `json:"extracted_at,omitzero"`
}

// Validate returns an error if the result contains invalid fields.
func (r *ExtractionResult) Validate() error {
	if r.SourceFile == "" {
		return Errorf(EINVALID, "result source file required")
	}
	if r.TimeSeconds != nil && *r.TimeSeconds < 0 {
		return Errorf(EINVALID, "result time must be non-negative")
	}
	return nil
}

// Empty reports whether no metric was found at all. An empty result is
// still a successful extraction, not an error.
func (r *ExtractionResult) Empty() bool {
	return r.FilamentMM == nil && r.FilamentG == nil &&
		r.TimeSeconds == nil && r.Slicer == SlicerUnknown
}

// MetricFields returns the names of the metric fields that were found.
func (r *ExtractionResult) MetricFields() []string {
	var fields []string
	if r.FilamentMM != nil {
		fields = append(fields, "filament_mm")
	}
	if r.FilamentG != nil {
		fields = append(fields, "filament_g")
	}
	if r.TimeSeconds != nil {
		fields = append(fields, "time_seconds")
	}
	return fields
}

// SourceMode controls how file paths are recorded in results. Full paths
// can leak local folder structure into exported files, so the default
// keeps only the file name.
type SourceMode string

// Source path recording modes.
const (
	SourceModeName SourceMode = "name"
	SourceModeFull SourceMode = "full"
)

// ResultWriter routes a finalized result to an output (JSON file, CSV
// appender, HTTP push). Writers only read the result.
type ResultWriter interface {
	WriteResult(ctx context.Context, result *ExtractionResult) error
}

// SortOrder represents the sort order for result queries.
type SortOrder string

// SortOrder constants for ResultFilter.
const (
	SortByExtractedAt SortOrder = "extracted_at"
	SortBySourceFile  SortOrder = "source_file"
)

// ResultFilter represents a filter for FindResults.
type ResultFilter struct {
	ID         *string `json:"id"`
	SourceFile *string `json:"source_file"`
	Slicer     *Slicer `json:"slicer"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sort_by"`
}

// ResultService represents a service for managing extraction history.
type ResultService interface {
	// CreateResult persists a new result, assigning ID and ExtractedAt.
	CreateResult(ctx context.Context, result *ExtractionResult) error

	// FindResultByID retrieves a result by ID.
	// Returns ENOTFOUND if the result does not exist.
	FindResultByID(ctx context.Context, id string) (*ExtractionResult, error)

	// FindResults retrieves results matching the filter.
	FindResults(ctx context.Context, filter ResultFilter) ([]*ExtractionResult, error)

	// FindResultBySourceHash retrieves the most recent result for a
	// content hash. Returns ENOTFOUND if no such result exists.
	FindResultBySourceHash(ctx context.Context, hash string) (*ExtractionResult, error)

	// DeleteResult permanently removes a result.
	// Returns ENOTFOUND if the result does not exist.
	DeleteResult(ctx context.Context, id string) error
}

package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/printwatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ printwatch.ResultService = (*ResultService)(nil)

// ResultService implements printwatch.ResultService using SQLite.
type ResultService struct {
	db *DB
}

// NewResultService creates a new ResultService.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db}
}

// CreateResult persists a new result, assigning ID and ExtractedAt.
func (s *ResultService) CreateResult(ctx context.Context, result *printwatch.ExtractionResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	result.ID = uuid.New().String()
	result.ExtractedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (id, source_file, source_hash, slicer, filament_mm, filament_g, time_seconds, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, result.ID, result.SourceFile, result.SourceHash, string(result.Slicer),
		nullFloat(result.FilamentMM), nullFloat(result.FilamentG), nullInt(result.TimeSeconds),
		result.ExtractedAt.Format(time.RFC3339))

	return err
}

// FindResultByID retrieves a result by ID.
func (s *ResultService) FindResultByID(ctx context.Context, id string) (*printwatch.ExtractionResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_file, source_hash, slicer, filament_mm, filament_g, time_seconds, extracted_at
		FROM results
		WHERE id = ?
	`, id)

	result, err := scanResult(row.Scan)
	if err == sql.ErrNoRows {
		return nil, printwatch.Errorf(printwatch.ENOTFOUND, "result not found")
	}
	return result, err
}

// FindResultBySourceHash retrieves the most recent result for a content hash.
func (s *ResultService) FindResultBySourceHash(ctx context.Context, hash string) (*printwatch.ExtractionResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_file, source_hash, slicer, filament_mm, filament_g, time_seconds, extracted_at
		FROM results
		WHERE source_hash = ?
		ORDER BY extracted_at DESC
		LIMIT 1
	`, hash)

	result, err := scanResult(row.Scan)
	if err == sql.ErrNoRows {
		return nil, printwatch.Errorf(printwatch.ENOTFOUND, "no result for source hash")
	}
	return result, err
}

// FindResults retrieves results matching the filter.
func (s *ResultService) FindResults(ctx context.Context, filter printwatch.ResultFilter) ([]*printwatch.ExtractionResult, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_file, source_hash, slicer, filament_mm, filament_g, time_seconds, extracted_at FROM results WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceFile != nil {
		query.WriteString(" AND source_file = ?")
		args = append(args, *filter.SourceFile)
	}
	if filter.Slicer != nil {
		query.WriteString(" AND slicer = ?")
		args = append(args, string(*filter.Slicer))
	}

	switch filter.SortBy {
	case printwatch.SortBySourceFile:
		query.WriteString(" ORDER BY source_file ASC")
	default:
		query.WriteString(" ORDER BY extracted_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*printwatch.ExtractionResult
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// DeleteResult permanently removes a result.
func (s *ResultService) DeleteResult(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return printwatch.Errorf(printwatch.ENOTFOUND, "result not found")
	}
	return nil
}

// scanResult reads one results row using the given Scan function.
func scanResult(scan func(dest ...any) error) (*printwatch.ExtractionResult, error) {
	var result printwatch.ExtractionResult
	var slicer, extractedAt string
	var mm, g sql.NullFloat64
	var secs sql.NullInt64

	if err := scan(&result.ID, &result.SourceFile, &result.SourceHash, &slicer,
		&mm, &g, &secs, &extractedAt); err != nil {
		return nil, err
	}

	result.Slicer = printwatch.Slicer(slicer)
	if mm.Valid {
		result.FilamentMM = &mm.Float64
	}
	if g.Valid {
		result.FilamentG = &g.Float64
	}
	if secs.Valid {
		result.TimeSeconds = &secs.Int64
	}

	var err error
	result.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

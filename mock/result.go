package mock

import (
	"context"

	"github.com/fwojciec/printwatch"
)

var _ printwatch.ResultService = (*ResultService)(nil)

// ResultService is a mock implementation of printwatch.ResultService.
type ResultService struct {
	CreateResultFn           func(ctx context.Context, result *printwatch.ExtractionResult) error
	FindResultByIDFn         func(ctx context.Context, id string) (*printwatch.ExtractionResult, error)
	FindResultsFn            func(ctx context.Context, filter printwatch.ResultFilter) ([]*printwatch.ExtractionResult, error)
	FindResultBySourceHashFn func(ctx context.Context, hash string) (*printwatch.ExtractionResult, error)
	DeleteResultFn           func(ctx context.Context, id string) error
}

func (s *ResultService) CreateResult(ctx context.Context, result *printwatch.ExtractionResult) error {
	return s.CreateResultFn(ctx, result)
}

func (s *ResultService) FindResultByID(ctx context.Context, id string) (*printwatch.ExtractionResult, error) {
	return s.FindResultByIDFn(ctx, id)
}

func (s *ResultService) FindResults(ctx context.Context, filter printwatch.ResultFilter) ([]*printwatch.ExtractionResult, error) {
	return s.FindResultsFn(ctx, filter)
}

func (s *ResultService) FindResultBySourceHash(ctx context.Context, hash string) (*printwatch.ExtractionResult, error) {
	return s.FindResultBySourceHashFn(ctx, hash)
}

func (s *ResultService) DeleteResult(ctx context.Context, id string) error {
	return s.DeleteResultFn(ctx, id)
}

package review

import (
	"context"

	"libraryapi/internal/platform/clock"
)

type Service struct {
	repo  Repository
	clock clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clock: clk}
}

// Create stores a review. A zero review date defaults to today.
func (s *Service) Create(ctx context.Context, rv *Review) (Review, error) {
	if rv.ReviewDate.IsZero() {
		rv.ReviewDate = s.clock.Today()
	} else {
		rv.ReviewDate = clock.Midnight(rv.ReviewDate)
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return Review{}, err
	}
	return *rv, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Review, error) {
	return s.repo.List(ctx)
}

func (s *Service) ByBook(ctx context.Context, bookID int64) ([]Review, error) {
	return s.repo.ByBook(ctx, bookID)
}

func (s *Service) Update(ctx context.Context, id int64, upd Update) (Review, error) {
	return s.repo.Update(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

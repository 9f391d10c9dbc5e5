package book

import "context"

const defaultMostReviewedLimit = 10

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, b *Book) (Book, error) {
	if b.Stock < 0 {
		return Book{}, ErrNegativeStock
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Book{}, err
	}
	return *b, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, upd Update) (Book, error) {
	return s.repo.Update(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Available returns books with stock > 0.
func (s *Service) Available(ctx context.Context) ([]Book, error) {
	return s.repo.Available(ctx)
}

func (s *Service) ByCategory(ctx context.Context, categoryID int64) ([]Book, error) {
	return s.repo.ByCategory(ctx, categoryID)
}

// SearchByAuthor matches the author name case-insensitively as a substring.
func (s *Service) SearchByAuthor(ctx context.Context, author string) ([]Book, error) {
	return s.repo.SearchByAuthor(ctx, author)
}

// MostReviewed returns books ordered by review count descending.
// A non-positive limit falls back to the default of 10.
func (s *Service) MostReviewed(ctx context.Context, limit int) ([]Book, error) {
	if limit <= 0 {
		limit = defaultMostReviewedLimit
	}
	return s.repo.MostReviewed(ctx, limit)
}

// UpdateStock sets the stock to an absolute value. Negative targets are
// rejected without touching the stored value.
func (s *Service) UpdateStock(ctx context.Context, id int64, stock int) (Book, error) {
	if stock < 0 {
		return Book{}, ErrNegativeStock
	}
	return s.repo.UpdateStock(ctx, id, stock)
}

package category

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, c *Category) (Category, error) {
	if err := s.repo.Create(ctx, c); err != nil {
		return Category{}, err
	}
	return *c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, upd Update) (Category, error) {
	return s.repo.Update(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AddBook adds a book to a category. Idempotent: adding a book that is
// already a member leaves exactly one membership edge.
func (s *Service) AddBook(ctx context.Context, categoryID, bookID int64) (Category, error) {
	if err := s.repo.AddBook(ctx, categoryID, bookID); err != nil {
		return Category{}, err
	}
	return s.repo.GetByID(ctx, categoryID)
}

// RemoveBook removes a book from a category. Removing a book that is not a
// member is a silent no-op.
func (s *Service) RemoveBook(ctx context.Context, categoryID, bookID int64) error {
	if _, err := s.repo.GetByID(ctx, categoryID); err != nil {
		return err
	}
	return s.repo.RemoveBook(ctx, categoryID, bookID)
}

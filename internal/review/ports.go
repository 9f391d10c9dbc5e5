package review

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=review

// Repository defines the contract for review data storage.
type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id int64) (Review, error)
	List(ctx context.Context) ([]Review, error)
	ByBook(ctx context.Context, bookID int64) ([]Review, error)
	Update(ctx context.Context, id int64, upd Update) (Review, error)
	Delete(ctx context.Context, id int64) error
}

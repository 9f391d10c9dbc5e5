package book

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id int64) (Book, error)
	List(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, id int64, upd Update) (Book, error)
	Delete(ctx context.Context, id int64) error

	Available(ctx context.Context) ([]Book, error)
	ByCategory(ctx context.Context, categoryID int64) ([]Book, error)
	SearchByAuthor(ctx context.Context, author string) ([]Book, error)
	MostReviewed(ctx context.Context, limit int) ([]Book, error)
	UpdateStock(ctx context.Context, id int64, stock int) (Book, error)
}

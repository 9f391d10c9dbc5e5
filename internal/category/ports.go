package category

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=category

// Repository defines the contract for category data storage, including the
// book membership edges.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id int64) (Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, id int64, upd Update) (Category, error)
	Delete(ctx context.Context, id int64) error

	// AddBook inserts a membership edge. Adding an existing edge is a no-op.
	AddBook(ctx context.Context, categoryID, bookID int64) error
	// RemoveBook deletes a membership edge. Removing a missing edge is a
	// silent no-op.
	RemoveBook(ctx context.Context, categoryID, bookID int64) error
}

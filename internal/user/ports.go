package user

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=user

// Repository defines the contract for user data storage.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, upd Update) (User, error)
	Delete(ctx context.Context, id int64) error
}

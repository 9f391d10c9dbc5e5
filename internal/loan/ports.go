package loan

import (
	"context"
	"time"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=loan

// Repository defines the contract for loan data storage.
type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id int64) (Loan, error)
	List(ctx context.Context) ([]Loan, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (Loan, error)
	Delete(ctx context.Context, id int64) error

	Active(ctx context.Context) ([]Loan, error)

	// MarkOverdue transitions every ACTIVE loan with a due date before today
	// to OVERDUE in one batch and returns the updated set.
	MarkOverdue(ctx context.Context, today time.Time) ([]Loan, error)

	// Return processes a return in a single transaction: it guards against a
	// loan that is already RETURNED, sets return_dt and the fine, and
	// increments the book's stock.
	Return(ctx context.Context, id int64, today time.Time) (Loan, error)

	// HistoryForUser returns a user's loans ordered by loan date descending.
	HistoryForUser(ctx context.Context, userID int64) ([]Loan, error)
}

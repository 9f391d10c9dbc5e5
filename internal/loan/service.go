package loan

import (
	"context"
	"time"

	"libraryapi/internal/platform/clock"
)

// Service is the loan lifecycle engine.
type Service struct {
	repo  Repository
	clock clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clock: clk}
}

// Create opens a new loan. The loan date is required; the due date is
// derived from it and status and fine are forced regardless of caller
// input, so clients cannot inject a pre-set fine or status.
func (s *Service) Create(ctx context.Context, userID, bookID int64, loanDt time.Time) (Loan, error) {
	if loanDt.IsZero() {
		return Loan{}, ErrLoanDateRequired
	}

	l := &Loan{
		UserID:     userID,
		BookID:     bookID,
		LoanDate:   clock.Midnight(loanDt),
		DueDate:    DueDateFor(loanDt),
		Status:     StatusActive,
		FineAmount: nil,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return Loan{}, err
	}
	return *l, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Loan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Loan, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (Loan, error) {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Active(ctx context.Context) ([]Loan, error) {
	return s.repo.Active(ctx)
}

// Fine is a read-only preview of the fine owed on a loan as of today.
// Nothing is persisted.
func (s *Service) Fine(ctx context.Context, id int64) (float64, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return FineFor(l.DueDate, s.clock.Today()), nil
}

// SweepOverdue transitions every eligible ACTIVE loan to OVERDUE and
// returns the swept set. The overdue listing endpoint invokes this before
// responding, so listing overdue loans keeps their status fresh.
func (s *Service) SweepOverdue(ctx context.Context) ([]Loan, error) {
	return s.repo.MarkOverdue(ctx, s.clock.Today())
}

// Return processes a return as of today. Returning a loan that is already
// RETURNED fails with ErrAlreadyReturned and does not touch the book stock.
func (s *Service) Return(ctx context.Context, id int64) (Loan, error) {
	return s.repo.Return(ctx, id, s.clock.Today())
}

// History returns a user's full loan history, most recent loan first.
func (s *Service) History(ctx context.Context, userID int64) ([]Loan, error) {
	return s.repo.HistoryForUser(ctx, userID)
}

package loan

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"libraryapi/internal/platform/clock"
)

var (
	ErrNotFound         = errors.New("loan not found")
	ErrAlreadyReturned  = errors.New("loan already returned")
	ErrLoanDateRequired = errors.New("loan date is required")
)

// Status is the lifecycle state of a loan. A loan starts ACTIVE, may be
// swept to OVERDUE once its due date has passed, and ends RETURNED.
// RETURNED is terminal.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusReturned Status = "RETURNED"
	StatusOverdue  Status = "OVERDUE"
)

// ParseStatus validates a status value received from a client.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusReturned, StatusOverdue:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid loan status %q", s)
}

const (
	// LoanPeriodDays is the lending period: due_date = loan_dt + 14 days.
	LoanPeriodDays = 14
	// FinePerDay is the fine charged per day late.
	FinePerDay = 500.00
)

type Loan struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	LoanDate   time.Time  `json:"loan_dt"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_dt,omitempty"`
	Status     Status     `json:"status"`
	FineAmount *float64   `json:"fine_amount,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// DueDateFor derives the due date from the loan date.
func DueDateFor(loanDt time.Time) time.Time {
	return clock.Midnight(loanDt).AddDate(0, 0, LoanPeriodDays)
}

// DaysLate returns the number of whole days today is past the due date.
// Zero or negative means the loan is not late.
func DaysLate(dueDate, today time.Time) int {
	return int(clock.Midnight(today).Sub(clock.Midnight(dueDate)).Hours() / 24)
}

// FineFor computes the fine owed on a loan as of today. It is the single
// source of the fine arithmetic: both the read-only preview and the return
// transition use it, so a quoted fine always matches a charged fine.
func FineFor(dueDate, today time.Time) float64 {
	daysLate := DaysLate(dueDate, today)
	if daysLate <= 0 {
		return 0
	}
	return float64(daysLate) * FinePerDay
}

// FormatAmount renders a fine with exactly two decimal digits.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

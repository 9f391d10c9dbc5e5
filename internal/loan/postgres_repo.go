package loan

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

// ErrUserOrBookNotFound is returned when a loan references a missing user
// or book.
var ErrUserOrBookNotFound = errors.New("user or book not found")

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const loanColumns = `id, user_id, book_id, loan_dt, due_date, return_dt, status, fine_amount, created_at, updated_at`

func scanLoan(row pgx.Row) (Loan, error) {
	var l Loan
	err := row.Scan(
		&l.ID, &l.UserID, &l.BookID, &l.LoanDate, &l.DueDate,
		&l.ReturnDate, &l.Status, &l.FineAmount, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func collectLoans(rows pgx.Rows) ([]Loan, error) {
	defer rows.Close()
	var out []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.BookID, &l.LoanDate, &l.DueDate,
			&l.ReturnDate, &l.Status, &l.FineAmount, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, l *Loan) error {
	const query = `
	INSERT INTO loans (user_id, book_id, loan_dt, due_date, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		l.UserID, l.BookID, l.LoanDate, l.DueDate, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrUserOrBookNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Loan, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanLoan(r.db.QueryRow(timeoutCtx,
		`SELECT `+loanColumns+` FROM loans WHERE id = $1 LIMIT 1`, id))
}

func (r *PostgresRepo) List(ctx context.Context) ([]Loan, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, `SELECT `+loanColumns+` FROM loans ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectLoans(rows)
}

func (r *PostgresRepo) UpdateStatus(ctx context.Context, id int64, status Status) (Loan, error) {
	const query = `
	UPDATE loans SET status = $2, updated_at = now()
	WHERE id = $1
	RETURNING ` + loanColumns
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanLoan(r.db.QueryRow(timeoutCtx, query, id, status))
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Active(ctx context.Context) ([]Loan, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx,
		`SELECT `+loanColumns+` FROM loans WHERE status = $1 ORDER BY id`, StatusActive)
	if err != nil {
		return nil, err
	}
	return collectLoans(rows)
}

// MarkOverdue runs the sweep as one batched update so concurrent sweeps
// cannot observe a partially transitioned set.
func (r *PostgresRepo) MarkOverdue(ctx context.Context, today time.Time) ([]Loan, error) {
	const query = `
	UPDATE loans SET status = $1, updated_at = now()
	WHERE status = $2 AND due_date < $3
	RETURNING ` + loanColumns
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, StatusOverdue, StatusActive, today)
	if err != nil {
		return nil, err
	}
	return collectLoans(rows)
}

// Return updates the loan and the book stock in one transaction. The
// status guard is part of the UPDATE predicate, so two concurrent returns
// of the same loan cannot both increment the stock.
func (r *PostgresRepo) Return(ctx context.Context, id int64, today time.Time) (Loan, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return Loan{}, err
	}
	defer tx.Rollback(timeoutCtx)

	var dueDate time.Time
	var status Status
	var bookID int64
	err = tx.QueryRow(timeoutCtx,
		`SELECT due_date, status, book_id FROM loans WHERE id = $1 FOR UPDATE`, id,
	).Scan(&dueDate, &status, &bookID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	if status == StatusReturned {
		return Loan{}, ErrAlreadyReturned
	}

	fine := FineFor(dueDate, today)

	const updateLoan = `
	UPDATE loans
	SET status = $2, return_dt = $3, fine_amount = $4, updated_at = now()
	WHERE id = $1 AND status <> $2
	RETURNING ` + loanColumns
	l, err := scanLoan(tx.QueryRow(timeoutCtx, updateLoan, id, StatusReturned, today, fine))
	if err != nil {
		return Loan{}, err
	}

	// A missing stock counts as zero before incrementing.
	_, err = tx.Exec(timeoutCtx,
		`UPDATE books SET stock = COALESCE(stock, 0) + 1, updated_at = now() WHERE id = $1`, bookID)
	if err != nil {
		return Loan{}, err
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return Loan{}, err
	}
	return l, nil
}

func (r *PostgresRepo) HistoryForUser(ctx context.Context, userID int64) ([]Loan, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx,
		`SELECT `+loanColumns+` FROM loans WHERE user_id = $1 ORDER BY loan_dt DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectLoans(rows)
}

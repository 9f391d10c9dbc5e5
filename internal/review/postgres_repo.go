package review

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

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

const reviewColumns = `id, rating, comment, review_date, user_id, book_id, created_at, updated_at`

func scanReview(row pgx.Row) (Review, error) {
	var rv Review
	err := row.Scan(
		&rv.ID, &rv.Rating, &rv.Comment, &rv.ReviewDate,
		&rv.UserID, &rv.BookID, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return rv, nil
}

func collectReviews(rows pgx.Rows) ([]Review, error) {
	defer rows.Close()
	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.Rating, &rv.Comment, &rv.ReviewDate,
			&rv.UserID, &rv.BookID, &rv.CreatedAt, &rv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, rv *Review) error {
	const query = `
	INSERT INTO reviews (rating, comment, review_date, user_id, book_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		rv.Rating, rv.Comment, rv.ReviewDate, rv.UserID, rv.BookID,
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrUserOrBookNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Review, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanReview(r.db.QueryRow(timeoutCtx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1 LIMIT 1`, id))
}

func (r *PostgresRepo) List(ctx context.Context) ([]Review, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, `SELECT `+reviewColumns+` FROM reviews ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

func (r *PostgresRepo) ByBook(ctx context.Context, bookID int64) ([]Review, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx,
		`SELECT `+reviewColumns+` FROM reviews WHERE book_id = $1 ORDER BY id`, bookID)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, upd Update) (Review, error) {
	fields := []string{}
	args := []any{}
	argn := 1

	if upd.Rating != nil {
		fields = append(fields, "rating = $"+strconv.Itoa(argn))
		args = append(args, *upd.Rating)
		argn++
	}
	if upd.Comment != nil {
		fields = append(fields, "comment = $"+strconv.Itoa(argn))
		args = append(args, *upd.Comment)
		argn++
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	fields = append(fields, "updated_at = now()")
	args = append(args, id)

	query := "UPDATE reviews SET " + strings.Join(fields, ", ") +
		" WHERE id = $" + strconv.Itoa(argn) + " RETURNING " + reviewColumns
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanReview(r.db.QueryRow(timeoutCtx, query, args...))
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package category

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

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

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

const categoryColumns = `id, name, description, created_at, updated_at`

func scanCategory(row pgx.Row) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepo) Create(ctx context.Context, c *Category) error {
	const query = `
	INSERT INTO categories (name, description)
	VALUES ($1, $2)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, c.Name, c.Description).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Category, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanCategory(r.db.QueryRow(timeoutCtx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 LIMIT 1`, id))
}

func (r *PostgresRepo) List(ctx context.Context) ([]Category, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, upd Update) (Category, error) {
	fields := []string{}
	args := []any{}
	argn := 1

	if upd.Name != nil {
		fields = append(fields, "name = $"+strconv.Itoa(argn))
		args = append(args, *upd.Name)
		argn++
	}
	if upd.Description != nil {
		fields = append(fields, "description = $"+strconv.Itoa(argn))
		args = append(args, *upd.Description)
		argn++
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	fields = append(fields, "updated_at = now()")
	args = append(args, id)

	query := "UPDATE categories SET " + strings.Join(fields, ", ") +
		" WHERE id = $" + strconv.Itoa(argn) + " RETURNING " + categoryColumns
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	c, err := scanCategory(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Category{}, ErrAlreadyExists
		}
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) AddBook(ctx context.Context, categoryID, bookID int64) error {
	const query = `
	INSERT INTO book_categories (book_id, category_id)
	VALUES ($1, $2)
	ON CONFLICT (book_id, category_id) DO NOTHING
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, bookID, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) RemoveBook(ctx context.Context, categoryID, bookID int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx,
		`DELETE FROM book_categories WHERE book_id = $1 AND category_id = $2`,
		bookID, categoryID)
	return err
}

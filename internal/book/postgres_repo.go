package book

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

const uniqueViolation = "23505"

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

const bookColumns = `id, title, author, isbn, pages, published_year, stock, language, publisher, description, created_at, updated_at`

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Pages, &b.PublishedYear,
		&b.Stock, &b.Language, &b.Publisher, &b.Description, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func collectBooks(rows pgx.Rows) ([]Book, error) {
	defer rows.Close()
	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Pages, &b.PublishedYear,
			&b.Stock, &b.Language, &b.Publisher, &b.Description, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (title, author, isbn, pages, published_year, stock, language, publisher, description)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		b.Title, b.Author, b.ISBN, b.Pages, b.PublishedYear, b.Stock, b.Language, b.Publisher, b.Description,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanBook(r.db.QueryRow(timeoutCtx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1 LIMIT 1`, id))
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, upd Update) (Book, error) {
	fields := []string{}
	args := []any{}
	argn := 1

	set := func(column string, value any) {
		fields = append(fields, column+" = $"+strconv.Itoa(argn))
		args = append(args, value)
		argn++
	}

	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.Author != nil {
		set("author", *upd.Author)
	}
	if upd.ISBN != nil {
		set("isbn", *upd.ISBN)
	}
	if upd.Pages != nil {
		set("pages", *upd.Pages)
	}
	if upd.PublishedYear != nil {
		set("published_year", *upd.PublishedYear)
	}
	if upd.Language != nil {
		set("language", *upd.Language)
	}
	if upd.Publisher != nil {
		set("publisher", *upd.Publisher)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	fields = append(fields, "updated_at = now()")
	args = append(args, id)

	query := "UPDATE books SET " + strings.Join(fields, ", ") +
		" WHERE id = $" + strconv.Itoa(argn) + " RETURNING " + bookColumns
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Book{}, ErrAlreadyExists
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Available(ctx context.Context) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx,
		`SELECT `+bookColumns+` FROM books WHERE stock > 0 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *PostgresRepo) ByCategory(ctx context.Context, categoryID int64) ([]Book, error) {
	const query = `
	SELECT b.id, b.title, b.author, b.isbn, b.pages, b.published_year, b.stock,
	       b.language, b.publisher, b.description, b.created_at, b.updated_at
	FROM books b
	JOIN book_categories bc ON bc.book_id = b.id
	WHERE bc.category_id = $1
	ORDER BY b.id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, categoryID)
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *PostgresRepo) SearchByAuthor(ctx context.Context, author string) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx,
		`SELECT `+bookColumns+` FROM books WHERE author ILIKE $1 ORDER BY id`,
		"%"+author+"%")
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *PostgresRepo) MostReviewed(ctx context.Context, limit int) ([]Book, error) {
	const query = `
	SELECT b.id, b.title, b.author, b.isbn, b.pages, b.published_year, b.stock,
	       b.language, b.publisher, b.description, b.created_at, b.updated_at
	FROM books b
	LEFT JOIN reviews rv ON rv.book_id = b.id
	GROUP BY b.id
	ORDER BY COUNT(rv.id) DESC
	LIMIT $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

func (r *PostgresRepo) UpdateStock(ctx context.Context, id int64, stock int) (Book, error) {
	const query = `
	UPDATE books SET stock = $2, updated_at = now()
	WHERE id = $1
	RETURNING ` + bookColumns
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanBook(r.db.QueryRow(timeoutCtx, query, id, stock))
}

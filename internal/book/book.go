package book

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("book not found")
	ErrAlreadyExists = errors.New("book already exists")
	ErrNegativeStock = errors.New("stock cannot be negative")
)

type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	Pages         int       `json:"pages"`
	PublishedYear int       `json:"published_year"`
	Stock         int       `json:"stock"`
	Language      string    `json:"language"`
	Publisher     *string   `json:"publisher,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Update carries a partial update; nil fields are left unchanged.
type Update struct {
	Title         *string
	Author        *string
	ISBN          *string
	Pages         *int
	PublishedYear *int
	Language      *string
	Publisher     *string
	Description   *string
}

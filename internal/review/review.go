package review

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("review not found")

// ErrUserOrBookNotFound is returned when a review references a missing
// user or book.
var ErrUserOrBookNotFound = errors.New("user or book not found")

type Review struct {
	ID         int64     `json:"id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	ReviewDate time.Time `json:"review_date"`
	UserID     int64     `json:"user_id"`
	BookID     int64     `json:"book_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Update carries a partial update; nil fields are left unchanged.
type Update struct {
	Rating  *int
	Comment *string
}

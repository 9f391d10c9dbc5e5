package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func (h *HTTPHandler) writeReviewError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
	case errors.Is(err, ErrUserOrBookNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "User or book not found", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

type createReviewReq struct {
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Comment    *string `json:"comment"`
	ReviewDate string  `json:"review_date" validate:"omitempty,datetime=2006-01-02"`
	UserID     int64   `json:"user_id" validate:"required"`
	BookID     int64   `json:"book_id" validate:"required"`
}

// Create handles POST /reviews
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	rv := &Review{
		Rating:  req.Rating,
		Comment: req.Comment,
		UserID:  req.UserID,
		BookID:  req.BookID,
	}
	if req.ReviewDate != "" {
		reviewDate, err := time.Parse("2006-01-02", req.ReviewDate)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "review_date must be a date in YYYY-MM-DD format", nil)
			return
		}
		rv.ReviewDate = reviewDate
	}

	created, err := h.service.Create(r.Context(), rv)
	if err != nil {
		h.writeReviewError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, created)
}

// List handles GET /reviews
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		h.writeReviewError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, reviews, nil)
}

// Get handles GET /reviews/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid review id", nil)
		return
	}
	rv, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeReviewError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, rv, nil)
}

// ByBook handles GET /books/{id}/reviews
func (h *HTTPHandler) ByBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book id", nil)
		return
	}
	reviews, err := h.service.ByBook(r.Context(), bookID)
	if err != nil {
		h.writeReviewError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, reviews, nil)
}

type updateReviewReq struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// Update handles PATCH /reviews/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid review id", nil)
		return
	}

	var req updateReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	rv, err := h.service.Update(r.Context(), id, Update{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		h.writeReviewError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, rv, nil)
}

// Delete handles DELETE /reviews/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid review id", nil)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeReviewError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

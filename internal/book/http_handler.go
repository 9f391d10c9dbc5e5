package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func (h *HTTPHandler) writeBookError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrAlreadyExists):
		httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "A book with this ISBN already exists", nil)
	case errors.Is(err, ErrNegativeStock):
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Stock cannot be negative", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

type createBookReq struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	ISBN          string  `json:"isbn" validate:"required,isbn"`
	Pages         int     `json:"pages" validate:"required,min=1"`
	PublishedYear int     `json:"published_year" validate:"required,min=1"`
	Stock         *int    `json:"stock"`
	Language      string  `json:"language" validate:"required"`
	Publisher     *string `json:"publisher"`
	Description   *string `json:"description"`
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	stock := 1
	if req.Stock != nil {
		stock = *req.Stock
	}

	newBook := &Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Pages:         req.Pages,
		PublishedYear: req.PublishedYear,
		Stock:         stock,
		Language:      req.Language,
		Publisher:     req.Publisher,
		Description:   req.Description,
	}

	created, err := h.service.Create(r.Context(), newBook)
	if err != nil {
		h.writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, created)
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, nil)
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book id", nil)
		return
	}
	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

type updateBookReq struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	ISBN          *string `json:"isbn" validate:"omitempty,isbn"`
	Pages         *int    `json:"pages" validate:"omitempty,min=1"`
	PublishedYear *int    `json:"published_year" validate:"omitempty,min=1"`
	Language      *string `json:"language"`
	Publisher     *string `json:"publisher"`
	Description   *string `json:"description"`
}

// Update handles PATCH /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book id", nil)
		return
	}

	var req updateBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	b, err := h.service.Update(r.Context(), id, Update{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Pages:         req.Pages,
		PublishedYear: req.PublishedYear,
		Language:      req.Language,
		Publisher:     req.Publisher,
		Description:   req.Description,
	})
	if err != nil {
		h.writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book id", nil)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Available handles GET /books/available
func (h *HTTPHandler) Available(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.Available(r.Context())
	if err != nil {
		h.writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, nil)
}

// SearchByAuthor handles GET /books/search?author=
func (h *HTTPHandler) SearchByAuthor(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	if author == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Missing author query parameter", nil)
		return
	}
	books, err := h.service.SearchByAuthor(r.Context(), author)
	if err != nil {
		h.writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, nil)
}

// MostReviewed handles GET /books/most-reviewed?limit=
func (h *HTTPHandler) MostReviewed(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	books, err := h.service.MostReviewed(r.Context(), limit)
	if err != nil {
		h.writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, nil)
}

type updateStockReq struct {
	Stock *int `json:"stock" validate:"required"`
}

// UpdateStock handles PATCH /books/{id}/stock. The stock is an absolute
// value, not a delta.
func (h *HTTPHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book id", nil)
		return
	}

	var req updateStockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	b, err := h.service.UpdateStock(r.Context(), id, *req.Stock)
	if err != nil {
		h.writeBookError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"libraryapi/internal/book"
	"libraryapi/internal/httpx"
)

type HTTPHandler struct {
	service     *Service
	bookService *book.Service
}

func NewHTTPHandler(service *Service, bookService *book.Service) *HTTPHandler {
	return &HTTPHandler{service: service, bookService: bookService}
}

func (h *HTTPHandler) writeCategoryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	case errors.Is(err, ErrAlreadyExists):
		httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "A category with this name already exists", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

type createCategoryReq struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}

// Create handles POST /categories
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	created, err := h.service.Create(r.Context(), &Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeCategoryError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, created)
}

// List handles GET /categories
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		h.writeCategoryError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, categories, nil)
}

// Get handles GET /categories/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid category id", nil)
		return
	}
	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeCategoryError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, c, nil)
}

type updateCategoryReq struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

// Update handles PATCH /categories/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid category id", nil)
		return
	}

	var req updateCategoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	c, err := h.service.Update(r.Context(), id, Update{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeCategoryError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, c, nil)
}

// Delete handles DELETE /categories/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid category id", nil)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeCategoryError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// ListBooks handles GET /categories/{id}/books
func (h *HTTPHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid category id", nil)
		return
	}
	if _, err := h.service.GetByID(r.Context(), id); err != nil {
		h.writeCategoryError(w, r, err)
		return
	}
	books, err := h.bookService.ByCategory(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, books, nil)
}

func parseEdgeIDs(r *http.Request) (categoryID, bookID int64, err error) {
	categoryID, err = strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	bookID, err = strconv.ParseInt(r.PathValue("bookID"), 10, 64)
	return categoryID, bookID, err
}

// AddBook handles POST /categories/{id}/books/{bookID}
func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	categoryID, bookID, err := parseEdgeIDs(r)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid id", nil)
		return
	}
	c, err := h.service.AddBook(r.Context(), categoryID, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Category or book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, c, nil)
}

// RemoveBook handles DELETE /categories/{id}/books/{bookID}
func (h *HTTPHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	categoryID, bookID, err := parseEdgeIDs(r)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid id", nil)
		return
	}
	if err := h.service.RemoveBook(r.Context(), categoryID, bookID); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

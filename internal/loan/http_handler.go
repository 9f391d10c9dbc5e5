package loan

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

func (h *HTTPHandler) writeLoanError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Loan not found", nil)
	case errors.Is(err, ErrUserOrBookNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "User or book not found", nil)
	case errors.Is(err, ErrAlreadyReturned):
		httpx.JSONError(w, r, http.StatusConflict, "ALREADY_RETURNED", "Loan has already been returned", nil)
	case errors.Is(err, ErrLoanDateRequired):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "loan_dt is required", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

type createLoanReq struct {
	UserID int64  `json:"user_id" validate:"required"`
	BookID int64  `json:"book_id" validate:"required"`
	LoanDt string `json:"loan_dt" validate:"required,datetime=2006-01-02"`
}

// Create handles POST /loans
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLoanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	loanDt, err := time.Parse("2006-01-02", req.LoanDt)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "loan_dt must be a date in YYYY-MM-DD format", nil)
		return
	}

	created, err := h.service.Create(r.Context(), req.UserID, req.BookID, loanDt)
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, created)
}

// List handles GET /loans
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.List(r.Context())
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, loans, nil)
}

// Get handles GET /loans/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid loan id", nil)
		return
	}
	l, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

type updateLoanReq struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PATCH /loans/{id}. Only the status is updatable.
func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid loan id", nil)
		return
	}

	var req updateLoanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	status, err := ParseStatus(req.Status)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "status must be ACTIVE, RETURNED, or OVERDUE", nil)
		return
	}

	l, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

// Delete handles DELETE /loans/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid loan id", nil)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Active handles GET /loans/active
func (h *HTTPHandler) Active(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.Active(r.Context())
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, loans, nil)
}

// Overdue handles GET /loans/overdue. Listing overdue loans sweeps them
// first: eligible ACTIVE loans are transitioned to OVERDUE and the swept
// set is returned, so this read is not side-effect-free.
func (h *HTTPHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.SweepOverdue(r.Context())
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, loans, nil)
}

// History handles GET /loans/user/{userID}
func (h *HTTPHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid user id", nil)
		return
	}
	loans, err := h.service.History(r.Context(), userID)
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, loans, nil)
}

// Return handles POST /loans/{id}/return
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid loan id", nil)
		return
	}
	l, err := h.service.Return(r.Context(), id)
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

// Fine handles GET /loans/{id}/fine. Read-only preview; nothing is
// persisted.
func (h *HTTPHandler) Fine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid loan id", nil)
		return
	}
	fine, err := h.service.Fine(r.Context(), id)
	if err != nil {
		h.writeLoanError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]any{
		"loan_id":     id,
		"fine_amount": FormatAmount(fine),
	}, nil)
}

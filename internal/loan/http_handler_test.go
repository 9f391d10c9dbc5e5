package loan

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"libraryapi/internal/platform/clock"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, today time.Time) (*HTTPHandler, *MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)

	service := NewService(mockRepo, clock.Fixed{Date: today})
	return NewHTTPHandler(service), mockRepo
}

func TestHTTPHandler_Create(t *testing.T) {
	handler, mockRepo := newTestHandler(t, date(2024, 1, 1))

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		body := `{"user_id": 1, "book_id": 2, "loan_dt": "2024-01-01"}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Data Loan `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, date(2024, 1, 15), resp.Data.DueDate)
		assert.Equal(t, StatusActive, resp.Data.Status)
	})

	t.Run("missing loan_dt", func(t *testing.T) {
		body := `{"user_id": 1, "book_id": 2}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed loan_dt", func(t *testing.T) {
		body := `{"user_id": 1, "book_id": 2, "loan_dt": "01/01/2024"}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown user or book", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrUserOrBookNotFound)

		body := `{"user_id": 99, "book_id": 2, "loan_dt": "2024-01-01"}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))

		handler.Create(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/loans", bytes.NewReader([]byte("{")))

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Return(t *testing.T) {
	handler, mockRepo := newTestHandler(t, date(2024, 1, 20))

	t.Run("success with fine", func(t *testing.T) {
		fine := 2500.00
		returnDt := date(2024, 1, 20)
		returned := Loan{
			ID:         1,
			Status:     StatusReturned,
			DueDate:    date(2024, 1, 15),
			ReturnDate: &returnDt,
			FineAmount: &fine,
		}
		mockRepo.EXPECT().Return(gomock.Any(), int64(1), date(2024, 1, 20)).Return(returned, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/loans/1/return", nil)
		r.SetPathValue("id", "1")

		handler.Return(w, r)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data Loan `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, StatusReturned, resp.Data.Status)
		require.NotNil(t, resp.Data.FineAmount)
		assert.Equal(t, 2500.00, *resp.Data.FineAmount)
	})

	t.Run("already returned", func(t *testing.T) {
		mockRepo.EXPECT().Return(gomock.Any(), int64(1), gomock.Any()).Return(Loan{}, ErrAlreadyReturned)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/loans/1/return", nil)
		r.SetPathValue("id", "1")

		handler.Return(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ALREADY_RETURNED")
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Return(gomock.Any(), int64(99), gomock.Any()).Return(Loan{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/loans/99/return", nil)
		r.SetPathValue("id", "99")

		handler.Return(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/loans/abc/return", nil)
		r.SetPathValue("id", "abc")

		handler.Return(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Fine(t *testing.T) {
	handler, mockRepo := newTestHandler(t, date(2024, 1, 20))

	t.Run("overdue loan", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(Loan{
			ID:      1,
			DueDate: date(2024, 1, 15),
			Status:  StatusActive,
		}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/loans/1/fine", nil)
		r.SetPathValue("id", "1")

		handler.Fine(w, r)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				LoanID     int64  `json:"loan_id"`
				FineAmount string `json:"fine_amount"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, int64(1), resp.Data.LoanID)
		assert.Equal(t, "2500.00", resp.Data.FineAmount)
	})

	t.Run("loan not yet due", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(2)).Return(Loan{
			ID:      2,
			DueDate: date(2024, 2, 1),
			Status:  StatusActive,
		}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/loans/2/fine", nil)
		r.SetPathValue("id", "2")

		handler.Fine(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"fine_amount":"0.00"`)
	})
}

func TestHTTPHandler_Overdue(t *testing.T) {
	handler, mockRepo := newTestHandler(t, date(2024, 1, 20))

	t.Run("sweeps before listing", func(t *testing.T) {
		swept := []Loan{{ID: 1, Status: StatusOverdue, DueDate: date(2024, 1, 15)}}
		mockRepo.EXPECT().MarkOverdue(gomock.Any(), date(2024, 1, 20)).Return(swept, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/loans/overdue", nil)

		handler.Overdue(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "OVERDUE")
	})

	t.Run("nothing overdue", func(t *testing.T) {
		mockRepo.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).Return([]Loan{}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/loans/overdue", nil)

		handler.Overdue(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHTTPHandler_UpdateStatus(t *testing.T) {
	handler, mockRepo := newTestHandler(t, date(2024, 1, 20))

	t.Run("valid status", func(t *testing.T) {
		mockRepo.EXPECT().UpdateStatus(gomock.Any(), int64(1), StatusOverdue).Return(Loan{ID: 1, Status: StatusOverdue}, nil)

		body := `{"status": "OVERDUE"}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, "/loans/1", strings.NewReader(body))
		r.SetPathValue("id", "1")

		handler.UpdateStatus(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		body := `{"status": "LOST"}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, "/loans/1", strings.NewReader(body))
		r.SetPathValue("id", "1")

		handler.UpdateStatus(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_History(t *testing.T) {
	handler, mockRepo := newTestHandler(t, date(2024, 1, 20))

	t.Run("success", func(t *testing.T) {
		history := []Loan{
			{ID: 2, UserID: 7, LoanDate: date(2024, 1, 10)},
			{ID: 1, UserID: 7, LoanDate: date(2024, 1, 1)},
		}
		mockRepo.EXPECT().HistoryForUser(gomock.Any(), int64(7)).Return(history, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/loans/user/7", nil)
		r.SetPathValue("userID", "7")

		handler.History(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid user id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/loans/user/abc", nil)
		r.SetPathValue("userID", "abc")

		handler.History(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

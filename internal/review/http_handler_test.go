package review

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"libraryapi/internal/platform/clock"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestHandler(t *testing.T) (*HTTPHandler, *MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo, clock.Fixed{Date: date(2024, 3, 1)})
	return NewHTTPHandler(service), mockRepo
}

func TestHTTPHandler_Create(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	t.Run("explicit review date", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rv *Review) error {
				assert.Equal(t, date(2024, 2, 10), rv.ReviewDate)
				rv.ID = 1
				return nil
			})

		body := `{"rating": 4, "user_id": 1, "book_id": 2, "review_date": "2024-02-10"}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("review date defaults to today", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rv *Review) error {
				assert.Equal(t, date(2024, 3, 1), rv.ReviewDate)
				return nil
			})

		body := `{"rating": 5, "user_id": 1, "book_id": 2}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))

		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rating out of range", func(t *testing.T) {
		for _, body := range []string{
			`{"rating": 0, "user_id": 1, "book_id": 2}`,
			`{"rating": 6, "user_id": 1, "book_id": 2}`,
		} {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))

			handler.Create(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	})

	t.Run("unknown user or book", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrUserOrBookNotFound)

		body := `{"rating": 4, "user_id": 99, "book_id": 2}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))

		handler.Create(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_ByBook(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().ByBook(gomock.Any(), int64(2)).Return([]Review{{ID: 1, BookID: 2, Rating: 4}}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/books/2/reviews", nil)
		r.SetPathValue("id", "2")

		handler.ByBook(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid book id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/books/abc/reviews", nil)
		r.SetPathValue("id", "abc")

		handler.ByBook(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).Return(Review{ID: 1, Rating: 2}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, "/reviews/1", strings.NewReader(`{"rating": 2}`))
		r.SetPathValue("id", "1")

		handler.Update(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), int64(99), gomock.Any()).Return(Review{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, "/reviews/99", strings.NewReader(`{"rating": 2}`))
		r.SetPathValue("id", "99")

		handler.Update(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"libraryapi/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	var gotUsername string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUsername = UsernameFrom(r)
		w.WriteHeader(http.StatusOK)
	})
	protected := AuthMiddleware(secret)(next)

	t.Run("valid token", func(t *testing.T) {
		token := testutil.GenerateTestToken(secret, "alice")

		w := httptest.NewRecorder()
		r := testutil.NewRequestWithAuth(http.MethodGet, "/", nil, token)

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", gotUsername)
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/", nil)

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Token abc")

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequestWithAuth(http.MethodGet, "/", nil, "not.a.token")

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := testutil.GenerateExpiredToken(secret, "alice")

		w := httptest.NewRecorder()
		r := testutil.NewRequestWithAuth(http.MethodGet, "/", nil, token)

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token := testutil.GenerateTestToken("other-secret", "alice")

		w := httptest.NewRecorder()
		r := testutil.NewRequestWithAuth(http.MethodGet, "/", nil, token)

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

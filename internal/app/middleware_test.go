package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/meetcal/meetcal/internal/event_bus"
	"github.com/meetcal/meetcal/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiddlewareTest(t *testing.T) http.Handler {
	repo := user.NewRepositoryStub()
	_, err := repo.CreateUser(context.Background(), user.User{Uid: "uid-1", Username: "dana", Cohort: "2025", Group: "A"})
	require.NoError(t, err)

	r := mux.NewRouter()
	r.Use(userMiddleware(user.NewService(repo, event_bus.NewEventBus())))
	r.HandleFunc("/whoami", func(w http.ResponseWriter, req *http.Request) {
		u, err := user.CurrentUser(req.Context())
		if err != nil {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(u.Username))
	})
	return r
}

func TestUserMiddleware(t *testing.T) {
	t.Run("should put known user into context", func(t *testing.T) {
		router := setupMiddlewareTest(t)
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-User-Id", "uid-1")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "dana", w.Body.String())
	})

	t.Run("should reject unknown user", func(t *testing.T) {
		router := setupMiddlewareTest(t)
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-User-Id", "someone-else")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("should pass request without header to handler", func(t *testing.T) {
		router := setupMiddlewareTest(t)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

package assignment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/meetcal/meetcal/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) http.Handler {
	_, service, _ := setupServiceTest(t)
	handler := NewHandler(service)
	r := mux.NewRouter()
	r.HandleFunc("/api/assignments", handler.GetAssignments).Methods("GET")
	r.HandleFunc("/api/assignments/{assignmentId}/status", handler.SetStatus).Methods("PUT")
	r.HandleFunc("/api/assignments/{assignmentId}/status/next", handler.NextStatus).Methods("POST")
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.ServeHTTP(w, req.WithContext(test_utils.WithTestUser(req.Context())))
	})
}

func TestHandler_Assignments(t *testing.T) {
	t.Run("should update status and report progress", func(t *testing.T) {
		router := setupHandlerTest(t)

		// set a2 done
		body, _ := json.Marshal(StatusDTO{Status: "done"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/assignments/a2/status", bytes.NewBuffer(body)))
		require.Equal(t, http.StatusOK, w.Code)

		// cycle g1 to in-progress
		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/assignments/g1/status/next", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var cycled StatusDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&cycled))
		assert.Equal(t, "in-progress", cycled.Status)

		// list
		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/assignments", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var worklist WorklistDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&worklist))
		require.Len(t, worklist.Assignments, 3)
		assert.Equal(t, "a1", worklist.Assignments[0].Id)
		assert.Equal(t, "Kickoff", worklist.Assignments[0].Source)
		assert.Equal(t, "not-started", worklist.Assignments[0].Status)
		assert.Equal(t, "done", worklist.Assignments[2].Status)
		assert.Equal(t, SummaryDTO{Completed: 1, Total: 3, Percent: 33}, worklist.Progress)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		router := setupHandlerTest(t)
		body, _ := json.Marshal(StatusDTO{Status: "paused"})
		w := httptest.NewRecorder()

		router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/assignments/a1/status", bytes.NewBuffer(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return not found for assignment outside the schedule", func(t *testing.T) {
		router := setupHandlerTest(t)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/assignments/unknown/status/next", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should reject unknown order", func(t *testing.T) {
		router := setupHandlerTest(t)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/assignments?order=random", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

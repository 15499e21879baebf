package layout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/meetcal/meetcal/pkg/reminder"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dayReaderStub struct {
	events map[string][]schedule.Event
}

func (s *dayReaderStub) GetDay(ctx context.Context, date string) ([]schedule.Event, error) {
	if err := timeutil.ValidateDate(date); err != nil {
		return nil, err
	}
	return s.events[date], nil
}

type reminderReaderStub struct {
	reminders []reminder.Reminder
}

func (s *reminderReaderStub) List(ctx context.Context, date string) ([]reminder.Reminder, error) {
	var result []reminder.Reminder
	for _, r := range s.reminders {
		if r.Date == date {
			result = append(result, r)
		}
	}
	return result, nil
}

func setupHandlerTest() http.Handler {
	days := &dayReaderStub{events: map[string][]schedule.Event{
		"2025-07-14": {event("X", "09:00", "10:00"), event("Y", "09:30", "10:30"), event("Z", "10:00", "11:00")},
	}}
	reminders := &reminderReaderStub{reminders: []reminder.Reminder{
		{Id: "r1", Text: "Bring laptop", Date: "2025-07-14", Time: "08:00"},
		{Id: "r2", Text: "Call mentor", Date: "2025-07-15", Time: "12:00"},
	}}
	handler := NewHandler(days, reminders)
	r := mux.NewRouter()
	r.HandleFunc("/api/schedule/day", handler.GetDay).Methods("GET")
	return r
}

func TestHandler_GetDay(t *testing.T) {
	t.Run("should return laid out day with conflicts and reminders", func(t *testing.T) {
		// given
		router := setupHandlerTest()
		w := httptest.NewRecorder()

		// when
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schedule/day?date=2025-07-14", nil))

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var day DayDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&day))
		assert.Equal(t, "2025-07-14", day.Date)
		require.Len(t, day.Events, 3)
		assert.Equal(t, "X", day.Events[0].Id)
		assert.Equal(t, 50.0, day.Events[0].WidthPercent)
		assert.Equal(t, 1, day.Events[1].Column)
		assert.Len(t, day.Conflicts, 2)
		require.Len(t, day.Reminders, 1)
		assert.Equal(t, "Bring laptop", day.Reminders[0].Text)
	})

	t.Run("should return empty day", func(t *testing.T) {
		router := setupHandlerTest()
		w := httptest.NewRecorder()

		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schedule/day?date=2025-08-01", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var day DayDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&day))
		assert.Empty(t, day.Events)
		assert.Empty(t, day.Conflicts)
	})

	t.Run("should reject invalid date", func(t *testing.T) {
		router := setupHandlerTest()
		w := httptest.NewRecorder()

		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schedule/day?date=14-07-2025", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

package schedule

import (
	"errors"
	"testing"

	"github.com/meetcal/meetcal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("should zero pad times and default category", func(t *testing.T) {
		normalized, err := Normalize(Event{Id: "P1", Title: "Gym", Date: "2025-07-14", StartTime: "9:05", EndTime: "10:00"})

		require.NoError(t, err)
		assert.Equal(t, "09:05", normalized.StartTime)
		assert.Equal(t, Personal, normalized.Category)
	})

	t.Run("should accept zero duration", func(t *testing.T) {
		_, err := Normalize(Event{Id: "P1", Date: "2025-07-14", StartTime: "10:00", EndTime: "10:00", Category: Break})

		assert.NoError(t, err)
	})

	testCases := []struct {
		name  string
		event Event
		field string
	}{
		{"missing id", Event{Date: "2025-07-14", StartTime: "09:00", EndTime: "10:00"}, "id"},
		{"bad date", Event{Id: "E1", Date: "14/07/2025", StartTime: "09:00", EndTime: "10:00"}, "date"},
		{"bad start", Event{Id: "E1", Date: "2025-07-14", StartTime: "25:00", EndTime: "10:00"}, "startTime"},
		{"bad end", Event{Id: "E1", Date: "2025-07-14", StartTime: "09:00", EndTime: "10"}, "endTime"},
		{"end before start", Event{Id: "E1", Date: "2025-07-14", StartTime: "11:00", EndTime: "10:00"}, "endTime"},
		{"unknown category", Event{Id: "E1", Date: "2025-07-14", StartTime: "09:00", EndTime: "10:00", Category: "party"}, "category"},
		{"assignment without due date", Event{Id: "E1", Date: "2025-07-14", StartTime: "09:00", EndTime: "10:00",
			Assignments: []Assignment{{Id: "A1", Title: "Essay"}}}, "assignments.dueDate"},
	}
	for _, tc := range testCases {
		t.Run("should reject "+tc.name, func(t *testing.T) {
			_, err := Normalize(tc.event)

			require.Error(t, err)
			assert.ErrorIs(t, err, timeutil.ErrInvalidFormat)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tc.field, validationErr.Field)
			assert.Equal(t, tc.event.Id, validationErr.EventId)
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	_, err := NormalizeAll([]Event{
		{Id: "G1", Date: "2025-07-14", StartTime: "09:00", EndTime: "10:00"},
		{Id: "G2", Date: "2025-07-14", StartTime: "9am", EndTime: "10:00"},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "G2", validationErr.EventId)
}

package ics

import (
	"context"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/meetcal/meetcal/internal/test_utils"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendar(lines ...string) string {
	all := append([]string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//test//EN"}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n") + "\r\n"
}

var feed = calendar(
	"BEGIN:VEVENT",
	"UID:standup",
	"DTSTAMP:20250701T000000Z",
	"DTSTART;TZID=Asia/Jerusalem:20250714T090000",
	"DTEND;TZID=Asia/Jerusalem:20250714T093000",
	"RRULE:FREQ=DAILY;COUNT=5",
	"EXDATE;TZID=Asia/Jerusalem:20250716T090000",
	"SUMMARY:Standup",
	"LOCATION:Room 1",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:standup",
	"DTSTAMP:20250701T000000Z",
	"RECURRENCE-ID;TZID=Asia/Jerusalem:20250717T090000",
	"DTSTART;TZID=Asia/Jerusalem:20250717T100000",
	"DTEND;TZID=Asia/Jerusalem:20250717T103000",
	"SUMMARY:Standup (moved)",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:offsite",
	"DTSTAMP:20250701T000000Z",
	"DTSTART;VALUE=DATE:20250720",
	"DTEND;VALUE=DATE:20250721",
	"SUMMARY:Offsite",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:late",
	"DTSTAMP:20250701T000000Z",
	"DTSTART:20250715T200000Z",
	"DTEND:20250715T230000Z",
	"DESCRIPTION:Bring snacks",
	"URL:https://example.com/party",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:old",
	"DTSTAMP:20240101T000000Z",
	"DTSTART:20240101T100000Z",
	"DTEND:20240101T110000Z",
	"SUMMARY:Old",
	"END:VEVENT",
)

func jerusalem(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	return loc
}

func window(loc *time.Location) (time.Time, time.Time) {
	from := time.Date(2025, 7, 14, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 31)
}

func eventIds(events []schedule.Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.Id)
	}
	return ids
}

func TestParse(t *testing.T) {
	loc := jerusalem(t)
	from, to := window(loc)

	events, err := Parse(strings.NewReader(feed), loc, from, to)
	require.NoError(t, err)

	t.Run("should expand recurrence within the window", func(t *testing.T) {
		assert.Equal(t, []string{
			"standup@2025-07-14T0900",
			"standup@2025-07-15T0900",
			"late@2025-07-15T2300",
			"standup@2025-07-17T1000",
			"standup@2025-07-18T0900",
			"offsite@2025-07-20T0000",
		}, eventIds(events))
	})

	t.Run("should apply overridden occurrence", func(t *testing.T) {
		moved := events[3]
		assert.Equal(t, "Standup (moved)", moved.Title)
		assert.Equal(t, "10:00", moved.StartTime)
		assert.Equal(t, "10:30", moved.EndTime)
	})

	t.Run("should map fields of imported events", func(t *testing.T) {
		standup := events[0]
		assert.Equal(t, "Standup", standup.Title)
		assert.Equal(t, "Room 1", standup.Location)
		assert.Equal(t, schedule.Personal, standup.Category)
		assert.Equal(t, "standup", standup.ExternalId)
		assert.True(t, standup.IsImported())

		late := events[2]
		assert.Equal(t, "No Title", late.Title)
		assert.Equal(t, "Bring snacks", late.Notes)
		assert.Equal(t, "https://example.com/party", late.MeetingLink)
	})

	t.Run("should clamp event running past midnight", func(t *testing.T) {
		late := events[2]
		assert.Equal(t, "2025-07-15", late.Date)
		assert.Equal(t, "23:00", late.StartTime)
		assert.Equal(t, "23:59", late.EndTime)
	})

	t.Run("should span whole day for all-day event", func(t *testing.T) {
		offsite := events[5]
		assert.Equal(t, "2025-07-20", offsite.Date)
		assert.Equal(t, "00:00", offsite.StartTime)
		assert.Equal(t, "23:59", offsite.EndTime)
	})

	t.Run("should produce events that pass validation", func(t *testing.T) {
		_, err := schedule.NormalizeAll(events)
		assert.NoError(t, err)
	})
}

func TestParse_BackwardsEvent(t *testing.T) {
	loc := time.UTC
	from, to := window(loc)
	backwards := calendar(
		"BEGIN:VEVENT",
		"UID:good",
		"DTSTAMP:20250701T000000Z",
		"DTSTART:20250714T090000Z",
		"DTEND:20250714T100000Z",
		"SUMMARY:Good",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:bad",
		"DTSTAMP:20250701T000000Z",
		"DTSTART:20250714T110000Z",
		"DTEND:20250714T103000Z",
		"SUMMARY:Bad",
		"END:VEVENT",
	)

	events, err := Parse(strings.NewReader(backwards), loc, from, to)

	require.NoError(t, err)
	assert.Equal(t, []string{"good@2025-07-14T0900"}, eventIds(events))
	inserted, err := schedule.NewStore(schedule.NewRepositoryStub()).BulkImport(test_utils.WithTestUser(context.Background()), events)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
}

func TestParse_EmptyWindow(t *testing.T) {
	loc := jerusalem(t)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, loc)

	events, err := Parse(strings.NewReader(feed), loc, from, from.AddDate(0, 0, 7))

	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestOccurrenceId(t *testing.T) {
	assert.Equal(t, "abc@2025-07-14T0905", OccurrenceId("abc", "2025-07-14", "09:05"))
}

package google

import (
	"context"
	"time"

	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/timeutil"
	"github.com/meetcal/meetcal/pkg/user"
	gcal "google.golang.org/api/calendar/v3"
)

const (
	SourceName = "google"
	untitled   = "No Title"
	endOfDay   = "23:59"
)

// Source imports events from the user's configured Google calendar, or the
// primary one when none is configured.
type Source struct {
	service Service
}

func NewSource(service Service) *Source {
	return &Source{service: service}
}

func (s *Source) Name() string {
	return SourceName
}

func (s *Source) Fetch(ctx context.Context, u user.User, from, to time.Time) ([]schedule.Event, error) {
	calendarId := u.Settings.GoogleCalendarId
	if calendarId == "" {
		calendarId = primaryCalendar
	}
	items, err := s.service.ListEvents(ctx, u.Id, calendarId, from, to)
	if err != nil {
		return nil, err
	}

	loc := u.Settings.Location()
	seen := make(map[string]bool, len(items))
	events := make([]schedule.Event, 0, len(items))
	for _, item := range items {
		event, ok := toEvent(item, calendarId, loc)
		if !ok || seen[event.Id] {
			continue
		}
		seen[event.Id] = true
		events = append(events, event)
	}
	return events, nil
}

// toEvent maps a Google event. All-day events span 00:00-23:59, timed events
// running past midnight end at 23:59 of their start day.
func toEvent(item *gcal.Event, calendarId string, loc *time.Location) (schedule.Event, bool) {
	if item == nil || item.Id == "" || item.Start == nil || item.Status == "cancelled" {
		return schedule.Event{}, false
	}

	var date, start, end string
	if item.Start.DateTime == "" {
		day, err := time.Parse(timeutil.DateLayout, item.Start.Date)
		if err != nil {
			return schedule.Event{}, false
		}
		date = day.Format(timeutil.DateLayout)
		start, end = "00:00", endOfDay
	} else {
		startAt, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return schedule.Event{}, false
		}
		date = timeutil.DateOf(startAt, loc)
		start = timeutil.TimeOf(startAt, loc)
		end = endOfDay
		if item.End != nil && item.End.DateTime != "" {
			if endAt, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil && timeutil.DateOf(endAt, loc) == date {
				end = timeutil.TimeOf(endAt, loc)
			}
		}
	}

	title := item.Summary
	if title == "" {
		title = untitled
	}
	return schedule.Event{
		Id:          item.Id,
		Title:       title,
		Category:    schedule.Personal,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Location:    item.Location,
		MeetingLink: item.HtmlLink,
		Notes:       item.Description,
		ExternalId:  item.Id,
		CalendarId:  calendarId,
	}, true
}

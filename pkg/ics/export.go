package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/timeutil"
)

const productId = "-//meetcal//schedule//EN"

// Export writes the events as a VCALENDAR. Dates and times are interpreted in loc.
func Export(w io.Writer, name string, events []schedule.Event, loc *time.Location, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productId)
	cal.SetXWRCalName(name)

	for _, e := range events {
		start, err := wallClock(e.Date, e.StartTime, loc)
		if err != nil {
			return &schedule.ValidationError{EventId: e.Id, Field: "startTime", Value: e.StartTime, Err: err}
		}
		end, err := wallClock(e.Date, e.EndTime, loc)
		if err != nil {
			return &schedule.ValidationError{EventId: e.Id, Field: "endTime", Value: e.EndTime, Err: err}
		}

		ev := cal.AddEvent(e.Id)
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(e.Title)
		ev.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(e.Category)))
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if e.MeetingLink != "" {
			ev.SetURL(e.MeetingLink)
		}
		if description := describe(e); description != "" {
			ev.SetDescription(description)
		}
	}
	return cal.SerializeTo(w)
}

func wallClock(date, hhmm string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(timeutil.DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", timeutil.ErrInvalidFormat, err)
	}
	minutes, err := timeutil.ToMinutes(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}

func describe(e schedule.Event) string {
	var b strings.Builder
	b.WriteString(e.Notes)
	for _, a := range e.Assignments {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Assignment: %s (due %s)", a.Title, a.DueDate)
	}
	return b.String()
}

package ics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/timeutil"
	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"
)

const (
	maxOccurrencesPerEvent = 1000
	untitled               = "No Title"
	endOfDay               = "23:59"
)

type vevent struct {
	uid         string
	summary     string
	description string
	location    string
	url         string
	start       time.Time
	end         time.Time
	allDay      bool
	rrule       string
	exDates     []time.Time
	recurrence  *time.Time
}

// Parse reads a VCALENDAR and returns one schedule event per occurrence that starts
// within [from, to]. Recurring events are expanded, EXDATEs dropped and
// RECURRENCE-ID overrides applied. Times are rendered in loc.
func Parse(r io.Reader, loc *time.Location, from, to time.Time) ([]schedule.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", timeutil.ErrInvalidFormat, err)
	}

	bases := make([]vevent, 0)
	overrides := make(map[string][]vevent)
	for _, component := range cal.Events() {
		ev, err := parseVEvent(component)
		if err != nil {
			log.Warnf("skipping calendar entry: %v", err)
			continue
		}
		if ev.recurrence != nil {
			overrides[ev.uid] = append(overrides[ev.uid], ev)
			continue
		}
		bases = append(bases, ev)
	}

	events := make([]schedule.Event, 0)
	seen := make(map[string]bool)
	for _, base := range bases {
		for _, occurrence := range expand(base, overrides[base.uid], from, to) {
			event := toEvent(occurrence, loc)
			if seen[event.Id] {
				continue
			}
			if _, err := schedule.Normalize(event); err != nil {
				log.Warnf("skipping calendar entry: %v", err)
				continue
			}
			seen[event.Id] = true
			events = append(events, event)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if c := timeutil.CompareDates(events[i].Date, events[j].Date); c != 0 {
			return c < 0
		}
		a, _ := timeutil.ToMinutes(events[i].StartTime)
		b, _ := timeutil.ToMinutes(events[j].StartTime)
		return a < b
	})
	return events, nil
}

func parseVEvent(component *ical.VEvent) (vevent, error) {
	var ev vevent
	uid := component.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return ev, fmt.Errorf("missing UID")
	}
	ev.uid = uid.Value
	ev.summary = propertyValue(component, ical.ComponentPropertySummary)
	ev.description = propertyValue(component, ical.ComponentPropertyDescription)
	ev.location = propertyValue(component, ical.ComponentPropertyLocation)
	ev.url = propertyValue(component, ical.ComponentPropertyUrl)
	ev.rrule = propertyValue(component, ical.ComponentPropertyRrule)

	dtStart := component.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return ev, fmt.Errorf("event %s has no DTSTART", ev.uid)
	}
	ev.allDay = isDateOnly(dtStart)

	var err error
	if ev.allDay {
		ev.start, err = component.GetAllDayStartAt()
	} else {
		ev.start, err = component.GetStartAt()
	}
	if err != nil {
		return ev, fmt.Errorf("event %s: %w", ev.uid, err)
	}
	if ev.allDay {
		ev.end, err = component.GetAllDayEndAt()
		if err != nil {
			ev.end = ev.start.AddDate(0, 0, 1)
		}
	} else {
		ev.end, err = component.GetEndAt()
		if err != nil {
			ev.end = ev.start
		}
	}

	for _, exdate := range component.GetProperties(ical.ComponentPropertyExdate) {
		for _, value := range strings.Split(exdate.Value, ",") {
			if t, err := parseTime(strings.TrimSpace(value), exdate.ICalParameters, ev.start.Location()); err == nil {
				ev.exDates = append(ev.exDates, t)
			}
		}
	}
	if rid := component.GetProperty(ical.ComponentPropertyRecurrenceId); rid != nil {
		t, err := parseTime(rid.Value, rid.ICalParameters, ev.start.Location())
		if err != nil {
			return ev, fmt.Errorf("event %s: invalid RECURRENCE-ID: %w", ev.uid, err)
		}
		ev.recurrence = &t
	}
	return ev, nil
}

func propertyValue(component *ical.VEvent, property ical.ComponentProperty) string {
	if p := component.GetProperty(property); p != nil {
		return p.Value
	}
	return ""
}

func isDateOnly(p *ical.IANAProperty) bool {
	if values, ok := p.ICalParameters["VALUE"]; ok && len(values) > 0 && strings.EqualFold(values[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseTime handles the DATE and DATE-TIME forms used by EXDATE and RECURRENCE-ID.
func parseTime(value string, params map[string][]string, fallback *time.Location) (time.Time, error) {
	loc := fallback
	if tz, ok := params["TZID"]; ok && len(tz) > 0 {
		if l, err := time.LoadLocation(tz[0]); err == nil {
			loc = l
		}
	}
	switch {
	case strings.HasSuffix(value, "Z"):
		return time.Parse("20060102T150405Z", value)
	case strings.Contains(value, "T"):
		return time.ParseInLocation("20060102T150405", value, loc)
	default:
		return time.ParseInLocation("20060102", value, loc)
	}
}

func expand(base vevent, overrides []vevent, from, to time.Time) []vevent {
	if base.rrule == "" {
		if base.start.Before(from) || base.start.After(to) {
			return nil
		}
		return []vevent{base}
	}

	rule, err := rrule.StrToRRule(base.rrule)
	if err != nil {
		log.Warnf("skipping recurrence of %s: %v", base.uid, err)
		return nil
	}
	rule.DTStart(base.start)
	var set rrule.Set
	set.RRule(rule)
	for _, ex := range base.exDates {
		set.ExDate(ex.In(base.start.Location()))
	}

	starts := set.Between(from.In(base.start.Location()), to.In(base.start.Location()), true)
	if len(starts) > maxOccurrencesPerEvent {
		log.Warnf("truncating %s to %d occurrences", base.uid, maxOccurrencesPerEvent)
		starts = starts[:maxOccurrencesPerEvent]
	}

	duration := base.end.Sub(base.start)
	occurrences := make([]vevent, 0, len(starts))
	for _, start := range starts {
		occurrence := base
		occurrence.start = start
		occurrence.end = start.Add(duration)
		for _, o := range overrides {
			if o.recurrence.Equal(start) {
				occurrence = o
				break
			}
		}
		occurrences = append(occurrences, occurrence)
	}
	return occurrences
}

// toEvent renders one occurrence. All-day occurrences span 00:00-23:59 and timed
// occurrences running past midnight end at 23:59 of their start day.
func toEvent(ev vevent, loc *time.Location) schedule.Event {
	var date, start, end string
	if ev.allDay {
		date = ev.start.Format(timeutil.DateLayout)
		start, end = "00:00", endOfDay
	} else {
		date = timeutil.DateOf(ev.start, loc)
		start = timeutil.TimeOf(ev.start, loc)
		end = timeutil.TimeOf(ev.end, loc)
		if timeutil.DateOf(ev.end, loc) != date {
			end = endOfDay
		}
	}

	title := ev.summary
	if title == "" {
		title = untitled
	}
	return schedule.Event{
		Id:          OccurrenceId(ev.uid, date, start),
		Title:       title,
		Category:    schedule.Personal,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Location:    ev.location,
		MeetingLink: ev.url,
		Notes:       ev.description,
		ExternalId:  ev.uid,
	}
}

// OccurrenceId identifies one occurrence of a feed event, e.g. "abc@2025-07-14T0900".
func OccurrenceId(uid, date, startTime string) string {
	return fmt.Sprintf("%s@%sT%s", uid, date, strings.ReplaceAll(startTime, ":", ""))
}

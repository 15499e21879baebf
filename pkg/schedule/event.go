package schedule

import (
	"errors"
	"fmt"

	"github.com/meetcal/meetcal/pkg/timeutil"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")
)

type Category string

const (
	Lecture  Category = "lecture"
	Lab      Category = "lab"
	Personal Category = "personal"
	Workshop Category = "workshop"
	Break    Category = "break"
	Meal     Category = "meal"
)

func (c Category) Valid() bool {
	switch c {
	case Lecture, Lab, Personal, Workshop, Break, Meal:
		return true
	}
	return false
}

type Assignment struct {
	Id             string `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	Description    string `json:"description" yaml:"description"`
	DueDate        string `json:"dueDate" yaml:"dueDate"`
	SubmissionLink string `json:"submissionLink,omitempty" yaml:"submissionLink,omitempty"`
}

type Event struct {
	Id          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Category    Category `json:"category" yaml:"category"`
	Date        string   `json:"date" yaml:"date"`
	StartTime   string   `json:"startTime" yaml:"startTime"`
	EndTime     string   `json:"endTime" yaml:"endTime"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	MeetingLink string   `json:"meetingLink,omitempty" yaml:"meetingLink,omitempty"`
	Notes       string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	// ExternalId is set for events imported from an external calendar.
	ExternalId string `json:"externalId,omitempty" yaml:"externalId,omitempty"`
	// CalendarId identifies the external calendar an imported event came from.
	CalendarId  string       `json:"calendarId,omitempty" yaml:"calendarId,omitempty"`
	Reminders   []string     `json:"reminders,omitempty" yaml:"reminders,omitempty"`
	Assignments []Assignment `json:"assignments,omitempty" yaml:"assignments,omitempty"`
}

// IsImported reports whether the event came from an external calendar.
func (e Event) IsImported() bool {
	return e.ExternalId != ""
}

// ValidationError names the event and field that failed validation.
type ValidationError struct {
	EventId string
	Field   string
	Value   string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("event %q: invalid %s %q: %v", e.EventId, e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Normalize validates the event and returns a copy with zero-padded times and a default
// category. All events entering the store or the baseline pass through here.
func Normalize(e Event) (Event, error) {
	if e.Id == "" {
		return e, &ValidationError{Field: "id", Err: fmt.Errorf("%w: id is required", timeutil.ErrInvalidFormat)}
	}
	if err := timeutil.ValidateDate(e.Date); err != nil {
		return e, &ValidationError{EventId: e.Id, Field: "date", Value: e.Date, Err: err}
	}
	start, err := timeutil.NormalizeTime(e.StartTime)
	if err != nil {
		return e, &ValidationError{EventId: e.Id, Field: "startTime", Value: e.StartTime, Err: err}
	}
	end, err := timeutil.NormalizeTime(e.EndTime)
	if err != nil {
		return e, &ValidationError{EventId: e.Id, Field: "endTime", Value: e.EndTime, Err: err}
	}
	duration, _ := timeutil.Duration(start, end)
	if duration < 0 {
		return e, &ValidationError{
			EventId: e.Id,
			Field:   "endTime",
			Value:   e.EndTime,
			Err:     fmt.Errorf("%w: endTime is before startTime %s", timeutil.ErrInvalidFormat, start),
		}
	}
	if e.Category == "" {
		e.Category = Personal
	}
	if !e.Category.Valid() {
		return e, &ValidationError{
			EventId: e.Id,
			Field:   "category",
			Value:   string(e.Category),
			Err:     fmt.Errorf("%w: unknown category", timeutil.ErrInvalidFormat),
		}
	}
	for _, a := range e.Assignments {
		if a.Id == "" {
			return e, &ValidationError{EventId: e.Id, Field: "assignments.id", Err: fmt.Errorf("%w: assignment id is required", timeutil.ErrInvalidFormat)}
		}
		if err := timeutil.ValidateDate(a.DueDate); err != nil {
			return e, &ValidationError{EventId: e.Id, Field: "assignments.dueDate", Value: a.DueDate, Err: err}
		}
	}
	e.StartTime = start
	e.EndTime = end
	return e, nil
}

// NormalizeAll validates a batch; the first failure aborts the whole batch.
func NormalizeAll(events []Event) ([]Event, error) {
	normalized := make([]Event, 0, len(events))
	for _, e := range events {
		n, err := Normalize(e)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, n)
	}
	return normalized, nil
}

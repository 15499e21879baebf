package assignment

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/timeutil"
)

// GeneralSource labels assignments that do not belong to any event.
const GeneralSource = "General Task"

var (
	ErrInvalidStatus      = errors.New("invalid assignment status")
	ErrAssignmentNotFound = fmt.Errorf("assignment %w", schedule.ErrNotFound)
)

type Status string

const (
	NotStarted Status = "not-started"
	InProgress Status = "in-progress"
	Done       Status = "done"
)

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if status.rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Next cycles not-started -> in-progress -> done -> not-started.
func (s Status) Next() Status {
	switch s {
	case NotStarted:
		return InProgress
	case InProgress:
		return Done
	default:
		return NotStarted
	}
}

func (s Status) rank() int {
	switch s {
	case NotStarted:
		return 0
	case InProgress:
		return 1
	case Done:
		return 2
	}
	return -1
}

// Statuses maps assignment ids to their status. Ids without an entry are not started.
type Statuses map[string]Status

func (s Statuses) Of(assignmentId string) Status {
	if status, ok := s[assignmentId]; ok {
		return status
	}
	return NotStarted
}

// Entry is an assignment together with the title of the event it came from.
type Entry struct {
	schedule.Assignment
	Source string
}

type Summary struct {
	Completed int
	Total     int
	Percent   int
}

// CollectAll flattens the assignments of events in schedule order, followed by the
// general assignments.
func CollectAll(events []schedule.Event, general []schedule.Assignment) []Entry {
	entries := make([]Entry, 0)
	for _, e := range events {
		for _, a := range e.Assignments {
			entries = append(entries, Entry{Assignment: a, Source: e.Title})
		}
	}
	for _, a := range general {
		entries = append(entries, Entry{Assignment: a, Source: GeneralSource})
	}
	return entries
}

// SortForDisplay orders entries by status (not started first, done last), then by
// due date. Entries that compare equal keep their collected order.
func SortForDisplay(entries []Entry, statusOf func(string) Status) []Entry {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := statusOf(sorted[i].Id).rank(), statusOf(sorted[j].Id).rank()
		if ri != rj {
			return ri < rj
		}
		return timeutil.CompareDates(sorted[i].DueDate, sorted[j].DueDate) < 0
	})
	return sorted
}

// DoneLast puts every incomplete entry before the done ones, each part in due date order.
func DoneLast(entries []Entry, statusOf func(string) Status) []Entry {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := statusOf(sorted[i].Id) == Done, statusOf(sorted[j].Id) == Done
		if di != dj {
			return !di
		}
		return timeutil.CompareDates(sorted[i].DueDate, sorted[j].DueDate) < 0
	})
	return sorted
}

func ProgressSummary(entries []Entry, statusOf func(string) Status) Summary {
	summary := Summary{Total: len(entries)}
	for _, e := range entries {
		if statusOf(e.Id) == Done {
			summary.Completed++
		}
	}
	if summary.Total > 0 {
		summary.Percent = int(math.Round(float64(summary.Completed) * 100 / float64(summary.Total)))
	}
	return summary
}

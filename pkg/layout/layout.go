package layout

import (
	"fmt"
	"sort"

	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/timeutil"
)

const fullWidth = 100.0

// PositionedEvent is an event placed on the single-day timeline. Width and offset
// are percentages of the timeline width.
type PositionedEvent struct {
	schedule.Event
	Column            int     `json:"column"`
	WidthPercent      float64 `json:"widthPercent"`
	LeftOffsetPercent float64 `json:"leftOffsetPercent"`
}

type timed struct {
	event schedule.Event
	start int
	end   int
}

// sortByTimeline orders events by start, then longer first, then by id.
func sortByTimeline(events []schedule.Event) ([]timed, error) {
	items := make([]timed, 0, len(events))
	for _, e := range events {
		start, err := timeutil.ToMinutes(e.StartTime)
		if err != nil {
			return nil, &schedule.ValidationError{EventId: e.Id, Field: "startTime", Value: e.StartTime, Err: err}
		}
		end, err := timeutil.ToMinutes(e.EndTime)
		if err != nil {
			return nil, &schedule.ValidationError{EventId: e.Id, Field: "endTime", Value: e.EndTime, Err: err}
		}
		if end < start {
			return nil, &schedule.ValidationError{
				EventId: e.Id,
				Field:   "endTime",
				Value:   e.EndTime,
				Err:     fmt.Errorf("%w: endTime is before startTime", timeutil.ErrInvalidFormat),
			}
		}
		items = append(items, timed{event: e, start: start, end: end})
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if da, db := a.end-a.start, b.end-b.start; da != db {
			return da > db
		}
		return a.event.Id < b.event.Id
	})
	return items, nil
}

// LayoutDay assigns overlapping events of one day to side-by-side columns.
//
// Events are placed greedily into the first column whose last event has ended.
// Events linked by overlap form a cluster; every event of a cluster gets the width
// 100/(columns in the cluster) and is offset by its column. The result is ordered
// by start time and does not depend on the input order.
func LayoutDay(events []schedule.Event) ([]PositionedEvent, error) {
	items, err := sortByTimeline(events)
	if err != nil {
		return nil, err
	}

	positioned := make([]PositionedEvent, len(items))
	var columnEnds []int
	clusterStart := 0
	clusterEnd := 0
	maxColumn := 0

	closeCluster := func(until int) {
		width := fullWidth / float64(maxColumn+1)
		for i := clusterStart; i < until; i++ {
			positioned[i].WidthPercent = width
			positioned[i].LeftOffsetPercent = width * float64(positioned[i].Column)
		}
	}

	for i, item := range items {
		if i > 0 && item.start >= clusterEnd {
			closeCluster(i)
			clusterStart = i
			maxColumn = 0
		}
		if i == clusterStart || item.end > clusterEnd {
			clusterEnd = item.end
		}

		column := -1
		for c, end := range columnEnds {
			if end <= item.start {
				column = c
				break
			}
		}
		if column < 0 {
			column = len(columnEnds)
			columnEnds = append(columnEnds, item.end)
		} else {
			columnEnds[column] = item.end
		}
		if column > maxColumn {
			maxColumn = column
		}

		positioned[i] = PositionedEvent{Event: item.event, Column: column}
	}
	if len(items) > 0 {
		closeCluster(len(items))
	}
	return positioned, nil
}

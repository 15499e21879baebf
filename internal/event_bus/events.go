package event_bus

import "time"

const ImportCompletedType EventType = "calendar.import.completed"

// ImportCompleted is published after an external calendar import has been stored.
type ImportCompleted struct {
	UserId     int
	Source     string
	Fetched    int
	Inserted   int
	FinishedAt time.Time
}

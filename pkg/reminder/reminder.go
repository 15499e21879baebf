package reminder

import (
	"fmt"

	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/timeutil"
)

var ErrReminderNotFound = fmt.Errorf("reminder %w", schedule.ErrNotFound)

// Reminder is a standalone to-do created by the user. It never expires.
type Reminder struct {
	Id        string
	Text      string
	Date      string
	Time      string
	Completed bool
}

func validate(r Reminder) (Reminder, error) {
	if r.Text == "" {
		return r, fmt.Errorf("%w: reminder text is required", timeutil.ErrInvalidFormat)
	}
	if err := timeutil.ValidateDate(r.Date); err != nil {
		return r, err
	}
	if r.Time != "" {
		normalized, err := timeutil.NormalizeTime(r.Time)
		if err != nil {
			return r, err
		}
		r.Time = normalized
	}
	return r, nil
}

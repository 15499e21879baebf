package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned when a time-of-day or a date does not have the expected shape.
var ErrInvalidFormat = errors.New("invalid format")

const (
	DateLayout    = "2006-01-02"
	MonthLayout   = "2006-01"
	MinutesPerDay = 24 * 60
)

// ToMinutes converts "HH:MM" (24h) to minutes since midnight.
// Every time-of-day comparison in meetcal goes through this function; raw string
// comparison of times is never used.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidFormat, hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) == 0 || len(parts[0]) > 2 {
		return 0, fmt.Errorf("%w: time %q has invalid hour", ErrInvalidFormat, hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: time %q has invalid minute", ErrInvalidFormat, hhmm)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: time %q is out of range", ErrInvalidFormat, hhmm)
	}
	return hour*60 + minute, nil
}

// FromMinutes renders minutes since midnight as zero-padded "HH:MM".
func FromMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeTime parses hhmm and renders it back zero-padded, so "9:05" becomes "09:05".
func NormalizeTime(hhmm string) (string, error) {
	minutes, err := ToMinutes(hhmm)
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes), nil
}

// Duration returns end-start in minutes.
func Duration(start, end string) (int, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// ValidateDate checks date is a real calendar day written as YYYY-MM-DD.
func ValidateDate(date string) error {
	if len(date) != len(DateLayout) {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidFormat, date)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidFormat, date)
	}
	return nil
}

// ValidateMonth checks month is written as YYYY-MM.
func ValidateMonth(month string) error {
	if len(month) != len(MonthLayout) {
		return fmt.Errorf("%w: month %q must be YYYY-MM", ErrInvalidFormat, month)
	}
	if _, err := time.Parse(MonthLayout, month); err != nil {
		return fmt.Errorf("%w: month %q must be YYYY-MM", ErrInvalidFormat, month)
	}
	return nil
}

// CompareDates orders two validated YYYY-MM-DD dates. Fixed-width zero-padded dates sort
// lexicographically in calendar order, so a string comparison is exact here.
func CompareDates(a, b string) int {
	return strings.Compare(a, b)
}

// DateOf returns the local calendar date of t in loc as YYYY-MM-DD.
func DateOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// TimeOf returns the local wall-clock time of t in loc as HH:MM.
func TimeOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("15:04")
}

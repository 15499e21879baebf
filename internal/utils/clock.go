package utils

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// Horizon returns the window from now until the given number of days ahead.
// A non-positive number of days yields an empty window.
func Horizon(c Clock, days int) (from time.Time, to time.Time) {
	from = c.Now()
	if days <= 0 {
		return from, from
	}
	return from, from.AddDate(0, 0, days)
}

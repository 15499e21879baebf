package user

import "time"

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	// Cohort is the canonical cohort key, e.g. "2025"; aliases are resolved by the baseline provider.
	Cohort   string
	Group    string
	Settings Settings
}

type Settings struct {
	Timezone         string
	GoogleCalendarId string
	IcsUrl           string
	LastSyncedAt     time.Time
}

// Location returns the user's timezone, falling back to UTC when unset or unknown.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

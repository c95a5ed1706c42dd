package cache

import "time"

// MaxAgeDays is the cache expiry threshold in whole calendar days.
const MaxAgeDays = 7

// Entry represents one cached response body together with the calendar day
// it was fetched on.
type Entry struct {
	// Day is the calendar-day ordinal of the fetch (days since the Unix
	// epoch of the local date, not a wall-clock timestamp)
	Day int `json:"day"`

	// Body is the raw response body as returned by the API
	Body string `json:"body"`
}

// DayOrdinal returns the calendar-day ordinal of t in its location.
// Expiry compares elapsed whole days, so two fetches on the same local
// date always share an ordinal regardless of time of day.
func DayOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// Expired reports whether the entry is MaxAgeDays or more calendar days
// older than today.
func (e Entry) Expired(today int) bool {
	return today-e.Day >= MaxAgeDays
}

package cache

import (
	"testing"
	"time"
)

func TestDayOrdinal(t *testing.T) {
	morning := time.Date(2020, 3, 15, 8, 0, 0, 0, time.Local)
	evening := time.Date(2020, 3, 15, 23, 59, 0, 0, time.Local)
	nextDay := time.Date(2020, 3, 16, 0, 0, 0, 0, time.Local)

	if DayOrdinal(morning) != DayOrdinal(evening) {
		t.Errorf("same calendar date produced different ordinals: %d vs %d",
			DayOrdinal(morning), DayOrdinal(evening))
	}
	if got, want := DayOrdinal(nextDay), DayOrdinal(morning)+1; got != want {
		t.Errorf("next day ordinal = %d, want %d", got, want)
	}
}

func TestEntry_Expired(t *testing.T) {
	today := DayOrdinal(time.Now())

	tests := []struct {
		name    string
		age     int
		expired bool
	}{
		{name: "fetched today", age: 0, expired: false},
		{name: "six days old", age: 6, expired: false},
		{name: "seven days old", age: 7, expired: true},
		{name: "eight days old", age: 8, expired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := Entry{Day: today - tt.age, Body: "{}"}
			if got := entry.Expired(today); got != tt.expired {
				t.Errorf("Expired() = %v, want %v", got, tt.expired)
			}
		})
	}
}

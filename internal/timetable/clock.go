package timetable

import (
	"fmt"
	"time"
)

// Clock is a wall-clock time of day without a date, as carried by schedule
// rows ("08:00").
type Clock struct {
	Hour   int
	Minute int
}

// Midnight is the sentinel substituted for unparsable time strings so that
// sorting and merging keep working on bad input.
var Midnight = Clock{}

// ParseClock parses a strict HH:MM string. On failure it returns Midnight
// together with an error naming the offending string; callers surface the
// error as a warning and continue with the sentinel.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Midnight, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Minutes returns the offset from midnight, used as the sort key for
// schedule rows.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// On anchors the clock on the given calendar day in that day's location.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

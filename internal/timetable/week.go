package timetable

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for the semester start date.
const DateLayout = "2006-01-02"

// WeekOf returns the 1-indexed academic week that now falls in, counted in
// 7-day periods from the semester start. Any instant before the start is
// week 0.
func WeekOf(semesterStart, now time.Time) int {
	if now.Before(semesterStart) {
		return 0
	}
	days := int(now.Sub(semesterStart).Hours() / 24)
	return days/7 + 1
}

// WeekOfString parses a YYYY-MM-DD semester start and returns the current
// academic week. An unparsable date degrades to week 1 and reports the error;
// callers log it and keep rendering rather than blocking the whole view.
func WeekOfString(semesterStart string, now time.Time) (int, error) {
	start, err := time.ParseInLocation(DateLayout, semesterStart, now.Location())
	if err != nil {
		return 1, fmt.Errorf("invalid semester start %q: %w", semesterStart, err)
	}
	return WeekOf(start, now), nil
}

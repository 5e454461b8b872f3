package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func TestWeekOf(t *testing.T) {
	start := date(2025, time.September, 1, 0, 0) // a Monday

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before start", date(2025, time.August, 31, 23, 59), 0},
		{"long before start", date(2025, time.January, 1, 0, 0), 0},
		{"at start", start, 1},
		{"first morning", date(2025, time.September, 1, 8, 0), 1},
		{"last instant of week 1", date(2025, time.September, 7, 23, 59), 1},
		{"first instant of week 2", date(2025, time.September, 8, 0, 0), 2},
		{"mid semester", date(2025, time.October, 20, 12, 0), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekOf(start, tt.now))
		})
	}
}

func TestWeekOfString(t *testing.T) {
	now := date(2025, time.September, 1, 8, 0)

	week, err := WeekOfString("2025-09-01", now)
	require.NoError(t, err)
	assert.Equal(t, 1, week)

	// An unparsable date degrades to week 1 and reports the error.
	week, err = WeekOfString("not-a-date", now)
	require.Error(t, err)
	assert.Equal(t, 1, week)
	assert.Contains(t, err.Error(), "not-a-date")
}

package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("08:05")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 8, Minute: 5}, c)
	assert.Equal(t, 485, c.Minutes())
	assert.Equal(t, "08:05", c.String())
}

func TestParseClockSentinel(t *testing.T) {
	for _, bad := range []string{"", "8am", "25:00", "08:60", "08.00"} {
		c, err := ParseClock(bad)
		require.Error(t, err, "input %q", bad)
		assert.Equal(t, Midnight, c, "input %q", bad)
		assert.Contains(t, err.Error(), bad)
	}
}

func TestClockOn(t *testing.T) {
	day := time.Date(2025, time.September, 1, 15, 30, 45, 0, time.UTC)
	c := Clock{Hour: 9, Minute: 0}
	at := c.On(day)
	assert.Equal(t, time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC), at)
}

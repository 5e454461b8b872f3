package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"app/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWeekICS(t *testing.T) {
	svc := NewExportService()
	var days [7][]model.CourseRow
	days[0] = []model.CourseRow{
		{Weekday: 1, Start: "08:00", End: "08:45", Name: "Math", Location: "A-101", Instructor: "Dr. Wu"},
	}
	days[2] = []model.CourseRow{
		{Weekday: 3, Start: "10:00", End: "11:30", Name: "Physics", Location: "B-202"},
	}

	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC) // a Monday

	var buf bytes.Buffer
	require.NoError(t, svc.WriteWeekICS(&buf, days, start, 2))
	out := buf.String()

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Math")
	assert.Contains(t, out, "SUMMARY:Physics")
	assert.Contains(t, out, "LOCATION:A-101")
	assert.Contains(t, out, "Instructor: Dr. Wu")
	// week 2 Monday is 2025-09-08, Wednesday 2025-09-10
	assert.Contains(t, out, "20250908T080000")
	assert.Contains(t, out, "20250910T100000")
}

func TestWriteWeekICSSkipsUnusableRows(t *testing.T) {
	svc := NewExportService()
	var days [7][]model.CourseRow
	days[0] = []model.CourseRow{
		{Weekday: 1, Start: "bad", End: "08:45", Name: "Broken"},
	}

	var buf bytes.Buffer
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.WriteWeekICS(&buf, days, start, 1))

	out := buf.String()
	assert.NotContains(t, out, "Broken")
	assert.Equal(t, 0, strings.Count(out, "BEGIN:VEVENT"))
}

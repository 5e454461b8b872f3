package service

import (
	"fmt"
	"io"
	"time"

	"app/internal/model"
	"app/internal/timetable"

	ics "github.com/arran4/golang-ical"
)

// ExportService renders an effective week as an iCalendar feed so the
// schedule can be pulled into an external calendar app.
type ExportService interface {
	// WriteWeekICS serializes the given effective week. Concrete event
	// dates are derived from the semester start: week 1 is the calendar
	// week containing the start date, and each weekday is offset from
	// that week's Monday.
	WriteWeekICS(w io.Writer, days [7][]model.CourseRow, semesterStart time.Time, week int) error
}

type exportService struct{}

// NewExportService creates an ExportService.
func NewExportService() ExportService {
	return &exportService{}
}

func (s *exportService) WriteWeekICS(w io.Writer, days [7][]model.CourseRow, semesterStart time.Time, week int) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	if week < 1 {
		week = 1
	}
	monday := mondayOf(semesterStart.AddDate(0, 0, (week-1)*7))

	seq := 0
	now := time.Now()
	for weekday := 1; weekday <= 7; weekday++ {
		date := monday.AddDate(0, 0, weekday-1)
		for _, row := range days[weekday-1] {
			start, err := timetable.ParseClock(row.Start)
			if err != nil {
				continue // skip rows without a usable start
			}
			end, err := timetable.ParseClock(row.End)
			if err != nil {
				continue
			}
			seq++
			event := cal.AddEvent(fmt.Sprintf("%s-%d", date.Format("20060102"), seq))
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetStartAt(start.On(date))
			event.SetEndAt(end.On(date))
			event.SetSummary(row.Name)
			event.SetLocation(row.Location)
			if row.Instructor != "" {
				event.SetDescription("Instructor: " + row.Instructor)
			}
		}
	}

	return cal.SerializeTo(w)
}

func mondayOf(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	day = day.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

package service

import (
	"time"

	"app/internal/model"
	"app/internal/timetable"
)

// ReminderService scans a day's effective schedule for the next course
// starting inside the lookahead window. It is a pure function of its inputs:
// callers re-invoke it on every dashboard evaluation and nothing is cached
// between calls.
type ReminderService interface {
	// NextUpcoming returns the first course in the (start-time-sorted)
	// schedule whose start instant today falls in [now, now+lookahead],
	// or nil if none does.
	NextUpcoming(today []model.CourseRow, now time.Time, lookahead time.Duration) *model.ReminderCandidate
}

type reminderService struct{}

// NewReminderService creates a ReminderService.
func NewReminderService() ReminderService {
	return &reminderService{}
}

func (s *reminderService) NextUpcoming(today []model.CourseRow, now time.Time, lookahead time.Duration) *model.ReminderCandidate {
	windowEnd := now.Add(lookahead)
	for _, row := range today {
		// Unparsable starts keep the midnight sentinel, which is in the
		// past for any daytime "now" and therefore never fires.
		start, _ := timetable.ParseClock(row.Start)
		startsAt := start.On(now)
		if startsAt.Before(now) || startsAt.After(windowEnd) {
			continue
		}
		end, _ := timetable.ParseClock(row.End)
		return &model.ReminderCandidate{
			Course:   row,
			StartsAt: startsAt,
			EndsAt:   end.On(now),
		}
	}
	return nil
}

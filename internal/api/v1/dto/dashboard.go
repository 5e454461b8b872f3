package dto

import (
	"time"

	"app/internal/model"
)

// ReminderDTO is the course about to start, with its concrete instants for
// today.
type ReminderDTO struct {
	Course   CourseRowDTO `json:"course"`
	StartsAt time.Time    `json:"starts_at"`
	EndsAt   time.Time    `json:"ends_at"`
}

// DashboardResponseDTO is the full dashboard view model, recomputed from the
// session state on every request.
type DashboardResponseDTO struct {
	Now           time.Time      `json:"now"`
	CurrentWeek   int            `json:"current_week"`
	RemindMinutes int            `json:"remind_minutes"`
	Today         []CourseRowDTO `json:"today"`
	Reminder      *ReminderDTO   `json:"reminder"`
	Warnings      []string       `json:"warnings,omitempty"`
}

// FromReminder converts a reminder candidate for responses; nil stays nil.
func FromReminder(c *model.ReminderCandidate) *ReminderDTO {
	if c == nil {
		return nil
	}
	return &ReminderDTO{
		Course:   FromCourseRow(c.Course),
		StartsAt: c.StartsAt,
		EndsAt:   c.EndsAt,
	}
}

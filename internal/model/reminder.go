package model

import "time"

// ReminderCandidate is a course about to start, paired with its concrete
// start and end instants for today. Recomputed from scratch on every
// dashboard evaluation, never stored.
type ReminderCandidate struct {
	Course   CourseRow `json:"course"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

package model

import "time"

// Settings are the per-session dashboard knobs. Both fields default from the
// server configuration and can be overridden per session.
type Settings struct {
	SemesterStart string `json:"semester_start"` // YYYY-MM-DD
	RemindMinutes int    `json:"remind_minutes"`
}

// Session owns all dashboard state for one browser session: the imported
// schedule, the adjustment list and the settings. Nothing here is shared
// across sessions or persisted; a session dies with the process or after
// sitting idle past the configured TTL.
type Session struct {
	ID          string
	Schedule    []CourseRow // nil until the first successful import
	Adjustments []Adjustment
	Settings    Settings
	LastSeen    time.Time
}

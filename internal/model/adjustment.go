package model

// Adjustment is a one-off schedule override. It targets the canonical row
// identified by (OriginalName, OriginalStart) on the given weekday, for the
// weeks its expression matches. If no such row exists in the effective
// schedule the replacement fields form a new synthetic row instead.
type Adjustment struct {
	Weekday       int    `json:"weekday"`
	Weeks         string `json:"weeks"`
	OriginalName  string `json:"original_course_name"`
	OriginalStart string `json:"original_start_time"`
	NewName       string `json:"new_course_name"`
	NewStart      string `json:"new_start_time"`
	NewEnd        string `json:"new_end_time"`
	NewLocation   string `json:"new_location"`
	NewInstructor string `json:"new_instructor"`
}

// Replacement returns the course row this adjustment materializes when its
// target is absent from the day's schedule.
func (a Adjustment) Replacement() CourseRow {
	return CourseRow{
		Weekday:    a.Weekday,
		Start:      a.NewStart,
		End:        a.NewEnd,
		Name:       a.NewName,
		Location:   a.NewLocation,
		Instructor: a.NewInstructor,
		Weeks:      a.Weeks,
	}
}

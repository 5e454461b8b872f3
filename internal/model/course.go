package model

// CourseRow is one entry of the imported weekly schedule. Times stay in their
// raw HH:MM form; they are parsed where needed so a badly formatted cell
// degrades a single row instead of the whole schedule.
type CourseRow struct {
	Weekday    int    `json:"weekday"` // 1 = Monday ... 7 = Sunday
	Start      string `json:"start_time"`
	End        string `json:"end_time"`
	Name       string `json:"course_name"`
	Location   string `json:"location"`
	Instructor string `json:"instructor"`
	Weeks      string `json:"weeks"` // week-range expression, empty = every week
}

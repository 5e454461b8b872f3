package dto

import "app/internal/model"

// CourseRowDTO mirrors one schedule row on the wire.
type CourseRowDTO struct {
	Weekday    int    `json:"weekday"`
	Start      string `json:"start_time" validate:"required"`
	End        string `json:"end_time" validate:"required"`
	Name       string `json:"course_name" validate:"required"`
	Location   string `json:"location"`
	Instructor string `json:"instructor"`
	Weeks      string `json:"weeks"`
}

// ImportRowsRequest is the JSON alternative to the xlsx upload. Weekday is
// deliberately unconstrained here: rows with an out-of-range weekday are
// dropped by the import, not rejected.
type ImportRowsRequest struct {
	Rows []CourseRowDTO `json:"rows" validate:"required,dive"`
}

// ImportResponseDTO reports accepted and dropped row counts of an import.
type ImportResponseDTO struct {
	Imported int `json:"imported"`
	Dropped  int `json:"dropped"`
}

// DayScheduleResponseDTO is one weekday's effective schedule.
type DayScheduleResponseDTO struct {
	Weekday     int            `json:"weekday"`
	CurrentWeek int            `json:"current_week"`
	Rows        []CourseRowDTO `json:"rows"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// WeekdayGroupDTO is one weekday's slice of a full-week view.
type WeekdayGroupDTO struct {
	Weekday int            `json:"weekday"`
	Rows    []CourseRowDTO `json:"rows"`
}

// WeekScheduleResponseDTO is the whole effective week grouped by weekday.
type WeekScheduleResponseDTO struct {
	CurrentWeek int               `json:"current_week"`
	Days        []WeekdayGroupDTO `json:"days"`
	Warnings    []string          `json:"warnings,omitempty"`
}

// FromCourseRow converts a model row for responses.
func FromCourseRow(row model.CourseRow) CourseRowDTO {
	return CourseRowDTO{
		Weekday:    row.Weekday,
		Start:      row.Start,
		End:        row.End,
		Name:       row.Name,
		Location:   row.Location,
		Instructor: row.Instructor,
		Weeks:      row.Weeks,
	}
}

// ToCourseRow converts an incoming row to its model form.
func (d CourseRowDTO) ToCourseRow() model.CourseRow {
	return model.CourseRow{
		Weekday:    d.Weekday,
		Start:      d.Start,
		End:        d.End,
		Name:       d.Name,
		Location:   d.Location,
		Instructor: d.Instructor,
		Weeks:      d.Weeks,
	}
}

// FromCourseRows converts a slice of model rows, always returning a non-nil
// slice so empty days serialize as [] rather than null.
func FromCourseRows(rows []model.CourseRow) []CourseRowDTO {
	out := make([]CourseRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromCourseRow(row))
	}
	return out
}

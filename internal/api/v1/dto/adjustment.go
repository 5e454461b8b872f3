package dto

import "app/internal/model"

// AdjustmentCreateDTO is an incoming schedule override. Five fields are
// mandatory: original course name, original start, new course name and the
// new start/end pair; the new location and instructor may stay empty.
type AdjustmentCreateDTO struct {
	Weekday       int    `json:"weekday" validate:"required,min=1,max=7"`
	Weeks         string `json:"weeks"`
	OriginalName  string `json:"original_course_name" validate:"required"`
	OriginalStart string `json:"original_start_time" validate:"required"`
	NewName       string `json:"new_course_name" validate:"required"`
	NewStart      string `json:"new_start_time" validate:"required"`
	NewEnd        string `json:"new_end_time" validate:"required"`
	NewLocation   string `json:"new_location"`
	NewInstructor string `json:"new_instructor"`
}

// AdjustmentResponseDTO is a stored adjustment with its positional index,
// which is also the handle for deletion.
type AdjustmentResponseDTO struct {
	Index         int    `json:"index"`
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

// ToAdjustment converts the request to its model form.
func (d AdjustmentCreateDTO) ToAdjustment() model.Adjustment {
	return model.Adjustment{
		Weekday:       d.Weekday,
		Weeks:         d.Weeks,
		OriginalName:  d.OriginalName,
		OriginalStart: d.OriginalStart,
		NewName:       d.NewName,
		NewStart:      d.NewStart,
		NewEnd:        d.NewEnd,
		NewLocation:   d.NewLocation,
		NewInstructor: d.NewInstructor,
	}
}

// FromAdjustment converts a stored adjustment for responses.
func FromAdjustment(index int, a model.Adjustment) AdjustmentResponseDTO {
	return AdjustmentResponseDTO{
		Index:         index,
		Weekday:       a.Weekday,
		Weeks:         a.Weeks,
		OriginalName:  a.OriginalName,
		OriginalStart: a.OriginalStart,
		NewName:       a.NewName,
		NewStart:      a.NewStart,
		NewEnd:        a.NewEnd,
		NewLocation:   a.NewLocation,
		NewInstructor: a.NewInstructor,
	}
}

package dto

// SettingsUpdateDTO is a partial update of the per-session settings.
type SettingsUpdateDTO struct {
	SemesterStart *string `json:"semester_start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RemindMinutes *int    `json:"remind_minutes,omitempty" validate:"omitempty,oneof=5 10 15 20"`
}

// SettingsResponseDTO is the effective per-session settings.
type SettingsResponseDTO struct {
	SemesterStart string `json:"semester_start"`
	RemindMinutes int    `json:"remind_minutes"`
}

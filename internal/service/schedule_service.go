package service

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"app/internal/model"
	"app/internal/repository"
	"app/internal/timetable"

	"github.com/xuri/excelize/v2"
)

// RequiredColumns are the header names an imported workbook must carry, in
// template order.
var RequiredColumns = []string{
	"weekday", "start_time", "end_time", "course_name", "location", "instructor", "weeks",
}

// ImportResult reports how an import went: rows accepted into the schedule
// and rows dropped for an out-of-range or unparsable weekday.
type ImportResult struct {
	Imported int `json:"imported"`
	Dropped  int `json:"dropped"`
}

// ScheduleService owns the canonical schedule and the adjustment list of a
// session and computes effective (adjustment-merged) day views from them.
type ScheduleService interface {
	// ParseWorkbook reads the first sheet of an xlsx workbook into course
	// rows. A missing required column aborts the whole import with a
	// *ValidationError.
	ParseWorkbook(r io.Reader) ([]model.CourseRow, error)
	// Import replaces the session's schedule wholesale. Rows whose
	// weekday is outside 1-7 are dropped, not rejected.
	Import(sessionID string, rows []model.CourseRow) ImportResult
	AddAdjustment(sessionID string, a model.Adjustment)
	ListAdjustments(sessionID string) []model.Adjustment
	RemoveAdjustment(sessionID string, index int) bool
	// EffectiveDay returns the adjustment-merged, start-time-sorted
	// schedule of one weekday for the given academic week, plus warnings
	// for any time cell that had to fall back to the midnight sentinel.
	EffectiveDay(sess model.Session, weekday, week int) ([]model.CourseRow, []string)
	// EffectiveWeek groups the whole effective week by weekday 1..7.
	EffectiveWeek(sess model.Session, week int) ([7][]model.CourseRow, []string)
}

type scheduleService struct {
	sessions repository.SessionRepository
}

// NewScheduleService creates a ScheduleService backed by the given session
// repository.
func NewScheduleService(sessions repository.SessionRepository) ScheduleService {
	return &scheduleService{sessions: sessions}
}

func (s *scheduleService) ParseWorkbook(r io.Reader) ([]model.CourseRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &ValidationError{MissingColumns: RequiredColumns}
	}
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, &ValidationError{MissingColumns: RequiredColumns}
	}

	// Map header names to column indexes; the check is all-or-nothing on
	// required-column presence.
	index := make(map[string]int, len(cells[0]))
	for i, name := range cells[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{MissingColumns: missing}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rows := make([]model.CourseRow, 0, len(cells)-1)
	for _, raw := range cells[1:] {
		weekday, err := strconv.Atoi(cell(raw, "weekday"))
		if err != nil {
			weekday = 0 // sentinel, dropped at import
		}
		rows = append(rows, model.CourseRow{
			Weekday:    weekday,
			Start:      cell(raw, "start_time"),
			End:        cell(raw, "end_time"),
			Name:       cell(raw, "course_name"),
			Location:   cell(raw, "location"),
			Instructor: cell(raw, "instructor"),
			Weeks:      cell(raw, "weeks"),
		})
	}
	return rows, nil
}

func (s *scheduleService) Import(sessionID string, rows []model.CourseRow) ImportResult {
	kept := make([]model.CourseRow, 0, len(rows))
	var result ImportResult
	for _, row := range rows {
		if row.Weekday < 1 || row.Weekday > 7 {
			result.Dropped++
			continue
		}
		kept = append(kept, row)
		result.Imported++
	}
	s.sessions.ReplaceSchedule(sessionID, kept)
	return result
}

func (s *scheduleService) AddAdjustment(sessionID string, a model.Adjustment) {
	s.sessions.AddAdjustment(sessionID, a)
}

func (s *scheduleService) ListAdjustments(sessionID string) []model.Adjustment {
	sess := s.sessions.Touch(sessionID)
	return sess.Adjustments
}

func (s *scheduleService) RemoveAdjustment(sessionID string, index int) bool {
	return s.sessions.RemoveAdjustment(sessionID, index)
}

func (s *scheduleService) EffectiveDay(sess model.Session, weekday, week int) ([]model.CourseRow, []string) {
	day := make([]model.CourseRow, 0)
	for _, row := range sess.Schedule {
		if row.Weekday == weekday && timetable.MatchWeek(row.Weeks, week) {
			day = append(day, row)
		}
	}

	// Two-phase merge: each matching adjustment either rewrites the row
	// keyed by (original start, original name) or lands as a new row.
	for _, adj := range sess.Adjustments {
		if adj.Weekday != weekday || !timetable.MatchWeek(adj.Weeks, week) {
			continue
		}
		replaced := false
		for i := range day {
			if day[i].Start == adj.OriginalStart && day[i].Name == adj.OriginalName {
				day[i].Name = adj.NewName
				day[i].Location = adj.NewLocation
				day[i].Instructor = adj.NewInstructor
				day[i].Start = adj.NewStart
				day[i].End = adj.NewEnd
				replaced = true
			}
		}
		if !replaced {
			day = append(day, adj.Replacement())
		}
	}

	// Stable sort by parsed start time; unparsable times sort as the
	// midnight sentinel and are reported, not fatal.
	var warnings []string
	type keyed struct {
		row model.CourseRow
		key int
	}
	entries := make([]keyed, len(day))
	for i, row := range day {
		clock, err := timetable.ParseClock(row.Start)
		if err != nil {
			warnings = append(warnings, err.Error())
		}
		entries[i] = keyed{row: row, key: clock.Minutes()}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	for i, e := range entries {
		day[i] = e.row
	}
	return day, warnings
}

func (s *scheduleService) EffectiveWeek(sess model.Session, week int) ([7][]model.CourseRow, []string) {
	var days [7][]model.CourseRow
	var warnings []string
	for weekday := 1; weekday <= 7; weekday++ {
		day, w := s.EffectiveDay(sess, weekday, week)
		days[weekday-1] = day
		warnings = append(warnings, w...)
	}
	return days, warnings
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"
	"app/internal/timetable"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// maxUploadBytes caps the uploaded workbook size.
const maxUploadBytes = 5 << 20

// ScheduleHandler handles schedule import and the effective-schedule views.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
	exportService   service.ExportService
	sessions        repository.SessionRepository
	validate        *validator.Validate
	logger          zerolog.Logger
	now             func() time.Time
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService, exportService service.ExportService, sessions repository.SessionRepository, validate *validator.Validate, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		exportService:   exportService,
		sessions:        sessions,
		validate:        validate,
		logger:          logger,
		now:             time.Now,
	}
}

// RegisterRoutes mounts schedule routes
func (h *ScheduleHandler) RegisterRoutes(mux *http.ServeMux, sessionMw func(http.Handler) http.Handler) {
	mux.Handle("/schedule/import", sessionMw(http.HandlerFunc(h.importWorkbook)))
	mux.Handle("/schedule/rows", sessionMw(http.HandlerFunc(h.importRows)))
	mux.Handle("/schedule/today", sessionMw(http.HandlerFunc(h.today)))
	mux.Handle("/schedule/week", sessionMw(http.HandlerFunc(h.week)))
	mux.Handle("/schedule/export.ics", sessionMw(http.HandlerFunc(h.exportICS)))
}

// importWorkbook godoc
// @Summary Import a schedule workbook
// @Description Replaces the session's schedule with the first sheet of an uploaded xlsx file. All-or-nothing on required columns; rows with an invalid weekday are dropped.
// @Tags schedule
// @Accept mpfd
// @Produce json
// @Param file formData file true "xlsx workbook"
// @Success 200 {object} dto.ImportResponseDTO
// @Failure 400 {object} errorResponse "Malformed upload"
// @Failure 422 {object} errorResponse "Missing required columns"
// @Router /schedule/import [post]
func (h *ScheduleHandler) importWorkbook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	sessionID, ok := middleware.SessionID(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart field \"file\": "+err.Error())
		return
	}
	defer file.Close()

	rows, err := h.scheduleService.ParseWorkbook(file)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:          verr.Error(),
				MissingColumns: verr.MissingColumns,
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.scheduleService.Import(sessionID, rows)
	h.logger.Info().
		Str("session_id", sessionID).
		Int("imported", result.Imported).
		Int("dropped", result.Dropped).
		Msg("schedule imported")
	writeJSON(w, http.StatusOK, dto.ImportResponseDTO{Imported: result.Imported, Dropped: result.Dropped})
}

// importRows godoc
// @Summary Import schedule rows as JSON
// @Description Replaces the session's schedule with the posted rows. Same ingest semantics as the workbook upload.
// @Tags schedule
// @Accept json
// @Produce json
// @Param rows body dto.ImportRowsRequest true "Schedule rows"
// @Success 200 {object} dto.ImportResponseDTO
// @Failure 400 {object} errorResponse "Invalid JSON payload"
// @Failure 422 {object} errorResponse "Validation failed"
// @Router /schedule/rows [post]
func (h *ScheduleHandler) importRows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	sessionID, ok := middleware.SessionID(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}

	var req dto.ImportRowsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed: "+err.Error())
		return
	}

	rows := make([]model.CourseRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, row.ToCourseRow())
	}
	result := h.scheduleService.Import(sessionID, rows)
	writeJSON(w, http.StatusOK, dto.ImportResponseDTO{Imported: result.Imported, Dropped: result.Dropped})
}

// today godoc
// @Summary Today's effective schedule
// @Description Returns today's adjustment-merged schedule sorted by start time.
// @Tags schedule
// @Produce json
// @Success 200 {object} dto.DayScheduleResponseDTO
// @Router /schedule/today [get]
func (h *ScheduleHandler) today(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sessionID, _ := middleware.SessionID(r)
	sess, ok := h.sessions.Snapshot(sessionID)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}

	now := h.now()
	week, warnings := h.currentWeek(sess.Settings.SemesterStart, now)
	weekday := isoWeekday(now)
	rows, dayWarnings := h.scheduleService.EffectiveDay(sess, weekday, week)
	writeJSON(w, http.StatusOK, dto.DayScheduleResponseDTO{
		Weekday:     weekday,
		CurrentWeek: week,
		Rows:        dto.FromCourseRows(rows),
		Warnings:    append(warnings, dayWarnings...),
	})
}

// week godoc
// @Summary Current week's effective schedule
// @Description Returns the whole current week grouped by weekday (1 = Monday).
// @Tags schedule
// @Produce json
// @Success 200 {object} dto.WeekScheduleResponseDTO
// @Router /schedule/week [get]
func (h *ScheduleHandler) week(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sessionID, _ := middleware.SessionID(r)
	sess, ok := h.sessions.Snapshot(sessionID)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}

	now := h.now()
	week, warnings := h.currentWeek(sess.Settings.SemesterStart, now)
	days, dayWarnings := h.scheduleService.EffectiveWeek(sess, week)

	groups := make([]dto.WeekdayGroupDTO, 0, 7)
	for weekday := 1; weekday <= 7; weekday++ {
		groups = append(groups, dto.WeekdayGroupDTO{
			Weekday: weekday,
			Rows:    dto.FromCourseRows(days[weekday-1]),
		})
	}
	writeJSON(w, http.StatusOK, dto.WeekScheduleResponseDTO{
		CurrentWeek: week,
		Days:        groups,
		Warnings:    append(warnings, dayWarnings...),
	})
}

// exportICS godoc
// @Summary Export the current week as iCalendar
// @Description Streams the current week's effective schedule as a text/calendar attachment.
// @Tags schedule
// @Produce plain
// @Success 200 {string} string "iCalendar payload"
// @Router /schedule/export.ics [get]
func (h *ScheduleHandler) exportICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sessionID, _ := middleware.SessionID(r)
	sess, ok := h.sessions.Snapshot(sessionID)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}

	now := h.now()
	week, _ := h.currentWeek(sess.Settings.SemesterStart, now)
	days, _ := h.scheduleService.EffectiveWeek(sess, week)

	start, err := time.ParseInLocation(timetable.DateLayout, sess.Settings.SemesterStart, now.Location())
	if err != nil {
		// Same degrade path as the week number: anchor on today.
		start = now
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)
	if err := h.exportService.WriteWeekICS(w, days, start, week); err != nil {
		h.logger.Error().Err(err).Msg("ics export failed")
	}
}

// currentWeek resolves the academic week from the stored semester start,
// degrading to week 1 with a warning when the date does not parse.
func (h *ScheduleHandler) currentWeek(semesterStart string, now time.Time) (int, []string) {
	week, err := timetable.WeekOfString(semesterStart, now)
	if err != nil {
		h.logger.Warn().Err(err).Msg("falling back to week 1")
		return week, []string{err.Error()}
	}
	return week, nil
}

// isoWeekday maps time.Weekday to the 1=Monday..7=Sunday convention of the
// schedule rows.
func isoWeekday(t time.Time) int {
	d := int(t.Weekday())
	if d == 0 {
		return 7
	}
	return d
}

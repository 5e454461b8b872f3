package handler

import (
	"net/http"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"
	"app/internal/timetable"

	"github.com/rs/zerolog"
)

// DashboardHandler assembles the dashboard view model: clock, week number,
// today's effective schedule and the reminder candidate. Everything is
// recomputed from the session state on each request; nothing is cached.
type DashboardHandler struct {
	scheduleService service.ScheduleService
	reminderService service.ReminderService
	sessions        repository.SessionRepository
	logger          zerolog.Logger
	now             func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(scheduleService service.ScheduleService, reminderService service.ReminderService, sessions repository.SessionRepository, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		scheduleService: scheduleService,
		reminderService: reminderService,
		sessions:        sessions,
		logger:          logger,
		now:             time.Now,
	}
}

// RegisterRoutes mounts dashboard routes
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux, sessionMw func(http.Handler) http.Handler) {
	mux.Handle("/dashboard", sessionMw(http.HandlerFunc(h.dashboard)))
}

// dashboard godoc
// @Summary Dashboard view model
// @Description Returns the current time, academic week, lookahead setting, today's effective schedule and the reminder candidate (or null).
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponseDTO
// @Router /dashboard [get]
func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) {
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
	week, err := timetable.WeekOfString(sess.Settings.SemesterStart, now)
	var warnings []string
	if err != nil {
		h.logger.Warn().Err(err).Msg("falling back to week 1")
		warnings = append(warnings, err.Error())
	}

	today, dayWarnings := h.scheduleService.EffectiveDay(sess, isoWeekday(now), week)
	warnings = append(warnings, dayWarnings...)

	lookahead := time.Duration(sess.Settings.RemindMinutes) * time.Minute
	reminder := h.reminderService.NextUpcoming(today, now, lookahead)

	writeJSON(w, http.StatusOK, dto.DashboardResponseDTO{
		Now:           now,
		CurrentWeek:   week,
		RemindMinutes: sess.Settings.RemindMinutes,
		Today:         dto.FromCourseRows(today),
		Reminder:      dto.FromReminder(reminder),
		Warnings:      warnings,
	})
}

package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SettingsHandler reads and updates the per-session settings.
type SettingsHandler struct {
	sessions repository.SessionRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(sessions repository.SessionRepository, validate *validator.Validate, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{sessions: sessions, validate: validate, logger: logger}
}

// RegisterRoutes mounts settings routes
func (h *SettingsHandler) RegisterRoutes(mux *http.ServeMux, sessionMw func(http.Handler) http.Handler) {
	mux.Handle("/settings", sessionMw(http.HandlerFunc(h.handleSettings)))
}

func (h *SettingsHandler) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getSettings(w, r)
	case http.MethodPut:
		h.updateSettings(w, r)
	default:
		http.NotFound(w, r)
	}
}

// getSettings godoc
// @Summary Effective session settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponseDTO
// @Router /settings [get]
func (h *SettingsHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionID(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}
	sess, ok := h.sessions.Snapshot(sessionID)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}
	writeJSON(w, http.StatusOK, dto.SettingsResponseDTO{
		SemesterStart: sess.Settings.SemesterStart,
		RemindMinutes: sess.Settings.RemindMinutes,
	})
}

// updateSettings godoc
// @Summary Update session settings
// @Description Partially updates the semester start date and/or the reminder lookahead. Invalid values leave the settings untouched.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.SettingsUpdateDTO true "Settings update"
// @Success 200 {object} dto.SettingsResponseDTO
// @Failure 400 {object} errorResponse "Invalid JSON payload"
// @Failure 422 {object} errorResponse "Validation failed"
// @Router /settings [put]
func (h *SettingsHandler) updateSettings(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionID(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}

	var req dto.SettingsUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed: "+err.Error())
		return
	}

	sess, ok := h.sessions.Snapshot(sessionID)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}
	settings := sess.Settings
	if req.SemesterStart != nil {
		settings.SemesterStart = *req.SemesterStart
	}
	if req.RemindMinutes != nil {
		settings.RemindMinutes = *req.RemindMinutes
	}
	h.sessions.UpdateSettings(sessionID, settings)

	writeJSON(w, http.StatusOK, dto.SettingsResponseDTO{
		SemesterStart: settings.SemesterStart,
		RemindMinutes: settings.RemindMinutes,
	})
}

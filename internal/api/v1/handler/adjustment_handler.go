package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AdjustmentHandler handles the session's adjustment list.
type AdjustmentHandler struct {
	scheduleService service.ScheduleService
	validate        *validator.Validate
	logger          zerolog.Logger
}

// NewAdjustmentHandler creates a new AdjustmentHandler.
func NewAdjustmentHandler(scheduleService service.ScheduleService, validate *validator.Validate, logger zerolog.Logger) *AdjustmentHandler {
	return &AdjustmentHandler{scheduleService: scheduleService, validate: validate, logger: logger}
}

// RegisterRoutes mounts adjustment routes
func (h *AdjustmentHandler) RegisterRoutes(mux *http.ServeMux, sessionMw func(http.Handler) http.Handler) {
	mux.Handle("/adjustments", sessionMw(http.HandlerFunc(h.handleAdjustments)))
	mux.Handle("/adjustments/", sessionMw(http.HandlerFunc(h.removeAdjustment)))
}

func (h *AdjustmentHandler) handleAdjustments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.addAdjustment(w, r)
	case http.MethodGet:
		h.listAdjustments(w, r)
	default:
		http.NotFound(w, r)
	}
}

// addAdjustment godoc
// @Summary Add a schedule adjustment
// @Description Appends an override to the session's adjustment list. Original course name/start, new course name and new start/end times are mandatory.
// @Tags adjustments
// @Accept json
// @Produce json
// @Param adjustment body dto.AdjustmentCreateDTO true "Adjustment"
// @Success 201 {object} dto.AdjustmentResponseDTO
// @Failure 400 {object} errorResponse "Invalid JSON payload"
// @Failure 422 {object} errorResponse "Validation failed"
// @Router /adjustments [post]
func (h *AdjustmentHandler) addAdjustment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionID(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}

	var req dto.AdjustmentCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation failed: "+err.Error())
		return
	}

	h.scheduleService.AddAdjustment(sessionID, req.ToAdjustment())
	index := len(h.scheduleService.ListAdjustments(sessionID)) - 1
	writeJSON(w, http.StatusCreated, dto.FromAdjustment(index, req.ToAdjustment()))
}

// listAdjustments godoc
// @Summary List adjustments
// @Description Returns the session's adjustments with their positional indexes.
// @Tags adjustments
// @Produce json
// @Success 200 {array} dto.AdjustmentResponseDTO
// @Router /adjustments [get]
func (h *AdjustmentHandler) listAdjustments(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionID(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}

	adjustments := h.scheduleService.ListAdjustments(sessionID)
	out := make([]dto.AdjustmentResponseDTO, 0, len(adjustments))
	for i, a := range adjustments {
		out = append(out, dto.FromAdjustment(i, a))
	}
	writeJSON(w, http.StatusOK, out)
}

// removeAdjustment godoc
// @Summary Remove an adjustment
// @Description Removes the adjustment at the given index. An out-of-range index is a no-op, not an error.
// @Tags adjustments
// @Param index path int true "Adjustment index"
// @Success 204 {string} string "Removed (or nothing to remove)"
// @Failure 400 {object} errorResponse "Index is not an integer"
// @Router /adjustments/{index} [delete]
func (h *AdjustmentHandler) removeAdjustment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	sessionID, ok := middleware.SessionID(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, "session missing from request context")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/adjustments/")
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "adjustment index must be an integer")
		return
	}

	// Deleting past the end is deliberately silent: the list may already
	// have shrunk under the caller's feet.
	h.scheduleService.RemoveAdjustment(sessionID, index)
	w.WriteHeader(http.StatusNoContent)
}

package router

import (
	"net/http"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the session repository, services and handlers into the HTTP
// handler served by cmd/app. All state lives in the session repository; there
// is no database and nothing survives a restart.
func New(cfg *config.Config, logger zerolog.Logger) http.Handler {
	// 1. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 2. Initialize the in-memory session repository with the configured
	// per-session defaults
	defaults := model.Settings{
		SemesterStart: cfg.SemesterStart,
		RemindMinutes: cfg.RemindMinutes,
	}
	sessions := repository.NewSessionRepository(defaults, cfg.SessionIdleTTL, logger)

	// 3. Initialize services & handlers
	scheduleSvc := service.NewScheduleService(sessions)
	reminderSvc := service.NewReminderService()
	exportSvc := service.NewExportService()

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, exportSvc, sessions, validate, logger)
	adjustmentHandler := handler.NewAdjustmentHandler(scheduleSvc, validate, logger)
	dashboardHandler := handler.NewDashboardHandler(scheduleSvc, reminderSvc, sessions, logger)
	settingsHandler := handler.NewSettingsHandler(sessions, validate, logger)

	// 4. Initialize middleware
	sessionMw := middleware.SessionMiddleware(sessions)

	// 5. Create ServeMux router
	apiV1Mux := http.NewServeMux()
	scheduleHandler.RegisterRoutes(apiV1Mux, sessionMw)
	adjustmentHandler.RegisterRoutes(apiV1Mux, sessionMw)
	dashboardHandler.RegisterRoutes(apiV1Mux, sessionMw)
	settingsHandler.RegisterRoutes(apiV1Mux, sessionMw)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))
	mux.HandleFunc("/v1/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// 6. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger, c.Handler(mux))
}

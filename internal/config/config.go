package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// Defaults seeded into every new session; both can be overridden
	// per session through the settings endpoint.
	SemesterStart string `envconfig:"SEMESTER_START" default:"2025-09-01"`
	RemindMinutes int    `envconfig:"REMIND_MINUTES" default:"10"`

	// Idle sessions are dropped lazily once they have been untouched
	// for this long.
	SessionIdleTTL time.Duration `envconfig:"SESSION_IDLE_TTL" default:"12h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// RemindChoices are the lookahead values the dashboard offers.
var RemindChoices = []int{5, 10, 15, 20}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01-02", cfg.SemesterStart); err != nil {
		return nil, fmt.Errorf("SEMESTER_START must be YYYY-MM-DD: %w", err)
	}
	if !ValidRemindMinutes(cfg.RemindMinutes) {
		return nil, fmt.Errorf("REMIND_MINUTES must be one of %v", RemindChoices)
	}
	return &cfg, nil
}

// ValidRemindMinutes reports whether minutes is one of the offered lookahead
// choices.
func ValidRemindMinutes(minutes int) bool {
	for _, m := range RemindChoices {
		if m == minutes {
			return true
		}
	}
	return false
}

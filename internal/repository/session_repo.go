package repository

import (
	"sync"
	"time"

	"app/internal/model"

	"github.com/rs/zerolog"
)

// SessionRepository is the in-memory store for dashboard sessions. Every
// session is isolated; there is no persistence and no cross-session state.
// Cleanup is lazy: expired sessions are reaped while the map lock is held,
// so no background goroutine is needed.
type SessionRepository interface {
	// Touch returns the session for id, creating it with the default
	// settings if it does not exist, and refreshes its idle timer.
	Touch(id string) model.Session
	// Snapshot returns a copy of the session if it exists.
	Snapshot(id string) (model.Session, bool)
	// ReplaceSchedule swaps the canonical schedule wholesale.
	ReplaceSchedule(id string, rows []model.CourseRow)
	// AddAdjustment appends to the session's adjustment list.
	AddAdjustment(id string, a model.Adjustment)
	// RemoveAdjustment removes by position. Out-of-range indexes are a
	// no-op, matching the fail-soft delete semantics of the dashboard.
	RemoveAdjustment(id string, index int) bool
	// UpdateSettings replaces the session settings.
	UpdateSettings(id string, s model.Settings)
}

type sessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	defaults model.Settings
	idleTTL  time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSessionRepository creates a SessionRepository seeding new sessions with
// the given default settings.
func NewSessionRepository(defaults model.Settings, idleTTL time.Duration, logger zerolog.Logger) SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*model.Session),
		defaults: defaults,
		idleTTL:  idleTTL,
		now:      time.Now,
		logger:   logger,
	}
}

func (r *sessionRepository) Touch(id string) model.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.fetchOrCreate(id)
	return copySession(s)
}

func (r *sessionRepository) Snapshot(id string) (model.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return model.Session{}, false
	}
	return copySession(s), true
}

func (r *sessionRepository) ReplaceSchedule(id string, rows []model.CourseRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.fetchOrCreate(id)
	// Non-nil even when every row was dropped: an imported-but-empty
	// schedule is distinct from "nothing imported yet".
	s.Schedule = make([]model.CourseRow, len(rows))
	copy(s.Schedule, rows)
}

func (r *sessionRepository) AddAdjustment(id string, a model.Adjustment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.fetchOrCreate(id)
	s.Adjustments = append(s.Adjustments, a)
}

func (r *sessionRepository) RemoveAdjustment(id string, index int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.fetchOrCreate(id)
	if index < 0 || index >= len(s.Adjustments) {
		return false
	}
	s.Adjustments = append(s.Adjustments[:index], s.Adjustments[index+1:]...)
	return true
}

func (r *sessionRepository) UpdateSettings(id string, settings model.Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.fetchOrCreate(id)
	s.Settings = settings
}

// fetchOrCreate must be called with the lock held.
func (r *sessionRepository) fetchOrCreate(id string) *model.Session {
	now := r.now()
	r.reap(now)
	s, ok := r.sessions[id]
	if !ok {
		s = &model.Session{ID: id, Settings: r.defaults}
		r.sessions[id] = s
		r.logger.Debug().Str("session_id", id).Msg("session created")
	}
	s.LastSeen = now
	return s
}

func (r *sessionRepository) reap(now time.Time) {
	if r.idleTTL <= 0 {
		return
	}
	for id, s := range r.sessions {
		if now.Sub(s.LastSeen) > r.idleTTL {
			delete(r.sessions, id)
			r.logger.Debug().Str("session_id", id).Msg("idle session dropped")
		}
	}
}

func copySession(s *model.Session) model.Session {
	out := *s
	if s.Schedule != nil {
		out.Schedule = make([]model.CourseRow, len(s.Schedule))
		copy(out.Schedule, s.Schedule)
	}
	out.Adjustments = append([]model.Adjustment(nil), s.Adjustments...)
	return out
}

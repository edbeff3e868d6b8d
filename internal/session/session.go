package session

import (
	"sync"

	"churro-kiosk/internal/model"

	"github.com/rs/zerolog"
)

// Manager holds the credential supplied by the auth collaborator. The
// engine does not authenticate; it only stores what it is handed and
// forwards the token as a bearer credential. A nil current session blocks
// checkout.
type Manager struct {
	logger zerolog.Logger

	mu      sync.RWMutex
	current *model.Session
}

// NewManager creates an empty session manager.
func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Set installs the active session, replacing any previous one.
func (m *Manager) Set(s model.Session) {
	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	m.logger.Info().Str("user_id", s.UserID).Msg("session set")
}

// Current returns a copy of the active session, or nil when none is set.
func (m *Manager) Current() *model.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// Clear drops the active session.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	m.logger.Info().Msg("session cleared")
}

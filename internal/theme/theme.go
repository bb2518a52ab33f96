// Package theme holds the process-wide UI theme state machine:
// light -> dark -> love -> light, persisted on every transition.
package theme

import (
	"sync"

	"github.com/starlove/together/internal/model"
)

// Store persists the preference across sessions.
type Store interface {
	Load() (model.Theme, error)
	Save(model.Theme) error
}

// Manager owns the current theme for the process lifetime. There is no
// teardown; the last persisted value is picked up on next start.
type Manager struct {
	mu      sync.Mutex
	current model.Theme
	store   Store
}

// NewManager loads the persisted theme, defaulting to light on first run.
func NewManager(store Store) (*Manager, error) {
	t, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Manager{current: t, store: store}, nil
}

// Current returns the active theme.
func (m *Manager) Current() model.Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsDark reports whether the dark presentation variant is active.
func (m *Manager) IsDark() bool {
	return m.Current().IsDark()
}

// Toggle advances to the next theme in the cycle and persists it before
// the transition becomes visible.
func (m *Manager) Toggle() (model.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.current.Next()
	if err := m.store.Save(next); err != nil {
		return m.current, err
	}
	m.current = next
	return next, nil
}

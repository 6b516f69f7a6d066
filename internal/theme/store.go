// Package theme holds the user's light/dark preference.
package theme

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/folio/internal/ports"
	"github.com/alexisbeaulieu97/folio/internal/scene"
)

// Store is the in-process theme preference. It implements scene.ThemeSource.
type Store struct {
	logger ports.Logger

	mu        sync.Mutex
	mode      scene.ColorMode
	listeners scene.Listeners[scene.ColorMode]
}

var _ scene.ThemeSource = (*Store)(nil)

// NewStore returns a store starting in mode.
func NewStore(mode scene.ColorMode, logger ports.Logger) *Store {
	return &Store{mode: mode, logger: logger}
}

// Mode implements scene.ThemeSource.
func (s *Store) Mode() scene.ColorMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// OnModeChange implements scene.ThemeSource. A nil fn registers nothing.
func (s *Store) OnModeChange(fn func(scene.ColorMode)) ports.Cancel {
	return s.listeners.Add(fn)
}

// Listeners returns the number of registered change listeners.
func (s *Store) Listeners() int {
	return s.listeners.Len()
}

// Set changes the mode and notifies listeners when it differs.
func (s *Store) Set(mode scene.ColorMode) {
	s.mu.Lock()
	if mode == s.mode {
		s.mu.Unlock()
		return
	}
	s.mode = mode
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info(context.Background(), "theme changed", "mode", mode.String())
	}
	s.listeners.Emit(mode)
}

// Toggle flips between light and dark and returns the new mode.
func (s *Store) Toggle() scene.ColorMode {
	next := s.Mode().Toggle()
	s.Set(next)
	return next
}

package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/dungeonedit/internal/content"
)

// Snapshot represents the game content currently available to the UI.
type Snapshot struct {
	Content     *content.Content
	Loaded      bool
	Location    string
	LastUpdated time.Time
	LastError   error
	Failures    int // Number of failed loads since the last success
}

// Degraded reports whether the editor is running without game content.
func (s Snapshot) Degraded() bool {
	return !s.Loaded
}

// Stale reports whether content is loaded but a later check found a problem.
func (s Snapshot) Stale() bool {
	return s.Loaded && s.LastError != nil
}

// Store coordinates concurrent access to the loaded content.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored content. When err is non-nil the content is
// unloaded and the error recorded for visibility.
func (s *Store) Update(c *content.Content, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil || c == nil {
		s.snapshot.Content = nil
		s.snapshot.Loaded = false
		s.snapshot.Location = ""
		s.snapshot.LastError = err
		if err != nil {
			s.snapshot.Failures++
		}
		return
	}

	s.snapshot.Content = c
	s.snapshot.Loaded = true
	s.snapshot.Location = c.Root
	s.snapshot.LastError = nil
	s.snapshot.Failures = 0
}

// Unload drops any loaded content without recording an error.
func (s *Store) Unload() {
	s.Update(nil, nil)
}

// Warn records err against the loaded content without unloading it. A nil
// err clears a previous warning. Warn is a no-op while nothing is loaded.
func (s *Store) Warn(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snapshot.Loaded {
		return
	}
	s.snapshot.LastError = err
}

// Content returns the loaded content, or nil.
func (s *Store) Content() *content.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Content
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

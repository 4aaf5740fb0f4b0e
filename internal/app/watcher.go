package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/dungeonedit/internal/state"
)

const (
	defaultWatchInterval = 5 * time.Second
	maxBackoff           = 30 * time.Second
)

// StartWatcher launches a background goroutine that checks the loaded
// content folder is still usable. A missing folder is recorded on the store
// as a warning; checks back off while the problem persists. It returns
// immediately.
func StartWatcher(ctx context.Context, store *state.Store, usable func(string) bool, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	go func() {
		failures := 0
		for {
			if check(store, usable, log) {
				failures = 0
			} else {
				failures++
			}
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// check returns false when loaded content has gone missing.
func check(store *state.Store, usable func(string) bool, log zerolog.Logger) bool {
	snap := store.Snapshot()
	if !snap.Loaded || snap.Content == nil {
		return true
	}
	root := snap.Content.Root
	if usable(root) {
		if snap.LastError != nil {
			store.Warn(nil)
			log.Info().Str("path", root).Msg("content folder available again")
		}
		return true
	}
	if snap.LastError == nil {
		log.Warn().Str("path", root).Msg("content folder no longer available")
	}
	store.Warn(fmt.Errorf("content folder %s is no longer available", root))
	return false
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

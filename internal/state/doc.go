// Package state holds the game content shared between the loader and the UI.
//
// # Overview
//
// The startup sequence loads game content on a background goroutine while
// the terminal UI keeps drawing. Store is the hand-off point: the loader
// publishes with Update, the cache-warming subsystems and the main window
// read with Content or Snapshot.
//
//	Producer (load sequence):      Consumers (preloaders, UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ loader.Load()  │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│                │  (mutex)   │      ↓          │
//	│ store.Unload() │            │  render / index │
//	└────────────────┘            └─────────────────┘
//
// # Degraded Mode
//
// When loading fails, or the user chooses to run without game content, the
// store is unloaded and Snapshot.Degraded reports true. The editor stays
// usable; only content-backed pickers are empty.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Content values are treated as
// immutable once published.
package state

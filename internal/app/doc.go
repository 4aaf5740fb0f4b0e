// Package app provides the orchestration layer for DungeonEdit.
//
// # Overview
//
// This package wires together configuration, logging, preferences, game
// content loading, the lifecycle controller and the terminal UI. It is the
// composition root where every dependency is created and connected.
//
// # Architecture
//
//  1. Load config from ~/.config/dungeonedit/config.toml
//  2. Open the zerolog log file and, if enabled, the telemetry event file
//  3. Open preferences (content location, pak key, theme)
//  4. Build the shared state.Store and the catalog indexes that warm from it
//  5. Create the Bubble Tea program and the bridge the lifecycle drives it through
//  6. Run the lifecycle controller on its own goroutine and the UI on this one
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read config
//	       ├─────> logging.Open()         Log file
//	       ├─────> prefs.Open()           Preferences store
//	       ├─────> ui.NewProgram()        Bubble Tea program
//	       ├─────> lifecycle.New()        Controller wired to ui.Bridge
//	       ├─────> StartWatcher()         Content folder checks
//	       ├─────> go ctrl.Run()          Startup, relaunch and reload
//	       └─────> program.Run()          TUI (blocks)
//
// # Shutdown
//
//   - The controller returning (user exit) quits the program.
//   - The program exiting (user close, signal) cancels the context, which
//     unblocks any open dialog and stops the controller.
//
// Run returns nil in both cases. Errors are reserved for wiring failures
// such as an unreadable config file.
package app

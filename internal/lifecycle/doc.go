// Package lifecycle drives DungeonEdit from launch to the main window.
//
// # Overview
//
// The Controller owns the application phase and the window role table. It
// decides where game content lives, loads it, and shows the main window,
// asking the user what to do at the two decision points: the location picker
// and the load-failure prompt.
//
// # Phases
//
//	Idle ──> ShowingSplash ──> ResolvingLocation ──> Loading ──> Preloading ──┐
//	  │                               │   │             │                     │
//	  │ SKIP_GAME_CONTENT             │   │ no content  │ failure + continue  │
//	  └──────────────────────────────>┼───┴─────────────┴─────────────> ShowingMain
//	                                  │                 │                 │  │  ▲
//	                     picker exit  │   failure+exit  │     relaunch    │  └──┘ reload
//	                                  ▼                 ▼                 ▼
//	                               Exiting <──────── Exiting       ShowingSplash
//
// # Components
//
//   - controller.go: Controller, launch tokens and the request loop
//   - load.go: LoadSequence, content load (stage A) then concurrent cache warm-up (stage B)
//   - windows.go: Windows, at most one splash, busy and main window at a time
//   - recovery.go: RecoveryPolicy, the continue-or-exit prompt after a failed load
//   - phase.go: Phase and its transition table
//
// # Threading
//
// All phase changes and window bookkeeping happen on the goroutine running
// Controller.Run. Collaborators such as the picker and prompter may block
// that goroutine while the UI waits for the user. Main windows talk back
// through Requests, which never blocks: requests are queued and served once
// the current pass has settled in ShowingMain.
//
// # Error Handling
//
//   - A failed or panicking content load becomes a *LoadError; the stored
//     location is cleared and the user is asked whether to continue without
//     content.
//   - Cache warm-up errors are logged and ignored.
//   - ErrUserExit marks an explicit exit; Run turns it into a nil return after
//     every window is closed.
package lifecycle

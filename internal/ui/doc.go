// Package ui provides the terminal user interface for DungeonEdit.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It does not decide what to show: the
// lifecycle controller runs on its own goroutine and drives the screen
// through a Bridge, which turns window and dialog calls into messages for
// the program.
//
// # Package Structure
//
//   - app.go: Model, Options, the Update loop and commands
//   - bridge.go: Bridge, implementing the lifecycle window factory, location picker and prompter
//   - splash.go: Startup screen with logo, busy spinner and debug log tail
//   - mainview.go: Main window with save file status and catalog browser
//   - modal.go: Location picker, yes/no prompt and text input dialogs
//   - theme.go, style_helpers.go: Lipgloss themes and background helpers
//   - keys.go, help.go: Key bindings and the help overlay
//
// # Event Flow
//
//  1. The lifecycle calls Bridge.NewSplash().Show(); the bridge sends windowShownMsg
//  2. Model records the window and renders the topmost one
//  3. Dialogs (PickLocation, Confirm) send a message carrying a reply channel
//     and block until the modal answers or the context is cancelled
//  4. Main window keys call lifecycle.Requests, which queue work without blocking
//
// # Window Precedence
//
//   - A modal dialog is drawn above everything else
//   - The newest main window, if any
//   - Otherwise the splash, with a spinner while the busy indicator is open
//
// # Key Bindings
//
//   - o: Open save file
//   - r: Reload the main window, keeping the open document
//   - R: Relaunch and pick the content location again
//   - tab, /: Switch catalog, filter catalog
//   - T: Cycle theme (saved to preferences)
//   - h/?: Help
//   - e or Ctrl+C: Exit
package ui

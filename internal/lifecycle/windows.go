package lifecycle

import (
	"github.com/rs/zerolog"

	"github.com/five82/dungeonedit/internal/profile"
)

// Role identifies one of the windows the lifecycle tracks.
type Role int

const (
	RoleSplash Role = iota
	RoleBusy
	RoleMain
)

func (r Role) String() string {
	switch r {
	case RoleSplash:
		return "splash"
	case RoleBusy:
		return "busy"
	case RoleMain:
		return "main"
	default:
		return "unknown"
	}
}

// Window is anything the lifecycle can show and close.
type Window interface {
	Show()
	Close()
}

// MainWindow is the editing window.
type MainWindow interface {
	Window
	// InstallDocument puts an already-loaded document into the window as if
	// it had been opened from path.
	InstallDocument(path string, doc *profile.Document)
	// OpenFile runs the normal file-open path for path.
	OpenFile(path string)
}

// WindowFactory constructs windows. Main windows receive the request
// interface they use to ask for a relaunch or reload.
type WindowFactory interface {
	NewSplash() Window
	NewBusy() Window
	NewMain(requests Requests) MainWindow
}

// Windows owns the splash, busy and main window references. At most one
// window per role is tracked; replacing a window closes its predecessor.
// Windows is not safe for concurrent use; the controller goroutine owns it.
type Windows struct {
	factory WindowFactory
	log     zerolog.Logger
	tracked map[Role]Window
}

// NewWindows builds an empty role table.
func NewWindows(factory WindowFactory, log zerolog.Logger) *Windows {
	return &Windows{
		factory: factory,
		log:     log.With().Str("component", "windows").Logger(),
		tracked: make(map[Role]Window, 3),
	}
}

// Tracked returns the window currently held for role, or nil.
func (w *Windows) Tracked(role Role) Window {
	return w.tracked[role]
}

// Main returns the tracked main window, or nil.
func (w *Windows) Main() MainWindow {
	if m, ok := w.tracked[RoleMain].(MainWindow); ok {
		return m
	}
	return nil
}

// ShowSplash shows a fresh splash. The splash becomes the primary window, so
// any previous splash and main window are closed first.
func (w *Windows) ShowSplash() {
	splash := w.factory.NewSplash()
	w.close(RoleSplash)
	w.close(RoleMain)
	w.tracked[RoleSplash] = splash
	splash.Show()
	w.log.Debug().Msg("splash shown")
}

// ShowBusy shows a fresh busy indicator, closing any previous one.
func (w *Windows) ShowBusy() {
	busy := w.factory.NewBusy()
	w.close(RoleBusy)
	w.tracked[RoleBusy] = busy
	busy.Show()
	w.log.Debug().Msg("busy indicator shown")
}

// CloseBusy closes the busy indicator if one is tracked.
func (w *Windows) CloseBusy() {
	w.close(RoleBusy)
}

// ShowMain closes the splash and busy indicator, shows main and then closes
// the previous main window. Splash and busy are closed even when they were
// never shown.
func (w *Windows) ShowMain(main MainWindow) {
	previous := w.tracked[RoleMain]
	w.close(RoleSplash)
	w.close(RoleBusy)
	w.tracked[RoleMain] = main
	main.Show()
	if previous != nil && previous != Window(main) {
		previous.Close()
	}
	w.log.Debug().Bool("replaced", previous != nil).Msg("main window shown")
}

// CloseAll closes every tracked window.
func (w *Windows) CloseAll() {
	for _, role := range []Role{RoleBusy, RoleSplash, RoleMain} {
		w.close(role)
	}
}

// Count returns how many windows are tracked.
func (w *Windows) Count() int {
	return len(w.tracked)
}

func (w *Windows) close(role Role) {
	win, ok := w.tracked[role]
	if !ok {
		return
	}
	delete(w.tracked, role)
	win.Close()
	w.log.Debug().Stringer("role", role).Msg("window closed")
}

package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dungeonedit/internal/catalog"
	"github.com/five82/dungeonedit/internal/lifecycle"
	"github.com/five82/dungeonedit/internal/logtail"
	"github.com/five82/dungeonedit/internal/prefs"
	"github.com/five82/dungeonedit/internal/profile"
	"github.com/five82/dungeonedit/internal/state"
)

// Options configures the UI.
type Options struct {
	AppTitle  string
	Store     *state.Store
	Catalogs  *catalog.Set
	Prefs     *prefs.Store
	ThemeName string
	LogPath   string
	Debug     bool
	PollTick  time.Duration
}

// openWindow is one window the lifecycle has shown and not yet closed.
type openWindow struct {
	id       int64
	role     lifecycle.Role
	requests lifecycle.Requests
	docPath  string
	doc      *profile.Document
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	appTitle string
	store    *state.Store
	catalogs *catalog.Set
	prefs    *prefs.Store
	follower *logtail.Follower
	pollTick time.Duration
	keys     keyMap
	logo     string

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal
	status   string

	// Windows in the order they were shown
	windows []openWindow

	// Data state
	snapshot state.Snapshot
	logLines []string
	spinner  spinner.Model

	// Catalog browser
	catalogIdx int
	filter     string
	list       viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" && opts.Prefs != nil {
		themeName = opts.Prefs.Snapshot().Theme
	}

	var follower *logtail.Follower
	if opts.Debug && opts.LogPath != "" {
		follower = logtail.NewFollower(opts.LogPath, SplashLogLines)
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		appTitle: opts.AppTitle,
		store:    opts.Store,
		catalogs: opts.Catalogs,
		prefs:    opts.Prefs,
		follower: follower,
		pollTick: pollTick,
		keys:     DefaultKeyMap(),
		logo:     createLogo(),
		theme:    GetTheme(themeName),
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.pollTick), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.list = viewport.New(msg.Width, m.listHeight())
		}
		m.ready = true
		m.list.Width = msg.Width
		m.list.Height = m.listHeight()
		m.refreshList()
		return m, nil

	case windowShownMsg:
		m.windows = append(m.windows, openWindow{id: msg.id, role: msg.role, requests: msg.requests})
		if msg.role == lifecycle.RoleMain {
			m.refreshList()
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil

	case windowClosedMsg:
		m.removeWindow(msg.id)
		return m, nil

	case installDocumentMsg:
		if w := m.window(msg.id); w != nil {
			w.doc = msg.doc
			w.docPath = msg.path
			m.status = "Restored " + msg.doc.Name()
		}
		return m, nil

	case openFileMsg:
		return m, openDocumentCmd(msg.id, msg.path)

	case documentLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if w := m.window(msg.id); w != nil {
			w.doc = msg.doc
			w.docPath = msg.path
			m.status = "Opened " + msg.doc.Name()
		}
		return m, nil

	case pickLocationMsg:
		m.modal = newPickerModal(msg.current, msg.reply)
		return m, nil

	case confirmMsg:
		m.modal = newConfirmModal(msg.title, msg.message, msg.reply)
		return m, nil

	case tickMsg:
		return m, m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.refreshList()
		return m, nil

	case filterMsg:
		m.filter = string(msg)
		m.refreshList()
		return m, nil

	case logLinesMsg:
		m.logLines = []string(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	switch {
	case m.currentMain() != nil:
		return m.renderMain()
	case m.has(lifecycle.RoleSplash), m.has(lifecycle.RoleBusy):
		return m.renderSplash()
	default:
		return ""
	}
}

// handleKey processes keyboard input. Dialogs take every key except ctrl+c.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	}

	if m.currentMain() != nil {
		return m.handleMainKey(msg)
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefs == nil {
		return
	}
	if err := m.prefs.SetTheme(m.theme.Name); err != nil {
		m.status = "Theme not saved: " + err.Error()
	}
}

// handleTick refreshes the content snapshot and the splash log tail.
func (m Model) handleTick() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.follower != nil && m.has(lifecycle.RoleSplash) {
		cmds = append(cmds, pollLogCmd(m.follower))
	}
	return tea.Batch(cmds...)
}

func (m *Model) window(id int64) *openWindow {
	for i := range m.windows {
		if m.windows[i].id == id {
			return &m.windows[i]
		}
	}
	return nil
}

func (m *Model) removeWindow(id int64) {
	for i := range m.windows {
		if m.windows[i].id == id {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			return
		}
	}
}

func (m Model) has(role lifecycle.Role) bool {
	for _, w := range m.windows {
		if w.role == role {
			return true
		}
	}
	return false
}

// currentMain returns the most recently shown main window.
func (m *Model) currentMain() *openWindow {
	for i := len(m.windows) - 1; i >= 0; i-- {
		if m.windows[i].role == lifecycle.RoleMain {
			return &m.windows[i]
		}
	}
	return nil
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func pollLogCmd(f *logtail.Follower) tea.Cmd {
	return func() tea.Msg {
		lines, _ := f.Poll()
		return logLinesMsg(lines)
	}
}

func openDocumentCmd(id int64, path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := profile.Open(path)
		return documentLoadedMsg{id: id, path: path, doc: doc, err: err}
	}
}

// NewProgram builds the Bubble Tea program for m.
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}

package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dungeonedit/internal/catalog"
	"github.com/five82/dungeonedit/internal/content"
	"github.com/five82/dungeonedit/internal/lifecycle"
	"github.com/five82/dungeonedit/internal/prefs"
	"github.com/five82/dungeonedit/internal/profile"
	"github.com/five82/dungeonedit/internal/state"
)

type fakeRequests struct {
	relaunches int
	reloads    []lifecycle.PendingReload
}

func (f *fakeRequests) Relaunch() { f.relaunches++ }

func (f *fakeRequests) Reload(path string, doc *profile.Document) {
	f.reloads = append(f.reloads, lifecycle.PendingReload{Path: path, Document: doc})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func readyModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.AppTitle == "" {
		opts.AppTitle = "DungeonEdit 0.1.0"
	}
	m, _ := step(t, New(opts), tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func TestModelTracksWindows(t *testing.T) {
	m := readyModel(t, Options{})

	m, _ = step(t, m, windowShownMsg{id: 1, role: lifecycle.RoleSplash})
	m, _ = step(t, m, windowShownMsg{id: 2, role: lifecycle.RoleBusy})
	if !strings.Contains(m.View(), "Loading game content") {
		t.Fatalf("splash with busy indicator should show loading text")
	}

	m, _ = step(t, m, windowClosedMsg{id: 1})
	m, _ = step(t, m, windowClosedMsg{id: 2})
	m, _ = step(t, m, windowShownMsg{id: 3, role: lifecycle.RoleMain, requests: &fakeRequests{}})
	if len(m.windows) != 1 || m.currentMain() == nil || m.currentMain().id != 3 {
		t.Fatalf("windows = %#v, want only main 3", m.windows)
	}
	if !strings.Contains(m.View(), "No save file open") {
		t.Fatalf("main view should mention missing save file")
	}

	// Unknown ids are ignored.
	m, _ = step(t, m, windowClosedMsg{id: 99})
	if len(m.windows) != 1 {
		t.Fatalf("closing an unknown window changed the stack")
	}
}

func TestModelPickerAnswers(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want lifecycle.LocationChoice
	}{
		{"escape exits", []tea.KeyMsg{{Type: tea.KeyEscape}}, lifecycle.LocationChoice{Kind: lifecycle.ChooseExit}},
		{"ctrl+n no content", []tea.KeyMsg{{Type: tea.KeyCtrlN}}, lifecycle.LocationChoice{Kind: lifecycle.ChooseNoContent}},
		{"typed path", []tea.KeyMsg{runes("/games"), {Type: tea.KeyEnter}}, lifecycle.LocationChoice{Kind: lifecycle.ChoosePath, Path: "/games"}},
		{"blank means no content", []tea.KeyMsg{runes("  "), {Type: tea.KeyEnter}}, lifecycle.LocationChoice{Kind: lifecycle.ChooseNoContent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := readyModel(t, Options{})
			reply := make(chan lifecycle.LocationChoice, 1)
			m, _ = step(t, m, pickLocationMsg{reply: reply})
			if m.modal == nil {
				t.Fatalf("picker modal not opened")
			}
			for _, k := range tt.keys {
				m, _ = step(t, m, k)
			}
			if m.modal != nil {
				t.Fatalf("picker modal still open")
			}
			select {
			case got := <-reply:
				if got != tt.want {
					t.Fatalf("choice = %#v, want %#v", got, tt.want)
				}
			default:
				t.Fatalf("picker did not answer")
			}
		})
	}
}

func TestModelPickerPrefillsCurrent(t *testing.T) {
	m := readyModel(t, Options{})
	reply := make(chan lifecycle.LocationChoice, 1)
	m, _ = step(t, m, pickLocationMsg{current: "/games/dungeons", reply: reply})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got := <-reply
	if got.Kind != lifecycle.ChoosePath || got.Path != "/games/dungeons" {
		t.Fatalf("choice = %#v, want current path", got)
	}
}

func TestModelConfirmAnswers(t *testing.T) {
	cases := []struct {
		key  tea.KeyMsg
		want bool
	}{
		{runes("y"), true},
		{tea.KeyMsg{Type: tea.KeyEnter}, true},
		{runes("n"), false},
		{tea.KeyMsg{Type: tea.KeyEscape}, false},
	}
	for _, tc := range cases {
		m := readyModel(t, Options{})
		reply := make(chan bool, 1)
		m, _ = step(t, m, confirmMsg{title: "DungeonEdit - Error", message: "corrupt archive", reply: reply})
		if !strings.Contains(m.View(), "corrupt archive") {
			t.Fatalf("prompt view should show the message")
		}
		m, _ = step(t, m, runes("x"))
		if m.modal == nil {
			t.Fatalf("unrelated key closed the prompt")
		}
		m, _ = step(t, m, tc.key)
		if got := <-reply; got != tc.want {
			t.Fatalf("key %q answered %v, want %v", tc.key.String(), got, tc.want)
		}
	}
}

func TestModelMainWindowRequests(t *testing.T) {
	req := &fakeRequests{}
	m := readyModel(t, Options{})
	m, _ = step(t, m, windowShownMsg{id: 7, role: lifecycle.RoleMain, requests: req})
	doc := &profile.Document{Path: "/saves/hero.dat", Data: []byte("hero")}
	m, _ = step(t, m, installDocumentMsg{id: 7, path: doc.Path, doc: doc})

	m, _ = step(t, m, runes("r"))
	m, _ = step(t, m, runes("R"))

	if req.relaunches != 1 {
		t.Fatalf("relaunches = %d, want 1", req.relaunches)
	}
	if len(req.reloads) != 1 || req.reloads[0].Document != doc || req.reloads[0].Path != "/saves/hero.dat" {
		t.Fatalf("reloads = %#v, want the installed document", req.reloads)
	}
	if !strings.Contains(m.View(), "hero.dat") {
		t.Fatalf("main view should show the document name")
	}
}

func TestModelOpenFile(t *testing.T) {
	m := readyModel(t, Options{})
	m, _ = step(t, m, windowShownMsg{id: 4, role: lifecycle.RoleMain, requests: &fakeRequests{}})

	path := filepath.Join(t.TempDir(), "hero.dat")
	writeFile(t, path, "save")
	_, cmd := step(t, m, openFileMsg{id: 4, path: path})
	if cmd == nil {
		t.Fatalf("open file should return a command")
	}
	loaded, ok := cmd().(documentLoadedMsg)
	if !ok || loaded.err != nil || loaded.doc == nil {
		t.Fatalf("open command = %#v", loaded)
	}
	m, _ = step(t, m, loaded)
	if m.currentMain().doc != loaded.doc {
		t.Fatalf("document not attached to window")
	}

	m, _ = step(t, m, documentLoadedMsg{id: 4, err: errString("read profile: missing")})
	if m.status != "read profile: missing" {
		t.Fatalf("status = %q, want load error", m.status)
	}
	if m.currentMain().doc != loaded.doc {
		t.Fatalf("failed open replaced the current document")
	}
}

func TestModelCatalogBrowser(t *testing.T) {
	store := &state.Store{}
	store.Update(&content.Content{Root: "/games", Manifest: content.Manifest{
		Items:  []string{"Sword", "Axe"},
		Levels: []string{"Creeper Woods"},
	}}, nil)
	set := catalog.NewSet(store)
	m := readyModel(t, Options{Store: store, Catalogs: set})
	m, _ = step(t, m, windowShownMsg{id: 1, role: lifecycle.RoleMain, requests: &fakeRequests{}})
	m, _ = step(t, m, snapshotMsg(store.Snapshot()))

	view := m.View()
	if !strings.Contains(view, "Items (2)") || !strings.Contains(view, "Sword") {
		t.Fatalf("catalog view missing items:\n%s", view)
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "Creeper Woods") {
		t.Fatalf("tab should switch to levels")
	}

	m, _ = step(t, m, filterMsg("nothing"))
	if !strings.Contains(m.View(), "No matches") {
		t.Fatalf("filter should hide all levels")
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.filter != "" {
		t.Fatalf("esc should clear the filter")
	}
}

func TestModelThemeCycleSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	store := prefs.Open(path)
	m := readyModel(t, Options{Prefs: store, ThemeName: "Nightfox"})
	m, _ = step(t, m, windowShownMsg{id: 1, role: lifecycle.RoleMain, requests: &fakeRequests{}})

	m, _ = step(t, m, runes("T"))

	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if saved.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", saved.Theme)
	}
}

func TestModelQuitKeys(t *testing.T) {
	m := readyModel(t, Options{})
	reply := make(chan bool, 1)
	m, _ = step(t, m, confirmMsg{reply: reply})

	// "e" is an answer key inside a dialog, not quit.
	_, cmd := step(t, m, runes("e"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatalf("e quit while a dialog was open")
		}
	}

	_, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c should quit")
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		999:         "999 B",
		1024:        "1.00 KiB",
		1024 * 1024: "1.00 MiB",
	}
	for in, want := range cases {
		if got := formatBytes(in); got != want {
			t.Fatalf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("a/b/c/d/e", 7)
	if got == "a/b/c/d/e" {
		t.Fatalf("expected truncation")
	}
	if len([]rune(got)) > 7 {
		t.Fatalf("got %q (%d runes), want <=7", got, len([]rune(got)))
	}
}

func TestNextThemeCycles(t *testing.T) {
	name := "Nightfox"
	for range ThemeNames() {
		name = NextTheme(name)
	}
	if name != "Nightfox" {
		t.Fatalf("cycling all themes ended at %q", name)
	}
	if GetTheme("missing").Name != "Nightfox" {
		t.Fatalf("unknown theme should fall back to Nightfox")
	}
}

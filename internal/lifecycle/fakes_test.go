package lifecycle

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/dungeonedit/internal/content"
	"github.com/five82/dungeonedit/internal/profile"
	"github.com/five82/dungeonedit/internal/state"
)

type fakeWindow struct {
	role   Role
	id     int
	shows  int
	closes int

	installedPath string
	installed     *profile.Document
	opened        []string
	requests      Requests
}

func (w *fakeWindow) Show()  { w.shows++ }
func (w *fakeWindow) Close() { w.closes++ }

func (w *fakeWindow) InstallDocument(path string, doc *profile.Document) {
	w.installedPath = path
	w.installed = doc
}

func (w *fakeWindow) OpenFile(path string) { w.opened = append(w.opened, path) }

func (w *fakeWindow) open() bool { return w.shows > 0 && w.closes == 0 }

type fakeFactory struct {
	mu      sync.Mutex
	created []*fakeWindow
}

func (f *fakeFactory) make(role Role) *fakeWindow {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := &fakeWindow{role: role, id: len(f.created) + 1}
	f.created = append(f.created, w)
	return w
}

func (f *fakeFactory) NewSplash() Window { return f.make(RoleSplash) }
func (f *fakeFactory) NewBusy() Window   { return f.make(RoleBusy) }

func (f *fakeFactory) NewMain(req Requests) MainWindow {
	w := f.make(RoleMain)
	w.requests = req
	return w
}

func (f *fakeFactory) byRole(role Role) []*fakeWindow {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*fakeWindow
	for _, w := range f.created {
		if w.role == role {
			out = append(out, w)
		}
	}
	return out
}

func (f *fakeFactory) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, w := range f.created {
		if w.open() {
			n++
		}
	}
	return n
}

type fakePicker struct {
	mu       sync.Mutex
	choices  []LocationChoice
	err      error
	calls    int
	currents []string
}

func (p *fakePicker) PickLocation(_ context.Context, current string) (LocationChoice, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.currents = append(p.currents, current)
	if p.err != nil {
		return LocationChoice{}, p.err
	}
	if len(p.choices) == 0 {
		return LocationChoice{Kind: ChooseExit}, nil
	}
	c := p.choices[0]
	if len(p.choices) > 1 {
		p.choices = p.choices[1:]
	}
	return c, nil
}

func (p *fakePicker) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fakePrompter struct {
	answer   bool
	err      error
	calls    int
	titles   []string
	messages []string
}

func (p *fakePrompter) Confirm(_ context.Context, title, message string) (bool, error) {
	p.calls++
	p.titles = append(p.titles, title)
	p.messages = append(p.messages, message)
	return p.answer, p.err
}

type fakeLocations struct {
	stored     string
	remembered []string
	forgets    int
}

func (l *fakeLocations) UsableLocation() string { return l.stored }

func (l *fakeLocations) Remember(path string) error {
	l.stored = path
	l.remembered = append(l.remembered, path)
	return nil
}

func (l *fakeLocations) Forget() error {
	l.forgets++
	l.stored = ""
	return nil
}

type fakeLoader struct {
	initErr  error
	failures map[string]error
	panicMsg string
	inits    int
	loads    []string
}

func (l *fakeLoader) Init() error {
	l.inits++
	return l.initErr
}

func (l *fakeLoader) Load(_ context.Context, path string) (*content.Content, error) {
	l.loads = append(l.loads, path)
	if l.panicMsg != "" {
		panic(l.panicMsg)
	}
	if err := l.failures[path]; err != nil {
		return nil, err
	}
	return &content.Content{Root: path, Paks: []content.Pak{{Name: "a.pak", Size: 1}}}, nil
}

func (l *fakeLoader) invoked() bool { return l.inits > 0 || len(l.loads) > 0 }

type fakePreloader struct {
	name  string
	err   error
	panic bool
	mu    sync.Mutex
	calls int
	// started is closed once Preload runs, release blocks it until closed.
	started chan struct{}
	release chan struct{}
}

func (p *fakePreloader) Name() string { return p.name }

func (p *fakePreloader) Preload(ctx context.Context) error {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.started != nil {
		close(p.started)
	}
	if p.release != nil {
		<-p.release
	}
	if p.panic {
		panic("cache exploded")
	}
	return p.err
}

func (p *fakePreloader) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type recordedEvent struct {
	name  string
	props map[string]any
}

type fakeEvents struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (e *fakeEvents) LogEvent(name string, props map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, recordedEvent{name: name, props: props})
}

func (e *fakeEvents) named(name string) []recordedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []recordedEvent
	for _, ev := range e.events {
		if ev.name == name {
			out = append(out, ev)
		}
	}
	return out
}

var errCorrupt = errors.New("corrupt archive")

// harness bundles a controller with fakes for every collaborator.
type harness struct {
	factory   *fakeFactory
	picker    *fakePicker
	prompter  *fakePrompter
	locations *fakeLocations
	loader    *fakeLoader
	store     *state.Store
	events    *fakeEvents
	pre       []*fakePreloader
	ctrl      *Controller
}

func newHarness() *harness {
	h := &harness{
		factory:   &fakeFactory{},
		picker:    &fakePicker{},
		prompter:  &fakePrompter{},
		locations: &fakeLocations{},
		loader:    &fakeLoader{failures: map[string]error{}},
		store:     &state.Store{},
		events:    &fakeEvents{},
		pre:       []*fakePreloader{{name: "items"}, {name: "levels"}},
	}
	h.build()
	return h
}

func (h *harness) build() {
	preloaders := make([]Preloader, 0, len(h.pre))
	for _, p := range h.pre {
		preloaders = append(preloaders, p)
	}
	h.ctrl = New(Deps{
		Windows:    h.factory,
		Picker:     h.picker,
		Prompter:   h.prompter,
		Locations:  h.locations,
		Loader:     h.loader,
		Preloaders: preloaders,
		Content:    h.store,
		Events:     h.events,
		AppTitle:   "DungeonEdit 0.1.0",
		Log:        zerolog.Nop(),
	})
}

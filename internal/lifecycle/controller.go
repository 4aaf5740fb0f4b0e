package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/dungeonedit/internal/profile"
	"github.com/five82/dungeonedit/internal/state"
	"github.com/five82/dungeonedit/internal/telemetry"
)

// Launch tokens.
const (
	ArgAskForLocation = "ASK_FOR_GAME_CONTENT_LOCATION"
	ArgSkipContent    = "SKIP_GAME_CONTENT"
)

// ErrUserExit is returned when the user chose to exit at a decision point.
var ErrUserExit = errors.New("user chose to exit")

// LaunchOptions are the flags parsed from launch arguments.
type LaunchOptions struct {
	ForceAskLocation bool
	SkipContent      bool
}

// ParseArgs reads the launch tokens from args in any order.
func ParseArgs(args []string) LaunchOptions {
	var opts LaunchOptions
	for _, a := range args {
		switch strings.TrimSpace(a) {
		case ArgAskForLocation:
			opts.ForceAskLocation = true
		case ArgSkipContent:
			opts.SkipContent = true
		}
	}
	return opts
}

// ChoiceKind is the outcome of the location picker.
type ChoiceKind int

const (
	ChooseExit ChoiceKind = iota
	ChoosePath
	ChooseNoContent
)

// LocationChoice is what the user picked.
type LocationChoice struct {
	Kind ChoiceKind
	Path string
}

// LocationPicker asks the user where game content lives. current is the
// location that would otherwise be used, possibly empty.
type LocationPicker interface {
	PickLocation(ctx context.Context, current string) (LocationChoice, error)
}

// LocationStore reads and persists the content location.
type LocationStore interface {
	UsableLocation() string
	Remember(path string) error
	Forget() error
}

// Requests is handed to every main window so it can ask the controller to
// relaunch or reload. Calls never block.
type Requests interface {
	Relaunch()
	Reload(path string, doc *profile.Document)
}

// PendingReload is carried across a reload. A non-nil Document is installed
// as is; otherwise Path is opened through the normal file-open path.
type PendingReload struct {
	Path     string
	Document *profile.Document
}

// Deps are the controller's collaborators.
type Deps struct {
	Windows    WindowFactory
	Picker     LocationPicker
	Prompter   Prompter
	Locations  LocationStore
	Loader     ContentLoader
	Preloaders []Preloader
	Content    ContentStore
	Events     telemetry.Recorder
	AppTitle   string
	Log        zerolog.Logger
}

type request struct {
	relaunch bool
	reload   *PendingReload
}

const requestBuffer = 8

// Controller drives the application lifecycle. Phase transitions and window
// bookkeeping happen only on the goroutine calling Start, Relaunch, Reload
// or Run.
type Controller struct {
	deps     Deps
	windows  *Windows
	load     *LoadSequence
	recovery *RecoveryPolicy
	log      zerolog.Logger

	requests chan request
	poster   Requests

	mu      sync.RWMutex
	phase   Phase
	history []Phase
}

// New builds a controller in PhaseIdle.
func New(deps Deps) *Controller {
	if deps.Events == nil {
		deps.Events = telemetry.Nop{}
	}
	if deps.Content == nil {
		deps.Content = &state.Store{}
	}
	c := &Controller{
		deps:     deps,
		windows:  NewWindows(deps.Windows, deps.Log),
		load:     NewLoadSequence(deps.Loader, deps.Content, deps.Preloaders, deps.Log),
		recovery: NewRecoveryPolicy(deps.Prompter, deps.AppTitle, deps.Log),
		log:      deps.Log.With().Str("component", "lifecycle").Logger(),
		requests: make(chan request, requestBuffer),
		phase:    PhaseIdle,
		history:  []Phase{PhaseIdle},
	}
	c.poster = &requestPoster{ch: c.requests, log: c.log}
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// History returns every phase entered so far, oldest first.
func (c *Controller) History() []Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Phase(nil), c.history...)
}

// Windows exposes the window role table.
func (c *Controller) Windows() *Windows {
	return c.windows
}

// Requests returns the request interface given to main windows.
func (c *Controller) Requests() Requests {
	return c.poster
}

// Run starts the application and then serves relaunch and reload requests
// until the user exits or ctx is cancelled. Both end with a nil error.
func (c *Controller) Run(ctx context.Context, args []string) error {
	if err := c.Start(ctx, args); err != nil {
		if errors.Is(err, ErrUserExit) {
			return nil
		}
		return err
	}
	for {
		select {
		case <-ctx.Done():
			c.log.Debug().Msg("lifecycle stopped")
			return nil
		case req := <-c.requests:
			if req.relaunch {
				if err := c.Relaunch(ctx); err != nil {
					if errors.Is(err, ErrUserExit) {
						return nil
					}
					c.log.Warn().Err(err).Msg("relaunch rejected")
				}
				continue
			}
			if err := c.Reload(req.reload); err != nil {
				c.log.Warn().Err(err).Msg("reload rejected")
			}
		}
	}
}

// Start runs the first lifecycle pass.
func (c *Controller) Start(ctx context.Context, args []string) error {
	if p := c.Phase(); p != PhaseIdle {
		return fmt.Errorf("start: controller already in phase %s", p)
	}
	opts := ParseArgs(args)
	c.deps.Events.LogEvent("app_start", map[string]any{
		"askForGameContentLocation": opts.ForceAskLocation,
		"skipGameContent":           opts.SkipContent,
	})
	c.log.Info().
		Bool("ask_location", opts.ForceAskLocation).
		Bool("skip_content", opts.SkipContent).
		Msg("starting")

	if opts.SkipContent {
		c.showMain()
		return nil
	}
	c.windows.ShowSplash()
	c.setPhase(PhaseShowingSplash)
	return c.runLoad(ctx, opts.ForceAskLocation)
}

// Relaunch shows a fresh splash and re-runs loading, always asking for the
// content location. The previous pass must have settled in PhaseShowingMain.
func (c *Controller) Relaunch(ctx context.Context) error {
	if p := c.Phase(); p != PhaseShowingMain {
		return fmt.Errorf("relaunch: controller in phase %s", p)
	}
	c.deps.Events.LogEvent("relaunch", nil)
	c.log.Info().Msg("relaunching")
	c.windows.ShowSplash()
	c.setPhase(PhaseShowingSplash)
	return c.runLoad(ctx, true)
}

// Reload swaps the main window in place. Content is not reloaded.
func (c *Controller) Reload(pending *PendingReload) error {
	if p := c.Phase(); p != PhaseShowingMain {
		return fmt.Errorf("reload: controller in phase %s", p)
	}
	props := map[string]any{"withDocument": pending != nil && pending.Document != nil}
	c.deps.Events.LogEvent("reload", props)

	main := c.deps.Windows.NewMain(c.poster)
	c.windows.ShowMain(main)
	c.setPhase(PhaseShowingMain)

	if pending == nil {
		return nil
	}
	path := strings.TrimSpace(pending.Path)
	switch {
	case pending.Document != nil:
		main.InstallDocument(path, pending.Document)
	case path != "":
		main.OpenFile(path)
	}
	return nil
}

// runLoad resolves the content location, loads it and shows the main window.
// Any panic on the way is treated like a load failure.
func (c *Controller) runLoad(ctx context.Context, forceAsk bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("startup panicked")
			err = c.recoverFromFailure(ctx, &LoadError{Err: fmt.Errorf("unexpected error: %v", r)})
		}
	}()

	c.setPhase(PhaseResolvingLocation)
	path := strings.TrimSpace(c.deps.Locations.UsableLocation())
	if forceAsk || path == "" {
		choice := c.pickLocation(ctx, path)
		switch choice.Kind {
		case ChooseExit:
			return c.exit("game_files_window")
		case ChooseNoContent:
			path = ""
		case ChoosePath:
			path = strings.TrimSpace(choice.Path)
		}
	}

	if path == "" {
		c.forgetLocation()
		c.deps.Content.Unload()
		c.showMain()
		return nil
	}

	c.windows.ShowBusy()
	c.setPhase(PhaseLoading)
	if _, err := c.load.Run(ctx, path, c.setPhase); err != nil {
		return c.recoverFromFailure(ctx, err)
	}
	if err := c.deps.Locations.Remember(path); err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("could not remember content location")
	}
	c.showMain()
	return nil
}

func (c *Controller) pickLocation(ctx context.Context, current string) LocationChoice {
	c.deps.Events.LogEvent("show_game_files_window", nil)
	choice, err := c.deps.Picker.PickLocation(ctx, current)
	if err != nil {
		c.log.Warn().Err(err).Msg("location picker dismissed")
		return LocationChoice{Kind: ChooseExit}
	}
	if choice.Kind == ChoosePath && strings.TrimSpace(choice.Path) == "" {
		return LocationChoice{Kind: ChooseNoContent}
	}
	return choice
}

// recoverFromFailure forgets the location so a bad path is never retried
// automatically, then asks the user whether to continue without content.
func (c *Controller) recoverFromFailure(ctx context.Context, cause error) error {
	c.forgetLocation()
	c.deps.Events.LogEvent("load_failed", map[string]any{"reason": cause.Error()})
	if c.recovery.Decide(ctx, cause) == Exit {
		return c.exit("load_failure")
	}
	if c.deps.Content.Content() != nil {
		c.deps.Content.Unload()
	}
	c.showMain()
	return nil
}

func (c *Controller) forgetLocation() {
	if err := c.deps.Locations.Forget(); err != nil {
		c.log.Warn().Err(err).Msg("could not clear content location")
	}
}

func (c *Controller) showMain() {
	loaded := c.deps.Content.Content() != nil
	c.deps.Events.LogEvent("show_main_window", map[string]any{
		"gameContentLoaded": strconv.FormatBool(loaded),
	})
	c.windows.ShowMain(c.deps.Windows.NewMain(c.poster))
	c.setPhase(PhaseShowingMain)
}

func (c *Controller) exit(at string) error {
	c.deps.Events.LogEvent("user_exit", map[string]any{"at": at})
	c.log.Info().Str("at", at).Msg("user chose to exit")
	c.windows.CloseAll()
	c.setPhase(PhaseExiting)
	return ErrUserExit
}

func (c *Controller) setPhase(next Phase) {
	c.mu.Lock()
	prev := c.phase
	c.phase = next
	c.history = append(c.history, next)
	c.mu.Unlock()

	if !prev.CanTransition(next) {
		c.log.Error().Stringer("from", prev).Stringer("to", next).Msg("unexpected phase transition")
		return
	}
	c.log.Debug().Stringer("from", prev).Stringer("to", next).Msg("phase")
}

type requestPoster struct {
	ch  chan<- request
	log zerolog.Logger
}

func (p *requestPoster) Relaunch() {
	p.post(request{relaunch: true})
}

func (p *requestPoster) Reload(path string, doc *profile.Document) {
	p.post(request{reload: &PendingReload{Path: path, Document: doc}})
}

func (p *requestPoster) post(req request) {
	select {
	case p.ch <- req:
	default:
		p.log.Warn().Bool("relaunch", req.relaunch).Msg("lifecycle busy, request dropped")
	}
}

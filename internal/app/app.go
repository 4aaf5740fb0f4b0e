package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dungeonedit/internal/catalog"
	"github.com/five82/dungeonedit/internal/config"
	"github.com/five82/dungeonedit/internal/content"
	"github.com/five82/dungeonedit/internal/lifecycle"
	"github.com/five82/dungeonedit/internal/logging"
	"github.com/five82/dungeonedit/internal/prefs"
	"github.com/five82/dungeonedit/internal/state"
	"github.com/five82/dungeonedit/internal/telemetry"
	"github.com/five82/dungeonedit/internal/ui"
)

// Options configure the DungeonEdit application.
type Options struct {
	ConfigPath string
	PrefsPath  string   // empty uses the path from config
	Debug      bool     // forces debug logging and the splash log console
	Args       []string // launch tokens, e.g. SKIP_GAME_CONTENT
}

// Run boots the editor and blocks until the user exits or ctx is cancelled.
// A user choosing to exit at a startup prompt is a clean shutdown.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Debug {
		cfg.Debug = true
	}
	if opts.PrefsPath != "" {
		cfg.PrefsPath = opts.PrefsPath
	}

	logger, logFile, err := logging.Open(cfg.LogFile, cfg.EffectiveLogLevel())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	var events telemetry.Recorder = telemetry.Nop{}
	if cfg.TelemetryEnabled {
		sink, err := telemetry.Open(cfg.TelemetryFile, telemetry.Options{
			Source: cfg.AppName + "/" + cfg.Version,
			Log:    logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("telemetry disabled")
		} else {
			defer func() { _ = sink.Close() }()
			events = sink
			logger = logger.With().Str("session", sink.Session()).Logger()
		}
	}
	logger.Info().Str("version", cfg.Version).Strs("args", opts.Args).Msg("dungeonedit starting")

	userPrefs := prefs.Open(cfg.PrefsPath)
	store := &state.Store{}
	catalogs := catalog.NewSet(store)
	preloaders := make([]lifecycle.Preloader, 0, len(catalogs.All()))
	for _, idx := range catalogs.All() {
		preloaders = append(preloaders, idx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.New(ui.Options{
		AppTitle: cfg.Title(),
		Store:    store,
		Catalogs: catalogs,
		Prefs:    userPrefs,
		LogPath:  cfg.LogFile,
		Debug:    cfg.Debug,
	})
	program := ui.NewProgram(model, tea.WithContext(ctx))
	bridge := ui.NewBridge(program)

	ctrl := lifecycle.New(lifecycle.Deps{
		Windows:    bridge,
		Picker:     bridge,
		Prompter:   bridge,
		Locations:  content.NewLocations(userPrefs, cfg.ContentSearchPaths),
		Loader:     content.NewFSLoader(userPrefs),
		Preloaders: preloaders,
		Content:    store,
		Events:     events,
		AppTitle:   cfg.Title(),
		Log:        logger,
	})

	StartWatcher(ctx, store, content.Usable, defaultWatchInterval, logger)

	done := make(chan error, 1)
	go func() {
		err := ctrl.Run(ctx, opts.Args)
		program.Quit()
		done <- err
	}()

	_, uiErr := program.Run()
	cancel()
	ctrlErr := <-done

	logger.Info().Stringer("phase", ctrl.Phase()).Msg("dungeonedit stopped")
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) && !errors.Is(uiErr, tea.ErrInterrupted) {
		return fmt.Errorf("run ui: %w", uiErr)
	}
	if ctrlErr != nil {
		return fmt.Errorf("lifecycle: %w", ctrlErr)
	}
	return nil
}

package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/five82/dungeonedit/internal/content"
)

// ContentLoader reads and parses game content.
type ContentLoader interface {
	Init() error
	Load(ctx context.Context, path string) (*content.Content, error)
}

// Preloader warms an in-memory cache. Preload must be idempotent.
type Preloader interface {
	Name() string
	Preload(ctx context.Context) error
}

// ContentStore receives the outcome of a load.
type ContentStore interface {
	Update(c *content.Content, err error)
	Unload()
	Content() *content.Content
}

// LoadError is a failed content load. Its message is the collaborator's.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadSequence loads content (stage A) and then warms caches (stage B).
type LoadSequence struct {
	loader     ContentLoader
	store      ContentStore
	preloaders []Preloader
	log        zerolog.Logger
}

// NewLoadSequence wires a sequence. store may be nil.
func NewLoadSequence(loader ContentLoader, store ContentStore, preloaders []Preloader, log zerolog.Logger) *LoadSequence {
	return &LoadSequence{
		loader:     loader,
		store:      store,
		preloaders: preloaders,
		log:        log.With().Str("component", "load").Logger(),
	}
}

// Run loads the content at path. A non-nil error is always a *LoadError from
// stage A; stage B problems are logged and never fail the sequence. stage, if
// non-nil, is called when the sequence moves to PhasePreloading.
func (s *LoadSequence) Run(ctx context.Context, path string, stage func(Phase)) (*content.Content, error) {
	start := time.Now()
	c, err := s.loadContent(ctx, path)
	if err != nil {
		if s.store != nil {
			s.store.Update(nil, err)
		}
		s.log.Error().Err(err).Str("path", path).Msg("game content load failed")
		return nil, err
	}
	if s.store != nil {
		s.store.Update(c, nil)
	}
	s.log.Info().
		Str("path", path).
		Int("paks", len(c.Paks)).
		Dur("took", time.Since(start)).
		Msg("game content loaded")

	if stage != nil {
		stage(PhasePreloading)
	}
	if err := s.preload(ctx); err != nil {
		s.log.Warn().Err(err).Msg("cache warm-up incomplete, continuing with cold caches")
	}
	return c, nil
}

func (s *LoadSequence) loadContent(ctx context.Context, path string) (c *content.Content, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, &LoadError{Path: path, Err: fmt.Errorf("content loader panicked: %v", r)}
		}
	}()

	if err := s.loader.Init(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	c, err = s.loader.Load(ctx, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if c == nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("content loader returned no content for %s", path)}
	}
	return c, nil
}

// preload runs every preloader concurrently and waits for all of them.
func (s *LoadSequence) preload(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for _, p := range s.preloaders {
		wg.Add(1)
		go func(p Preloader) {
			defer wg.Done()
			err := runPreload(ctx, p)
			if err == nil {
				s.log.Debug().Str("cache", p.Name()).Msg("cache warmed")
				return
			}
			mu.Lock()
			errs = multierr.Append(errs, fmt.Errorf("preload %s: %w", p.Name(), err))
			mu.Unlock()
		}(p)
	}
	wg.Wait()
	return errs
}

func runPreload(ctx context.Context, p Preloader) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.Preload(ctx)
}

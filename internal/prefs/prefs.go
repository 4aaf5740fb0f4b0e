// Package prefs handles dungeonedit user preferences persistence.
// Preferences are stored in ~/.config/dungeonedit/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for dungeonedit.
//
// The content location and the pak key are deliberately stored under
// separate keys; they are unrelated values.
type Prefs struct {
	Theme               string `toml:"theme"`
	GameContentLocation string `toml:"game_content_location"`
	PakAESKey           string `toml:"pak_aes_key"`
}

const (
	defaultPrefsPath = "~/.config/dungeonedit/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	prefs := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}, nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	prefs.GameContentLocation = strings.TrimSpace(prefs.GameContentLocation)
	prefs.PakAESKey = strings.TrimSpace(prefs.PakAESKey)

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Store guards an in-memory copy of the preferences and writes every change
// through to disk.
type Store struct {
	mu    sync.Mutex
	path  string
	prefs Prefs
}

// Open loads the preferences at path into a Store.
func Open(path string) *Store {
	p, _ := Load(path)
	return &Store{path: path, prefs: p}
}

// Snapshot returns a copy of the current preferences.
func (s *Store) Snapshot() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// ContentLocation returns the remembered game content location, if any.
func (s *Store) ContentLocation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.GameContentLocation
}

// SetContentLocation remembers path as the game content location.
func (s *Store) SetContentLocation(path string) error {
	return s.update(func(p *Prefs) { p.GameContentLocation = strings.TrimSpace(path) })
}

// ClearContentLocation forgets the remembered location. Clearing an already
// empty location does not touch the file.
func (s *Store) ClearContentLocation() error {
	s.mu.Lock()
	empty := s.prefs.GameContentLocation == ""
	s.mu.Unlock()
	if empty {
		return nil
	}
	return s.update(func(p *Prefs) { p.GameContentLocation = "" })
}

// PakKey returns the stored pak decryption key (hex encoded).
func (s *Store) PakKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.PakAESKey
}

// SetPakKey stores the pak decryption key.
func (s *Store) SetPakKey(key string) error {
	return s.update(func(p *Prefs) { p.PakAESKey = strings.TrimSpace(key) })
}

// SetTheme stores the selected theme name.
func (s *Store) SetTheme(name string) error {
	return s.update(func(p *Prefs) { p.Theme = name })
}

func (s *Store) update(mutate func(*Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.prefs
	mutate(&next)
	if err := Save(s.path, next); err != nil {
		return err
	}
	s.prefs = next
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

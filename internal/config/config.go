package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the injected runtime configuration for dungeonedit.
type Config struct {
	AppName            string
	Version            string
	Debug              bool
	PrefsPath          string
	LogFile            string
	LogLevel           string
	TelemetryEnabled   bool
	TelemetryFile      string
	ContentSearchPaths []string
}

const (
	defaultConfigPath    = "~/.config/dungeonedit/config.toml"
	defaultPrefsPath     = "~/.config/dungeonedit/prefs.toml"
	defaultLogFile       = "~/.local/share/dungeonedit/dungeonedit.log"
	defaultTelemetryFile = "~/.local/share/dungeonedit/events.jsonl"
	defaultLogLevel      = "info"
	defaultAppName       = "DungeonEdit"
	defaultVersion       = "0.1.0"
)

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		AppName:          defaultAppName,
		Version:          defaultVersion,
		PrefsPath:        mustExpand(defaultPrefsPath),
		LogFile:          mustExpand(defaultLogFile),
		LogLevel:         defaultLogLevel,
		TelemetryEnabled: true,
		TelemetryFile:    mustExpand(defaultTelemetryFile),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		AppName            string   `toml:"app_name"`
		Version            string   `toml:"version"`
		Debug              bool     `toml:"debug"`
		PrefsPath          string   `toml:"prefs_path"`
		LogFile            string   `toml:"log_file"`
		LogLevel           string   `toml:"log_level"`
		TelemetryEnabled   *bool    `toml:"telemetry_enabled"`
		TelemetryFile      string   `toml:"telemetry_file"`
		ContentSearchPaths []string `toml:"content_search_paths"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Debug = raw.Debug
	if v := strings.TrimSpace(raw.AppName); v != "" {
		cfg.AppName = v
	}
	if v := strings.TrimSpace(raw.Version); v != "" {
		cfg.Version = v
	}
	if v := strings.TrimSpace(raw.PrefsPath); v != "" {
		cfg.PrefsPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if raw.TelemetryEnabled != nil {
		cfg.TelemetryEnabled = *raw.TelemetryEnabled
	}
	if v := strings.TrimSpace(raw.TelemetryFile); v != "" {
		cfg.TelemetryFile = mustExpand(v)
	}
	for _, p := range raw.ContentSearchPaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		cfg.ContentSearchPaths = append(cfg.ContentSearchPaths, mustExpand(p))
	}

	return cfg, nil
}

// Title returns the "<name> <version>" label used in window titles.
func (c Config) Title() string {
	name := strings.TrimSpace(c.AppName)
	if name == "" {
		name = defaultAppName
	}
	if strings.TrimSpace(c.Version) == "" {
		return name
	}
	return name + " " + c.Version
}

// EffectiveLogLevel returns the configured level, forced to debug in debug mode.
func (c Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		return defaultLogLevel
	}
	return c.LogLevel
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading "~" and returns an absolute path.
func ExpandPath(path string) (string, error) {
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

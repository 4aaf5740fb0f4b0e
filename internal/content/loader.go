package content

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoPaks is returned when a folder holds no game archives.
	ErrNoPaks = errors.New("no .pak files found")
	// ErrInvalidKey is returned by Init when the stored pak key is malformed.
	ErrInvalidKey = errors.New("pak key must be 64 hex characters")
	// ErrNotInitialized is returned by Load before Init succeeded.
	ErrNotInitialized = errors.New("pak reader not initialized")
)

const pakKeySize = 32

// KeySource provides the optional pak decryption key.
type KeySource interface {
	PakKey() string
}

// Loader reads game content from a filesystem location.
type Loader interface {
	Init() error
	Load(ctx context.Context, path string) (*Content, error)
}

// Ensure FSLoader implements Loader at compile time.
var _ Loader = (*FSLoader)(nil)

// FSLoader loads a pak folder from the local filesystem.
type FSLoader struct {
	keys KeySource

	mu          sync.Mutex
	key         []byte
	initialized bool
}

// NewFSLoader builds an FSLoader. keys may be nil.
func NewFSLoader(keys KeySource) *FSLoader {
	return &FSLoader{keys: keys}
}

// Init prepares the pak reader. It validates the decryption key when one is
// configured and may be called again before every load.
func (l *FSLoader) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.key = nil
	l.initialized = false

	if l.keys != nil {
		if raw := strings.TrimSpace(l.keys.PakKey()); raw != "" {
			key, err := hex.DecodeString(raw)
			if err != nil || len(key) != pakKeySize {
				return ErrInvalidKey
			}
			l.key = key
		}
	}
	l.initialized = true
	return nil
}

// Load scans path for archives and reads the optional manifest.
func (l *FSLoader) Load(ctx context.Context, path string) (*Content, error) {
	l.mu.Lock()
	ready := l.initialized
	encrypted := len(l.key) > 0
	l.mu.Unlock()
	if !ready {
		return nil, ErrNotInitialized
	}

	root := strings.TrimSpace(path)
	if root == "" {
		return nil, fmt.Errorf("content path is empty")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open content folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a folder", root)
	}

	paks, err := scanPaks(ctx, root)
	if err != nil {
		return nil, err
	}

	manifest, err := readManifest(filepath.Join(root, ManifestFile))
	if err != nil {
		return nil, err
	}

	return &Content{
		Root:      root,
		Paks:      paks,
		Manifest:  manifest,
		Encrypted: encrypted,
		LoadedAt:  time.Now(),
	}, nil
}

// Usable reports whether path looks like a pak folder.
func Usable(path string) bool {
	root := strings.TrimSpace(path)
	if root == "" {
		return false
	}
	matches, err := filepath.Glob(filepath.Join(root, "*"+PakExt))
	return err == nil && len(matches) > 0
}

func scanPaks(ctx context.Context, root string) ([]Pak, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read content folder: %w", err)
	}

	var paks []Pak
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), PakExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		if info.Size() == 0 {
			return nil, fmt.Errorf("corrupt archive %s: file is empty", entry.Name())
		}
		paks = append(paks, Pak{Name: entry.Name(), Size: info.Size()})
	}
	if len(paks) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPaks, root)
	}
	sort.Slice(paks, func(i, j int) bool { return paks[i].Name < paks[j].Name })
	return paks, nil
}

func readManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

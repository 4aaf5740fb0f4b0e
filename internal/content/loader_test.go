package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticKey string

func (k staticKey) PakKey() string { return string(k) }

func writePak(t *testing.T, dir, name string, size int) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644))
}

func TestFSLoader_LoadsPaksAndManifest(t *testing.T) {
	dir := t.TempDir()
	writePak(t, dir, "pakchunk1-WindowsNoEditor.pak", 16)
	writePak(t, dir, "pakchunk0-WindowsNoEditor.pak", 8)
	writePak(t, dir, "readme.txt", 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(`
name: Dungeons
version: "1.17"
items: [Sword, Bow]
levels: [Creeper Woods]
enchantments: [Sharpness]
`), 0o644))

	l := NewFSLoader(nil)
	require.NoError(t, l.Init())

	c, err := l.Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, c.Paks, 2)
	assert.Equal(t, "pakchunk0-WindowsNoEditor.pak", c.Paks[0].Name)
	assert.Equal(t, int64(24), c.TotalSize())
	assert.Equal(t, []string{"Sword", "Bow"}, c.Manifest.Items)
	assert.Equal(t, "1.17", c.Manifest.Version)
	assert.False(t, c.Encrypted)
	assert.False(t, c.LoadedAt.IsZero())
}

func TestFSLoader_LoadBeforeInitFails(t *testing.T) {
	_, err := NewFSLoader(nil).Load(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestFSLoader_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantSub string
		wantIs  error
	}{
		{
			name:    "missing folder",
			setup:   func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
			wantSub: "open content folder",
		},
		{
			name: "not a folder",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writePak(t, dir, "file.pak", 1)
				return filepath.Join(dir, "file.pak")
			},
			wantSub: "is not a folder",
		},
		{
			name:   "no archives",
			setup:  func(t *testing.T) string { return t.TempDir() },
			wantIs: ErrNoPaks,
		},
		{
			name: "empty archive",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writePak(t, dir, "broken.pak", 0)
				return dir
			},
			wantSub: "corrupt archive",
		},
		{
			name: "bad manifest",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writePak(t, dir, "a.pak", 1)
				require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte("items: [\n"), 0o644))
				return dir
			},
			wantSub: "parse manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewFSLoader(nil)
			require.NoError(t, l.Init())
			_, err := l.Load(context.Background(), tt.setup(t))
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs), "error %v should wrap %v", err, tt.wantIs)
			}
			if tt.wantSub != "" {
				assert.Contains(t, err.Error(), tt.wantSub)
			}
		})
	}
}

func TestFSLoader_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writePak(t, dir, "a.pak", 1)

	l := NewFSLoader(nil)
	require.NoError(t, l.Init())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFSLoader_InitValidatesKey(t *testing.T) {
	assert.ErrorIs(t, NewFSLoader(staticKey("zz")).Init(), ErrInvalidKey)
	assert.ErrorIs(t, NewFSLoader(staticKey("00ff")).Init(), ErrInvalidKey)

	good := NewFSLoader(staticKey(strings.Repeat("ab", pakKeySize)))
	require.NoError(t, good.Init())

	dir := t.TempDir()
	writePak(t, dir, "a.pak", 1)
	c, err := good.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, c.Encrypted)
}

func TestUsable(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Usable(dir))
	assert.False(t, Usable("  "))
	writePak(t, dir, "a.pak", 1)
	assert.True(t, Usable(dir))
}

package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ReadsBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2533274911111111.dat")
	require.NoError(t, os.WriteFile(path, []byte("profile-bytes"), 0o600))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "2533274911111111.dat", doc.Name())
	assert.Equal(t, len("profile-bytes"), doc.Size())
	assert.Len(t, doc.Checksum(), 12)
	assert.False(t, doc.OpenedAt.IsZero())
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "missing.dat"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read profile")
}

func TestNilDocument(t *testing.T) {
	var doc *Document
	assert.Equal(t, "untitled", doc.Name())
	assert.Equal(t, 0, doc.Size())
	assert.Equal(t, "", doc.Checksum())
}

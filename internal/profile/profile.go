// Package profile holds an opened save profile as an opaque document.
// The bytes are kept as read; decoding the save format happens elsewhere.
package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Document is an in-memory save profile.
type Document struct {
	Path     string
	Data     []byte
	OpenedAt time.Time
	Modified bool
}

// Open reads the profile at path.
func Open(path string) (*Document, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("profile path is empty")
	}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return &Document{Path: trimmed, Data: data, OpenedAt: time.Now()}, nil
}

// Name returns the file name of the profile.
func (d *Document) Name() string {
	if d == nil || d.Path == "" {
		return "untitled"
	}
	return filepath.Base(d.Path)
}

// Size returns the document size in bytes.
func (d *Document) Size() int {
	if d == nil {
		return 0
	}
	return len(d.Data)
}

// Checksum returns a short content hash, used to show whether two windows
// hold the same document.
func (d *Document) Checksum() string {
	if d == nil {
		return ""
	}
	sum := sha256.Sum256(d.Data)
	return hex.EncodeToString(sum[:])[:12]
}

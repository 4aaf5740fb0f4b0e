package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Tail returns at most maxLines from the end of r. maxLines <= 0 returns nil.
func Tail(r io.Reader, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if count < maxLines {
		return append([]string(nil), ring[:count]...), nil
	}
	return append(append([]string(nil), ring[next:]...), ring[:next]...), nil
}

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()
	return Tail(file, maxLines)
}

// Follower keeps the last lines of a growing file, reading only what was
// appended since the previous Poll. It is safe for concurrent use.
type Follower struct {
	mu      sync.Mutex
	path    string
	max     int
	offset  int64
	partial string
	lines   []string
}

// NewFollower tracks the last maxLines lines of path.
func NewFollower(path string, maxLines int) *Follower {
	if maxLines <= 0 {
		maxLines = 1
	}
	return &Follower{path: path, max: maxLines}
}

// Poll reads new data and returns the current window of lines.
func (f *Follower) Poll() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f.window(), nil
		}
		return f.window(), fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return f.window(), fmt.Errorf("stat log: %w", err)
	}
	if info.Size() < f.offset {
		// Truncated or rotated.
		f.offset, f.partial, f.lines = 0, "", nil
	}
	if info.Size() == f.offset {
		return f.window(), nil
	}
	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return f.window(), fmt.Errorf("seek log: %w", err)
	}
	chunk, err := io.ReadAll(file)
	if err != nil {
		return f.window(), fmt.Errorf("read log: %w", err)
	}
	f.offset += int64(len(chunk))

	text := f.partial + string(chunk)
	parts := strings.Split(text, "\n")
	f.partial = parts[len(parts)-1]
	f.lines = append(f.lines, parts[:len(parts)-1]...)
	if extra := len(f.lines) - f.max; extra > 0 {
		f.lines = append([]string(nil), f.lines[extra:]...)
	}
	return f.window(), nil
}

// Lines returns a copy of the current window.
func (f *Follower) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.window()
}

func (f *Follower) window() []string {
	return append([]string(nil), f.lines...)
}

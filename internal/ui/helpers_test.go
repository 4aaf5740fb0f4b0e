package ui

import (
	"os"
	"testing"
)

type errString string

func (e errString) Error() string { return string(e) }

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

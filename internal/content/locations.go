package content

import "strings"

// LocationRecorder persists the remembered content location.
type LocationRecorder interface {
	ContentLocation() string
	SetContentLocation(path string) error
	ClearContentLocation() error
}

// Locations resolves where game content lives: first the remembered
// location, then a list of well-known install folders.
type Locations struct {
	store      LocationRecorder
	candidates []string
	usable     func(string) bool
}

// NewLocations builds a Locations backed by store.
func NewLocations(store LocationRecorder, candidates []string) *Locations {
	return &Locations{store: store, candidates: candidates, usable: Usable}
}

// UsableLocation returns the first location that holds game content, or "".
func (l *Locations) UsableLocation() string {
	if stored := strings.TrimSpace(l.store.ContentLocation()); stored != "" && l.usable(stored) {
		return stored
	}
	for _, candidate := range l.candidates {
		if l.usable(candidate) {
			return candidate
		}
	}
	return ""
}

// Remember stores path as the content location for future runs.
func (l *Locations) Remember(path string) error {
	return l.store.SetContentLocation(path)
}

// Forget clears the stored content location.
func (l *Locations) Forget() error {
	return l.store.ClearContentLocation()
}

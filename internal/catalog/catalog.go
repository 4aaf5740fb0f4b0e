// Package catalog builds the lookup indexes the editor screens use for items,
// levels and enchantments. Indexes are built from the loaded game content
// and cached until the content changes.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/five82/dungeonedit/internal/content"
)

// Source provides the currently loaded content.
type Source interface {
	Content() *content.Content
}

// Index is a sorted, de-duplicated name list derived from the content manifest.
type Index struct {
	name    string
	source  Source
	extract func(content.Manifest) []string

	mu      sync.RWMutex
	built   *content.Content
	warm    bool
	entries []string
}

func newIndex(name string, source Source, extract func(content.Manifest) []string) *Index {
	return &Index{name: name, source: source, extract: extract}
}

// Items indexes item names.
func Items(source Source) *Index {
	return newIndex("items", source, func(m content.Manifest) []string { return m.Items })
}

// Levels indexes mission names.
func Levels(source Source) *Index {
	return newIndex("levels", source, func(m content.Manifest) []string { return m.Levels })
}

// Enchantments indexes enchantment names.
func Enchantments(source Source) *Index {
	return newIndex("enchantments", source, func(m content.Manifest) []string { return m.Enchantments })
}

// Set is the group of indexes warmed together at startup.
type Set struct {
	Items        *Index
	Levels       *Index
	Enchantments *Index
}

// NewSet builds every index over source.
func NewSet(source Source) *Set {
	return &Set{
		Items:        Items(source),
		Levels:       Levels(source),
		Enchantments: Enchantments(source),
	}
}

// All returns the indexes in a stable order.
func (s *Set) All() []*Index {
	return []*Index{s.Items, s.Levels, s.Enchantments}
}

// Name returns the index name.
func (i *Index) Name() string {
	return i.name
}

// Preload builds the index for the current content. Calling it again for the
// same content is a no-op.
func (i *Index) Preload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := i.source.Content()

	i.mu.RLock()
	fresh := i.warm && i.built == c
	i.mu.RUnlock()
	if fresh {
		return nil
	}

	var names []string
	if c != nil {
		names = normalize(i.extract(c.Manifest))
	}

	i.mu.Lock()
	i.entries = names
	i.built = c
	i.warm = true
	i.mu.Unlock()
	return nil
}

// Warm reports whether the index matches the current content.
func (i *Index) Warm() bool {
	c := i.source.Content()
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.warm && i.built == c
}

// Entries returns the index, building it on first use.
func (i *Index) Entries() []string {
	if !i.Warm() {
		_ = i.Preload(context.Background())
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]string, len(i.entries))
	copy(out, i.entries)
	return out
}

// Search returns entries containing query, case-insensitively.
func (i *Index) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	all := i.Entries()
	if q == "" {
		return all
	}
	var out []string
	for _, e := range all {
		if strings.Contains(strings.ToLower(e), q) {
			out = append(out, e)
		}
	}
	return out
}

func normalize(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

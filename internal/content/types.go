package content

import "time"

// ManifestFile is the optional catalog manifest read from the pak folder.
const ManifestFile = "content.yaml"

// PakExt is the file extension of game archives.
const PakExt = ".pak"

// Manifest describes the catalog shipped alongside the game archives.
type Manifest struct {
	Name         string   `yaml:"name"`
	Version      string   `yaml:"version"`
	Items        []string `yaml:"items"`
	Levels       []string `yaml:"levels"`
	Enchantments []string `yaml:"enchantments"`
}

// Pak is one archive file found in the content folder.
type Pak struct {
	Name string
	Size int64
}

// Content is the result of a successful load.
type Content struct {
	Root      string
	Paks      []Pak
	Manifest  Manifest
	Encrypted bool
	LoadedAt  time.Time
}

// TotalSize returns the combined size of all archives in bytes.
func (c *Content) TotalSize() int64 {
	if c == nil {
		return 0
	}
	var total int64
	for _, p := range c.Paks {
		total += p.Size
	}
	return total
}

// Package catalog provides the fixed algorithm catalog the wizard offers.
//
// The default catalog is embedded; an override file with the same YAML layout
// can be loaded at runtime and hot-reloaded through a Store.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Group identifies which list an algorithm belongs to.
type Group string

const (
	GroupImage Group = "image"
	GroupSound Group = "sound"
)

// Title returns the section heading for the group.
func (g Group) Title() string {
	switch g {
	case GroupImage:
		return "Image Processing"
	case GroupSound:
		return "Sound Processing"
	default:
		return string(g)
	}
}

// Algorithm is a single catalog entry.
type Algorithm struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
}

// Catalog holds the image-processing and sound-processing lists.
// A Catalog is read-only after construction.
type Catalog struct {
	image []Algorithm
	sound []Algorithm
	byID  map[string]Algorithm
	group map[string]Group
}

type catalogFile struct {
	ImageProcessing []Algorithm `yaml:"image_processing"`
	SoundProcessing []Algorithm `yaml:"sound_processing"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog override file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Read parses a catalog from r.
func Read(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML. Ids must be non-empty and unique
// across both lists, and every entry needs a label.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{
		image: file.ImageProcessing,
		sound: file.SoundProcessing,
		byID:  make(map[string]Algorithm),
		group: make(map[string]Group),
	}
	add := func(g Group, list []Algorithm) error {
		for i, a := range list {
			if strings.TrimSpace(a.ID) == "" {
				return fmt.Errorf("%s algorithm %d: id is required", g, i)
			}
			if strings.TrimSpace(a.Label) == "" {
				return fmt.Errorf("%s algorithm %q: label is required", g, a.ID)
			}
			if _, dup := c.byID[a.ID]; dup {
				return fmt.Errorf("%s algorithm %q: duplicate id", g, a.ID)
			}
			c.byID[a.ID] = a
			c.group[a.ID] = g
		}
		return nil
	}
	if err := add(GroupImage, c.image); err != nil {
		return nil, err
	}
	if err := add(GroupSound, c.sound); err != nil {
		return nil, err
	}
	if len(c.byID) == 0 {
		return nil, fmt.Errorf("catalog has no algorithms")
	}
	return c, nil
}

// Image returns the image-processing algorithms in display order.
func (c *Catalog) Image() []Algorithm { return append([]Algorithm(nil), c.image...) }

// Sound returns the sound-processing algorithms in display order.
func (c *Catalog) Sound() []Algorithm { return append([]Algorithm(nil), c.sound...) }

// All returns image algorithms followed by sound algorithms.
func (c *Catalog) All() []Algorithm {
	out := make([]Algorithm, 0, len(c.image)+len(c.sound))
	out = append(out, c.image...)
	return append(out, c.sound...)
}

// Groups returns the groups that have at least one entry, image first.
func (c *Catalog) Groups() []Group {
	var out []Group
	if len(c.image) > 0 {
		out = append(out, GroupImage)
	}
	if len(c.sound) > 0 {
		out = append(out, GroupSound)
	}
	return out
}

// InGroup returns the algorithms of one group.
func (c *Catalog) InGroup(g Group) []Algorithm {
	switch g {
	case GroupImage:
		return c.Image()
	case GroupSound:
		return c.Sound()
	default:
		return nil
	}
}

// Lookup returns the algorithm with the given id.
func (c *Catalog) Lookup(id string) (Algorithm, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Label returns the display label for id, falling back to the id itself.
func (c *Catalog) Label(id string) string {
	if a, ok := c.byID[id]; ok {
		return a.Label
	}
	return id
}

// Labels maps ids to labels, preserving order.
func (c *Catalog) Labels(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = c.Label(id)
	}
	return out
}

// Len returns the total number of algorithms.
func (c *Catalog) Len() int { return len(c.byID) }

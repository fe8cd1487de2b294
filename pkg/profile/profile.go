// Package profile defines the persisted profile document: the tile tree,
// the daily schedule and layout preferences.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/deck/pkg/schedule"
	"tableflip.dev/deck/pkg/tile"
)

var (
	// ErrMissingTiles marks a document without a tiles array.
	ErrMissingTiles = errors.New("profile: profile data missing tiles")
	// ErrInvalidName is returned for names that cannot be used as a key.
	ErrInvalidName = errors.New("profile: invalid name")
)

// Profile is a named bundle of tiles, schedules and layout state.
type Profile struct {
	Name              string          `json:"name" yaml:"name"`
	Tiles             []*tile.Tile    `json:"tiles" yaml:"tiles"`
	Schedules         []schedule.Item `json:"schedules" yaml:"schedules"`
	LeftSidebarOrder  []string        `json:"leftSidebarOrder,omitempty" yaml:"leftSidebarOrder,omitempty"`
	RightSidebarOrder []string        `json:"rightSidebarOrder,omitempty" yaml:"rightSidebarOrder,omitempty"`
	CollapsedPanels   map[string]bool `json:"collapsedPanels,omitempty" yaml:"collapsedPanels,omitempty"`
	Settings          map[string]any  `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// New returns an empty profile with default layout.
func New(name string) *Profile {
	p := &Profile{
		Name:      strings.TrimSpace(name),
		Tiles:     []*tile.Tile{},
		Schedules: []schedule.Item{},
	}
	Normalize(p)
	return p
}

// Key is the storage key for name: trimmed and lower-cased.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateName rejects names that cannot be stored as a single file.
func ValidateName(name string) error {
	key := Key(name)
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Validate checks what a loaded document must carry.
func Validate(p *Profile) error {
	if p == nil {
		return errors.New("profile: nil profile")
	}
	if p.Tiles == nil {
		return ErrMissingTiles
	}
	return ValidateName(p.Name)
}

// Normalize fills defaults for layout state and drops unknown panel ids.
func Normalize(p *Profile) {
	if p.Schedules == nil {
		p.Schedules = []schedule.Item{}
	}
	if p.LeftSidebarOrder == nil {
		p.LeftSidebarOrder = DefaultLeftOrder()
	}
	if p.RightSidebarOrder == nil {
		p.RightSidebarOrder = DefaultRightOrder()
	}
	p.LeftSidebarOrder = knownPanels(p.LeftSidebarOrder)
	p.RightSidebarOrder = knownPanels(p.RightSidebarOrder)
	if p.CollapsedPanels == nil {
		p.CollapsedPanels = map[string]bool{}
	}
}

// Clone deep copies p. Settings values are copied through a JSON round trip
// since they are free-form.
func Clone(p *Profile) *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Tiles = tile.Clone(p.Tiles)
	if p.Schedules != nil {
		out.Schedules = append([]schedule.Item{}, p.Schedules...)
	}
	if p.LeftSidebarOrder != nil {
		out.LeftSidebarOrder = append([]string{}, p.LeftSidebarOrder...)
	}
	if p.RightSidebarOrder != nil {
		out.RightSidebarOrder = append([]string{}, p.RightSidebarOrder...)
	}
	if p.CollapsedPanels != nil {
		out.CollapsedPanels = make(map[string]bool, len(p.CollapsedPanels))
		for k, v := range p.CollapsedPanels {
			out.CollapsedPanels[k] = v
		}
	}
	if p.Settings != nil {
		out.Settings = map[string]any{}
		if b, err := json.Marshal(p.Settings); err == nil {
			_ = json.Unmarshal(b, &out.Settings)
		}
	}
	return &out
}

// Hotkeys returns tile id by hotkey for every tile in the tree that declares
// one, first tile winning per hotkey.
func (p *Profile) Hotkeys() map[string]string {
	out := map[string]string{}
	tile.Walk(p.Tiles, func(t *tile.Tile, _ *tile.Tile) bool {
		if t.Hotkey == "" {
			return true
		}
		if _, taken := out[t.Hotkey]; !taken {
			out[t.Hotkey] = t.ID
		}
		return true
	})
	return out
}

// Decode parses a JSON profile document. Missing tiles is reported as
// ErrMissingTiles alongside the partially decoded profile.
func Decode(data []byte) (*Profile, error) {
	p := &Profile{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("profile: decode: %w", err)
	}
	if p.Tiles == nil {
		return p, ErrMissingTiles
	}
	return p, nil
}

// Encode renders p as indented JSON, four spaces per level.
func Encode(p *Profile) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("profile: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeYAML renders p as YAML for export.
func EncodeYAML(p *Profile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("profile: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("profile: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeYAML parses a YAML profile export.
func DecodeYAML(data []byte) (*Profile, error) {
	p := &Profile{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("profile: decode yaml: %w", err)
	}
	if p.Tiles == nil {
		return p, ErrMissingTiles
	}
	return p, nil
}

// Package tile models deck tiles and the operations over a tile tree.
//
// A tree is a []*Tile where folder tiles own their children. Lookups and
// mutations traverse level by level: every tile of a level is tested before
// descending into the folders of that level, so when an id appears more
// than once the shallowest, left-most match wins.
package tile

import (
	"strings"

	"github.com/google/uuid"
)

// Kind distinguishes folders from action tiles.
type Kind string

// KindFolder marks a tile that owns children instead of actions.
const KindFolder Kind = "folder"

// Urgency tints a tile border.
type Urgency string

const (
	UrgencyNone   Urgency = ""
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Tile is one actionable or navigational unit of the grid.
type Tile struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Icon     string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color    string   `json:"color,omitempty" yaml:"color,omitempty"`
	Type     Kind     `json:"type,omitempty" yaml:"type,omitempty"`
	Children []*Tile  `json:"children,omitempty" yaml:"children,omitempty"`
	Actions  []Action `json:"actions,omitempty" yaml:"actions,omitempty"`
	Hotkey   string   `json:"hotkey,omitempty" yaml:"hotkey,omitempty"`
	Urgency  Urgency  `json:"urgency,omitempty" yaml:"urgency,omitempty"`
}

// New returns an action tile with a fresh id.
func New(name string, actions ...Action) *Tile {
	return &Tile{
		ID:      uuid.NewString(),
		Name:    name,
		Icon:    "HelpCircle",
		Actions: actions,
	}
}

// NewFolder returns an empty folder tile with a fresh id.
func NewFolder(name string) *Tile {
	return &Tile{
		ID:   uuid.NewString(),
		Name: name,
		Icon: "Folder",
		Type: KindFolder,
	}
}

// IsFolder reports whether t owns children.
func (t *Tile) IsFolder() bool {
	return t != nil && t.Type == KindFolder
}

// IsImageIcon reports whether Icon points at an image rather than naming a
// built-in icon.
func (t *Tile) IsImageIcon() bool {
	return strings.Contains(t.Icon, ".") || strings.HasPrefix(t.Icon, "http")
}

// Timer returns the first timer action of t, if any.
func (t *Tile) Timer() (Action, bool) {
	for _, a := range t.Actions {
		if a.Type == ActionTimer && a.EndTime > 0 {
			return a, true
		}
	}
	return Action{}, false
}

// Clone deep copies t. Nil slices stay nil so a clone compares equal to its
// source.
func (t *Tile) Clone() *Tile {
	if t == nil {
		return nil
	}
	out := *t
	if t.Children != nil {
		out.Children = Clone(t.Children)
	}
	if t.Actions != nil {
		out.Actions = make([]Action, len(t.Actions))
		for i, a := range t.Actions {
			out.Actions[i] = a.Clone()
		}
	}
	return &out
}

package deck

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/deck/pkg/tile"
)

const (
	tileWidth  = 18
	tileHeight = 4
	columns    = 4
	miniTiles  = 4
)

// Theme groups the deck's Lip Gloss styles.
type Theme struct {
	Header   lipgloss.Style
	Crumbs   lipgloss.Style
	Meter    lipgloss.Style
	Badge    lipgloss.Style
	Tile     lipgloss.Style
	Selected lipgloss.Color
	Urgent   lipgloss.Color
	Warning  lipgloss.Color
	Folder   lipgloss.Style
	Detail   lipgloss.Style
	Alert    lipgloss.Style
	Conflict lipgloss.Style
	Status   lipgloss.Style
	Next     lipgloss.Style
}

// DefaultTheme is tuned for dark terminals.
func DefaultTheme() Theme {
	return Theme{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Crumbs:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Meter:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Badge:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("208")).Padding(0, 1),
		Tile:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Width(tileWidth).Height(tileHeight).Padding(0, 1),
		Selected: lipgloss.Color("212"),
		Urgent:   lipgloss.Color("196"),
		Warning:  lipgloss.Color("214"),
		Folder:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111")),
		Detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Alert:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("212")).Padding(0, 1),
		Conflict: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Next:     lipgloss.NewStyle().Foreground(lipgloss.Color("151")),
	}
}

// tileStyle picks the border for t: selection beats urgency, urgency beats
// the tile's own colour.
func (th Theme) tileStyle(t *tile.Tile, selected bool) lipgloss.Style {
	st := th.Tile
	switch {
	case selected:
		return st.BorderForeground(th.Selected).BorderStyle(lipgloss.ThickBorder())
	case t.Urgency == tile.UrgencyHigh:
		return st.BorderForeground(th.Urgent)
	case t.Urgency == tile.UrgencyMedium:
		return st.BorderForeground(th.Warning)
	}
	if border, ok := shade(t.Color); ok {
		return st.BorderForeground(border)
	}
	return st
}

// palette maps the named tile colours to hex.
var palette = map[string]string{
	"blue":   "#3b82f6",
	"cyan":   "#06b6d4",
	"green":  "#22c55e",
	"orange": "#f97316",
	"pink":   "#ec4899",
	"purple": "#a855f7",
	"red":    "#ef4444",
	"yellow": "#eab308",
	"gray":   "#6b7280",
}

// shade turns a named or hex tile colour into a border colour that stays readable on a
// dark background by blending it towards white.
func shade(name string) (lipgloss.Color, bool) {
	hex, ok := palette[name]
	if !ok {
		hex = name
	}
	if hex == "" {
		return "", false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", false
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return lipgloss.Color(c.BlendLab(white, 0.25).Clamped().Hex()), true
}

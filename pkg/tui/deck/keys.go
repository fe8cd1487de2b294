package deck

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the deck's own key bindings. Tile hotkeys are looked up
// before these, so these keys are reserved from tiles.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Trigger key.Binding
	Back    key.Binding
	Home    key.Binding

	MoveLeft  key.Binding
	MoveRight key.Binding

	AutoFix key.Binding
	Ignore  key.Binding
	Dismiss key.Binding

	VolumeUp   key.Binding
	VolumeDown key.Binding

	Mini   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Left:       key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "left")),
	Right:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "right")),
	Trigger:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "run")),
	Back:       key.NewBinding(key.WithKeys("backspace", "esc"), key.WithHelp("esc", "back")),
	Home:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "root")),
	MoveLeft:   key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move left")),
	MoveRight:  key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move right")),
	AutoFix:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "fix conflict")),
	Ignore:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "ignore conflict")),
	Dismiss:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss alert")),
	VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
	VolumeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
	Mini:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mini mode")),
	Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Trigger, k.Back, k.AutoFix, k.Mini, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Trigger, k.Back, k.Home, k.MoveLeft, k.MoveRight},
		{k.AutoFix, k.Ignore, k.Dismiss},
		{k.VolumeUp, k.VolumeDown, k.Mini, k.Reload, k.Help, k.Quit},
	}
}

// Reserved lists every key the deck claims, for hotkey.NewKeymap.
func (k KeyMap) Reserved() []string {
	var out []string
	for _, b := range []key.Binding{
		k.Up, k.Down, k.Left, k.Right, k.Trigger, k.Back, k.Home,
		k.MoveLeft, k.MoveRight, k.AutoFix, k.Ignore, k.Dismiss,
		k.VolumeUp, k.VolumeDown, k.Mini, k.Reload, k.Help, k.Quit,
	} {
		out = append(out, b.Keys()...)
	}
	return out
}

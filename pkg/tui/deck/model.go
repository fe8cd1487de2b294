// Package deck is the terminal deck: a grid of tiles with folder
// navigation, hotkeys, schedule alerts and a compact mini mode.
package deck

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/host"
	"tableflip.dev/deck/pkg/hotkey"
	"tableflip.dev/deck/pkg/tile"
)

const (
	statsInterval = 2 * time.Second
	volumeStep    = 0.1
)

type (
	tickMsg    time.Time
	statsMsg   host.Load
	reloadMsg  struct{}
	triggerMsg struct {
		res app.TriggerResult
		err error
	}
	hotkeyMsg struct{ combo string }
)

// Options configure a Model.
type Options struct {
	// Keymap holds tile hotkeys; it must be the Registrar given to the
	// session.
	Keymap *hotkey.Keymap
	// Stats samples system load; nil disables the meter.
	Stats host.Sampler
	// Mini starts in mini mode.
	Mini bool
	// Changes signals that the session reloaded from disk.
	Changes <-chan struct{}
	Now     func() time.Time
}

// Model is the bubbletea model of the deck.
type Model struct {
	session *app.Session
	keymap  *hotkey.Keymap
	stats   host.Sampler
	changes <-chan struct{}
	now     func() time.Time

	keys  KeyMap
	theme Theme
	help  help.Model

	cursor int
	mini   bool
	width  int
	height int
	load   host.Load
	flash  string
}

// New returns a deck model over session.
func New(session *app.Session, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return Model{
		session: session,
		keymap:  opts.Keymap,
		stats:   opts.Stats,
		changes: opts.Changes,
		now:     now,
		keys:    DefaultKeyMap,
		theme:   DefaultTheme(),
		help:    help.New(),
		mini:    opts.Mini,
	}
}

// Run starts the deck program and blocks until it exits or ctx is done.
func Run(ctx context.Context, session *app.Session, opts Options) error {
	p := tea.NewProgram(New(session, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.sampleStats(0), m.waitChange())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) sampleStats(after time.Duration) tea.Cmd {
	if m.stats == nil {
		return nil
	}
	sample := m.stats
	return func() tea.Msg {
		if after > 0 {
			time.Sleep(after)
		}
		l, _ := sample(context.Background())
		return statsMsg(l)
	}
}

func (m Model) waitChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

// tiles is what the grid shows: the current folder, or the first root
// tiles in mini mode.
func (m Model) tiles() []*tile.Tile {
	if m.mini {
		p := m.session.Active()
		if p == nil {
			return nil
		}
		if len(p.Tiles) > miniTiles {
			return p.Tiles[:miniTiles]
		}
		return p.Tiles
	}
	return m.session.Level()
}

func (m Model) selected() *tile.Tile {
	tiles := m.tiles()
	if m.cursor < 0 || m.cursor >= len(tiles) {
		return nil
	}
	return tiles[m.cursor]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case statsMsg:
		m.load = host.Load(msg)
		return m, m.sampleStats(statsInterval)

	case reloadMsg:
		m.clampCursor()
		return m, m.waitChange()

	case triggerMsg:
		if msg.err != nil {
			m.flash = msg.err.Error()
			return m, nil
		}
		if msg.res.Entered {
			if m.mini {
				m.mini = false
			}
			m.cursor = 0
		}
		m.flash = ""
		return m, nil

	case hotkeyMsg:
		m.flash = ""
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if combo := comboOf(msg); m.keymap != nil {
		if fn, ok := m.keymap.Lookup(combo); ok {
			return m, func() tea.Msg {
				fn()
				return hotkeyMsg{combo: combo}
			}
		}
	}

	n := len(m.tiles())
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor-columns >= 0 {
			m.cursor -= columns
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+columns < n {
			m.cursor += columns
		}
	case key.Matches(msg, m.keys.Trigger):
		t := m.selected()
		if t == nil {
			return m, nil
		}
		if m.mini && t.IsFolder() {
			m.session.Home()
		}
		return m, m.trigger(t.ID)
	case key.Matches(msg, m.keys.Back):
		if m.session.Up() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Home):
		m.session.Home()
		m.cursor = 0
	case key.Matches(msg, m.keys.MoveLeft):
		if !m.mini && m.cursor > 0 {
			m.setErr(m.session.MoveTile(m.cursor, m.cursor-1))
			m.cursor--
		}
	case key.Matches(msg, m.keys.MoveRight):
		if !m.mini && m.cursor < n-1 {
			m.setErr(m.session.MoveTile(m.cursor, m.cursor+1))
			m.cursor++
		}
	case key.Matches(msg, m.keys.AutoFix):
		moved, ok, err := m.session.AutoFix()
		switch {
		case err != nil:
			m.flash = err.Error()
		case ok:
			m.flash = fmt.Sprintf("Moved %s to %s-%s", moved.Title, moved.StartTime, moved.EndTime)
		default:
			m.flash = "No conflicts"
		}
	case key.Matches(msg, m.keys.Ignore):
		if it, ok := m.session.IgnoreFirstConflict(); ok {
			m.flash = "Ignoring " + it.Title
		}
	case key.Matches(msg, m.keys.Dismiss):
		if it, ok := m.session.CurrentAlert(); ok {
			m.session.Dismiss(it.ID)
		}
	case key.Matches(msg, m.keys.VolumeUp):
		m.session.SetVolume(m.session.Volume() + volumeStep)
	case key.Matches(msg, m.keys.VolumeDown):
		m.session.SetVolume(m.session.Volume() - volumeStep)
	case key.Matches(msg, m.keys.Mini):
		m.mini = !m.mini
		m.cursor = 0
	case key.Matches(msg, m.keys.Reload):
		m.setErr(m.session.Reload(context.Background()))
		m.clampCursor()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) trigger(id string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		res, err := session.Trigger(context.Background(), id)
		return triggerMsg{res: res, err: err}
	}
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.flash = err.Error()
	}
}

func (m *Model) clampCursor() {
	n := len(m.tiles())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// comboOf renders a key press the way hotkey.Normalize spells it.
func comboOf(msg tea.KeyMsg) string {
	s := msg.String()
	if s == " " {
		return "space"
	}
	return s
}

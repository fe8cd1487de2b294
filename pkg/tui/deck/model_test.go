package deck

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/host"
	"tableflip.dev/deck/pkg/hotkey"
	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/schedule"
	"tableflip.dev/deck/pkg/store"
	"tableflip.dev/deck/pkg/tile"
)

type fakeHost struct {
	mu     sync.Mutex
	opened []string
}

func (h *fakeHost) OpenExternal(_ context.Context, url string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opened = append(h.opened, url)
	return nil
}

func (h *fakeHost) RunCommand(context.Context, string) error               { return nil }
func (h *fakeHost) ShowNotification(context.Context, string, string) error { return nil }
func (h *fakeHost) NotificationsSupported() bool                           { return false }
func (h *fakeHost) OS() string                                             { return "linux" }

func (h *fakeHost) urls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.opened...)
}

var clock = time.Date(2024, 5, 1, 9, 20, 0, 0, time.Local)

func testProfile() *profile.Profile {
	p := profile.New("Work")
	p.Tiles = []*tile.Tile{
		{ID: "mail", Name: "Mail", Hotkey: "CmdOrCtrl+T", Color: "blue", Actions: []tile.Action{{Type: tile.ActionURL, Value: "mail.example.com"}}},
		{ID: "docs", Name: "Docs", Actions: []tile.Action{{Type: tile.ActionURL, Value: "docs.example.com"}}},
		{ID: "tools", Name: "Tools", Type: tile.KindFolder, Children: []*tile.Tile{
			{ID: "focus", Name: "Focus", Actions: []tile.Action{{Type: tile.ActionUI, Action: "toggleHyperFocus"}}},
		}},
		{ID: "brew", Name: "Tea", Actions: []tile.Action{{Type: tile.ActionTimer, EndTime: clock.Add(3 * time.Minute).UnixMilli()}}},
		{ID: "extra", Name: "Extra", Urgency: tile.UrgencyHigh},
	}
	p.Schedules = []schedule.Item{
		{ID: "s1", Title: "Standup", StartTime: "09:00", EndTime: "09:30"},
		{ID: "s2", Title: "Review", StartTime: "09:15", EndTime: "10:00"},
	}
	return p
}

func testModel(t *testing.T) (Model, *app.Session, *fakeHost) {
	t.Helper()
	h := &fakeHost{}
	keys, err := hotkey.NewKeymap(DefaultKeyMap.Reserved()...)
	if err != nil {
		t.Fatalf("keymap: %v", err)
	}
	session, err := app.New(app.Options{
		Persistence: store.NewMemory(testProfile()),
		Host:        h,
		Registrar:   keys,
		Debounce:    time.Hour,
		Volume:      0.5,
		Now:         func() time.Time { return clock },
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := session.Open(context.Background(), "work"); err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })

	model := New(session, Options{
		Keymap: keys,
		Stats:  func(context.Context) (host.Load, error) { return host.Load{CPU: 12, Mem: 34}, nil },
		Now:    func() time.Time { return clock },
	})
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), session, h
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends msg and feeds the resulting command's message back, once.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd == nil {
		return m
	}
	if next := cmd(); next != nil {
		updated, _ = m.Update(next)
		m = updated.(Model)
	}
	return m
}

func TestModelGridNavigation(t *testing.T) {
	m, _, _ := testModel(t)

	m = press(t, m, runes("l"))
	if m.cursor != 1 {
		t.Fatalf("cursor after l = %d, want 1", m.cursor)
	}
	m = press(t, m, runes("j"))
	if m.cursor != 1 {
		t.Fatalf("j past the last row moved the cursor to %d", m.cursor)
	}
	m = press(t, m, runes("h"))
	m = press(t, m, runes("h"))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	m = press(t, m, runes("j"))
	if m.cursor != columns {
		t.Fatalf("cursor after j = %d, want %d", m.cursor, columns)
	}
	m = press(t, m, runes("k"))
	if m.cursor != 0 {
		t.Fatalf("cursor after k = %d, want 0", m.cursor)
	}
}

func TestModelTriggerAndFolders(t *testing.T) {
	m, session, h := testModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := h.urls(); len(got) != 1 || got[0] != "https://mail.example.com" {
		t.Fatalf("opened %v", got)
	}

	m = press(t, m, runes("l"))
	m = press(t, m, runes("l"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if crumbs := session.Breadcrumbs(); len(crumbs) != 1 || crumbs[0] != "Tools" {
		t.Fatalf("breadcrumbs = %v", crumbs)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor not reset on entering a folder: %d", m.cursor)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !session.HyperFocus() || session.ActionCount() != 1 {
		t.Fatalf("ui action not applied: focus=%v count=%d", session.HyperFocus(), session.ActionCount())
	}
	if !strings.Contains(m.View(), "HYPER FOCUS") {
		t.Error("view should show the hyper focus badge")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if len(session.Breadcrumbs()) != 0 {
		t.Fatalf("esc should leave the folder, got %v", session.Breadcrumbs())
	}
}

func TestModelTileHotkey(t *testing.T) {
	m, _, h := testModel(t)

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if got := h.urls(); len(got) != 1 {
		t.Fatalf("hotkey should open mail once, opened %v", got)
	}
}

func TestModelReorder(t *testing.T) {
	m, session, _ := testModel(t)

	m = press(t, m, runes(">"))
	if m.cursor != 1 {
		t.Fatalf("cursor should follow the moved tile, got %d", m.cursor)
	}
	if level := session.Level(); level[0].ID != "docs" || level[1].ID != "mail" {
		t.Fatalf("order = %s, %s", level[0].ID, level[1].ID)
	}
}

func TestModelScheduleKeys(t *testing.T) {
	m, session, _ := testModel(t)

	view := m.View()
	if !strings.Contains(view, "Now: Standup") {
		t.Errorf("view missing alert:\n%s", view)
	}
	if !strings.Contains(view, "1 conflict(s)") {
		t.Errorf("view missing conflict line:\n%s", view)
	}

	m = press(t, m, runes("d"))
	// Review started at 09:15 so it takes over once Standup is dismissed.
	if it, ok := session.CurrentAlert(); !ok || it.ID != "s2" {
		t.Fatalf("alert = %+v, %v after dismissing s1", it, ok)
	}

	m = press(t, m, runes("c"))
	if len(session.Conflicts()) != 0 {
		t.Fatalf("conflicts left after autofix: %v", session.Conflicts())
	}
	if !strings.HasPrefix(m.flash, "Moved Review") {
		t.Errorf("flash = %q", m.flash)
	}
	m = press(t, m, runes("c"))
	if m.flash != "No conflicts" {
		t.Errorf("flash = %q", m.flash)
	}
}

func TestModelVolumeAndStats(t *testing.T) {
	m, session, _ := testModel(t)

	m = press(t, m, runes("+"))
	if v := session.Volume(); v < 0.59 || v > 0.61 {
		t.Fatalf("volume = %v, want 0.6", v)
	}
	m = press(t, m, runes("-"))
	m = press(t, m, runes("-"))
	if v := session.Volume(); v < 0.39 || v > 0.41 {
		t.Fatalf("volume = %v, want 0.4", v)
	}

	updated, _ := m.Update(statsMsg(host.Load{CPU: 12, Mem: 34}))
	m = updated.(Model)
	if !strings.Contains(m.View(), "cpu 12%") {
		t.Errorf("view missing cpu meter:\n%s", m.View())
	}
}

func TestModelMiniMode(t *testing.T) {
	m, session, _ := testModel(t)

	m = press(t, m, runes("m"))
	if !m.mini {
		t.Fatal("m should enter mini mode")
	}
	if n := len(m.tiles()); n != miniTiles {
		t.Fatalf("mini tiles = %d, want %d", n, miniTiles)
	}
	view := m.View()
	if strings.Contains(view, "Extra") {
		t.Error("mini mode should only show the first tiles")
	}
	if !strings.Contains(view, "3:00") {
		t.Errorf("mini view missing timer countdown:\n%s", view)
	}

	m = press(t, m, runes("l"))
	m = press(t, m, runes("l"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mini {
		t.Error("opening a folder should leave mini mode")
	}
	if crumbs := session.Breadcrumbs(); len(crumbs) != 1 {
		t.Fatalf("breadcrumbs = %v", crumbs)
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := testModel(t)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

func TestModelEmptySession(t *testing.T) {
	session, err := app.New(app.Options{Persistence: store.NewMemory()})
	if err != nil {
		t.Fatal(err)
	}
	if err := session.OpenDefault(context.Background()); err == nil {
		t.Fatal("expected no profiles error")
	}
	view := New(session, Options{}).View()
	if !strings.Contains(view, app.StatusNoProfiles) {
		t.Errorf("view = %q", view)
	}
}

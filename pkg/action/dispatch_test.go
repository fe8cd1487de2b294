package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/deck/pkg/tile"
)

type call struct {
	kind string
	arg  string
}

type fakeHost struct {
	os       string
	notify   bool
	calls    []call
	openErr  error
	panicRun bool
}

func (h *fakeHost) OpenExternal(_ context.Context, url string) error {
	h.calls = append(h.calls, call{"open", url})
	return h.openErr
}

func (h *fakeHost) RunCommand(_ context.Context, cmd string) error {
	if h.panicRun {
		panic("exec exploded")
	}
	h.calls = append(h.calls, call{"run", cmd})
	return nil
}

func (h *fakeHost) ShowNotification(_ context.Context, title, body string) error {
	h.calls = append(h.calls, call{"notify", title + "|" + body})
	return nil
}

func (h *fakeHost) NotificationsSupported() bool { return h.notify }

func (h *fakeHost) OS() string { return h.os }

type fakePlayer struct {
	err    error
	volume float64
	path   string
}

func (p *fakePlayer) Play(_ context.Context, path string, volume float64) error {
	p.path, p.volume = path, volume
	return p.err
}

func vol(v float64) *float64 { return &v }

func TestDispatchContinuesAfterFailure(t *testing.T) {
	host := &fakeHost{os: "linux"}
	player := &fakePlayer{err: errors.New("no such file")}
	d := &Dispatcher{Host: host, Player: player}

	r := d.Dispatch(context.Background(), []tile.Action{
		{Type: tile.ActionSound, Value: "missing.mp3"},
		{Type: tile.ActionURL, Value: "x.com"},
	}, Options{Volume: 0.5})

	assert.Equal(t, []call{{"open", "https://x.com"}}, host.calls, "url opens exactly once")
	assert.Equal(t, 1, r.Executed)
	require.Len(t, r.Failed, 1)
	assert.Equal(t, tile.ActionSound, r.Failed[0].Action.Type)
	assert.Error(t, r.Err())
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	host := &fakeHost{os: "linux", panicRun: true}
	d := &Dispatcher{Host: host}

	r := d.Dispatch(context.Background(), []tile.Action{
		{Type: tile.ActionShell, Value: "ls"},
		{Type: tile.ActionURL, Value: "https://example.com"},
	}, Options{})

	require.Len(t, r.Failed, 1)
	assert.Contains(t, r.Failed[0].Err.Error(), "exec exploded")
	assert.Equal(t, []call{{"open", "https://example.com"}}, host.calls)
}

func TestDispatchEachType(t *testing.T) {
	host := &fakeHost{os: "windows", notify: true}
	player := &fakePlayer{}
	var directives []string
	d := &Dispatcher{Host: host, Player: player, OnUI: func(dir string) { directives = append(directives, dir) }}

	r := d.Dispatch(context.Background(), []tile.Action{
		{Type: tile.ActionApp, Value: "chrome"},
		{Type: tile.ActionNotification, Value: "Stretch"},
		{Type: tile.ActionNotification, Title: "Break", Body: "Walk"},
		{Type: tile.ActionSound, Value: "ding.mp3", Volume: vol(3)},
		{Type: tile.ActionUI, Action: "toggleHyperFocus"},
		{Type: tile.ActionLog, Value: "clicked"},
		{Type: tile.ActionTimer, EndTime: 1},
	}, Options{Volume: 0.2})

	assert.Equal(t, []call{
		{"run", "start chrome"},
		{"notify", DefaultNotificationTitle + "|Stretch"},
		{"notify", "Break|Walk"},
	}, host.calls)
	assert.Equal(t, 1.0, player.volume, "action volume wins and is clamped")
	assert.Equal(t, []string{"toggleHyperFocus"}, directives)
	assert.Equal(t, 6, r.Executed)
	assert.Equal(t, 1, r.Skipped)
	assert.NoError(t, r.Err())
}

func TestSoundUsesGlobalVolume(t *testing.T) {
	player := &fakePlayer{}
	d := &Dispatcher{Player: player}
	require.NoError(t, d.Execute(context.Background(), tile.Action{Type: tile.ActionSound, Value: "a.wav"}, Options{Volume: 0.3}))
	assert.Equal(t, 0.3, player.volume)
}

func TestNotificationUnsupportedIsNoop(t *testing.T) {
	host := &fakeHost{os: "linux"}
	d := &Dispatcher{Host: host}
	require.NoError(t, d.Execute(context.Background(), tile.Action{Type: tile.ActionNotification, Value: "hi"}, Options{}))
	assert.Empty(t, host.calls)
}

func TestUnknownTypeFails(t *testing.T) {
	d := &Dispatcher{}
	assert.ErrorIs(t, d.Execute(context.Background(), tile.Action{Type: "teleport"}, Options{}), ErrUnknownType)
	assert.ErrorIs(t, d.Execute(context.Background(), tile.Action{Type: tile.ActionURL, Value: "x"}, Options{}), ErrNoHost)
}

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		goos, value, want string
	}{
		{"windows", "chrome", "start chrome"},
		{"windows", "Calc", "start calc"},
		{"darwin", "chrome", "open -a 'Google Chrome'"},
		{"darwin", "terminal", "open -a Terminal"},
		{"linux", "calc", "gnome-calculator"},
		{"freebsd", "terminal", "x-terminal-emulator"},
		{"windows", "notepad.exe", `start "" "notepad.exe"`},
		{"windows", "start notepad", "start notepad"},
		{"linux", "htop", "htop"},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCommand(tt.goos, tt.value))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://x.com", NormalizeURL("x.com"))
	assert.Equal(t, "http://x.com", NormalizeURL("http://x.com"))
	assert.Equal(t, "HTTPS://X.com", NormalizeURL("HTTPS://X.com"))
}

func TestFormatRemaining(t *testing.T) {
	now := time.UnixMilli(1_000_000)
	assert.Equal(t, "1:05", FormatRemaining(now.Add(65*time.Second).UnixMilli(), now))
	assert.Equal(t, "", FormatRemaining(now.Add(-time.Second).UnixMilli(), now))
	assert.Equal(t, time.Duration(0), Remaining(now.UnixMilli()-5, now))
}

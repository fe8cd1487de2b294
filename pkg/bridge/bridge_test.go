package bridge

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/host"
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
func (h *fakeHost) NotificationsSupported() bool                           { return true }
func (h *fakeHost) OS() string                                             { return "darwin" }

func newTestServer(t *testing.T) (*Client, *fakeHost, *store.Memory) {
	t.Helper()
	p := profile.New("default")
	p.Tiles = []*tile.Tile{{ID: "mail", Name: "Mail", Actions: []tile.Action{{Type: tile.ActionURL, Value: "mail.example.com"}}}}
	p.Schedules = []schedule.Item{
		{ID: "a", Title: "A", StartTime: "08:00", EndTime: "09:00"},
		{ID: "b", Title: "B", StartTime: "08:30", EndTime: "09:30"},
	}
	mem := store.NewMemory(p)
	h := &fakeHost{}
	session, err := app.New(app.Options{Persistence: mem, Host: h, Debounce: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	srv := &Server{
		Session: session,
		OS:      "darwin",
		Stats:   func(context.Context) (host.Load, error) { return host.Load{CPU: 12, Mem: 48}, nil },
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL, nil)
	c.Interval = time.Millisecond
	return c, h, mem
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, h, mem := newTestServer(t)

	require.NoError(t, c.WaitReady(ctx))
	assert.Equal(t, "darwin", c.OS())

	names, err := c.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)

	p, err := c.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "Mail", p.Tiles[0].Name)

	res, err := c.Trigger(ctx, "mail")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Executed)
	assert.Equal(t, []string{"https://mail.example.com"}, h.opened)

	require.NoError(t, c.OpenExternal(ctx, "https://x.com"))
	assert.Len(t, h.opened, 2)

	p.Tiles = append(p.Tiles, &tile.Tile{ID: "new", Name: "New"})
	require.NoError(t, c.Save(ctx, p))
	stored, err := mem.Load(ctx, "default")
	require.NoError(t, err)
	assert.Len(t, stored.Tiles, 2)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, host.Load{CPU: 12, Mem: 48}, stats)
}

func TestLoadMissingProfileIs404(t *testing.T) {
	c, _, _ := newTestServer(t)
	_, err := c.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestSaveRejectsMissingTiles(t *testing.T) {
	c, _, _ := newTestServer(t)
	err := c.Save(context.Background(), &profile.Profile{Name: "broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing tiles")
}

func TestScheduleEndpoints(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestServer(t)
	_, err := c.Load(ctx, "default")
	require.NoError(t, err)

	resp, err := http.Get(c.BaseURL + "/api/schedule/conflicts")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res autofixResponse
	require.NoError(t, c.do(ctx, http.MethodPost, "/api/schedule/autofix", nil, &res))
	assert.True(t, res.Success)

	require.NoError(t, c.do(ctx, http.MethodPost, "/api/schedule/autofix", nil, &res))
	assert.False(t, res.Success)

	var ack Result
	require.NoError(t, c.do(ctx, http.MethodPost, "/api/schedule/ignore/b", nil, &ack))
	assert.True(t, ack.Success)
}

func TestCORSPreflight(t *testing.T) {
	c, _, _ := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, c.BaseURL+"/api/actions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWaitReadyGivesUp(t *testing.T) {
	c := NewClient("127.0.0.1:1", nil)
	c.Attempts = 3
	c.Interval = time.Millisecond
	err := c.WaitReady(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, strings.Contains(err.Error(), "3 attempts"))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	session, err := app.New(app.Options{Persistence: store.NewMemory()})
	require.NoError(t, err)
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- (&Server{Session: session}).Serve(ctx, "127.0.0.1:0") }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

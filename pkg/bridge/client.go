package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/action"
	"tableflip.dev/deck/pkg/host"
	"tableflip.dev/deck/pkg/logging"
	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/store"
	"tableflip.dev/deck/pkg/tile"
)

// Connection retry defaults.
const (
	DefaultAttempts = 10
	DefaultInterval = 2 * time.Second
)

// ErrUnavailable is returned once WaitReady gives up.
var ErrUnavailable = errors.New("bridge: server unavailable")

// Client talks to a bridge Server. It doubles as an action.Host and
// action.Player so a deck can run its actions on the bridge's machine.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Attempts int
	Interval time.Duration
	Logger   *zap.Logger

	os string
}

var (
	_ action.Host   = (*Client)(nil)
	_ action.Player = (*Client)(nil)
)

// NewClient returns a Client for addr, with or without a scheme.
func NewClient(addr string, logger *zap.Logger) *Client {
	base := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{
		BaseURL:  base,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Attempts: DefaultAttempts,
		Interval: DefaultInterval,
		Logger:   logging.OrNop(logger),
	}
}

// WaitReady pings the server until it answers, a bounded number of times
// at a fixed interval, then fails with ErrUnavailable.
func (c *Client) WaitReady(ctx context.Context) error {
	attempts := c.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var last error
	for i := 0; i < attempts; i++ {
		var p Ping
		if last = c.do(ctx, http.MethodGet, "/api/ping", nil, &p); last == nil {
			c.os = p.OS
			return nil
		}
		logging.OrNop(c.Logger).Debug("bridge not ready", zap.Int("attempt", i+1), zap.Error(last))
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.Interval):
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, attempts, last)
}

// Profiles lists profile names on the server.
func (c *Client) Profiles(ctx context.Context) ([]string, error) {
	var names []string
	err := c.do(ctx, http.MethodGet, "/api/profiles", nil, &names)
	return names, err
}

// Load opens name on the server and returns it.
func (c *Client) Load(ctx context.Context, name string) (*profile.Profile, error) {
	var p profile.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profiles/"+url.PathEscape(name), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save replaces the profile on the server.
func (c *Client) Save(ctx context.Context, p *profile.Profile) error {
	var res Result
	if err := c.do(ctx, http.MethodPut, "/api/profiles/"+url.PathEscape(p.Name), p, &res); err != nil {
		return err
	}
	return res.err()
}

// Execute runs one action on the server.
func (c *Client) Execute(ctx context.Context, a tile.Action) error {
	var res Result
	if err := c.do(ctx, http.MethodPost, "/api/actions", a, &res); err != nil {
		return err
	}
	return res.err()
}

// Trigger dispatches a tile of the server's open profile.
func (c *Client) Trigger(ctx context.Context, id string) (TriggerResponse, error) {
	var res TriggerResponse
	err := c.do(ctx, http.MethodPost, "/api/tiles/"+url.PathEscape(id)+"/trigger", nil, &res)
	return res, err
}

// Stats returns the server's system load.
func (c *Client) Stats(ctx context.Context) (host.Load, error) {
	var l host.Load
	err := c.do(ctx, http.MethodGet, "/api/system/stats", nil, &l)
	return l, err
}

func (c *Client) OpenExternal(ctx context.Context, u string) error {
	return c.Execute(ctx, tile.Action{Type: tile.ActionURL, Value: u})
}

func (c *Client) RunCommand(ctx context.Context, command string) error {
	return c.Execute(ctx, tile.Action{Type: tile.ActionShell, Value: command})
}

func (c *Client) ShowNotification(ctx context.Context, title, body string) error {
	return c.Execute(ctx, tile.Action{Type: tile.ActionNotification, Title: title, Body: body})
}

// NotificationsSupported defers the decision to the server.
func (c *Client) NotificationsSupported() bool { return true }

// OS is the platform family the server reported, linux before WaitReady.
func (c *Client) OS() string {
	if c.os == "" {
		return "linux"
	}
	return c.os
}

func (c *Client) Play(ctx context.Context, path string, volume float64) error {
	return c.Execute(ctx, tile.Action{Type: tile.ActionSound, Value: path, Volume: &volume})
}

func (r Result) err() error {
	if r.Success {
		return nil
	}
	if r.Error == "" {
		return errors.New("bridge: request failed")
	}
	return errors.New(r.Error)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("bridge: encode: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bridge: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return store.ErrNotFound
	}
	if resp.StatusCode >= 300 {
		var res Result
		if err := json.NewDecoder(resp.Body).Decode(&res); err == nil && res.Error != "" {
			return fmt.Errorf("bridge: %s %s: %s", method, path, res.Error)
		}
		return fmt.Errorf("bridge: %s %s: %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("bridge: decode %s: %w", path, err)
	}
	return nil
}

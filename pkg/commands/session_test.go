package commands

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/bridge"
	"tableflip.dev/deck/pkg/logging"
	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/store"
)

func TestConnectUsesBridgeOS(t *testing.T) {
	session, err := app.New(app.Options{Persistence: store.NewMemory(profile.New("default")), Debounce: time.Hour})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	ts := httptest.NewServer((&bridge.Server{Session: session, OS: "windows"}).Handler())
	t.Cleanup(ts.Close)

	c, err := connect(context.Background(), bridge.NewClient(ts.URL, logging.Nop()))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if c.OS() != "windows" {
		t.Errorf("OS = %q, want windows", c.OS())
	}
}

func TestConnectGivesUp(t *testing.T) {
	ts := httptest.NewServer(nil)
	addr := ts.URL
	ts.Close()

	c := bridge.NewClient(addr, logging.Nop())
	c.Attempts = 2
	c.Interval = time.Millisecond
	if _, err := connect(context.Background(), c); !errors.Is(err, bridge.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/deck/pkg/profile"
)

func TestPersistenceWatchEmitsProfileChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Save(ctx, profile.New("Work")); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventProfilesInvalidated {
				return
			}
			if evt.Profile != "work" {
				t.Fatalf("expected profile 'work', got %q", evt.Profile)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for profile change event")
		}
	}
}

func TestPersistenceWatchClosesOnCancel(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}

func TestProfileForPath(t *testing.T) {
	base := t.TempDir()
	p := &persistence{basePath: base}

	cases := map[string]string{
		filepath.Join(base, "work.json"):          "work",
		filepath.Join(base, "notes.txt"):          "",
		filepath.Join(base, "sub", "x.json"):      "",
		base:                                      "",
		filepath.Join(os.TempDir(), "other.json"): "",
	}
	for path, want := range cases {
		if got := p.profileForPath(path); got != want {
			t.Errorf("profileForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventProfileChanged, Profile: "work"}, send)
	}

	select {
	case ev := <-got:
		if ev.Profile != "work" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	select {
	case ev := <-got:
		t.Fatalf("burst produced a second event %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}

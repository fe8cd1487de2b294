package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/host"
	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/store"
)

func TestInfo(t *testing.T) {
	t.Setenv("DECK_CONFIG_PATH", "")
	s, err := app.New(app.Options{Persistence: store.NewMemory(profile.New("default"))})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.OpenDefault(context.Background()); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	i := Info{Config: store.StaticConfig(t.TempDir()), Session: s, Out: &buf}
	if err := i.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"DECK_CONFIG_PATH env var not set", "Profiles:\n  default\n", "Open: default, 0 tiles"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in\n%s", want, buf.String())
		}
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	s := Stats{
		Sample: func(context.Context) (host.Load, error) { return host.Load{CPU: 7, Mem: 42}, nil },
		Out:    &buf,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "cpu 7%  mem 42%\n" {
		t.Errorf("got %q", got)
	}
}

package ui

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/hotkey"
	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/store"
)

func TestKeymapReservesDeckKeys(t *testing.T) {
	k, err := NewKeymap()
	require.NoError(t, err)

	for _, combo := range []string{"Space", "Return", "Plus", "q", "Ctrl+C", "Escape", "m", "?"} {
		assert.ErrorIs(t, k.Register(combo, func() {}), hotkey.ErrClaimed, combo)
	}
	assert.NoError(t, k.Register("CmdOrCtrl+T", func() {}))
	assert.NoError(t, k.Register("Shift+Space", func() {}))
}

func TestDoRefusesWithoutTerminal(t *testing.T) {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		t.Skip("stdout is a terminal")
	}
	s, err := app.New(app.Options{Persistence: store.NewMemory(profile.New("work")), Debounce: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	err = (&UI{Session: s}).Do(context.Background())
	assert.True(t, errors.Is(err, ErrNotTerminal), err)
}

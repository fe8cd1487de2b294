// Package ui runs the terminal deck against a session.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/host"
	"tableflip.dev/deck/pkg/hotkey"
	"tableflip.dev/deck/pkg/store"
	"tableflip.dev/deck/pkg/tui/deck"
)

// ErrNotTerminal is returned when stdout is not a terminal.
var ErrNotTerminal = errors.New("ui: the deck needs a terminal")

type UI struct {
	Session *app.Session
	// Keymap must be the Registrar the session was built with.
	Keymap *hotkey.Keymap
	Stats  host.Sampler
	Mini   bool
}

// NewKeymap returns the hotkey registrar the deck expects: every key the
// deck binds for itself is reserved.
func NewKeymap() (*hotkey.Keymap, error) {
	return hotkey.NewKeymap(append(deck.DefaultKeyMap.Reserved(), hotkey.Reserved...)...)
}

func (u *UI) Do(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes, err := u.follow(ctx)
	if err != nil {
		return err
	}
	return deck.Run(ctx, u.Session, deck.Options{
		Keymap:  u.Keymap,
		Stats:   u.Stats,
		Mini:    u.Mini,
		Changes: changes,
	})
}

// follow reloads the session on store changes and signals the deck to
// redraw after each one.
func (u *UI) follow(ctx context.Context) (<-chan struct{}, error) {
	events, err := u.Session.Watch(ctx)
	if err != nil {
		return nil, err
	}
	relay := make(chan store.Event)
	changes := make(chan struct{}, 1)
	go func() {
		defer close(relay)
		for ev := range events {
			select {
			case relay <- ev:
			case <-ctx.Done():
				return
			}
			select {
			case changes <- struct{}{}:
			default:
			}
		}
	}()
	go func() {
		u.Session.Follow(ctx, relay)
		close(changes)
	}()
	return changes, nil
}

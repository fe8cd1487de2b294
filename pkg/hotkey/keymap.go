package hotkey

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrClaimed is returned when a combination is reserved or already bound.
var ErrClaimed = errors.New("hotkey: combination already claimed")

// Registrar binds combinations to callbacks.
type Registrar interface {
	Register(combo string, fn func()) error
	UnregisterAll()
}

// Reserved lists combinations the deck UI keeps for itself.
var Reserved = []string{"ctrl+c", "q", "esc", "enter", "up", "down", "left", "right", "tab", "backspace"}

// Keymap is an in-process Registrar keyed by normalized combination.
type Keymap struct {
	mu       sync.Mutex
	reserved map[string]bool
	bindings map[string]func()
}

var _ Registrar = (*Keymap)(nil)

// NewKeymap returns a Keymap refusing the given reserved combinations. A
// reserved combination that does not normalize is an error.
func NewKeymap(reserved ...string) (*Keymap, error) {
	k := &Keymap{reserved: map[string]bool{}, bindings: map[string]func(){}}
	for _, r := range reserved {
		n, err := Normalize(r)
		if err != nil {
			return nil, fmt.Errorf("hotkey: reserve %q: %w", r, err)
		}
		k.reserved[n] = true
	}
	return k, nil
}

func (k *Keymap) Register(combo string, fn func()) error {
	n, err := Normalize(combo)
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.reserved[n] {
		return fmt.Errorf("%w: %s is reserved", ErrClaimed, n)
	}
	if _, ok := k.bindings[n]; ok {
		return fmt.Errorf("%w: %s", ErrClaimed, n)
	}
	k.bindings[n] = fn
	return nil
}

func (k *Keymap) UnregisterAll() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings = map[string]func(){}
}

// Lookup returns the callback bound to combo.
func (k *Keymap) Lookup(combo string) (func(), bool) {
	n, err := Normalize(combo)
	if err != nil {
		return nil, false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	fn, ok := k.bindings[n]
	return fn, ok
}

// Fire runs the callback bound to combo outside the lock and reports
// whether one existed.
func (k *Keymap) Fire(combo string) bool {
	fn, ok := k.Lookup(combo)
	if ok && fn != nil {
		fn()
	}
	return ok
}

// Combos lists the bound combinations, sorted.
func (k *Keymap) Combos() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]string, 0, len(k.bindings))
	for c := range k.bindings {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

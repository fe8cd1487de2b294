package store

import (
	"context"
	"sort"
	"sync"

	"tableflip.dev/deck/pkg/profile"
)

// Memory is an in-process Persistence. Documents are cloned on the way in
// and out so callers never share state with the store.
type Memory struct {
	mu       sync.Mutex
	docs     map[string]*profile.Profile
	watchers []chan Event
	saves    int
}

var _ Persistence = (*Memory)(nil)

// NewMemory returns a Memory seeded with profiles.
func NewMemory(profiles ...*profile.Profile) *Memory {
	m := &Memory{docs: map[string]*profile.Profile{}}
	for _, p := range profiles {
		m.docs[profile.Key(p.Name)] = profile.Clone(p)
	}
	return m
}

func (m *Memory) Profiles(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.docs))
	for k := range m.docs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) Load(ctx context.Context, name string) (*profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.docs[profile.Key(name)]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Tiles == nil {
		return nil, profile.ErrMissingTiles
	}
	out := profile.Clone(p)
	profile.Normalize(out)
	return out, nil
}

func (m *Memory) Save(ctx context.Context, p *profile.Profile) error {
	if err := profile.Validate(p); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := profile.Key(p.Name)
	m.docs[key] = profile.Clone(p)
	m.saves++
	for _, w := range m.watchers {
		select {
		case w <- Event{Type: EventProfileChanged, Profile: key}:
		default:
		}
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := profile.Key(name)
	if _, ok := m.docs[key]; !ok {
		return ErrNotFound
	}
	delete(m.docs, key)
	return nil
}

// Watch delivers an event for every Save until ctx is done.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 16)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

// Saves reports how many times Save succeeded.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Put stores p verbatim, bypassing validation, so malformed documents can be
// modelled.
func (m *Memory) Put(name string, p *profile.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[profile.Key(name)] = p
}

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/action"
	"tableflip.dev/deck/pkg/hotkey"
	"tableflip.dev/deck/pkg/logging"
	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/schedule"
	"tableflip.dev/deck/pkg/store"
	"tableflip.dev/deck/pkg/tile"
)

// Status lines shown by the deck while a profile loads.
const (
	StatusLoading      = "Loading profiles..."
	StatusNoProfiles   = "No profiles found"
	StatusMissingTiles = "Error: Profile data missing tiles"
	StatusReady        = "Success! Rendering Dashboard..."
)

// DefaultProfile is preferred by OpenDefault when it exists.
const DefaultProfile = "default"

var (
	// ErrNoProfile is returned by operations that need an open profile.
	ErrNoProfile = errors.New("app: no profile open")
	// ErrNoProfiles is returned by OpenDefault when the store is empty.
	ErrNoProfiles = errors.New("app: no profiles found")
	// ErrTileNotFound is returned when a tile id is absent from the tree.
	ErrTileNotFound = errors.New("app: tile not found")
	// ErrScheduleNotFound is returned when a schedule id is unknown.
	ErrScheduleNotFound = errors.New("app: schedule item not found")
	// ErrExists is returned by Create for a name already stored.
	ErrExists = errors.New("app: profile already exists")
)

// Options wires a Session to its capabilities.
type Options struct {
	Persistence store.Persistence
	Host        action.Host
	Player      action.Player
	Registrar   hotkey.Registrar
	Logger      *zap.Logger

	// Debounce is the quiet period before edits are written.
	Debounce time.Duration
	// Volume is the initial global sound volume.
	Volume float64
	// Now overrides the clock used for alerts and countdowns.
	Now func() time.Time
}

// Session owns the single active profile and routes every edit, trigger
// and hotkey through it. UIs, the bridge and the CLI share it.
type Session struct {
	persistence store.Persistence
	saver       *store.Saver
	dispatcher  *action.Dispatcher
	router      *hotkey.Router
	logger      *zap.Logger
	now         func() time.Time

	mu         sync.Mutex
	active     *profile.Profile
	nav        tile.Nav
	resolver   *schedule.Resolver
	dismissed  map[string]bool
	volume     float64
	actions    int
	hyperFocus bool
	status     string
}

// New returns a Session. Persistence is required; a nil Registrar gets an
// in-process Keymap.
func New(opts Options) (*Session, error) {
	if opts.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	logger := logging.OrNop(opts.Logger)
	s := &Session{
		persistence: opts.Persistence,
		saver:       store.NewSaver(opts.Persistence, opts.Debounce, logger.Named("saver")),
		logger:      logger,
		now:         opts.Now,
		resolver:    schedule.NewResolver(),
		dismissed:   map[string]bool{},
		volume:      action.ClampVolume(opts.Volume),
		status:      StatusLoading,
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.dispatcher = &action.Dispatcher{
		Host:   opts.Host,
		Player: opts.Player,
		Logger: logger.Named("action"),
		OnUI:   s.handleUI,
	}
	registrar := opts.Registrar
	if registrar == nil {
		keys, err := hotkey.NewKeymap(hotkey.Reserved...)
		if err != nil {
			return nil, err
		}
		registrar = keys
	}
	s.router = hotkey.NewRouter(registrar, s.handleHotkey, logger.Named("hotkey"))
	return s, nil
}

// Profiles lists stored profile names.
func (s *Session) Profiles(ctx context.Context) ([]string, error) {
	return s.persistence.Profiles(ctx)
}

// Open loads name and makes it the active profile. Pending edits of the
// previous profile are written first. Loading resets navigation, the
// ignored conflicts and dismissed alerts, and re-registers hotkeys.
func (s *Session) Open(ctx context.Context, name string) error {
	if err := s.saver.Flush(ctx); err != nil {
		s.logger.Error("save before switching profile", zap.Error(err))
	}
	p, err := s.persistence.Load(ctx, name)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		switch {
		case errors.Is(err, profile.ErrMissingTiles):
			s.status = StatusMissingTiles
		case errors.Is(err, store.ErrNotFound):
			s.status = fmt.Sprintf("Profile %q not found", name)
		default:
			s.status = "Error: " + err.Error()
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = p
	s.nav.Reset()
	s.resolver.Reset()
	s.dismissed = map[string]bool{}
	n := s.router.Register(p)
	s.status = StatusReady
	s.logger.Info("profile loaded", zap.String("profile", p.Name), zap.Int("tiles", len(tile.Flatten(p.Tiles))), zap.Int("hotkeys", n))
	return nil
}

// OpenDefault opens "default" when stored, otherwise the first profile.
func (s *Session) OpenDefault(ctx context.Context) error {
	names, err := s.persistence.Profiles(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		s.setStatus(StatusNoProfiles)
		return ErrNoProfiles
	}
	for _, n := range names {
		if n == DefaultProfile {
			return s.Open(ctx, n)
		}
	}
	return s.Open(ctx, names[0])
}

// OpenOrDefault opens name, or the default profile when name is empty.
func (s *Session) OpenOrDefault(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return s.OpenDefault(ctx)
	}
	return s.Open(ctx, name)
}

// Create stores an empty profile and opens it.
func (s *Session) Create(ctx context.Context, name string) error {
	if err := profile.ValidateName(name); err != nil {
		return err
	}
	if _, err := s.persistence.Load(ctx, name); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, name)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if err := s.persistence.Save(ctx, profile.New(name)); err != nil {
		return err
	}
	return s.Open(ctx, name)
}

// Import stores p, replacing any profile of the same name.
func (s *Session) Import(ctx context.Context, p *profile.Profile) error {
	if err := profile.Validate(p); err != nil {
		return err
	}
	if dups := tile.NewIndex(p.Tiles).Duplicates(); len(dups) > 0 {
		return fmt.Errorf("%w: %s", tile.ErrDuplicateID, strings.Join(dups, ", "))
	}
	profile.Normalize(p)
	s.mu.Lock()
	replacing := s.active != nil && profile.Key(s.active.Name) == profile.Key(p.Name)
	s.mu.Unlock()
	if replacing {
		// Pending edits of the old document must not land on the import.
		s.saver.Discard()
	}
	if err := s.persistence.Save(ctx, p); err != nil {
		return err
	}
	if replacing {
		return s.Reload(ctx)
	}
	return nil
}

// Remove deletes a stored profile. The active profile cannot be removed.
func (s *Session) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	active := s.active != nil && profile.Key(s.active.Name) == profile.Key(name)
	s.mu.Unlock()
	if active {
		return fmt.Errorf("app: %s is the open profile", name)
	}
	return s.persistence.Delete(ctx, name)
}

// Reload re-reads the active profile from the store, keeping navigation
// where the tree still allows it. Last write wins.
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return ErrNoProfile
	}
	name := s.active.Name
	s.mu.Unlock()

	p, err := s.persistence.Load(ctx, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = p
	s.nav.Current(p.Tiles)
	s.router.Register(p)
	return nil
}

// Follow reloads the active profile for every matching store event until
// events closes. Events are ignored while local edits wait to be written
// so the pending document is not replaced under the user.
func (s *Session) Follow(ctx context.Context, events <-chan store.Event) {
	for ev := range events {
		name := s.Name()
		if name == "" || s.saver.Pending() {
			continue
		}
		if ev.Type == store.EventProfileChanged && ev.Profile != profile.Key(name) {
			continue
		}
		if err := s.Reload(ctx); err != nil {
			s.logger.Warn("reload after change", zap.String("profile", name), zap.Error(err))
		}
	}
}

// Watch subscribes to store changes.
func (s *Session) Watch(ctx context.Context) (<-chan store.Event, error) {
	return s.persistence.Watch(ctx)
}

// Active returns a copy of the open profile, or nil.
func (s *Session) Active() *profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return profile.Clone(s.active)
}

// Name is the open profile's name, or "".
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ""
	}
	return s.active.Name
}

// Status is the last load or trigger message.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) setStatus(msg string) {
	s.mu.Lock()
	s.status = msg
	s.mu.Unlock()
}

// Bindings lists the hotkeys currently bound.
func (s *Session) Bindings() []hotkey.Binding {
	return s.router.Bindings()
}

// edit applies fn to a copy of the active profile and swaps the copy in.
// On success the copy is scheduled for saving and, when rebind is set,
// hotkeys are registered again.
func (s *Session) edit(rebind bool, fn func(p *profile.Profile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ErrNoProfile
	}
	next := profile.Clone(s.active)
	if err := fn(next); err != nil {
		return err
	}
	s.active = next
	s.saver.Schedule(next)
	if rebind {
		s.router.Register(next)
	}
	return nil
}

// Volume is the global sound volume.
func (s *Session) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// SetVolume changes the global volume, clamped to [0, 1].
func (s *Session) SetVolume(v float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = action.ClampVolume(v)
	return s.volume
}

// TogglePanel flips the collapsed state of a sidebar panel.
func (s *Session) TogglePanel(id string) (bool, error) {
	if !profile.IsPanel(id) {
		return false, fmt.Errorf("app: unknown panel %q", id)
	}
	var collapsed bool
	err := s.edit(false, func(p *profile.Profile) error {
		collapsed = !p.CollapsedPanels[id]
		p.CollapsedPanels[id] = collapsed
		return nil
	})
	return collapsed, err
}

// MovePanel moves a panel within the left or right sidebar order.
func (s *Session) MovePanel(side string, from, to int) error {
	return s.edit(false, func(p *profile.Profile) error {
		switch side {
		case "left":
			p.LeftSidebarOrder = move(p.LeftSidebarOrder, from, to)
		case "right":
			p.RightSidebarOrder = move(p.RightSidebarOrder, from, to)
		default:
			return fmt.Errorf("app: unknown sidebar %q", side)
		}
		return nil
	})
}

func move(list []string, from, to int) []string {
	if from < 0 || to < 0 || from >= len(list) || to >= len(list) || from == to {
		return list
	}
	out := append([]string(nil), list...)
	v := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{v}, out[to:]...)...)
	return out
}

// Flush writes pending edits now.
func (s *Session) Flush(ctx context.Context) error {
	return s.saver.Flush(ctx)
}

// Close writes pending edits and stops the saver.
func (s *Session) Close() error {
	return s.saver.Close()
}

package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/action"
	"tableflip.dev/deck/pkg/hotkey"
	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/tile"
)

// Level returns a copy of the tiles shown at the current folder.
func (s *Session) Level() []*tile.Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	return tile.Clone(s.nav.Level(s.active.Tiles))
}

// Breadcrumbs names the folders entered, outermost first.
func (s *Session) Breadcrumbs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	return s.nav.Breadcrumbs(s.active.Tiles)
}

// Tile returns a copy of the tile with id.
func (s *Session) Tile(id string) (*tile.Tile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, ErrNoProfile
	}
	t := tile.Find(s.active.Tiles, id)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrTileNotFound, id)
	}
	return t.Clone(), nil
}

// EnterFolder pushes the folder id onto the navigation stack.
func (s *Session) EnterFolder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enterLocked(id)
}

func (s *Session) enterLocked(id string) error {
	if s.active == nil {
		return ErrNoProfile
	}
	t := tile.Find(s.active.Tiles, id)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrTileNotFound, id)
	}
	return s.nav.Enter(t)
}

// Up leaves the current folder. It reports false at the root.
func (s *Session) Up() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Up()
}

// Home returns to the root level.
func (s *Session) Home() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Reset()
}

// SaveTile updates the tile with t.ID anywhere in the tree, or adds t to
// the current folder when the id is new.
func (s *Session) SaveTile(t *tile.Tile) error {
	if t == nil {
		return fmt.Errorf("app: nil tile")
	}
	t = t.Clone()
	return s.edit(true, func(p *profile.Profile) error {
		tiles, err := tile.Save(p.Tiles, t, &s.nav)
		if err != nil {
			return err
		}
		p.Tiles = tiles
		return nil
	})
}

// AddTile inserts t under parentID, or at the root when parentID is "".
func (s *Session) AddTile(t *tile.Tile, parentID string) error {
	if t == nil {
		return fmt.Errorf("app: nil tile")
	}
	t = t.Clone()
	return s.edit(true, func(p *profile.Profile) error {
		tiles, err := tile.Insert(p.Tiles, t, parentID)
		if err != nil {
			return err
		}
		p.Tiles = tiles
		return nil
	})
}

// DeleteTile removes the tile with id from wherever it lives.
func (s *Session) DeleteTile(id string) error {
	return s.edit(true, func(p *profile.Profile) error {
		tiles, ok := tile.Delete(p.Tiles, id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrTileNotFound, id)
		}
		p.Tiles = tiles
		s.nav.Current(tiles)
		return nil
	})
}

// MoveTile reorders the current folder level.
func (s *Session) MoveTile(from, to int) error {
	return s.edit(false, func(p *profile.Profile) error {
		folder := s.nav.Current(p.Tiles)
		if folder == nil {
			p.Tiles = tile.Reorder(p.Tiles, from, to)
			return nil
		}
		folder.Children = tile.Reorder(folder.Children, from, to)
		return nil
	})
}

// MoveTileByID reorders the level holding id so that it lands at index to.
func (s *Session) MoveTileByID(id string, to int) error {
	return s.edit(false, func(p *profile.Profile) error {
		ix := tile.NewIndex(p.Tiles)
		if !ix.Contains(id) {
			return fmt.Errorf("%w: %s", ErrTileNotFound, id)
		}
		parentID, _ := ix.Parent(id)
		if parentID == "" {
			p.Tiles = tile.Reorder(p.Tiles, tile.IndexOf(p.Tiles, id), to)
			return nil
		}
		parent, _ := ix.Lookup(parentID)
		parent.Children = tile.Reorder(parent.Children, tile.IndexOf(parent.Children, id), to)
		return nil
	})
}

// TriggerResult describes what a trigger did.
type TriggerResult struct {
	Tile    *tile.Tile
	Entered bool
	Report  action.Report
}

// Trigger activates the tile with id. A folder is entered; any other tile
// has its actions dispatched serially with the current global volume.
// Dispatch happens outside the session lock.
func (s *Session) Trigger(ctx context.Context, id string) (TriggerResult, error) {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return TriggerResult{}, ErrNoProfile
	}
	t := tile.Find(s.active.Tiles, id)
	if t == nil {
		s.mu.Unlock()
		return TriggerResult{}, fmt.Errorf("%w: %s", ErrTileNotFound, id)
	}
	t = t.Clone()
	if t.IsFolder() {
		err := s.nav.Enter(t)
		s.mu.Unlock()
		return TriggerResult{Tile: t, Entered: err == nil}, err
	}
	opts := action.Options{Volume: s.volume}
	s.mu.Unlock()

	r := s.dispatcher.Dispatch(ctx, t.Actions, opts)
	msg := fmt.Sprintf("%s: %d action(s) ran", t.Name, r.Executed)
	if len(r.Failed) > 0 {
		msg = fmt.Sprintf("%s: %d of %d action(s) failed", t.Name, len(r.Failed), len(r.Failed)+r.Executed)
	}
	s.setStatus(msg)
	return TriggerResult{Tile: t, Report: r}, nil
}

// Execute runs a single action outside of any tile.
func (s *Session) Execute(ctx context.Context, a tile.Action) error {
	return s.dispatcher.Execute(ctx, a, action.Options{Volume: s.Volume()})
}

func (s *Session) handleHotkey(tr hotkey.Trigger) {
	if _, err := s.Trigger(context.Background(), tr.TileID); err != nil {
		s.logger.Warn("hotkey trigger", zap.String("combo", tr.Combo), zap.String("tile", tr.TileID), zap.Error(err))
	}
}

func (s *Session) handleUI(directive string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions++
	if directive == "toggleHyperFocus" {
		s.hyperFocus = !s.hyperFocus
	}
}

// ActionCount is the number of ui actions run this session.
func (s *Session) ActionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions
}

// HyperFocus reports whether hyper focus mode is on.
func (s *Session) HyperFocus() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hyperFocus
}

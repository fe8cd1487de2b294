// Package tiles provides CLI helpers to edit the tile tree of a profile.
package tiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/hotkey"
	"tableflip.dev/deck/pkg/printers"
	"tableflip.dev/deck/pkg/tile"
)

// Add creates a tile or folder under Parent.
type Add struct {
	Session *app.Session
	Tile    options.TileOptions
	Out     io.Writer
	// Now defaults to time.Now and anchors --timer.
	Now func() time.Time
}

func (a *Add) Do(_ context.Context) error {
	if a.Tile.Name == "" {
		return errors.New("tiles: a tile needs a name")
	}
	var t *tile.Tile
	if a.Tile.Folder {
		if len(a.Tile.Actions) > 0 || a.Tile.Timer != "" {
			return errors.New("tiles: folders cannot carry actions")
		}
		t = tile.NewFolder(a.Tile.Name)
	} else {
		actions, err := a.Tile.ParseActions()
		if err != nil {
			return err
		}
		timer, ok, err := a.Tile.TimerAction(clock(a.Now))
		if err != nil {
			return err
		}
		if ok {
			actions = append(actions, timer)
		}
		t = tile.New(a.Tile.Name, actions...)
	}
	if err := apply(t, &a.Tile); err != nil {
		return err
	}
	if err := a.Session.AddTile(t, a.Tile.Parent); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out(a.Out), "added %s (%s)\n", t.Name, t.ID)
	return nil
}

// Edit changes the fields of an existing tile that were given.
type Edit struct {
	Session *app.Session
	ID      string
	Tile    options.TileOptions
	// Set records which flags were passed; unset fields are kept.
	Set func(flag string) bool
	Out io.Writer
	Now func() time.Time
}

func (e *Edit) Do(_ context.Context) error {
	t, err := e.Session.Tile(e.ID)
	if err != nil {
		return err
	}
	set := e.Set
	if set == nil {
		set = func(string) bool { return true }
	}
	if set("name") && e.Tile.Name != "" {
		t.Name = e.Tile.Name
	}
	if set("icon") {
		t.Icon = e.Tile.Icon
	}
	if set("color") {
		t.Color = e.Tile.Color
	}
	if set("hotkey") {
		t.Hotkey = e.Tile.Hotkey
	}
	if set("urgency") {
		if t.Urgency, err = e.Tile.ParseUrgency(); err != nil {
			return err
		}
	}
	if set("action") {
		if t.IsFolder() {
			return errors.New("tiles: folders cannot carry actions")
		}
		if t.Actions, err = e.Tile.ParseActions(); err != nil {
			return err
		}
	}
	if set("timer") {
		if t.IsFolder() {
			return errors.New("tiles: folders cannot carry actions")
		}
		timer, ok, err := e.Tile.TimerAction(clock(e.Now))
		if err != nil {
			return err
		}
		kept := make([]tile.Action, 0, len(t.Actions)+1)
		for _, a := range t.Actions {
			if a.Type != tile.ActionTimer {
				kept = append(kept, a)
			}
		}
		if ok {
			kept = append(kept, timer)
		}
		t.Actions = kept
	}
	if t.Hotkey != "" {
		if _, err := hotkey.Normalize(t.Hotkey); err != nil {
			return err
		}
	}
	if err := e.Session.SaveTile(t); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out(e.Out), "updated %s\n", t.Name)
	return nil
}

// Remove deletes a tile and, for folders, everything below it.
type Remove struct {
	Session *app.Session
	ID      string
	Out     io.Writer
}

func (r *Remove) Do(_ context.Context) error {
	if err := r.Session.DeleteTile(r.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out(r.Out), "removed %s\n", r.ID)
	return nil
}

// Move places a tile at index To among its siblings.
type Move struct {
	Session *app.Session
	ID      string
	To      int
}

func (m *Move) Do(_ context.Context) error {
	return m.Session.MoveTileByID(m.ID, m.To)
}

// List prints the tile tree.
type List struct {
	Session *app.Session
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (l *List) Do(_ context.Context) error {
	p := l.Session.Active()
	if p == nil {
		return app.ErrNoProfile
	}
	if l.JSON {
		return options.PrintJSON(l.Out, p.Tiles)
	}
	pp := printers.PrettyPrint{Out: l.Out, ShowID: l.ShowID}
	pp.TitleWithCount(p.Name, len(tile.Flatten(p.Tiles)), "tile")
	pp.Tiles(p.Tiles)
	return nil
}

func apply(t *tile.Tile, o *options.TileOptions) error {
	if o.Icon != "" {
		t.Icon = o.Icon
	}
	t.Color = o.Color
	if o.Hotkey != "" {
		if _, err := hotkey.Normalize(o.Hotkey); err != nil {
			return err
		}
		t.Hotkey = o.Hotkey
	}
	u, err := o.ParseUrgency()
	if err != nil {
		return err
	}
	t.Urgency = u
	return nil
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

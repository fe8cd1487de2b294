// Package profiles provides CLI helpers to list, show, create and remove
// profiles.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/printers"
)

// List prints the stored profile names.
type List struct {
	Session *app.Session
	JSON    bool
	Out     io.Writer
}

func (l *List) Do(ctx context.Context) error {
	if l.Session == nil {
		return errors.New("profiles: no session")
	}
	names, err := l.Session.Profiles(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		if names == nil {
			names = []string{}
		}
		return options.PrintJSON(l.Out, names)
	}
	pp := printers.PrettyPrint{Out: l.Out}
	pp.TitleWithCount("Profiles", len(names), "profile")
	pp.Profiles(names, l.Session.Name())
	return nil
}

// Show prints the open profile: its tile tree, hotkeys and schedule.
type Show struct {
	Session *app.Session
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (s *Show) Do(_ context.Context) error {
	p := s.Session.Active()
	if p == nil {
		return app.ErrNoProfile
	}
	if s.JSON {
		return options.PrintJSON(s.Out, p)
	}
	pp := printers.PrettyPrint{Out: s.Out, ShowID: s.ShowID}
	pp.Title(p.Name)
	pp.NewLine()
	pp.TitleWithCount("Tiles", len(p.Tiles), "tile")
	pp.Tiles(p.Tiles)
	pp.Title("Hotkeys")
	pp.Bindings(s.Session.Bindings())
	pp.TitleWithCount("Schedule", len(p.Schedules), "item")
	pp.Schedule(p.Schedules, s.Session.Conflicts())
	return nil
}

// Create stores a new empty profile, or the demo profile when Demo is set.
type Create struct {
	Session *app.Session
	Name    string
	Demo    bool
	Out     io.Writer
}

func (c *Create) Do(ctx context.Context) error {
	if err := c.Session.Create(ctx, c.Name); err != nil {
		return err
	}
	if c.Demo {
		if err := c.Session.Import(ctx, Demo(c.Name, time.Now())); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(out(c.Out), "created profile %s\n", c.Name)
	return nil
}

// Remove deletes a stored profile that is not open.
type Remove struct {
	Session *app.Session
	Name    string
	Out     io.Writer
}

func (r *Remove) Do(ctx context.Context) error {
	if err := r.Session.Remove(ctx, r.Name); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out(r.Out), "removed profile %s\n", r.Name)
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

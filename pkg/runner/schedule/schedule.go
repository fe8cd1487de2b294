// Package schedule provides CLI helpers for the day schedule of a profile.
package schedule

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
	"tableflip.dev/deck/pkg/schedule"
)

// Add appends an item to the schedule.
type Add struct {
	Session *app.Session
	Title   string
	Start   string
	End     string
	Out     io.Writer
}

func (a *Add) Do(_ context.Context) error {
	it, err := a.Session.AddSchedule(a.Title, a.Start, a.End)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out(a.Out), "scheduled %s %s-%s (%s)\n", it.Title, it.StartTime, it.EndTime, it.ID)
	for _, c := range a.Session.Conflicts() {
		if c.A.ID == it.ID || c.B.ID == it.ID {
			warn := color.New(color.FgHiRed)
			_, _ = warn.Fprintf(out(a.Out), "! overlaps %s\n", other(c, it.ID).Title)
		}
	}
	return nil
}

func other(c schedule.Conflict, id string) schedule.Item {
	if c.A.ID == id {
		return c.B
	}
	return c.A
}

// Remove drops an item.
type Remove struct {
	Session *app.Session
	ID      string
}

func (r *Remove) Do(_ context.Context) error {
	return r.Session.RemoveSchedule(r.ID)
}

// Done marks an item completed.
type Done struct {
	Session *app.Session
	ID      string
}

func (d *Done) Do(_ context.Context) error {
	return d.Session.CompleteSchedule(d.ID)
}

// List prints the schedule as a table, or as an agenda when Agenda is set.
type List struct {
	Session *app.Session
	ShowID  bool
	Agenda  bool
	JSON    bool
	Now     func() time.Time
	Out     io.Writer
}

func (l *List) Do(_ context.Context) error {
	if l.Session.Active() == nil {
		return app.ErrNoProfile
	}
	items := l.Session.Schedules()
	if l.JSON {
		return options.PrintJSON(l.Out, items)
	}
	pp := printers.PrettyPrint{Out: l.Out, ShowID: l.ShowID}
	pp.TitleWithCount("Schedule", len(items), "item")
	if l.Agenda {
		now := time.Now
		if l.Now != nil {
			now = l.Now
		}
		pp.Agenda(items, now())
	} else {
		pp.Schedule(items, l.Session.Conflicts())
	}
	if title, countdown := l.Session.NextUp(); title != "" {
		_, _ = fmt.Fprintf(out(l.Out), "Next: %s in %s\n", title, countdown)
	}
	return nil
}

// Conflicts reports overlapping items. With Fix set it applies the
// auto-fix repeatedly until no conflict is left. Ignore hides conflicts
// of the named later items first.
type Conflicts struct {
	Session *app.Session
	Fix     bool
	Ignore  []string
	JSON    bool
	Out     io.Writer
}

// maxFixes bounds auto-fix passes; each pass moves one item later.
const maxFixes = 100

func (c *Conflicts) Do(_ context.Context) error {
	if c.Session.Active() == nil {
		return app.ErrNoProfile
	}
	for _, id := range c.Ignore {
		c.Session.IgnoreConflict(id)
	}
	var moved []schedule.Item
	var stuck error
	if c.Fix {
		for i := 0; i < maxFixes; i++ {
			it, ok, err := c.Session.AutoFix()
			if errors.Is(err, schedule.ErrPastMidnight) {
				stuck = err
				break
			}
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			moved = append(moved, it)
		}
	}
	conflicts := c.Session.Conflicts()
	if c.JSON {
		var unfixed string
		if stuck != nil {
			unfixed = stuck.Error()
		}
		return options.PrintJSON(c.Out, struct {
			Moved     []schedule.Item     `json:"moved,omitempty"`
			Unfixed   string              `json:"unfixed,omitempty"`
			Conflicts []schedule.Conflict `json:"conflicts"`
		}{moved, unfixed, append([]schedule.Conflict{}, conflicts...)})
	}
	for _, it := range moved {
		_, _ = fmt.Fprintf(out(c.Out), "moved %s to %s-%s\n", it.Title, it.StartTime, it.EndTime)
	}
	if stuck != nil {
		_, _ = color.New(color.FgYellow).Fprintf(out(c.Out), "! %v\n", stuck)
	}
	pp := printers.PrettyPrint{Out: c.Out}
	pp.TitleWithCount("Conflicts", len(conflicts), "conflict")
	pp.Conflicts(conflicts)
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

// Package trigger provides the CLI helper that fires a tile.
package trigger

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/commands/options"
)

// Trigger dispatches the actions of one tile.
type Trigger struct {
	Session *app.Session
	ID      string
	JSON    bool
	Out     io.Writer
}

type result struct {
	Tile     string   `json:"tile"`
	Entered  bool     `json:"entered,omitempty"`
	Executed int      `json:"executed"`
	Skipped  int      `json:"skipped,omitempty"`
	Failed   []string `json:"failed,omitempty"`
}

func (t *Trigger) Do(ctx context.Context) error {
	res, err := t.Session.Trigger(ctx, t.ID)
	if err != nil {
		return err
	}
	r := result{
		Tile:     res.Tile.Name,
		Entered:  res.Entered,
		Executed: res.Report.Executed,
		Skipped:  res.Report.Skipped,
	}
	for _, f := range res.Report.Failed {
		r.Failed = append(r.Failed, fmt.Sprintf("%s: %v", f.Action.Type, f.Err))
	}
	if t.JSON {
		if err := options.PrintJSON(t.Out, r); err != nil {
			return err
		}
		return res.Report.Err()
	}

	w := t.Out
	if w == nil {
		w = color.Output
	}
	if r.Entered {
		_, _ = fmt.Fprintf(w, "%s is a folder; open it in the deck\n", r.Tile)
		return nil
	}
	_, _ = fmt.Fprintln(w, t.Session.Status())
	warn := color.New(color.FgHiRed)
	for _, f := range r.Failed {
		_, _ = warn.Fprintf(w, "  %s\n", f)
	}
	return res.Report.Err()
}

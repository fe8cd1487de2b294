// Package panels prints and edits the sidebar layout stored with a profile.
package panels

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/commands/options"
	"tableflip.dev/deck/pkg/printers"
)

type layout struct {
	Left      []string        `json:"leftSidebarOrder"`
	Right     []string        `json:"rightSidebarOrder"`
	Collapsed map[string]bool `json:"collapsedPanels"`
}

// List prints both sidebar orders.
type List struct {
	Session *app.Session
	JSON    bool
	Out     io.Writer
}

func (l *List) Do(_ context.Context) error {
	p := l.Session.Active()
	if p == nil {
		return app.ErrNoProfile
	}
	if l.JSON {
		return options.PrintJSON(l.Out, layout{Left: p.LeftSidebarOrder, Right: p.RightSidebarOrder, Collapsed: p.CollapsedPanels})
	}
	pp := printers.PrettyPrint{Out: l.Out}
	pp.Panels("left", p.LeftSidebarOrder, p.CollapsedPanels)
	pp.Panels("right", p.RightSidebarOrder, p.CollapsedPanels)
	return nil
}

// Toggle collapses or expands a panel.
type Toggle struct {
	Session *app.Session
	ID      string
	Out     io.Writer
}

func (t *Toggle) Do(_ context.Context) error {
	collapsed, err := t.Session.TogglePanel(t.ID)
	if err != nil {
		return err
	}
	state := "expanded"
	if collapsed {
		state = "collapsed"
	}
	_, _ = fmt.Fprintf(out(t.Out), "%s %s\n", t.ID, state)
	return nil
}

// Move reorders a panel within one sidebar.
type Move struct {
	Session *app.Session
	Side    string
	From    int
	To      int
}

func (m *Move) Do(_ context.Context) error {
	return m.Session.MovePanel(m.Side, m.From, m.To)
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

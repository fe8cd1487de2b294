// Package printers renders profiles, tiles and schedules for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/deck/pkg/hotkey"
	"tableflip.dev/deck/pkg/schedule"
	"tableflip.dev/deck/pkg/tile"
)

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

const idWidth = len("3f9c2a1e-0000-0000-0000-000000000000  ")

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Profiles lists profile names, marking active.
func (pp *PrettyPrint) Profiles(names []string, active string) {
	if len(names) == 0 {
		pp.none()
		return
	}
	mark := color.New(color.FgHiGreen, color.Bold)
	for _, n := range names {
		if n == active {
			_, _ = mark.Fprintf(pp.out(), "* %s\n", n)
			continue
		}
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", n)
	}
}

// Tiles prints a tile tree, folders indented under their parent.
func (pp *PrettyPrint) Tiles(tiles []*tile.Tile) {
	if len(tiles) == 0 {
		pp.none()
		return
	}
	pp.tiles(tiles, 0)
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) tiles(tiles []*tile.Tile, depth int) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	folder := color.New(color.FgHiBlue, color.Bold)
	faint := color.New(color.Faint)
	indent := strings.Repeat("  ", depth)

	for _, t := range tiles {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), t.ID)
			pad := idWidth - len(t.ID)
			if pad < 1 {
				pad = 1
			}
			_, _ = fmt.Fprint(pp.out(), strings.Repeat(" ", pad))
		}
		if t.IsFolder() {
			_, _ = folder.Fprintf(pp.out(), "%s▸ %s", indent, t.Name)
			_, _ = faint.Fprintf(pp.out(), " (%d)\n", len(t.Children))
			pp.tiles(t.Children, depth+1)
			continue
		}
		_, _ = fmt.Fprintf(pp.out(), "%s• %s", indent, t.Name)
		if t.Hotkey != "" {
			_, _ = faint.Fprintf(pp.out(), " [%s]", t.Hotkey)
		}
		if len(t.Actions) > 0 {
			parts := make([]string, 0, len(t.Actions))
			for _, a := range t.Actions {
				parts = append(parts, a.String())
			}
			_, _ = faint.Fprintf(pp.out(), "  %s", strings.Join(parts, ", "))
		}
		_, _ = fmt.Fprintln(pp.out())
	}
}

// Schedule prints the items of a day in a table, flagging conflicts.
func (pp *PrettyPrint) Schedule(items []schedule.Item, conflicts []schedule.Conflict) {
	if len(items) == 0 {
		pp.none()
		return
	}
	clash := map[string]bool{}
	for _, c := range conflicts {
		clash[c.A.ID] = true
		clash[c.B.ID] = true
	}
	bold := color.New(color.Bold)
	warn := color.New(color.FgHiRed)
	done := color.New(color.Faint, color.CrossedOut)

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Start"), bold.Sprint("End"), bold.Sprint("Title"), "")
	} else {
		tbl.AddRow(bold.Sprint("Start"), bold.Sprint("End"), bold.Sprint("Title"), "")
	}
	for _, it := range items {
		title := it.Title
		if it.Completed {
			title = done.Sprint(title)
		}
		flag := ""
		if clash[it.ID] {
			flag = warn.Sprint("conflict")
		}
		if pp.ShowID {
			tbl.AddRow(it.ID, it.StartTime, it.EndTime, title, flag)
		} else {
			tbl.AddRow(it.StartTime, it.EndTime, title, flag)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Conflicts prints each overlapping pair.
func (pp *PrettyPrint) Conflicts(conflicts []schedule.Conflict) {
	if len(conflicts) == 0 {
		pp.none()
		return
	}
	warn := color.New(color.FgHiRed)
	for _, c := range conflicts {
		_, _ = warn.Fprint(pp.out(), "! ")
		_, _ = fmt.Fprintf(pp.out(), "%s (%s-%s) overlaps %s (%s-%s)\n",
			c.B.Title, c.B.StartTime, c.B.EndTime, c.A.Title, c.A.StartTime, c.A.EndTime)
	}
	_, _ = fmt.Fprintln(pp.out())
}

// Bindings prints hotkey bindings in a table.
func (pp *PrettyPrint) Bindings(bindings []hotkey.Binding) {
	if len(bindings) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Hotkey"), bold.Sprint("Tile"))
	for _, b := range bindings {
		tbl.AddRow(b.Combo, b.Name)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Panels prints one sidebar order, marking collapsed panels.
func (pp *PrettyPrint) Panels(side string, order []string, collapsed map[string]bool) {
	pp.TitleWithCount(side, len(order), "panel")
	if len(order) == 0 {
		pp.none()
		return
	}
	for i, id := range order {
		state := ""
		if collapsed[id] {
			state = color.New(color.Faint).Sprint("  (collapsed)")
		}
		_, _ = fmt.Fprintf(pp.out(), "  %d %s%s\n", i, id, state)
	}
	_, _ = fmt.Fprintln(pp.out())
}

package deck

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/deck/pkg/action"
	"tableflip.dev/deck/pkg/tile"
)

func (m Model) View() string {
	if m.session.Active() == nil {
		return m.theme.Status.Render(m.session.Status()) + "\n"
	}
	if m.mini {
		return m.miniView()
	}

	sections := []string{m.header()}
	if alert := m.alert(); alert != "" {
		sections = append(sections, alert)
	}
	if c := m.conflict(); c != "" {
		sections = append(sections, c)
	}
	sections = append(sections, m.grid(m.tiles()), m.footer(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) miniView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.grid(m.tiles()),
		m.theme.Next.Render(m.nextLine()),
	)
}

func (m Model) header() string {
	p := m.session.Active()
	title := m.theme.Header.Render(p.Name)
	if crumbs := m.session.Breadcrumbs(); len(crumbs) > 0 {
		title += m.theme.Crumbs.Render(" / " + strings.Join(crumbs, " / "))
	}
	meters := fmt.Sprintf("cpu %d%%  mem %d%%  vol %d%%  actions %d",
		m.load.CPU, m.load.Mem, int(m.session.Volume()*100+0.5), m.session.ActionCount())
	line := title + "  " + m.theme.Meter.Render(meters)
	if m.session.HyperFocus() {
		line += " " + m.theme.Badge.Render("HYPER FOCUS")
	}
	return line
}

func (m Model) alert() string {
	it, ok := m.session.CurrentAlert()
	if !ok {
		return ""
	}
	text := fmt.Sprintf("Now: %s (%s-%s)  [d] dismiss", it.Title, it.StartTime, it.EndTime)
	if m.width > 0 {
		text = wordwrap.String(text, m.width-2)
	}
	return m.theme.Alert.Render(text)
}

func (m Model) conflict() string {
	conflicts := m.session.Conflicts()
	if len(conflicts) == 0 {
		return ""
	}
	c := conflicts[0]
	return m.theme.Conflict.Render(fmt.Sprintf("%d conflict(s): %s overlaps %s  [c] fix  [i] ignore",
		len(conflicts), c.B.Title, c.A.Title))
}

func (m Model) grid(tiles []*tile.Tile) string {
	if len(tiles) == 0 {
		return m.theme.Status.Render("(empty folder)")
	}
	var rows []string
	for start := 0; start < len(tiles); start += columns {
		end := start + columns
		if end > len(tiles) {
			end = len(tiles)
		}
		cells := make([]string, 0, columns)
		for i := start; i < end; i++ {
			cells = append(cells, m.cell(tiles[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) cell(t *tile.Tile, selected bool) string {
	inner := uint(tileWidth - 2)
	name := truncate.StringWithTail(t.Name, inner, "…")
	lines := []string{name}
	if t.IsFolder() {
		lines[0] = m.theme.Folder.Render(name)
		lines = append(lines, m.theme.Detail.Render(fmt.Sprintf("%d items", len(t.Children))))
	} else if timer, ok := t.Timer(); ok {
		if left := action.FormatRemaining(timer.EndTime, m.now()); left != "" {
			lines = append(lines, m.theme.Detail.Render("⏱ "+left))
		}
	} else if t.Icon != "" {
		lines = append(lines, m.theme.Detail.Render(truncate.StringWithTail(t.Icon, inner, "…")))
	}
	if t.Hotkey != "" {
		lines = append(lines, m.theme.Detail.Render(truncate.StringWithTail(t.Hotkey, inner, "…")))
	}
	return m.theme.tileStyle(t, selected).Render(strings.Join(lines, "\n"))
}

func (m Model) nextLine() string {
	title, countdown := m.session.NextUp()
	if title == "" {
		return "Next: --:--"
	}
	return fmt.Sprintf("Next: %s in %s", title, countdown)
}

func (m Model) footer() string {
	status := m.flash
	if status == "" {
		status = m.session.Status()
	}
	return m.theme.Next.Render(m.nextLine()) + "  " + m.theme.Status.Render(status)
}

package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/deck/pkg/schedule"
)

const slot = 15 * time.Minute

// Agenda draws the day as quarter-hour rows between the first start and
// the last end, one column per item. now is marked with an arrow.
func (pp *PrettyPrint) Agenda(items []schedule.Item, now time.Time) {
	type span struct {
		item       schedule.Item
		start, end schedule.Clock
	}
	var spans []span
	first, last := schedule.Clock(24*60), schedule.Clock(0)
	for _, it := range items {
		s, e, ok := it.Span()
		if !ok || it.Completed {
			continue
		}
		spans = append(spans, span{it, s, e})
		if s < first {
			first = s
		}
		if e > last {
			last = e
		}
	}
	if len(spans) == 0 {
		pp.none()
		return
	}

	step := schedule.Clock(slot / time.Minute)
	first -= first % step
	cur := schedule.ClockOf(now)
	faint := color.New(color.Faint)
	marker := color.New(color.FgHiGreen, color.Bold)
	block := color.New(color.FgHiCyan)

	for c := first; c < last; c += step {
		arrow := "  "
		if c <= cur && cur < c+step {
			arrow = marker.Sprint("→ ")
		}
		_, _ = fmt.Fprintf(pp.out(), "%s%s ", arrow, faint.Sprint(c.String()))

		var labels []string
		for _, sp := range spans {
			if sp.start >= c+step || sp.end <= c {
				_, _ = fmt.Fprint(pp.out(), "  ")
				continue
			}
			_, _ = block.Fprint(pp.out(), "█ ")
			if sp.start >= c {
				labels = append(labels, sp.item.Title)
			}
		}
		_, _ = fmt.Fprintln(pp.out(), strings.Join(labels, ", "))
	}
	_, _ = fmt.Fprintln(pp.out())
}

package schedule

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// FixBuffer is the gap AutoFix leaves after the earlier item.
const FixBuffer = 5 * time.Minute

// ErrPastMidnight is returned when moving an item would carry it into the
// next day.
var ErrPastMidnight = errors.New("schedule: fix would run past midnight")

// Conflict is an overlapping pair; A starts no later than B.
type Conflict struct {
	A Item `json:"a"`
	B Item `json:"b"`
}

// Conflicts sorts items by start time and reports each adjacent pair where
// the later item starts before the earlier one ends. Only neighbours in
// sorted order are compared, so an item nested inside a longer
// non-adjacent item is not reported. Pairs whose later item is in ignored
// are skipped. An end equal to the next start is not a conflict.
func Conflicts(items []Item, ignored map[string]bool) []Conflict {
	type span struct {
		item       Item
		start, end Clock
	}
	spans := make([]span, 0, len(items))
	for _, it := range items {
		s, e, ok := it.Span()
		if !ok {
			continue
		}
		spans = append(spans, span{item: it, start: s, end: e})
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})

	var found []Conflict
	for i := 0; i+1 < len(spans); i++ {
		cur, next := spans[i], spans[i+1]
		if next.start < cur.end && !ignored[next.item.ID] {
			found = append(found, Conflict{A: cur.item, B: next.item})
		}
	}
	return found
}

// AutoFix moves c.B to start FixBuffer after c.A ends, keeping its duration.
// Items stay within one day: a move that would end after 23:59 fails with
// ErrPastMidnight and c.B is returned unchanged.
func AutoFix(c Conflict) (Item, error) {
	fixed := c.B
	_, aEnd, okA := c.A.Span()
	bStart, bEnd, okB := c.B.Span()
	if !okA || !okB {
		return fixed, nil
	}
	start := aEnd.Add(FixBuffer)
	end := start + (bEnd - bStart)
	if end >= minutesPerDay {
		return c.B, fmt.Errorf("%w: %s would end at %s", ErrPastMidnight, c.B.Title, end)
	}
	fixed.StartTime = start.String()
	fixed.EndTime = end.String()
	return fixed, nil
}

// Resolver tracks the session-local ignore set. The set is never persisted.
type Resolver struct {
	mu      sync.Mutex
	ignored map[string]bool
}

// NewResolver returns a Resolver with an empty ignore set.
func NewResolver() *Resolver {
	return &Resolver{ignored: make(map[string]bool)}
}

// Conflicts reports conflicts in items, honouring the ignore set.
func (r *Resolver) Conflicts(items []Item) []Conflict {
	r.mu.Lock()
	ignored := make(map[string]bool, len(r.ignored))
	for id := range r.ignored {
		ignored[id] = true
	}
	r.mu.Unlock()
	return Conflicts(items, ignored)
}

// AutoFix resolves only the first reported conflict and returns the updated
// list together with the moved item. ok is false when there is nothing to
// fix. Callers re-invoke to cascade. When the first conflict cannot be
// moved the list is returned untouched with the error.
func (r *Resolver) AutoFix(items []Item) (updated []Item, moved Item, ok bool, err error) {
	conflicts := r.Conflicts(items)
	if len(conflicts) == 0 {
		return items, Item{}, false, nil
	}
	moved, err = AutoFix(conflicts[0])
	if err != nil {
		return items, Item{}, false, err
	}
	updated, _ = Replace(items, moved)
	return updated, moved, true, nil
}

// Ignore suppresses id from future reports.
func (r *Resolver) Ignore(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ignored[id] = true
}

// IgnoreFirst ignores the later item of the first current conflict.
func (r *Resolver) IgnoreFirst(items []Item) (Item, bool) {
	conflicts := r.Conflicts(items)
	if len(conflicts) == 0 {
		return Item{}, false
	}
	r.Ignore(conflicts[0].B.ID)
	return conflicts[0].B, true
}

// Reset clears the ignore set.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ignored = make(map[string]bool)
}

package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Active returns the first open item whose [start, end) covers now. Items
// in dismissed are skipped. It drives the sticky focus alert.
func Active(items []Item, now time.Time, dismissed map[string]bool) (Item, bool) {
	c := ClockOf(now)
	for _, it := range items {
		if it.Completed || dismissed[it.ID] {
			continue
		}
		s, e, ok := it.Span()
		if !ok {
			continue
		}
		if s <= c && c < e {
			return it, true
		}
	}
	return Item{}, false
}

// Next returns the earliest open item starting after now.
func Next(items []Item, now time.Time) (Item, bool) {
	c := ClockOf(now)
	var upcoming []Item
	for _, it := range items {
		s, _, ok := it.Span()
		if it.Completed || !ok || s <= c {
			continue
		}
		upcoming = append(upcoming, it)
	}
	if len(upcoming) == 0 {
		return Item{}, false
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		a, _, _ := upcoming[i].Span()
		b, _, _ := upcoming[j].Span()
		return a < b
	})
	return upcoming[0], true
}

// Countdown formats the time left until item starts as MM:SS.
func Countdown(item Item, now time.Time) string {
	s, _, ok := item.Span()
	if !ok {
		return "--:--"
	}
	diff := s.On(now).Sub(now)
	if diff <= 0 {
		return "00:00"
	}
	mins := int(diff / time.Minute)
	secs := int((diff % time.Minute) / time.Second)
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// NextCountdown combines Next and Countdown; it returns "--:--" and an empty
// title when nothing is upcoming.
func NextCountdown(items []Item, now time.Time) (title, countdown string) {
	next, ok := Next(items, now)
	if !ok {
		return "", "--:--"
	}
	return next.Title, Countdown(next, now)
}

package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidRange is returned for items that end at or before they start.
var ErrInvalidRange = errors.New("schedule: end must be after start")

// Item is one entry of the daily schedule.
type Item struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	StartTime string `json:"startTime" yaml:"startTime"`
	EndTime   string `json:"endTime" yaml:"endTime"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// NewItem validates the times and returns an item with a fresh id.
func NewItem(title, start, end string) (Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Item{}, errors.New("schedule: title required")
	}
	s, err := ParseClock(start)
	if err != nil {
		return Item{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Item{}, err
	}
	if e <= s {
		return Item{}, fmt.Errorf("%w: %s-%s", ErrInvalidRange, s, e)
	}
	return Item{
		ID:        uuid.NewString(),
		Title:     title,
		StartTime: s.String(),
		EndTime:   e.String(),
	}, nil
}

// Span returns the parsed start and end. ok is false when either time does
// not parse; such items never take part in conflict detection.
func (i Item) Span() (start, end Clock, ok bool) {
	s, err := ParseClock(i.StartTime)
	if err != nil {
		return 0, 0, false
	}
	e, err := ParseClock(i.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return s, e, true
}

// Duration is the length of the item, zero when its times are unreadable.
func (i Item) Duration() time.Duration {
	s, e, ok := i.Span()
	if !ok {
		return 0
	}
	return time.Duration(e-s) * time.Minute
}

// Add appends item.
func Add(items []Item, item Item) []Item {
	return append(append([]Item(nil), items...), item)
}

// Remove drops the item with id.
func Remove(items []Item, id string) ([]Item, bool) {
	out := make([]Item, 0, len(items))
	found := false
	for _, it := range items {
		if it.ID == id {
			found = true
			continue
		}
		out = append(out, it)
	}
	return out, found
}

// Replace swaps the item with the same id as updated.
func Replace(items []Item, updated Item) ([]Item, bool) {
	out := append([]Item(nil), items...)
	for i, it := range out {
		if it.ID == updated.ID {
			out[i] = updated
			return out, true
		}
	}
	return out, false
}

// Complete marks the item with id completed.
func Complete(items []Item, id string) ([]Item, bool) {
	out := append([]Item(nil), items...)
	for i, it := range out {
		if it.ID == id {
			out[i].Completed = true
			return out, true
		}
	}
	return out, false
}

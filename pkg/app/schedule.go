package app

import (
	"errors"
	"fmt"

	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/schedule"
)

// Schedules returns a copy of the active schedule.
func (s *Session) Schedules() []schedule.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	return append([]schedule.Item(nil), s.active.Schedules...)
}

// AddSchedule appends a new item.
func (s *Session) AddSchedule(title, start, end string) (schedule.Item, error) {
	it, err := schedule.NewItem(title, start, end)
	if err != nil {
		return schedule.Item{}, err
	}
	err = s.edit(false, func(p *profile.Profile) error {
		p.Schedules = schedule.Add(p.Schedules, it)
		return nil
	})
	return it, err
}

// RemoveSchedule deletes the item with id.
func (s *Session) RemoveSchedule(id string) error {
	return s.edit(false, func(p *profile.Profile) error {
		items, ok := schedule.Remove(p.Schedules, id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
		}
		p.Schedules = items
		return nil
	})
}

// CompleteSchedule marks the item with id completed.
func (s *Session) CompleteSchedule(id string) error {
	return s.edit(false, func(p *profile.Profile) error {
		items, ok := schedule.Complete(p.Schedules, id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
		}
		p.Schedules = items
		return nil
	})
}

// Conflicts lists adjacent overlaps not ignored this session.
func (s *Session) Conflicts() []schedule.Conflict {
	return s.resolver.Conflicts(s.Schedules())
}

// AutoFix moves the later item of the first conflict to start five minutes
// after the earlier one ends and saves the schedule. ok is false when there
// was nothing to fix. A move past midnight fails with
// schedule.ErrPastMidnight and leaves the schedule as it was.
func (s *Session) AutoFix() (moved schedule.Item, ok bool, err error) {
	err = s.edit(false, func(p *profile.Profile) error {
		var updated []schedule.Item
		var ferr error
		updated, moved, ok, ferr = s.resolver.AutoFix(p.Schedules)
		if ferr != nil {
			return ferr
		}
		if !ok {
			return errNothingToFix
		}
		p.Schedules = updated
		return nil
	})
	if errors.Is(err, errNothingToFix) {
		return schedule.Item{}, false, nil
	}
	return moved, ok, err
}

var errNothingToFix = errors.New("app: no conflicts")

// IgnoreConflict stops reporting conflicts whose later item is id.
func (s *Session) IgnoreConflict(id string) {
	s.resolver.Ignore(id)
}

// IgnoreFirstConflict ignores the later item of the first conflict.
func (s *Session) IgnoreFirstConflict() (schedule.Item, bool) {
	return s.resolver.IgnoreFirst(s.Schedules())
}

// CurrentAlert returns the item running now that has not been dismissed.
func (s *Session) CurrentAlert() (schedule.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return schedule.Item{}, false
	}
	return schedule.Active(s.active.Schedules, s.now(), s.dismissed)
}

// Dismiss hides the alert for id until the profile is opened again.
func (s *Session) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed[id] = true
}

// NextUp returns the title of the next item and the countdown to it.
func (s *Session) NextUp() (title, countdown string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return "", "--:--"
	}
	return schedule.NextCountdown(s.active.Schedules, s.now())
}

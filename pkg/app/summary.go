package app

import (
	"tableflip.dev/deck/pkg/hotkey"
	"tableflip.dev/deck/pkg/schedule"
	"tableflip.dev/deck/pkg/tile"
)

// Summary describes the open profile for `deck info` and `deck show`.
type Summary struct {
	Profile    string              `json:"profile"`
	Tiles      int                 `json:"tiles"`
	Folders    int                 `json:"folders"`
	Duplicates []string            `json:"duplicates,omitempty"`
	Hotkeys    []hotkey.Binding    `json:"hotkeys,omitempty"`
	Schedules  int                 `json:"schedules"`
	Completed  int                 `json:"completed"`
	Conflicts  []schedule.Conflict `json:"conflicts,omitempty"`
	NextTitle  string              `json:"next,omitempty"`
	Countdown  string              `json:"countdown"`
	Volume     float64             `json:"volume"`
	Actions    int                 `json:"actions"`
	HyperFocus bool                `json:"hyperFocus"`
}

// Summarize gathers counts over the open profile.
func (s *Session) Summarize() (Summary, error) {
	p := s.Active()
	if p == nil {
		return Summary{}, ErrNoProfile
	}
	sum := Summary{
		Profile:    p.Name,
		Duplicates: tile.NewIndex(p.Tiles).Duplicates(),
		Hotkeys:    s.Bindings(),
		Schedules:  len(p.Schedules),
		Conflicts:  s.Conflicts(),
		Volume:     s.Volume(),
		Actions:    s.ActionCount(),
		HyperFocus: s.HyperFocus(),
	}
	for _, t := range tile.Flatten(p.Tiles) {
		if t.IsFolder() {
			sum.Folders++
			continue
		}
		sum.Tiles++
	}
	for _, it := range p.Schedules {
		if it.Completed {
			sum.Completed++
		}
	}
	sum.NextTitle, sum.Countdown = s.NextUp()
	return sum, nil
}

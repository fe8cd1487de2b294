package profiles

import (
	"time"

	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/schedule"
	"tableflip.dev/deck/pkg/tile"
)

// Demo returns a sample profile that touches every action type.
func Demo(name string, now time.Time) *profile.Profile {
	p := profile.New(name)

	mail := tile.New("Email", tile.Action{Type: tile.ActionURL, Value: "mail.google.com"})
	mail.Icon, mail.Color, mail.Hotkey = "Mail", "blue", "CmdOrCtrl+Shift+M"

	standup := tile.New("Standup", tile.Action{Type: tile.ActionNotification, Title: "Standup", Body: "Starts in 5 minutes"})
	standup.Icon, standup.Color, standup.Urgency = "Bell", "orange", tile.UrgencyHigh

	focus := tile.New("Hyper Focus", tile.Action{Type: tile.ActionUI, Action: "toggleHyperFocus"})
	focus.Icon, focus.Color = "Zap", "purple"

	brew := tile.New("Tea", tile.Action{Type: tile.ActionTimer, EndTime: now.Add(25 * time.Minute).UnixMilli()})
	brew.Icon, brew.Color = "Timer", "green"

	term := tile.New("Terminal", tile.Action{Type: tile.ActionApp, Value: "terminal"})
	term.Hotkey = "CmdOrCtrl+Shift+T"
	build := tile.New("Build", tile.Action{Type: tile.ActionShell, Value: "make build"}, tile.Action{Type: tile.ActionLog, Value: "build started"})
	calc := tile.New("Calculator", tile.Action{Type: tile.ActionApp, Value: "calc"})

	dev := tile.NewFolder("Dev")
	dev.Color = "cyan"
	dev.Children = []*tile.Tile{term, build, calc}

	p.Tiles = []*tile.Tile{mail, standup, focus, brew, dev}
	p.Schedules = []schedule.Item{
		{ID: "standup", Title: "Standup", StartTime: "09:00", EndTime: "09:15"},
		{ID: "review", Title: "Design review", StartTime: "09:10", EndTime: "10:00"},
		{ID: "lunch", Title: "Lunch", StartTime: "12:00", EndTime: "13:00"},
	}
	return p
}

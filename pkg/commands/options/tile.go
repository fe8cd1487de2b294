package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/deck/pkg/tile"
	"tableflip.dev/deck/pkg/timeutil"
)

// TileOptions carries the fields of a tile given on the command line.
type TileOptions struct {
	Name    string
	Icon    string
	Color   string
	Hotkey  string
	Urgency string
	Parent  string
	Folder  bool
	Actions []string
	Timer   string
}

func AddTileArgs(cmd *cobra.Command, o *TileOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "", "Tile label.")
	cmd.Flags().StringVar(&o.Icon, "icon", "", "Icon name or image path.")
	cmd.Flags().StringVar(&o.Color, "color", "", `Colour name or hex, example: --color=blue.`)
	cmd.Flags().StringVar(&o.Hotkey, "hotkey", "", `Accelerator, example: --hotkey="CmdOrCtrl+Shift+M".`)
	cmd.Flags().StringVar(&o.Urgency, "urgency", "", "Border urgency: high, medium or none.")
	cmd.Flags().StringArrayVarP(&o.Actions, "action", "a", nil,
		`Action as type=value, repeatable, example: -a url=example.com -a "shell=make test".`)
	cmd.Flags().StringVar(&o.Timer, "timer", "", `Countdown shown on the tile, example: --timer=25m or --timer=1h30m.`)
}

func AddParentArg(cmd *cobra.Command, o *TileOptions) {
	cmd.Flags().StringVar(&o.Parent, "parent", "", "Folder id to add the tile to. Defaults to the root.")
	cmd.Flags().BoolVar(&o.Folder, "folder", false, "Create a folder instead of an action tile.")
}

// ParseActions parses every --action value.
func (o *TileOptions) ParseActions() ([]tile.Action, error) {
	out := make([]tile.Action, 0, len(o.Actions))
	for _, raw := range o.Actions {
		a, err := tile.ParseAction(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// ParseUrgency maps the --urgency value.
func (o *TileOptions) ParseUrgency() (tile.Urgency, error) {
	switch o.Urgency {
	case "", "none":
		return tile.UrgencyNone, nil
	case string(tile.UrgencyHigh):
		return tile.UrgencyHigh, nil
	case string(tile.UrgencyMedium):
		return tile.UrgencyMedium, nil
	}
	return "", fmt.Errorf("unknown urgency %q", o.Urgency)
}

// TimerAction turns --timer into a timer action ending that long after now.
// ok is false when no timer was given.
func (o *TileOptions) TimerAction(now time.Time) (a tile.Action, ok bool, err error) {
	if o.Timer == "" {
		return tile.Action{}, false, nil
	}
	end, err := timeutil.EndTime(now, o.Timer)
	if err != nil {
		return tile.Action{}, false, err
	}
	return tile.Action{Type: tile.ActionTimer, EndTime: end}, true, nil
}

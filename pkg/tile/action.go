package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionType tags the effect an Action performs.
type ActionType string

const (
	ActionURL          ActionType = "url"
	ActionApp          ActionType = "app"
	ActionShell        ActionType = "shell"
	ActionNotification ActionType = "notification"
	ActionSound        ActionType = "sound"
	ActionUI           ActionType = "ui"
	ActionLog          ActionType = "log"
	// ActionTimer carries a countdown end time for display. It is never
	// dispatched.
	ActionTimer ActionType = "timer"
)

// ActionTypes lists every known action type in display order.
func ActionTypes() []ActionType {
	return []ActionType{
		ActionURL,
		ActionApp,
		ActionShell,
		ActionNotification,
		ActionSound,
		ActionUI,
		ActionLog,
		ActionTimer,
	}
}

// ParseActionType returns the ActionType for raw, case-insensitively.
func ParseActionType(raw string) (ActionType, error) {
	t := ActionType(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range ActionTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("tile: unknown action type %q", raw)
}

// Action is one declared effect of a tile.
type Action struct {
	Type  ActionType `json:"type" yaml:"type"`
	Value string     `json:"value,omitempty" yaml:"value,omitempty"`

	// Title and Body are used by notification actions.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Body  string `json:"body,omitempty" yaml:"body,omitempty"`

	// Volume overrides the global volume for sound actions.
	Volume *float64 `json:"volume,omitempty" yaml:"volume,omitempty"`

	// Action names a ui directive such as "toggleHyperFocus".
	Action string `json:"action,omitempty" yaml:"action,omitempty"`

	// EndTime is a unix millisecond timestamp for timer actions.
	EndTime int64 `json:"endTime,omitempty" yaml:"endTime,omitempty"`
}

// Directive returns the ui directive, preferring Action over Value.
func (a Action) Directive() string {
	if a.Action != "" {
		return a.Action
	}
	return a.Value
}

// Clone returns a copy that shares no pointers with a.
func (a Action) Clone() Action {
	out := a
	if a.Volume != nil {
		v := *a.Volume
		out.Volume = &v
	}
	return out
}

// String renders the action as type=value.
func (a Action) String() string {
	switch a.Type {
	case ActionNotification:
		body := a.Body
		if body == "" {
			body = a.Value
		}
		if a.Title != "" {
			return fmt.Sprintf("%s=%s: %s", a.Type, a.Title, body)
		}
		return fmt.Sprintf("%s=%s", a.Type, body)
	case ActionUI:
		return fmt.Sprintf("%s=%s", a.Type, a.Directive())
	case ActionTimer:
		return fmt.Sprintf("%s=%d", a.Type, a.EndTime)
	default:
		return fmt.Sprintf("%s=%s", a.Type, a.Value)
	}
}

// ParseAction parses the type=value form used on the command line. The value
// of a timer is a unix millisecond timestamp; a notification value of the
// form "title: body" sets both fields. The separator is a colon followed by
// a space, so "Standup at 10:30" stays one body.
func ParseAction(raw string) (Action, error) {
	kind, value, found := strings.Cut(raw, "=")
	if !found {
		return Action{}, fmt.Errorf("tile: action %q is not in type=value form", raw)
	}
	t, err := ParseActionType(kind)
	if err != nil {
		return Action{}, err
	}
	a := Action{Type: t}
	switch t {
	case ActionTimer:
		end, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return Action{}, fmt.Errorf("tile: timer end time %q: %w", value, err)
		}
		a.EndTime = end
	case ActionUI:
		a.Action = strings.TrimSpace(value)
	case ActionNotification:
		if title, body, ok := strings.Cut(value, ": "); ok {
			a.Title = strings.TrimSpace(title)
			a.Body = strings.TrimSpace(body)
		} else {
			a.Body = strings.TrimSpace(value)
		}
	default:
		a.Value = strings.TrimSpace(value)
	}
	return a, nil
}

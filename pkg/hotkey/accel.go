// Package hotkey maps key combinations to tiles.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAccelerator is returned for combinations that cannot be parsed.
var ErrInvalidAccelerator = errors.New("hotkey: invalid accelerator")

var modifiers = map[string]string{
	"cmdorctrl":        "ctrl",
	"commandorcontrol": "ctrl",
	"ctrl":             "ctrl",
	"control":          "ctrl",
	"alt":              "alt",
	"option":           "alt",
	"altgr":            "alt",
	"shift":            "shift",
	"cmd":              "super",
	"command":          "super",
	"super":            "super",
	"meta":             "super",
}

var modifierOrder = []string{"ctrl", "alt", "shift", "super"}

var keyNames = map[string]string{
	"space":     "space",
	"return":    "enter",
	"enter":     "enter",
	"escape":    "esc",
	"esc":       "esc",
	"tab":       "tab",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
	"plus":      "+",
	"backspace": "backspace",
	"delete":    "delete",
}

// Normalize turns an accelerator such as "CmdOrCtrl+Shift+T" into the
// canonical lower-case form "ctrl+shift+t". Modifiers are de-duplicated
// and ordered ctrl, alt, shift, super; exactly one non-modifier key is
// required. The key strings " " and "+" stand for themselves, as bubbletea
// reports them.
func Normalize(accel string) (string, error) {
	switch accel {
	case " ":
		return "space", nil
	case "+":
		return "+", nil
	}
	accel = strings.TrimSpace(accel)
	if accel == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidAccelerator)
	}
	held := map[string]bool{}
	key := ""
	for _, part := range strings.Split(accel, "+") {
		p := strings.ToLower(strings.TrimSpace(part))
		if p == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidAccelerator, accel)
		}
		if m, ok := modifiers[p]; ok {
			held[m] = true
			continue
		}
		if key != "" {
			return "", fmt.Errorf("%w: %q has more than one key", ErrInvalidAccelerator, accel)
		}
		if named, ok := keyNames[p]; ok {
			p = named
		}
		key = p
	}
	if key == "" {
		return "", fmt.Errorf("%w: %q has no key", ErrInvalidAccelerator, accel)
	}
	parts := make([]string, 0, len(held)+1)
	for _, m := range modifierOrder {
		if held[m] {
			parts = append(parts, m)
		}
	}
	return strings.Join(append(parts, key), "+"), nil
}

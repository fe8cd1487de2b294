// Package action dispatches tile actions to host capabilities.
package action

import (
	"context"
	"strings"
)

// Host is the set of side effects an action can ask of the operating
// system or of a remote bridge.
type Host interface {
	OpenExternal(ctx context.Context, url string) error
	RunCommand(ctx context.Context, command string) error
	ShowNotification(ctx context.Context, title, body string) error
	NotificationsSupported() bool
	// OS is the platform family: "windows", "darwin" or "linux".
	OS() string
}

// Player plays a sound file at a volume in [0, 1].
type Player interface {
	Play(ctx context.Context, path string, volume float64) error
}

// NormalizeURL prefixes https:// unless raw already names http(s).
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}

var aliases = map[string]map[string]string{
	"chrome": {
		"windows": "start chrome",
		"darwin":  "open -a 'Google Chrome'",
		"linux":   "google-chrome",
	},
	"terminal": {
		"windows": "start cmd",
		"darwin":  "open -a Terminal",
		"linux":   "x-terminal-emulator",
	},
	"calc": {
		"windows": "start calc",
		"darwin":  "open -a Calculator",
		"linux":   "gnome-calculator",
	},
}

// Aliases lists the names ResolveCommand understands.
func Aliases() []string {
	return []string{"calc", "chrome", "terminal"}
}

// ResolveCommand maps an app or shell value to the command line to run on
// goos. Unknown operating systems resolve like linux.
func ResolveCommand(goos, value string) string {
	value = strings.TrimSpace(value)
	family := Family(goos)
	if byOS, ok := aliases[strings.ToLower(value)]; ok {
		return byOS[family]
	}
	if family == "windows" && !strings.HasPrefix(strings.ToLower(value), "start ") {
		return `start "" "` + value + `"`
	}
	return value
}

// Family folds GOOS values into windows, darwin or linux.
func Family(goos string) string {
	switch strings.ToLower(goos) {
	case "windows", "win32":
		return "windows"
	case "darwin", "macos", "mac":
		return "darwin"
	}
	return "linux"
}

package host

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"tableflip.dev/deck/pkg/action"
)

// Sound plays audio files through the platform's command line player.
type Sound struct {
	goos  string
	start Starter
}

var _ action.Player = (*Sound)(nil)

// NewSound returns a player sharing the process starter of sys.
func NewSound(sys *System) *Sound {
	return &Sound{goos: sys.goos, start: sys.start}
}

// Play starts playback of path. Missing files fail before anything is
// spawned.
func (p *Sound) Play(ctx context.Context, path string, volume float64) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("host: sound: %w", err)
	}
	volume = action.ClampVolume(volume)
	switch p.goos {
	case "darwin":
		return p.start(ctx, "afplay", "-v", strconv.FormatFloat(volume, 'f', 2, 64), path)
	case "windows":
		script := fmt.Sprintf("$p=New-Object System.Media.SoundPlayer '%s';$p.PlaySync()", psEscape(path))
		return p.start(ctx, "powershell", "-NoProfile", "-Command", script)
	}
	// paplay volume is linear in [0, 65536].
	return p.start(ctx, "paplay", "--volume="+strconv.Itoa(int(volume*65536)), path)
}

package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/logging"
	"tableflip.dev/deck/pkg/tile"
)

// DefaultNotificationTitle is shown when a notification names no title.
const DefaultNotificationTitle = "VIP Stream Deck"

// UIHandler receives ui directives such as "toggleHyperFocus".
type UIHandler func(directive string)

// Options carry per-dispatch settings.
type Options struct {
	// Volume is the global volume used by sound actions without their own.
	Volume float64
}

// Report summarises one Dispatch call.
type Report struct {
	Executed int
	Skipped  int
	Failed   []Failure
}

// Failure is one action that returned an error or panicked.
type Failure struct {
	Action tile.Action
	Err    error
}

// Err joins every failure, or returns nil.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, fmt.Errorf("%s: %w", f.Action.Type, f.Err))
	}
	return errors.Join(errs...)
}

// Dispatcher runs action lists against a Host.
type Dispatcher struct {
	Host   Host
	Player Player
	Logger *zap.Logger
	OnUI   UIHandler
}

// Dispatch runs actions in order. Each one completes before the next
// starts; failures are logged and collected and never stop the list.
func (d *Dispatcher) Dispatch(ctx context.Context, actions []tile.Action, opts Options) Report {
	var r Report
	logger := logging.OrNop(d.Logger)
	for _, a := range actions {
		if a.Type == tile.ActionTimer {
			r.Skipped++
			continue
		}
		if err := ctx.Err(); err != nil {
			r.Failed = append(r.Failed, Failure{Action: a, Err: err})
			continue
		}
		if err := d.safeExecute(ctx, a, opts); err != nil {
			logger.Error("action failed", zap.String("type", string(a.Type)), zap.String("value", a.Value), zap.Error(err))
			r.Failed = append(r.Failed, Failure{Action: a, Err: err})
			continue
		}
		r.Executed++
	}
	return r
}

func (d *Dispatcher) safeExecute(ctx context.Context, a tile.Action, opts Options) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("action: panic: %v", rec)
		}
	}()
	return d.Execute(ctx, a, opts)
}

// Execute performs a single action.
func (d *Dispatcher) Execute(ctx context.Context, a tile.Action, opts Options) error {
	logger := logging.OrNop(d.Logger)
	switch a.Type {
	case tile.ActionURL:
		if d.Host == nil {
			return ErrNoHost
		}
		return d.Host.OpenExternal(ctx, NormalizeURL(a.Value))
	case tile.ActionApp, tile.ActionShell:
		if d.Host == nil {
			return ErrNoHost
		}
		return d.Host.RunCommand(ctx, ResolveCommand(d.Host.OS(), a.Value))
	case tile.ActionNotification:
		if d.Host == nil || !d.Host.NotificationsSupported() {
			logger.Debug("notifications unsupported, skipping")
			return nil
		}
		title := a.Title
		if title == "" {
			title = DefaultNotificationTitle
		}
		body := a.Body
		if body == "" {
			body = a.Value
		}
		return d.Host.ShowNotification(ctx, title, body)
	case tile.ActionSound:
		if d.Player == nil {
			return ErrNoPlayer
		}
		vol := opts.Volume
		if a.Volume != nil {
			vol = *a.Volume
		}
		return d.Player.Play(ctx, a.Value, ClampVolume(vol))
	case tile.ActionUI:
		if d.OnUI != nil {
			d.OnUI(a.Directive())
		}
		return nil
	case tile.ActionLog:
		logger.Info("tile log", zap.String("message", a.Value))
		return nil
	case tile.ActionTimer:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownType, a.Type)
}

var (
	// ErrNoHost is returned when an action needs a host and none is set.
	ErrNoHost = errors.New("action: no host")
	// ErrNoPlayer is returned by sound actions without a player.
	ErrNoPlayer = errors.New("action: no sound player")
	// ErrUnknownType marks an action whose type is not understood.
	ErrUnknownType = errors.New("action: unknown type")
)

// ClampVolume limits v to [0, 1].
func ClampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Remaining is the time left until the timer endTime (unix ms), never
// negative.
func Remaining(endTime int64, now time.Time) time.Duration {
	left := time.UnixMilli(endTime).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// FormatRemaining renders a timer countdown as M:SS, or "" once expired.
func FormatRemaining(endTime int64, now time.Time) string {
	left := Remaining(endTime, now)
	if left <= 0 {
		return ""
	}
	secs := int(left.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

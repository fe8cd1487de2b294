// Package host implements action capabilities on the local machine by
// starting helper processes.
package host

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/action"
	"tableflip.dev/deck/pkg/logging"
)

// Starter starts a process without waiting for it to finish.
type Starter func(ctx context.Context, name string, args ...string) error

// System is the local action.Host. Processes are fire-and-forget: they are
// started, reaped in the background, and their exit status is only logged.
type System struct {
	goos     string
	start    Starter
	lookPath func(string) (string, error)
	logger   *zap.Logger
}

var _ action.Host = (*System)(nil)

// Option configures a System.
type Option func(*System)

// WithOS overrides the platform family, mostly for tests and the
// "platform" config key.
func WithOS(goos string) Option {
	return func(s *System) { s.goos = action.Family(goos) }
}

// WithStarter replaces process creation.
func WithStarter(start Starter) Option {
	return func(s *System) { s.start = start }
}

// WithLookPath replaces PATH lookups.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(s *System) { s.lookPath = fn }
}

// New returns a System host for the running platform.
func New(logger *zap.Logger, opts ...Option) *System {
	s := &System{
		goos:     action.Family(runtime.GOOS),
		lookPath: exec.LookPath,
		logger:   logging.OrNop(logger),
	}
	s.start = s.startDetached
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *System) OS() string { return s.goos }

func (s *System) OpenExternal(ctx context.Context, url string) error {
	switch s.goos {
	case "darwin":
		return s.start(ctx, "open", url)
	case "windows":
		return s.start(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	}
	return s.start(ctx, "xdg-open", url)
}

func (s *System) RunCommand(ctx context.Context, command string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("host: empty command")
	}
	if s.goos == "windows" {
		return s.start(ctx, "cmd", "/C", command)
	}
	return s.start(ctx, "sh", "-c", command)
}

func (s *System) NotificationsSupported() bool {
	switch s.goos {
	case "darwin":
		_, err := s.lookPath("osascript")
		return err == nil
	case "windows":
		_, err := s.lookPath("powershell")
		return err == nil
	}
	_, err := s.lookPath("notify-send")
	return err == nil
}

func (s *System) ShowNotification(ctx context.Context, title, body string) error {
	switch s.goos {
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(body), strconv.Quote(title))
		return s.start(ctx, "osascript", "-e", script)
	case "windows":
		script := fmt.Sprintf(
			"[reflection.assembly]::loadwithpartialname('System.Windows.Forms');"+
				"$n=New-Object System.Windows.Forms.NotifyIcon;$n.Icon=[System.Drawing.SystemIcons]::Information;"+
				"$n.Visible=$true;$n.ShowBalloonTip(5000,'%s','%s',[System.Windows.Forms.ToolTipIcon]::None)",
			psEscape(title), psEscape(body))
		return s.start(ctx, "powershell", "-NoProfile", "-Command", script)
	}
	return s.start(ctx, "notify-send", title, body)
}

func (s *System) startDetached(_ context.Context, name string, args ...string) error {
	// Not bound to ctx: launched programs outlive the request that started
	// them.
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("host: start %s: %w", name, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			s.logger.Warn("process exited", zap.String("cmd", name), zap.Error(err))
		}
	}()
	return nil
}

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/action"
	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/bridge"
	"tableflip.dev/deck/pkg/host"
	"tableflip.dev/deck/pkg/hotkey"
	"tableflip.dev/deck/pkg/logging"
	"tableflip.dev/deck/pkg/store"
)

// deckEnv is what a command needs to work on profiles.
type deckEnv struct {
	Config store.Config
	Logger *zap.Logger
	Host   *host.System
	// Remote is set when actions run through a bridge.
	Remote  *bridge.Client
	Session *app.Session
}

type envOptions struct {
	// open selects whether a profile must be opened before the command runs.
	open bool
	// logFile sends logs to a file instead of stderr.
	logFile bool
	// registrar replaces the session's default keymap.
	registrar hotkey.Registrar
	// remote is the address of a bridge that runs actions instead of this
	// machine.
	remote string
}

func loadEnv(ctx context.Context, o envOptions) (*deckEnv, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	var paths []string
	if path := cfg.LogFile(); path != "" {
		paths = append(paths, path)
	} else if o.logFile {
		if err := os.MkdirAll(cfg.BasePath(), 0o755); err != nil {
			return nil, err
		}
		paths = append(paths, filepath.Join(cfg.BasePath(), "deck.log"))
	}
	logger, err := logging.New(cfg.LogLevel(), paths...)
	if err != nil {
		return nil, err
	}

	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	sys := host.New(logger.Named("host"), host.WithOS(cfg.Platform()))
	var (
		actions action.Host   = sys
		player  action.Player = host.NewSound(sys)
		remote  *bridge.Client
	)
	if o.remote != "" {
		if remote, err = connect(ctx, bridge.NewClient(o.remote, logger.Named("bridge"))); err != nil {
			_ = logger.Sync()
			return nil, err
		}
		actions, player = remote, remote
	}
	session, err := app.New(app.Options{
		Persistence: p,
		Host:        actions,
		Player:      player,
		Registrar:   o.registrar,
		Logger:      logger,
		Debounce:    cfg.Debounce(),
		Volume:      cfg.Volume(),
	})
	if err != nil {
		return nil, err
	}

	env := &deckEnv{Config: cfg, Logger: logger, Host: sys, Remote: remote, Session: session}
	if o.open {
		if err := session.OpenOrDefault(ctx, po.Name); err != nil {
			if errors.Is(err, app.ErrNoProfiles) {
				return nil, fmt.Errorf("%w, create one with `deck new <name>`", err)
			}
			return nil, err
		}
	}
	return env, nil
}

// connect waits for the bridge behind c to answer.
func connect(ctx context.Context, c *bridge.Client) (*bridge.Client, error) {
	if err := c.WaitReady(ctx); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", c.BaseURL, err)
	}
	c.Logger.Info("using remote bridge", zap.String("url", c.BaseURL), zap.String("os", c.OS()))
	return c, nil
}

// Close writes pending edits and flushes the logger.
func (e *deckEnv) Close() error {
	err := e.Session.Close()
	_ = e.Logger.Sync()
	return err
}

// withEnv runs fn against a fresh environment and closes it afterwards.
func withEnv(ctx context.Context, o envOptions, fn func(ctx context.Context, env *deckEnv) error) error {
	env, err := loadEnv(ctx, o)
	if err != nil {
		return err
	}
	err = fn(ctx, env)
	if cerr := env.Close(); err == nil {
		err = cerr
	}
	return err
}

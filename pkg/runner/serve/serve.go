// Package serve runs the HTTP bridge next to the store watcher and the
// system load poller.
package serve

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/bridge"
	"tableflip.dev/deck/pkg/host"
	"tableflip.dev/deck/pkg/logging"
)

// DefaultStatsInterval is how often the poller samples system load.
const DefaultStatsInterval = 10 * time.Second

// Serve answers bridge requests until ctx is done.
type Serve struct {
	Session *app.Session
	Addr    string
	OS      string
	Stats   host.Sampler
	// StatsInterval of zero disables the poller.
	StatsInterval time.Duration
	Logger        *zap.Logger
}

func (s *Serve) Do(ctx context.Context) error {
	if s.Session == nil {
		return errors.New("serve: no session")
	}
	logger := logging.OrNop(s.Logger)
	stats := s.Stats
	if stats == nil {
		stats = host.SystemLoad
	}

	g, ctx := errgroup.WithContext(ctx)
	events, err := s.Session.Watch(ctx)
	if err != nil {
		return err
	}
	g.Go(func() error {
		srv := bridge.Server{
			Session: s.Session,
			Stats:   stats,
			OS:      s.OS,
			Logger:  logger.Named("bridge"),
		}
		return srv.Serve(ctx, s.Addr)
	})
	g.Go(func() error {
		s.Session.Follow(ctx, events)
		return nil
	})
	if s.StatsInterval > 0 {
		g.Go(func() error {
			host.Poll(ctx, s.StatsInterval, stats, func(l host.Load) {
				logger.Debug("system load", zap.Int("cpu", l.CPU), zap.Int("mem", l.Mem))
			}, logger.Named("stats"))
			return nil
		})
	}
	err = g.Wait()
	if ferr := s.Session.Flush(context.Background()); ferr != nil {
		logger.Error("save on shutdown", zap.Error(ferr))
	}
	return err
}

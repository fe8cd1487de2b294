package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/logging"
	"tableflip.dev/deck/pkg/profile"
)

// Saver coalesces profile edits into debounced whole-document writes. At
// most one write is in flight; an edit that lands during a write becomes
// the next write.
type Saver struct {
	store  Persistence
	delay  time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	pending *profile.Profile
	timer   *time.Timer
	closed  bool

	writeMu sync.Mutex
	timers  sync.WaitGroup
}

// NewSaver returns a Saver writing to store after delay of quiet.
func NewSaver(store Persistence, delay time.Duration, logger *zap.Logger) *Saver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Saver{
		store:  store,
		delay:  delay,
		logger: logging.OrNop(logger),
	}
}

// Schedule replaces the pending document with a copy of p and restarts the
// quiet timer.
func (s *Saver) Schedule(p *profile.Profile) {
	if p == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = profile.Clone(p)
	s.stopTimerLocked()
	s.timers.Add(1)
	s.timer = time.AfterFunc(s.delay, func() {
		defer s.timers.Done()
		if err := s.write(context.Background()); err != nil {
			s.logger.Error("save profile", zap.Error(err))
		}
	})
}

// Pending reports whether an edit is waiting to be written.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Flush writes the pending document now.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.stopTimerLocked()
	s.mu.Unlock()
	return s.write(ctx)
}

// Discard drops the pending document without writing it.
func (s *Saver) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.pending = nil
}

// Close flushes and waits for in-flight writes. Later Schedule calls are
// ignored.
func (s *Saver) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	err := s.Flush(context.Background())
	s.timers.Wait()
	return err
}

func (s *Saver) stopTimerLocked() {
	if s.timer == nil {
		return
	}
	if s.timer.Stop() {
		s.timers.Done()
	}
	s.timer = nil
}

func (s *Saver) write(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	p := s.pending
	s.pending = nil
	s.mu.Unlock()
	if p == nil {
		return nil
	}
	if err := s.store.Save(ctx, p); err != nil {
		return err
	}
	s.logger.Debug("profile saved", zap.String("profile", p.Name))
	return nil
}

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tableflip.dev/deck/pkg/profile"
)

// slowStore records writes and the highest number running at once.
type slowStore struct {
	*Memory
	delay time.Duration
	fail  error

	mu      sync.Mutex
	names   []string
	running int32
	maxRun  int32
}

func (s *slowStore) Save(ctx context.Context, p *profile.Profile) error {
	n := atomic.AddInt32(&s.running, 1)
	defer atomic.AddInt32(&s.running, -1)
	for {
		m := atomic.LoadInt32(&s.maxRun)
		if n <= m || atomic.CompareAndSwapInt32(&s.maxRun, m, n) {
			break
		}
	}
	time.Sleep(s.delay)
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	s.names = append(s.names, p.Name)
	s.mu.Unlock()
	return s.Memory.Save(ctx, p)
}

func (s *slowStore) writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

func TestSaverCoalescesBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	st := &slowStore{Memory: NewMemory()}
	s := NewSaver(st, 30*time.Millisecond, nil)

	for _, name := range []string{"a", "b", "c", "d"} {
		s.Schedule(profile.New(name))
	}
	require.Eventually(t, func() bool { return len(st.writes()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"d"}, st.writes())
	assert.False(t, s.Pending())
	require.NoError(t, s.Close())
}

func TestSaverSingleWriteInFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	st := &slowStore{Memory: NewMemory(), delay: 20 * time.Millisecond}
	s := NewSaver(st, time.Millisecond, nil)

	for i := 0; i < 10; i++ {
		s.Schedule(profile.New("work"))
		time.Sleep(5 * time.Millisecond)
	}
	require.NoError(t, s.Close())

	assert.Equal(t, int32(1), atomic.LoadInt32(&st.maxRun))
	assert.NotEmpty(t, st.writes())
	assert.False(t, s.Pending(), "edits made during a write are written afterwards")
}

func TestSaverFlushAndDiscard(t *testing.T) {
	defer goleak.VerifyNone(t)

	st := &slowStore{Memory: NewMemory()}
	s := NewSaver(st, time.Hour, nil)

	prof := profile.New("work")
	s.Schedule(prof)
	prof.Name = "mutated after schedule"
	require.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, []string{"work"}, st.writes(), "the scheduled copy is written")

	s.Schedule(profile.New("dropped"))
	s.Discard()
	require.NoError(t, s.Close())
	assert.Equal(t, []string{"work"}, st.writes())

	s.Schedule(profile.New("after close"))
	assert.False(t, s.Pending())
}

func TestSaverFlushReportsError(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("disk full")
	s := NewSaver(&slowStore{Memory: NewMemory(), fail: boom}, time.Hour, nil)
	s.Schedule(profile.New("work"))
	assert.ErrorIs(t, s.Flush(context.Background()), boom)
	require.NoError(t, s.Close())
}

package host

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) start(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))
	return nil
}

func found(string) (string, error)   { return "/usr/bin/x", nil }
func missing(string) (string, error) { return "", errors.New("not found") }

func TestSystemCommandsPerPlatform(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		goos string
		open []string
		run  []string
	}{
		{"linux", []string{"xdg-open", "https://x.com"}, []string{"sh", "-c", "ls -la"}},
		{"darwin", []string{"open", "https://x.com"}, []string{"sh", "-c", "ls -la"}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", "https://x.com"}, []string{"cmd", "/C", "ls -la"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			rec := &recorder{}
			s := New(nil, WithOS(tt.goos), WithStarter(rec.start), WithLookPath(found))

			require.NoError(t, s.OpenExternal(ctx, "https://x.com"))
			require.NoError(t, s.RunCommand(ctx, "ls -la"))
			assert.Equal(t, [][]string{tt.open, tt.run}, rec.calls)
			assert.Equal(t, tt.goos, s.OS())
		})
	}
}

func TestNotifications(t *testing.T) {
	rec := &recorder{}
	s := New(nil, WithOS("linux"), WithStarter(rec.start), WithLookPath(found))
	assert.True(t, s.NotificationsSupported())
	require.NoError(t, s.ShowNotification(context.Background(), "VIP Stream Deck", "Stretch"))
	assert.Equal(t, [][]string{{"notify-send", "VIP Stream Deck", "Stretch"}}, rec.calls)

	s = New(nil, WithOS("linux"), WithStarter(rec.start), WithLookPath(missing))
	assert.False(t, s.NotificationsSupported())
}

func TestRunCommandRejectsEmpty(t *testing.T) {
	s := New(nil, WithStarter((&recorder{}).start))
	assert.Error(t, s.RunCommand(context.Background(), "  "))
}

func TestSoundPlay(t *testing.T) {
	rec := &recorder{}
	sys := New(nil, WithOS("linux"), WithStarter(rec.start))
	p := NewSound(sys)

	assert.Error(t, p.Play(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"), 0.5))
	assert.Empty(t, rec.calls, "missing files never spawn a player")

	path := filepath.Join(t.TempDir(), "ding.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))
	require.NoError(t, p.Play(context.Background(), path, 2))
	assert.Equal(t, [][]string{{"paplay", "--volume=65536", path}}, rec.calls)
}

func TestPollStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	var got []Load
	n := 0
	sample := func(context.Context) (Load, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		if n == 2 {
			return Load{}, errors.New("sensor offline")
		}
		return Load{CPU: n, Mem: 50}, nil
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		Poll(ctx, 5*time.Millisecond, sample, func(l Load) {
			mu.Lock()
			got = append(got, l)
			mu.Unlock()
		}, nil)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) >= 3
	}, time.Second, time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, Load{CPU: 1, Mem: 50}, got[0])
	assert.Equal(t, Load{}, got[1], "failed samples read as zero load")
}

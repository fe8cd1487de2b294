package host

import (
	"context"
	"math"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/logging"
)

// Load is a rounded CPU and memory utilisation snapshot in percent.
type Load struct {
	CPU int `json:"cpu"`
	Mem int `json:"mem"`
}

// SampleWindow is how long CPU usage is measured per sample.
const SampleWindow = 250 * time.Millisecond

// SystemLoad samples CPU and memory. A zero Load is returned together with
// the error when sampling fails.
func SystemLoad(ctx context.Context) (Load, error) {
	percents, err := cpu.PercentWithContext(ctx, SampleWindow, false)
	if err != nil {
		return Load{}, err
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Load{}, err
	}
	var c float64
	if len(percents) > 0 {
		c = percents[0]
	}
	return Load{CPU: int(math.Round(c)), Mem: int(math.Round(vm.UsedPercent))}, nil
}

// Sampler is a SystemLoad-shaped function.
type Sampler func(ctx context.Context) (Load, error)

// Poll calls sample every interval and hands the result to fn until ctx
// is done. Errors are logged and reported as a zero Load.
func Poll(ctx context.Context, interval time.Duration, sample Sampler, fn func(Load), logger *zap.Logger) {
	logger = logging.OrNop(logger)
	if sample == nil {
		sample = SystemLoad
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		l, err := sample(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Debug("system load", zap.Error(err))
		}
		if ctx.Err() != nil {
			return
		}
		fn(l)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper evicts idle session stores.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

// StartSessionSweeper sweeps every interval until ctx is done. The returned
// channel is closed once the loop has exited.
func StartSessionSweeper(ctx context.Context, sweeper Sweeper, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if sweeper == nil || interval <= 0 {
		close(done)
		return done
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sweeper.Sweep(ctx); n > 0 {
					logger.Info("evicted idle sessions", zap.Int("count", n))
				}
			}
		}
	}()
	return done
}

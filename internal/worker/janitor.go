package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wb-go/wbf/zlog"
)

// Janitor periodically evicts editor sessions nobody has touched for ttl.
type Janitor struct {
	sessions idleEvicter
	logger   *zlog.Zerolog
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewJanitor(sessions idleEvicter, logger *zlog.Zerolog, ttl, interval time.Duration) *Janitor {
	return &Janitor{
		sessions: sessions,
		logger:   logger,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs sweeps in the background until ctx is done. Wait blocks until
// the loop has exited.
func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info().
		Dur("ttl", j.ttl).
		Dur("interval", j.interval).
		Msg("Session janitor started")

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.run(ctx)
	}()
}

func (j *Janitor) Wait() {
	j.wg.Wait()
}

func (j *Janitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Debug().Msg("Session janitor stopping")
			return
		case <-ticker.C:
			if _, err := j.safeSweep(ctx); err != nil {
				j.logger.Error().Err(err).Msg("Session sweep failed")
			}
		}
	}
}

// Sweep evicts sessions idle longer than ttl and reports how many went.
func (j *Janitor) Sweep(ctx context.Context) int {
	start := time.Now()
	evicted := j.sessions.EvictIdle(ctx, j.now().Add(-j.ttl))

	j.logger.Debug().
		Int("evicted", evicted).
		Dur("duration", time.Since(start)).
		Msg("Session sweep finished")
	return evicted
}

func (j *Janitor) safeSweep(ctx context.Context) (evicted int, err error) {
	defer func() {
		if r := recover(); r != nil {
			j.logger.Error().Interface("panic", r).Msg("Panic recovered during session sweep")
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return j.Sweep(ctx), nil
}

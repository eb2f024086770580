package worker

import (
	"context"
	"time"
)

type idleEvicter interface {
	EvictIdle(ctx context.Context, cutoff time.Time) int
}

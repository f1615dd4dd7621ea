package processor

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/b2kgrowth/leadsniffer/internal/logger"
)

const defaultRPS = 100

// RateLimiter paces scored-post writes to Postgres so a large batch cannot
// saturate the connection pool.
type RateLimiter struct {
	limiter *rate.Limiter
	log     logger.Logger
}

// NewRateLimiter creates a limiter allowing rps operations per second with
// the given burst.
func NewRateLimiter(rps, burst int, log logger.Logger) *RateLimiter {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = rps
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     log,
	}
}

// Wait blocks until the limiter allows the operation or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.log.Warn("rate limiter wait failed", logger.Error(err))
		return err
	}
	return nil
}

// Allow reports whether an operation may proceed without waiting.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// SetLimit updates the sustained rate.
func (r *RateLimiter) SetLimit(rps int) {
	r.limiter.SetLimit(rate.Limit(rps))
	r.log.Info("rate limit updated", logger.Int("new_rps", rps))
}

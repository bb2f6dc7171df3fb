package resilience

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// AdaptiveLimiter paces calls to one provider and backs off when the
// provider reports quota exhaustion. A 429 halves the rate, down to a
// quarter of the configured rate; each success raises it by 20% until the
// configured rate is restored.
type AdaptiveLimiter struct {
	name string

	mu      sync.Mutex
	limiter *rate.Limiter
	ceiling rate.Limit
	floor   rate.Limit
	current rate.Limit
}

// NewAdaptiveLimiter creates a limiter allowing perSec events per second.
func NewAdaptiveLimiter(name string, perSec rate.Limit, burst int) *AdaptiveLimiter {
	if burst < 1 {
		burst = 1
	}
	return &AdaptiveLimiter{
		name:    name,
		limiter: rate.NewLimiter(perSec, burst),
		ceiling: perSec,
		floor:   perSec / 4,
		current: perSec,
	}
}

// Wait blocks until the next call is allowed or ctx is done.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

// Observe adjusts the rate from a provider response status.
func (a *AdaptiveLimiter) Observe(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case status == http.StatusTooManyRequests:
		next := max(a.current*0.5, a.floor)
		if next != a.current {
			zap.L().Warn("provider rate reduced after 429",
				zap.String("provider", a.name),
				zap.Float64("rate", float64(next)),
			)
		}
		a.set(next)
	case status >= 200 && status < 300:
		a.set(min(a.current*1.2, a.ceiling))
	}
}

func (a *AdaptiveLimiter) set(r rate.Limit) {
	a.current = r
	a.limiter.SetLimit(r)
}

// Limit returns the current rate.
func (a *AdaptiveLimiter) Limit() rate.Limit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Burst returns the burst size.
func (a *AdaptiveLimiter) Burst() int {
	return a.limiter.Burst()
}

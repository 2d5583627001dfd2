package apiclient

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	Rate            float64                  // requests per second
	Burst           int                      // max burst (default: 1)
	KeyFunc         func(req Request) string // default: URL host
	CleanupInterval time.Duration            // how often to prune idle limiters (default: 1m)
	MaxIdle         time.Duration            // remove limiters idle longer than this (default: 5m)
}

// RateLimit returns middleware that applies per-key rate limiting. A fetch
// over the limit waits for a token; if ctx ends first, the context error
// is returned and the request is never sent.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(req Request) string {
			u, err := url.Parse(req.URL)
			if err != nil {
				return req.URL
			}
			return u.Host
		}
	}

	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 5 * time.Minute
	}

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup time.Time
	)

	return func(next Fetcher) Fetcher {
		return FetcherFunc(func(ctx context.Context, req Request) (any, error) {
			key := cfg.KeyFunc(req)

			mu.Lock()
			now := time.Now()

			// Lazy cleanup of expired limiters.
			if now.Sub(lastCleanup) >= cleanupInterval {
				for k, e := range limiters {
					if now.Sub(e.lastSeen) > maxIdle {
						delete(limiters, k)
					}
				}
				lastCleanup = now
			}

			entry, ok := limiters[key]
			if !ok {
				entry = &limiterEntry{
					limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
				}
				limiters[key] = entry
			}
			entry.lastSeen = now
			mu.Unlock()

			if err := entry.limiter.Wait(ctx); err != nil {
				return nil, err
			}
			return next.Fetch(ctx, req)
		})
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

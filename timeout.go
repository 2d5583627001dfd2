package apiclient

import (
	"context"
	"time"
)

// Timeout returns middleware that bounds each fetch with a context deadline.
func Timeout(d time.Duration) Middleware {
	return func(next Fetcher) Fetcher {
		return FetcherFunc(func(ctx context.Context, req Request) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next.Fetch(ctx, req)
		})
	}
}

package apiclient

import (
	"context"
	"log/slog"
	"time"
)

// Logger returns middleware that logs each fetch using the provided slog.Logger.
// Successful fetches are logged at info, failures at warn.
func Logger(logger *slog.Logger) Middleware {
	return func(next Fetcher) Fetcher {
		return FetcherFunc(func(ctx context.Context, req Request) (any, error) {
			start := time.Now()
			res, err := next.Fetch(ctx, req)

			attrs := []slog.Attr{
				slog.String("method", req.Method.String()),
				slog.String("url", req.URL),
				slog.Duration("latency", time.Since(start)),
			}

			level := slog.LevelInfo
			if err != nil {
				level = slog.LevelWarn
				attrs = append(attrs, slog.Any("err", err))
			}

			logger.LogAttrs(ctx, level, "fetch", attrs...)
			return res, err
		})
	}
}

package apiclient

import "context"

// SpanStarter is a tracing hook interface for creating spans per fetch.
// Implement this with your preferred tracing backend (e.g., OpenTelemetry).
type SpanStarter interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, func())
}

// Trace returns middleware that wraps each fetch in a span named
// "<METHOD> <url>".
func Trace(s SpanStarter) Middleware {
	return func(next Fetcher) Fetcher {
		return FetcherFunc(func(ctx context.Context, req Request) (any, error) {
			ctx, end := s.StartSpan(ctx, req.Method.Wire()+" "+req.URL, map[string]string{
				"http.method": req.Method.Wire(),
				"http.url":    req.URL,
			})
			defer end()
			return next.Fetch(ctx, req)
		})
	}
}

package apiclient

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDConfig configures the RequestID middleware.
type RequestIDConfig struct {
	Header    string        // default: "X-Request-ID"
	Generator func() string // default: random UUID
}

// RequestID returns middleware that tags each fetch with a request ID,
// sent as a header by the HTTPFetcher. An ID already on the context (see
// WithRequestID) is reused so retries and fan-out share one ID.
func RequestID(cfg ...RequestIDConfig) Middleware {
	c := RequestIDConfig{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}
	if len(cfg) > 0 {
		if cfg[0].Header != "" {
			c.Header = cfg[0].Header
		}
		if cfg[0].Generator != nil {
			c.Generator = cfg[0].Generator
		}
	}

	return func(next Fetcher) Fetcher {
		return FetcherFunc(func(ctx context.Context, req Request) (any, error) {
			id, ok := RequestIDFrom(ctx)
			if !ok {
				id = c.Generator()
				ctx = WithRequestID(ctx, id)
			}
			return next.Fetch(WithHeader(ctx, c.Header, id), req)
		})
	}
}

// WithRequestID returns a context carrying id for the RequestID middleware.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request ID on ctx.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

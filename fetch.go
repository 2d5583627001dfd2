package apiclient

import "context"

// Request describes one request handed to a Fetcher. Body is nil for
// read-only methods and the unserialized payload otherwise.
type Request struct {
	Method Method
	URL    string
	Body   any
}

// Fetcher performs the request/response exchange. Implementations own
// serialization, transport, and decoding of the result.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (any, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req Request) (any, error)

// Fetch calls f(ctx, req).
func (f FetcherFunc) Fetch(ctx context.Context, req Request) (any, error) {
	return f(ctx, req)
}

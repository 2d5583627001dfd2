package apiclient

import (
	"context"
	"net/http"
)

type headersKey struct{}

// WithHeader returns a context carrying an extra request header. The
// HTTPFetcher sends it on every request made with the context, after its
// own Accept and Content-Type headers, so it may override them.
func WithHeader(ctx context.Context, key, value string) context.Context {
	h := HeadersFrom(ctx)
	h.Set(key, value)
	return context.WithValue(ctx, headersKey{}, h)
}

// HeadersFrom returns a copy of the headers attached with WithHeader. It
// never returns nil.
func HeadersFrom(ctx context.Context) http.Header {
	if h, ok := ctx.Value(headersKey{}).(http.Header); ok {
		return h.Clone()
	}
	return make(http.Header)
}

package apiclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
)

// HTTPFetcher is the default Fetcher. It sends the body as JSON (a nil
// body is sent as "null") and returns the response body decoded as JSON.
// Status codes are not interpreted and errors are returned unchanged.
type HTTPFetcher struct {
	client   *http.Client
	codec    Codec
	compress bool
	maxBytes int64
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient sets the underlying HTTP client (default: http.DefaultClient).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithCodec replaces the JSON codec. Its content type is used for both
// the Accept and Content-Type headers.
func WithCodec(c Codec) HTTPOption {
	return func(f *HTTPFetcher) {
		f.codec = c
	}
}

// WithCompression advertises zstd, brotli, and gzip support and
// decompresses encoded responses.
func WithCompression() HTTPOption {
	return func(f *HTTPFetcher) {
		f.compress = true
	}
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client: http.DefaultClient,
		codec:  jsonCodec{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, req Request) (any, error) {
	var body bytes.Buffer
	if err := f.codec.Encode(&body, req.Body); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.Wire(), req.URL, &body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", f.codec.ContentType())
	httpReq.Header.Set("Content-Type", f.codec.ContentType())
	if f.compress {
		httpReq.Header.Set("Accept-Encoding", acceptEncoding)
	}
	for k, vs := range HeadersFrom(ctx) {
		httpReq.Header[k] = vs
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() {
		//nolint:errcheck,gosec // body fully consumed or abandoned on error
		resp.Body.Close()
	}()

	rc, err := decompressBody(resp)
	if err != nil {
		return nil, err
	}
	defer func() {
		//nolint:errcheck,gosec // closing the decompressor only releases resources
		rc.Close()
	}()

	limited := limitBody(rc, f.maxBytes)
	var result any
	if err := f.codec.Decode(limited, &result); err != nil {
		return nil, err
	}
	if f.maxBytes > 0 {
		// Bytes after the decoded value still count toward the limit.
		if _, err := io.Copy(io.Discard, limited); errors.Is(err, ErrResponseTooLarge) {
			return nil, err
		}
	}
	return result, nil
}

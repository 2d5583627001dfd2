// Package apitest provides test helpers for the apiclient package.
package apitest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bjaus/apiclient"
)

// Recorder is a stub Fetcher that records every request it receives and
// answers with a canned response. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	requests []apiclient.Request
	respond  func(req apiclient.Request) (any, error)
}

// NewRecorder creates a Recorder answering with respond. A nil respond
// answers every request with (nil, nil).
func NewRecorder(respond func(req apiclient.Request) (any, error)) *Recorder {
	if respond == nil {
		respond = func(apiclient.Request) (any, error) { return nil, nil }
	}
	return &Recorder{respond: respond}
}

// Respond creates a Recorder answering every request with v.
func Respond(v any) *Recorder {
	return NewRecorder(func(apiclient.Request) (any, error) { return v, nil })
}

// Fail creates a Recorder answering every request with err.
func Fail(err error) *Recorder {
	return NewRecorder(func(apiclient.Request) (any, error) { return nil, err })
}

// Fetch implements apiclient.Fetcher.
func (r *Recorder) Fetch(_ context.Context, req apiclient.Request) (any, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	return r.respond(req)
}

// Requests returns a copy of the recorded requests in arrival order.
func (r *Recorder) Requests() []apiclient.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]apiclient.Request, len(r.requests))
	copy(out, r.requests)
	return out
}

// Last returns the most recent request.
func (r *Recorder) Last() (apiclient.Request, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return apiclient.Request{}, false
	}
	return r.requests[len(r.requests)-1], true
}

// Len returns the number of recorded requests.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// NewClient starts an httptest.Server for h and returns a client whose
// base URL points at it, dispatching through an HTTPFetcher.
func NewClient(t testing.TB, h http.Handler, opts ...apiclient.Option) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	fetcher := apiclient.NewHTTPFetcher(apiclient.WithHTTPClient(srv.Client()))
	opts = append([]apiclient.Option{apiclient.WithBaseURL(srv.URL)}, opts...)
	return apiclient.New(fetcher, opts...)
}

// Seen is what a capturing handler saw for one request.
type Seen struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Captured records the most recent request reaching a JSONHandler.
type Captured struct {
	mu   sync.Mutex
	seen Seen
	n    int
}

// Last returns the most recent request seen by the handler.
func (c *Captured) Last() Seen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen
}

// Count returns how many requests reached the handler.
func (c *Captured) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// JSONHandler returns a handler that captures the incoming request and
// responds with status and the JSON encoding of body.
func JSONHandler(t testing.TB, status int, body any) (http.Handler, *Captured) {
	t.Helper()
	captured := &Captured{}
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("apitest: read request body: %v", err)
		}

		captured.mu.Lock()
		captured.seen = Seen{
			Method: r.Method,
			URL:    r.URL.RequestURI(),
			Header: r.Header.Clone(),
			Body:   data,
		}
		captured.n++
		captured.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("apitest: encode response body: %v", err)
		}
	})
	return h, captured
}

package apiclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiclient"
	"github.com/bjaus/apiclient/apitest"
)

// headerSink records the context headers each fetch sees.
func headerSink(seen *[]http.Header) apiclient.Fetcher {
	return apiclient.FetcherFunc(func(ctx context.Context, _ apiclient.Request) (any, error) {
		*seen = append(*seen, apiclient.HeadersFrom(ctx))
		return nil, nil
	})
}

func TestRequestID_generates_uuid(t *testing.T) {
	t.Parallel()

	var seen []http.Header
	f := apiclient.Chain(headerSink(&seen), apiclient.RequestID())

	for range 2 {
		_, err := f.Fetch(context.Background(), apiclient.Request{Method: apiclient.MethodGet, URL: "/x"})
		require.NoError(t, err)
	}

	require.Len(t, seen, 2)
	first := seen[0].Get("X-Request-ID")
	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, seen[1].Get("X-Request-ID"))
}

func TestRequestID_reuses_context_id(t *testing.T) {
	t.Parallel()

	var seen []http.Header
	f := apiclient.Chain(headerSink(&seen), apiclient.RequestID())

	ctx := apiclient.WithRequestID(context.Background(), "abc")
	_, err := f.Fetch(ctx, apiclient.Request{Method: apiclient.MethodGet, URL: "/x"})
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, "abc", seen[0].Get("X-Request-ID"))
}

func TestRequestID_config(t *testing.T) {
	t.Parallel()

	var seen []http.Header
	f := apiclient.Chain(headerSink(&seen), apiclient.RequestID(apiclient.RequestIDConfig{
		Header:    "X-Trace",
		Generator: func() string { return "fixed" },
	}))

	_, err := f.Fetch(context.Background(), apiclient.Request{Method: apiclient.MethodGet, URL: "/x"})
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, "fixed", seen[0].Get("X-Trace"))
	assert.Empty(t, seen[0].Get("X-Request-ID"))
}

func TestRequestIDFrom(t *testing.T) {
	t.Parallel()

	_, ok := apiclient.RequestIDFrom(context.Background())
	assert.False(t, ok)

	_, ok = apiclient.RequestIDFrom(apiclient.WithRequestID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := apiclient.RequestIDFrom(apiclient.WithRequestID(context.Background(), "r-1"))
	assert.True(t, ok)
	assert.Equal(t, "r-1", id)
}

func TestRequestID_sent_over_http(t *testing.T) {
	t.Parallel()

	h, captured := apitest.JSONHandler(t, http.StatusOK, map[string]any{})
	c := apitest.NewClient(t, h, apiclient.WithMiddleware(apiclient.RequestID()))

	ctx := apiclient.WithRequestID(context.Background(), "req-42")
	_, err := c.Get("/ping")(ctx, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "req-42", captured.Last().Header.Get("X-Request-ID"))
}

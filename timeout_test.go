package apiclient_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiclient"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	slow := apiclient.FetcherFunc(func(ctx context.Context, _ apiclient.Request) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	c := apiclient.New(slow, apiclient.WithMiddleware(apiclient.Timeout(10*time.Millisecond)))
	_, err := c.Get("/slow")(context.Background(), nil, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTimeout_sets_deadline(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	f := apiclient.FetcherFunc(func(ctx context.Context, _ apiclient.Request) (any, error) {
		_, hasDeadline = ctx.Deadline()
		return "ok", nil
	})

	c := apiclient.New(f, apiclient.WithMiddleware(apiclient.Timeout(time.Second)))
	res, err := c.Get("/fast")(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	assert.True(t, hasDeadline)
}

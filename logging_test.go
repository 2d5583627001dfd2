package apiclient_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiclient"
	"github.com/bjaus/apiclient/apitest"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		fetcher    apiclient.Fetcher
		wantErr    bool
		wantSubstr []string
	}{
		"fetch is logged": {
			fetcher: apitest.Respond("ok"),
			wantSubstr: []string{
				"level=INFO",
				"msg=fetch",
				"method=get",
				"url=/users/fred",
				"latency=",
			},
		},
		"failure is logged at warn": {
			fetcher: apitest.Fail(errors.New("connection refused")),
			wantErr: true,
			wantSubstr: []string{
				"level=WARN",
				`err="connection refused"`,
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			c := apiclient.New(tc.fetcher, apiclient.WithMiddleware(apiclient.Logger(logger)))
			_, err := c.Get("/users/:userId")(context.Background(), apiclient.Params{"userId": "fred"}, nil)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			out := buf.String()
			for _, s := range tc.wantSubstr {
				assert.Contains(t, out, s)
			}
		})
	}
}

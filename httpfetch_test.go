package apiclient_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiclient"
	"github.com/bjaus/apiclient/apitest"
)

func TestHTTPFetcher_null_body_and_headers(t *testing.T) {
	t.Parallel()

	h, captured := apitest.JSONHandler(t, http.StatusOK, map[string]any{"ok": true})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	f := apiclient.NewHTTPFetcher(apiclient.WithHTTPClient(srv.Client()))
	got, err := f.Fetch(context.Background(), apiclient.Request{
		Method: apiclient.MethodGet,
		URL:    srv.URL + "/random",
		Body:   nil,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, got)

	seen := captured.Last()
	assert.Equal(t, http.MethodGet, seen.Method)
	assert.Equal(t, "/random", seen.URL)
	assert.Equal(t, "null", string(seen.Body))
	assert.Equal(t, "application/json", seen.Header.Get("Accept"))
	assert.Equal(t, "application/json", seen.Header.Get("Content-Type"))
}

func TestHTTPFetcher_encodes_body(t *testing.T) {
	t.Parallel()

	h, captured := apitest.JSONHandler(t, http.StatusCreated, map[string]any{"id": "7"})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	f := apiclient.NewHTTPFetcher(apiclient.WithHTTPClient(srv.Client()))
	got, err := f.Fetch(context.Background(), apiclient.Request{
		Method: apiclient.MethodPost,
		URL:    srv.URL + "/users",
		Body:   map[string]any{"name": "Fred", "age": 42},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "7"}, got)

	seen := captured.Last()
	assert.Equal(t, http.MethodPost, seen.Method)
	assert.JSONEq(t, `{"name":"Fred","age":42}`, string(seen.Body))
}

func TestHTTPFetcher_status_is_not_interpreted(t *testing.T) {
	t.Parallel()

	h, _ := apitest.JSONHandler(t, http.StatusInternalServerError, map[string]any{"error": "nope"})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	f := apiclient.NewHTTPFetcher(apiclient.WithHTTPClient(srv.Client()))
	got, err := f.Fetch(context.Background(), apiclient.Request{Method: apiclient.MethodGet, URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "nope"}, got)
}

func TestHTTPFetcher_errors_propagate(t *testing.T) {
	t.Parallel()

	t.Run("non-JSON body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "<html>")
		}))
		t.Cleanup(srv.Close)

		f := apiclient.NewHTTPFetcher(apiclient.WithHTTPClient(srv.Client()))
		_, err := f.Fetch(context.Background(), apiclient.Request{Method: apiclient.MethodGet, URL: srv.URL})
		var syntaxErr *json.SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		t.Cleanup(srv.Close)

		f := apiclient.NewHTTPFetcher(apiclient.WithHTTPClient(srv.Client()))
		_, err := f.Fetch(context.Background(), apiclient.Request{Method: apiclient.MethodDelete, URL: srv.URL})
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		f := apiclient.NewHTTPFetcher()
		_, err := f.Fetch(context.Background(), apiclient.Request{Method: apiclient.MethodGet, URL: url})
		require.Error(t, err)
	})

	t.Run("unencodable body", func(t *testing.T) {
		t.Parallel()

		f := apiclient.NewHTTPFetcher()
		_, err := f.Fetch(context.Background(), apiclient.Request{
			Method: apiclient.MethodPost,
			URL:    "http://127.0.0.1:0",
			Body:   make(chan int),
		})
		var typeErr *json.UnsupportedTypeError
		require.ErrorAs(t, err, &typeErr)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		h, captured := apitest.JSONHandler(t, http.StatusOK, nil)
		srv := httptest.NewServer(h)
		t.Cleanup(srv.Close)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := apiclient.NewHTTPFetcher(apiclient.WithHTTPClient(srv.Client()))
		_, err := f.Fetch(ctx, apiclient.Request{Method: apiclient.MethodGet, URL: srv.URL})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, captured.Count())
	})
}

func TestHTTPFetcher_WithCompression(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"compressed":true}`)

	tests := map[string]struct {
		encoding string
		encode   func(t *testing.T, p []byte) []byte
	}{
		"gzip": {
			encoding: "gzip",
			encode: func(t *testing.T, p []byte) []byte {
				var buf bytes.Buffer
				gz := gzip.NewWriter(&buf)
				_, err := gz.Write(p)
				require.NoError(t, err)
				require.NoError(t, gz.Close())
				return buf.Bytes()
			},
		},
		"zstd": {
			encoding: "zstd",
			encode: func(t *testing.T, p []byte) []byte {
				var buf bytes.Buffer
				enc, err := zstd.NewWriter(&buf)
				require.NoError(t, err)
				_, err = enc.Write(p)
				require.NoError(t, err)
				require.NoError(t, enc.Close())
				return buf.Bytes()
			},
		},
		"brotli": {
			encoding: "br",
			encode: func(t *testing.T, p []byte) []byte {
				var buf bytes.Buffer
				br := brotli.NewWriter(&buf)
				_, err := br.Write(p)
				require.NoError(t, err)
				require.NoError(t, br.Close())
				return buf.Bytes()
			},
		},
		"identity": {
			encoding: "",
			encode:   func(_ *testing.T, p []byte) []byte { return p },
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			body := tc.encode(t, payload)
			acceptEncoding := make(chan string, 1)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				acceptEncoding <- r.Header.Get("Accept-Encoding")
				if tc.encoding != "" {
					w.Header().Set("Content-Encoding", tc.encoding)
				}
				_, _ = w.Write(body)
			}))
			t.Cleanup(srv.Close)

			f := apiclient.NewHTTPFetcher(apiclient.WithHTTPClient(srv.Client()), apiclient.WithCompression())
			got, err := f.Fetch(context.Background(), apiclient.Request{Method: apiclient.MethodGet, URL: srv.URL})
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"compressed": true}, got)
			assert.Equal(t, "zstd, br, gzip", <-acceptEncoding)
		})
	}
}

func TestHTTPFetcher_unsupported_encoding(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "compress")
		_, _ = w.Write([]byte("x"))
	}))
	t.Cleanup(srv.Close)

	f := apiclient.NewHTTPFetcher(apiclient.WithHTTPClient(srv.Client()), apiclient.WithCompression())
	_, err := f.Fetch(context.Background(), apiclient.Request{Method: apiclient.MethodGet, URL: srv.URL})
	require.ErrorContains(t, err, "unsupported Content-Encoding")
}

type upperCodec struct{}

func (upperCodec) ContentType() string { return "application/vnd.test+json" }

func (upperCodec) Encode(w io.Writer, v any) error { return apiclient.JSON().Encode(w, v) }

func (upperCodec) Decode(r io.Reader, v any) error {
	if err := apiclient.JSON().Decode(r, v); err != nil {
		return err
	}
	if p, ok := v.(*any); ok {
		if s, ok := (*p).(string); ok {
			*p = s + "!"
		}
	}
	return nil
}

func TestHTTPFetcher_WithCodec(t *testing.T) {
	t.Parallel()

	h, captured := apitest.JSONHandler(t, http.StatusOK, "hi")
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	f := apiclient.NewHTTPFetcher(apiclient.WithHTTPClient(srv.Client()), apiclient.WithCodec(upperCodec{}))
	got, err := f.Fetch(context.Background(), apiclient.Request{Method: apiclient.MethodGet, URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "hi!", got)
	assert.Equal(t, "application/vnd.test+json", captured.Last().Header.Get("Accept"))
}

func TestHTTPFetcher_end_to_end(t *testing.T) {
	t.Parallel()

	h, captured := apitest.JSONHandler(t, http.StatusOK, []map[string]any{{"id": "1", "name": "Fred", "age": 42}})
	c := apitest.NewClient(t, h)
	list := apiclient.Get[apiclient.Void, usersQuery, []user](c, "/users")

	minAge := 40
	got, err := list(context.Background(), apiclient.Void{}, usersQuery{NameIncludes: "Fre", MinAge: &minAge})
	require.NoError(t, err)
	assert.Equal(t, []user{{ID: "1", Name: "Fred", Age: 42}}, *got)
	assert.Equal(t, "/users?nameIncludes=Fre&minAge=40", captured.Last().URL)
}

func TestHTTPFetcher_is_a_fetcher(t *testing.T) {
	t.Parallel()

	var f apiclient.Fetcher = apiclient.NewHTTPFetcher()
	assert.NotNil(t, f)
}

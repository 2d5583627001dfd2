package apiclient

import (
	"errors"
	"io"
)

// ErrResponseTooLarge is returned when a response body exceeds the limit
// set with WithMaxResponseBytes.
var ErrResponseTooLarge = errors.New("response body too large")

// WithMaxResponseBytes caps the size of the (decompressed) response body.
// The whole body is read, so bytes after the decoded value count too.
// Zero or less means no limit.
func WithMaxResponseBytes(n int64) HTTPOption {
	return func(f *HTTPFetcher) {
		f.maxBytes = n
	}
}

// limitReader fails with ErrResponseTooLarge once more than n bytes
// have been read.
type limitReader struct {
	r io.Reader
	n int64
}

func limitBody(r io.Reader, n int64) io.Reader {
	if n <= 0 {
		return r
	}
	// One extra byte distinguishes "exactly n" from "more than n".
	return &limitReader{r: io.LimitReader(r, n+1), n: n}
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.n < 0 {
		return 0, ErrResponseTooLarge
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n + int(l.n), ErrResponseTooLarge
	}
	return n, err
}

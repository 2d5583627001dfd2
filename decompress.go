package apiclient

import (
	"fmt"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding is advertised when compression is enabled.
const acceptEncoding = "zstd, br, gzip"

// maxZstdMemory bounds the zstd decoder window.
const maxZstdMemory = 64 << 20

// decompressBody wraps resp.Body with the decompressor matching its
// Content-Encoding. Unencoded bodies are returned unchanged.
func decompressBody(resp *http.Response) (io.ReadCloser, error) {
	switch ce := resp.Header.Get("Content-Encoding"); ce {
	case "", "identity":
		return resp.Body, nil
	case "zstd":
		dec, err := zstd.NewReader(resp.Body, zstd.WithDecoderMaxMemory(maxZstdMemory))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	case "gzip":
		return gzip.NewReader(resp.Body)
	default:
		return nil, fmt.Errorf("unsupported Content-Encoding: %s", ce)
	}
}

package apiclient

// Middleware wraps a Fetcher with additional behavior.
type Middleware func(next Fetcher) Fetcher

// Chain wraps f with mw. The first middleware is the outermost.
func Chain(f Fetcher, mw ...Middleware) Fetcher {
	for i := len(mw) - 1; i >= 0; i-- {
		f = mw[i](f)
	}
	return f
}

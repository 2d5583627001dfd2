package apiclient

import (
	"context"
	"log/slog"
)

// Client dispatches requests for endpoint templates through a Fetcher.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	fetcher    Fetcher
	middleware []Middleware
	prefix     string
	codec      Codec
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the prefix placed before every rendered template.
func WithBaseURL(prefix string) Option {
	return func(c *Client) {
		c.prefix = prefix
	}
}

// WithMiddleware wraps the fetcher. Middleware is applied in the order
// given, the first being the outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, mw...)
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithResultCodec sets the codec typed calls use to convert fetch results
// into response types. Defaults to JSON.
func WithResultCodec(codec Codec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// New creates a Client that dispatches through f.
func New(f Fetcher, opts ...Option) *Client {
	c := &Client{
		codec:  jsonCodec{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.fetcher = Chain(f, c.middleware...)
	return c
}

// Prefix returns the prefix placed before every rendered template.
func (c *Client) Prefix() string { return c.prefix }

// Group returns a client whose prefix is extended by prefix. It shares
// the fetcher and middleware of c.
func (c *Client) Group(prefix string) *Client {
	g := *c
	g.prefix = c.prefix + prefix
	return &g
}

// Input is the second argument of a call. Read-only methods use Query and
// never send a body. Mutating methods send Body and also serialize Query
// when it is set.
type Input struct {
	Query *Query
	Body  any
}

// ReadFunc performs a read-only call.
type ReadFunc func(ctx context.Context, params Params, query *Query) (any, error)

// WriteFunc performs a mutating call with an unserialized body.
type WriteFunc func(ctx context.Context, params Params, body any) (any, error)

// CallFunc performs a call for any method.
type CallFunc func(ctx context.Context, params Params, in Input) (any, error)

// Get returns a GET call for template.
func (c *Client) Get(template string) ReadFunc { return c.read(MethodGet, template) }

// Head returns a HEAD call for template.
func (c *Client) Head(template string) ReadFunc { return c.read(MethodHead, template) }

// Options returns an OPTIONS call for template.
func (c *Client) Options(template string) ReadFunc { return c.read(MethodOptions, template) }

// Post returns a POST call for template.
func (c *Client) Post(template string) WriteFunc { return c.write(MethodPost, template) }

// Put returns a PUT call for template.
func (c *Client) Put(template string) WriteFunc { return c.write(MethodPut, template) }

// Patch returns a PATCH call for template.
func (c *Client) Patch(template string) WriteFunc { return c.write(MethodPatch, template) }

// Delete returns a DELETE call for template.
func (c *Client) Delete(template string) WriteFunc { return c.write(MethodDelete, template) }

// Request returns a call for an arbitrary method and template. The
// template is parsed once, here.
func (c *Client) Request(method Method, template string) CallFunc {
	b := NewURLBuilder(template, WithPrefix(c.prefix), WithMethod(method))
	return func(ctx context.Context, params Params, in Input) (any, error) {
		return c.dispatch(ctx, b, params, in)
	}
}

func (c *Client) read(m Method, template string) ReadFunc {
	call := c.Request(m, template)
	return func(ctx context.Context, params Params, query *Query) (any, error) {
		return call(ctx, params, Input{Query: query})
	}
}

func (c *Client) write(m Method, template string) WriteFunc {
	call := c.Request(m, template)
	return func(ctx context.Context, params Params, body any) (any, error) {
		return call(ctx, params, Input{Body: body})
	}
}

// dispatch builds the URL and hands the request to the fetcher. URL
// errors are returned before the fetcher is reached; fetcher errors are
// returned as is.
func (c *Client) dispatch(ctx context.Context, b *URLBuilder, params Params, in Input) (any, error) {
	url, err := b.Build(params, in.Query)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "build url",
			slog.String("method", b.Method().String()),
			slog.String("template", b.Template().String()),
			slog.Any("err", err),
		)
		return nil, err
	}

	req := Request{Method: b.Method(), URL: url}
	if !b.Method().ReadOnly() {
		req.Body = in.Body
	}
	return c.fetcher.Fetch(ctx, req)
}

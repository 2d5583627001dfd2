package apiclient

// URLBuilder builds URLs for one endpoint template. It is immutable and
// safe for concurrent use.
type URLBuilder struct {
	prefix   string
	template Template
	method   Method
}

// URLOption configures a URLBuilder.
type URLOption func(*URLBuilder)

// WithPrefix sets a prefix concatenated verbatim before the rendered path,
// such as "/api/v0" or "https://example.com".
func WithPrefix(prefix string) URLOption {
	return func(b *URLBuilder) {
		b.prefix = prefix
	}
}

// WithMethod records the method the URL is built for. It selects which
// query type a typed builder accepts and has no effect on the output.
func WithMethod(m Method) URLOption {
	return func(b *URLBuilder) {
		b.method = m
	}
}

// NewURLBuilder parses template once and returns a builder for it.
// The method defaults to MethodGet.
func NewURLBuilder(template string, opts ...URLOption) *URLBuilder {
	b := &URLBuilder{
		template: ParseTemplate(template),
		method:   MethodGet,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Template returns the parsed endpoint template.
func (b *URLBuilder) Template() Template { return b.template }

// Method returns the method the builder was constructed for.
func (b *URLBuilder) Method() Method { return b.method }

// Build renders the template with params and appends the serialized
// query. The "?" is omitted when the query serializes to nothing.
func (b *URLBuilder) Build(params Params, query *Query) (string, error) {
	path, err := b.template.Render(params)
	if err != nil {
		return "", err
	}
	path = b.prefix + path

	qs := Serialize(query)
	if qs == "" {
		return path, nil
	}
	return path + "?" + qs, nil
}

// URLMaker produces URL builders sharing a prefix.
type URLMaker struct {
	prefix string
}

// Prefix returns a URLMaker for the given prefix.
func Prefix(prefix string) URLMaker {
	return URLMaker{prefix: prefix}
}

// URL returns a builder for template under the maker's prefix. At most
// one method may be given; it defaults to MethodGet.
func (m URLMaker) URL(template string, method ...Method) *URLBuilder {
	opts := []URLOption{WithPrefix(m.prefix)}
	if len(method) > 0 {
		opts = append(opts, WithMethod(method[0]))
	}
	return NewURLBuilder(template, opts...)
}

// URLFunc builds a URL from typed path parameters and a typed query.
type URLFunc[P, Q any] func(params P, query Q) (string, error)

// MakeURL returns a typed URL function for template. P is converted with
// ParamsFrom and Q with QueryFrom; use Void for either when absent.
func MakeURL[P, Q any](template string, opts ...URLOption) URLFunc[P, Q] {
	b := NewURLBuilder(template, opts...)
	return func(params P, query Q) (string, error) {
		return b.buildTyped(params, query)
	}
}

func (b *URLBuilder) buildTyped(params, query any) (string, error) {
	p, err := ParamsFrom(params)
	if err != nil {
		return "", err
	}
	q, err := QueryFrom(query)
	if err != nil {
		return "", err
	}
	return b.Build(p, q)
}

// Package apiclient is a generics-first HTTP API client runtime. Endpoint
// templates such as "/users/:userId" are turned into URL builders and
// request dispatchers, and the shapes of path parameters, queries, bodies,
// and responses are expressed as Go types.
//
// URLs are built from a template, a path parameter bag, and an ordered
// query bag:
//
//	u, err := apiclient.NewURLBuilder("/users/:userId").Build(apiclient.Params{"userId": "fred"}, nil)
//	// u == "/users/fred"
//
//	q := apiclient.NewQuery().Set("nameIncludes", "Fre").Set("minAge", 40)
//	u, err = apiclient.NewURLBuilder("/users").Build(nil, q)
//	// u == "/users?nameIncludes=Fre&minAge=40"
//
// A Client dispatches through a pluggable Fetcher. Read-only methods take
// a query; mutating methods take a body that is handed to the fetcher
// unserialized:
//
//	c := apiclient.New(apiclient.NewHTTPFetcher(), apiclient.WithBaseURL("https://example.com/api"))
//	users, err := c.Get("/users")(ctx, nil, q)
//	created, err := c.Post("/users")(ctx, nil, map[string]any{"name": "Fred"})
//
// Typed calls fix which query or body type each method accepts at compile
// time:
//
//	type ListQuery struct {
//	    NameIncludes string `query:"nameIncludes,omitempty"`
//	    MinAge       *int   `query:"minAge"`
//	}
//	list := apiclient.Get[apiclient.Void, ListQuery, []User](c, "/users")
//	users, err := list(ctx, apiclient.Void{}, ListQuery{NameIncludes: "Fre"})
//
// Middleware uses the func(Fetcher) Fetcher signature; Logger, RateLimit,
// Timeout, Trace, Metrics, and RequestID are provided. Headers attached to
// the context with WithHeader are sent by the HTTPFetcher.
//
// The surface subpackage loads endpoint declarations from YAML and
// generates typed clients from them (see cmd/apigen).
package apiclient

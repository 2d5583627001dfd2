package apiclient

import (
	"fmt"
	"strings"
)

// Method is an HTTP verb in its canonical lowercase form.
type Method string

// Supported methods. Read-only methods carry a query bag as their second
// argument; mutating methods carry a request body.
const (
	MethodGet     Method = "get"
	MethodHead    Method = "head"
	MethodOptions Method = "options"
	MethodPost    Method = "post"
	MethodPut     Method = "put"
	MethodPatch   Method = "patch"
	MethodDelete  Method = "delete"
)

// Methods lists every supported method in declaration order.
var Methods = []Method{
	MethodGet,
	MethodHead,
	MethodOptions,
	MethodPost,
	MethodPut,
	MethodPatch,
	MethodDelete,
}

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown method %q", s)
}

// ReadOnly reports whether the method is dispatched with a query bag
// and no body.
func (m Method) ReadOnly() bool {
	switch m {
	case MethodGet, MethodHead, MethodOptions:
		return true
	default:
		return false
	}
}

// Wire returns the method as sent on the wire (upper case).
func (m Method) Wire() string { return strings.ToUpper(string(m)) }

func (m Method) String() string { return string(m) }

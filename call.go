package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Call is the typed call signature. P is the path parameter bag, In the
// query (read-only methods) or body (mutating methods), Resp the decoded
// response. Which In a method accepts is fixed when the call is declared.
type Call[P, In, Resp any] func(ctx context.Context, params P, in In) (*Resp, error)

// Get declares a typed GET call.
func Get[P, Q, Resp any](c *Client, template string) Call[P, Q, Resp] {
	return read[P, Q, Resp](c, MethodGet, template)
}

// Head declares a typed HEAD call.
func Head[P, Q, Resp any](c *Client, template string) Call[P, Q, Resp] {
	return read[P, Q, Resp](c, MethodHead, template)
}

// Options declares a typed OPTIONS call.
func Options[P, Q, Resp any](c *Client, template string) Call[P, Q, Resp] {
	return read[P, Q, Resp](c, MethodOptions, template)
}

// Post declares a typed POST call.
func Post[P, B, Resp any](c *Client, template string) Call[P, B, Resp] {
	return write[P, B, Resp](c, MethodPost, template)
}

// Put declares a typed PUT call.
func Put[P, B, Resp any](c *Client, template string) Call[P, B, Resp] {
	return write[P, B, Resp](c, MethodPut, template)
}

// Patch declares a typed PATCH call.
func Patch[P, B, Resp any](c *Client, template string) Call[P, B, Resp] {
	return write[P, B, Resp](c, MethodPatch, template)
}

// Delete declares a typed DELETE call.
func Delete[P, B, Resp any](c *Client, template string) Call[P, B, Resp] {
	return write[P, B, Resp](c, MethodDelete, template)
}

func read[P, Q, Resp any](c *Client, m Method, template string) Call[P, Q, Resp] {
	send := Send[P, Q, Void, Resp](c, m, template)
	return func(ctx context.Context, params P, query Q) (*Resp, error) {
		return send(ctx, params, query, Void{})
	}
}

func write[P, B, Resp any](c *Client, m Method, template string) Call[P, B, Resp] {
	send := Send[P, Void, B, Resp](c, m, template)
	return func(ctx context.Context, params P, body B) (*Resp, error) {
		return send(ctx, params, Void{}, body)
	}
}

// SendCall is a typed call carrying both a query and a body.
type SendCall[P, Q, B, Resp any] func(ctx context.Context, params P, query Q, body B) (*Resp, error)

// Send declares a typed call for method with both a query and a body.
// Mutating methods send both; read-only methods never send the body.
func Send[P, Q, B, Resp any](c *Client, m Method, template string) SendCall[P, Q, B, Resp] {
	call := c.Request(m, template)
	return func(ctx context.Context, params P, query Q, body B) (*Resp, error) {
		p, err := ParamsFrom(params)
		if err != nil {
			return nil, err
		}
		q, err := QueryFrom(query)
		if err != nil {
			return nil, err
		}
		var payload any = body
		if _, ok := payload.(Void); ok {
			payload = nil
		}
		res, err := call(ctx, p, Input{Query: q, Body: payload})
		if err != nil {
			return nil, err
		}
		return decodeResult[Resp](c.codec, res)
	}
}

// decodeResult converts an untyped fetch result into *Resp. Results that
// already have the response type are returned as is, raw bytes are
// decoded, and anything else is re-encoded through codec.
func decodeResult[Resp any](codec Codec, v any) (*Resp, error) {
	if _, ok := any((*Resp)(nil)).(*Void); ok {
		return nil, nil
	}

	var data []byte
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *Resp:
		return x, nil
	case Resp:
		return &x, nil
	case json.RawMessage:
		data = x
	case []byte:
		data = x
	default:
		var buf bytes.Buffer
		if err := codec.Encode(&buf, v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeResult, err)
		}
		data = buf.Bytes()
	}

	out := new(Resp)
	if err := codec.Decode(bytes.NewReader(data), out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResult, err)
	}
	return out, nil
}

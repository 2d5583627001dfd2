package apiclient

import (
	"encoding/json"
	"io"
)

// Encoder encodes request bodies to a wire format.
type Encoder interface {
	ContentType() string
	Encode(w io.Writer, v any) error
}

// Decoder decodes response bodies from a wire format.
type Decoder interface {
	ContentType() string
	Decode(r io.Reader, v any) error
}

// Codec is both an Encoder and a Decoder for one content type.
type Codec interface {
	Encoder
	Decoder
}

// JSON returns the JSON codec. A nil value encodes as "null", and an
// empty input is a decode error.
func JSON() Codec { return jsonCodec{} }

// jsonCodec implements Codec for JSON.
type jsonCodec struct{}

func (jsonCodec) ContentType() string { return "application/json" }

func (jsonCodec) Encode(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func (jsonCodec) Decode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

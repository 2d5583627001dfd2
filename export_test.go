package apiclient

// Test-only exports for internal functions.
var (
	FormatValue = formatValue
	TagOptions  = tagOptions
	TagContains = tagContains
)

// DecodeResult exposes decodeResult with the JSON codec.
func DecodeResult[Resp any](v any) (*Resp, error) {
	return decodeResult[Resp](jsonCodec{}, v)
}

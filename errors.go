package apiclient

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrMissingPathParameter matches every *MissingPathParameterError.
	ErrMissingPathParameter = errors.New("missing path parameter")

	// ErrBindParams and ErrBindQuery report typed bags that could not be
	// converted into a Params or Query.
	ErrBindParams = errors.New("bind params")
	ErrBindQuery  = errors.New("bind query")

	// ErrDecodeResult reports a fetch result that could not be converted
	// into the declared response type.
	ErrDecodeResult = errors.New("decode result")
)

// MissingPathParameterError is returned when an endpoint template names a
// parameter that is absent from the supplied Params. It is raised while
// the URL is built, so no request is ever sent.
type MissingPathParameterError struct {
	Param    string
	Template string
}

// Error returns the error message.
func (e *MissingPathParameterError) Error() string {
	return fmt.Sprintf("missing path parameter %q for template %q", e.Param, e.Template)
}

// Is reports whether target is ErrMissingPathParameter.
func (e *MissingPathParameterError) Is(target error) bool {
	return target == ErrMissingPathParameter
}

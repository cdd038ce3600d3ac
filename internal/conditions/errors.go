package conditions

import (
	"fmt"
)

// NotFoundMessage is shown verbatim when a place name resolves to nothing.
const NotFoundMessage = "City not found. Please check the spelling."

// NotFoundError indicates the geocoding upstream returned zero matches for
// the queried place name.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return NotFoundMessage
}

// UpstreamError indicates an outbound call to one of the data sources did
// not complete successfully (transport failure or non-2xx status).
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s service unavailable: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

package weather

import (
	"errors"
	"fmt"
)

// Failure kinds reported for locations that contributed no data.
const (
	KindAPI       = "api"
	KindTransport = "transport"
	KindDecode    = "decode"
	KindUnknown   = "unknown"
)

// ErrorMarker is the literal the archive API puts in the body of a failed request.
const ErrorMarker = `"error":true`

// APIError is returned when the response body carried ErrorMarker.
type APIError struct {
	Latitude  float64
	Longitude float64
	Reason    string
	Body      string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("api error for (%g, %g): %s", e.Latitude, e.Longitude, e.Reason)
	}
	return fmt.Sprintf("api error for (%g, %g): %s", e.Latitude, e.Longitude, e.Body)
}

// TransportError wraps a failure to obtain a response body.
type TransportError struct {
	Latitude  float64
	Longitude float64
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request for (%g, %g) failed: %v", e.Latitude, e.Longitude, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a failure to decode the response body.
type DecodeError struct {
	Latitude  float64
	Longitude float64
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response for (%g, %g): %v", e.Latitude, e.Longitude, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FailureKind classifies err as one of the Kind constants.
func FailureKind(err error) string {
	var (
		apiErr       *APIError
		transportErr *TransportError
		decodeErr    *DecodeError
	)
	switch {
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &decodeErr):
		return KindDecode
	default:
		return KindUnknown
	}
}

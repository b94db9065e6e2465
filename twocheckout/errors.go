package twocheckout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse is returned when the gateway answers with an empty body.
	ErrEmptyResponse = errors.New("gateway returned an empty response")
	// ErrMalformedResponse is returned when the body does not decode to a JSON object.
	ErrMalformedResponse = errors.New("gateway returned an invalid JSON response")
	// ErrProductNotFound is returned when a vendor product reference resolves
	// to zero products, or to more than one.
	ErrProductNotFound = errors.New("no single product matched")

	// ErrUnsupportedParameter classifies a ValidationError caused by keys
	// outside an operation's allowed set.
	ErrUnsupportedParameter = errors.New("unsupported parameter")
	// ErrMissingParameter classifies a ValidationError caused by absent
	// required keys.
	ErrMissingParameter = errors.New("missing required parameter")
)

// ValidationError reports caller-supplied parameters rejected before any
// request is made.
type ValidationError struct {
	Reason  error // optional sentinel classifying the failure
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Reason }

// APIError is a failure reported in the errors array of a response envelope.
// Only the first entry is surfaced; the gateway lists at most one actionable
// error and callers depend on receiving that code alone.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error [%s] %s", e.Code, e.Message)
}

// APIWarningError is a failure reported in the warnings array of a response
// envelope. Warnings are treated as fatal, same first-entry rule as APIError.
type APIWarningError struct {
	Code    string
	Message string
}

func (e *APIWarningError) Error() string {
	return fmt.Sprintf("api warning [%s] %s", e.Code, e.Message)
}

// APIResponseError is returned when the envelope's response_code is present
// but not "OK".
type APIResponseError struct {
	Code    string
	Message string
}

func (e *APIResponseError) Error() string {
	return fmt.Sprintf("response error [%s] %s", e.Code, e.Message)
}

// HTTPStatusError is returned when the transport status is not 200 and the
// body carried no decodable envelope error.
type HTTPStatusError struct {
	Status int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("gateway returned error status %d", e.Status)
}

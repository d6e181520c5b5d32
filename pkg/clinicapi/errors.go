package clinicapi

import (
	"errors"
	"fmt"
)

// ErrNetwork matches any *Error raised because no HTTP response arrived.
var ErrNetwork = errors.New("clinicapi: network error")

// Error is returned by every Client operation that fails.
//
// Status is the HTTP status of the response, or 0 when the request never got
// one (transport failure). Message is the text meant for users: the server's
// "detail" or "message" field, or a generic status line.
type Error struct {
	Method   string
	Endpoint string
	Status   int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports transport failures as ErrNetwork.
func (e *Error) Is(target error) bool {
	return target == ErrNetwork && e.Status == 0
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == status
}

func statusMessage(status int, body errorBody) string {
	if s, ok := body.Detail.(string); ok && s != "" {
		return s
	}
	if s, ok := body.Message.(string); ok && s != "" {
		return s
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

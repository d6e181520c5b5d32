package email

import (
	"errors"
	"fmt"
)

var (
	ErrDisabled       = errors.New("email: sending is disabled")
	ErrInvalidMessage = errors.New("email: invalid message")
)

// SendError is an SMTP delivery failure for one relay.
type SendError struct {
	Host string
	Err  error
}

func (e *SendError) Error() string { return fmt.Sprintf("email: send via %s: %v", e.Host, e.Err) }
func (e *SendError) Unwrap() error { return e.Err }

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidMessage, reason)
}

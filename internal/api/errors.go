package api

import (
	"errors"
	"fmt"
)

// ErrUnknownOperation is returned for routes outside the fixed set.
var ErrUnknownOperation = errors.New("unknown operation")

// StatusError is a non-2xx HTTP response whose body is not a service reply.
type StatusError struct {
	Op         Operation
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: server returned HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: server returned HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}

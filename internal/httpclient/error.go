package httpclient

import (
	"fmt"

	ierr "github.com/bestsenki/storefront/internal/errors"
)

// Error is an upstream response with a 4xx or 5xx status. It matches
// ierr.ErrHTTPClient so callers can branch on the mark alone.
type Error struct {
	StatusCode int
	Response   []byte
}

func NewError(statusCode int, response []byte) *Error {
	return &Error{StatusCode: statusCode, Response: response}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: upstream returned %d", ierr.ErrCodeHTTPClient, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return ierr.ErrHTTPClient
}

// IsHTTPError returns the upstream response error wrapped in err, if any
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	ok := ierr.As(err, &httpErr)
	return httpErr, ok
}

// Package apperr defines the error classes that cross the pipeline boundary.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidRequest marks input rejected before any upstream call.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrRateLimited marks quota exhaustion signalled by an upstream provider.
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstream marks a transport or provider failure of an upstream service.
	ErrUpstream = errors.New("upstream unavailable")
)

// IsRateLimited reports whether err carries a rate-limit signal anywhere in its chain.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// HTTPStatus maps an error to the status class exposed to callers.
// Rate limiting wins over a generic upstream wrap.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RateLimited wraps err so that it matches both ErrRateLimited and ErrUpstream.
func RateLimited(err error) error {
	if err == nil {
		return nil
	}
	return &classified{err: err, kinds: []error{ErrRateLimited, ErrUpstream}}
}

// Upstream wraps err so that it matches ErrUpstream.
func Upstream(err error) error {
	if err == nil {
		return nil
	}
	return &classified{err: err, kinds: []error{ErrUpstream}}
}

type classified struct {
	err   error
	kinds []error
}

func (c *classified) Error() string { return c.err.Error() }

func (c *classified) Unwrap() []error {
	return append([]error{c.err}, c.kinds...)
}

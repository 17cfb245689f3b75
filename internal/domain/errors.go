package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery indicates a blank or whitespace-only query; the send is a no-op
	ErrEmptyQuery = errors.New("empty query")
	// ErrBusy indicates an operation was rejected because one is already in flight
	ErrBusy = errors.New("operation already in flight")
	// ErrNoFiles indicates an upload batch with no files
	ErrNoFiles = errors.New("no files to upload")
)

// APIError is a non-2xx backend response normalized into a single error type.
// Detail carries the backend's "detail" field when the body had one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Detail)
}

// FailureMessage extracts the user-presentable message from an error: the
// backend detail when available, the plain error text otherwise.
func FailureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}

package models

import "fmt"

// APIError describes a non-zero error_code returned by the web API. Err is
// the sentinel of the failing step, so callers can match it with errors.Is
// while still reading the server code.
type APIError struct {
	Err     error
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: error_code %d", e.Err, e.Code)
	}
	return fmt.Sprintf("%v: error_code %d: %s", e.Err, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError builds an APIError from a response envelope.
func NewAPIError(sentinel error, resp Response) *APIError {
	return &APIError{Err: sentinel, Code: resp.ErrorCode, Message: resp.ErrorMessage}
}

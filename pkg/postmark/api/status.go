package api

import "fmt"

// Status contains the fields the Postmark API uses to report
// application-level outcomes inside a response body. A zero ErrorCode
// means success.
type Status struct {
	ErrorCode int64
	Message   string
}

// Err returns nil when ErrorCode is zero and an [*APIError] otherwise.
func (s Status) Err() error {
	if s.ErrorCode == 0 {
		return nil
	}
	return &APIError{ErrorCode: s.ErrorCode, Message: s.Message}
}

// APIError is an application-level error reported by the Postmark API
// (e.g., error code 406 for an inactive recipient).
type APIError struct {
	ErrorCode int64
	Message   string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("postmark: api error %d: %s", e.ErrorCode, e.Message)
}

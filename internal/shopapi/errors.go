package shopapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means no session was present for an operation
	// that requires one. Raised by callers before any network call.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired means the backend rejected the bearer token
	// (401/403). The caller must clear its local session state.
	ErrSessionExpired = errors.New("session expired")

	// ErrUnavailable means the collaborator could not be reached.
	ErrUnavailable = errors.New("api unavailable")

	// ErrNotFound means the referenced resource is absent (404).
	ErrNotFound = errors.New("not found")
)

// APIError carries a non-success status with the backend's message, as
// decoded from its {"error": "..."} envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status=%d", e.Status)
}

package stoneconnect

import (
	"fmt"
	"net/http"
)

// ConnectionError wraps a transport-level failure (DNS, TCP, TLS, timeout).
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// AuthenticationError indicates the device rejected the basic-auth
// credentials (HTTP 401). Credentials are static, retrying cannot help.
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string {
	return "authentication failed"
}

// APIError indicates an unsuccessful http response other than 401. It carries
// the status code and raw body text for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode == http.StatusNotFound && e.Endpoint != "" {
		return fmt.Sprintf("endpoint not found: %s", e.Endpoint)
	}
	return fmt.Sprintf("api request failed: %d (%s) - %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// ValidationError indicates a caller-supplied input failed a local
// precondition. It is raised before any network call.
type ValidationError struct {
	msg string
}

func newValidationError(format string, arg ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, arg...)}
}

func (e *ValidationError) Error() string {
	return e.msg
}

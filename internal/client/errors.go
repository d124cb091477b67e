package client

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ConnectivityError means the API could not be reached: refused connection,
// DNS failure or timeout. No response was received.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	if e.Timeout() {
		return "request to " + e.URL + " timed out"
	}
	return "cannot connect to API at " + e.URL
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// Timeout reports whether the request ran out of time.
func (e *ConnectivityError) Timeout() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Reason     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Reason)
}

// NotFound reports a 404 answer.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Message renders any client error for display.
func Message(err error) string {
	var connErr *ConnectivityError
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &connErr):
		if connErr.Timeout() {
			return "Request timed out. Please try again."
		}
		return "Cannot connect to API. Make sure the server is running!"
	case errors.As(err, &apiErr):
		if apiErr.NotFound() {
			return "Resource not found!"
		}
		if apiErr.Reason != "" {
			return apiErr.Reason
		}
		return fmt.Sprintf("HTTP Error: %d", apiErr.StatusCode)
	default:
		return "Unexpected error: " + err.Error()
	}
}

package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Validation errors
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeInvalidReference = "INVALID_REFERENCE"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Error kinds shared by every resource service. Service errors wrap exactly one
// of these so handlers can map them to a status code with errors.Is.
var (
	ErrNotFound         = stderrors.New("resource not found")
	ErrInvalidReference = stderrors.New("invalid reference")
	ErrConflict         = stderrors.New("resource conflict")
)

type kindError struct {
	kind    error
	message string
}

func (e *kindError) Error() string { return e.message }
func (e *kindError) Unwrap() error { return e.kind }

// NewNotFound returns an error that matches ErrNotFound and reads as message.
func NewNotFound(message string) error {
	return &kindError{kind: ErrNotFound, message: message}
}

// NewInvalidReference returns an error that matches ErrInvalidReference.
func NewInvalidReference(message string) error {
	return &kindError{kind: ErrInvalidReference, message: message}
}

// NewConflict returns an error that matches ErrConflict.
func NewConflict(message string) error {
	return &kindError{kind: ErrConflict, message: message}
}

// APIError represents a standardized API error response.
// Detail mirrors Message for clients that read the "detail" key.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  string      `json:"detail"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Detail:  message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Detail:  message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Respond maps a service error onto the matching HTTP response. Errors that
// fall outside the taxonomy are attached to the context for the request logger
// and answered with a generic 500.
func Respond(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case stderrors.As(err, &verr):
		BadRequestWithDetails(c, verr.Error(), verr.Fields)
	case stderrors.Is(err, ErrInvalidReference):
		RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidReference, err.Error()))
	case stderrors.Is(err, ErrNotFound):
		NotFound(c, err.Error())
	case stderrors.Is(err, ErrConflict):
		Conflict(c, err.Error())
	default:
		_ = c.Error(err)
		InternalError(c, "")
	}
}

// Helper functions for common error responses

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}

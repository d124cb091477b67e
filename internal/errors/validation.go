package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed, missing or out-of-domain input.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field failure.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns e as an error only when it holds failures.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		if f.Field == "" {
			parts[i] = f.Message
			continue
		}
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FromBindingError converts request binding failures (JSON decoding and
// validator tag failures) into a ValidationError.
func FromBindingError(err error) *ValidationError {
	var verr *ValidationError
	if stderrors.As(err, &verr) {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		out := &ValidationError{}
		for _, fe := range fieldErrs {
			out.Add(fe.Field(), TagMessage(fe.Tag(), fe.Param()))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return NewValidationError(typeErr.Field, fmt.Sprintf("must be of type %s", typeErr.Type.String()))
	}

	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return NewValidationError("", "request body is not valid JSON")
	}
	if stderrors.Is(err, io.EOF) {
		return NewValidationError("", "request body is required")
	}

	return NewValidationError("", err.Error())
}

// TagMessage renders a validator tag as a human-readable constraint.
func TagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "min":
		return "must be at least " + param + " characters"
	case "max":
		return "must be at most " + param + " characters"
	case "gt":
		return "must be greater than " + param
	case "notnull":
		return "may not be null"
	default:
		return "failed on the '" + tag + "' rule"
	}
}

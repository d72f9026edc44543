package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel values for the failures a request can run into.
var (
	ErrNotFound         = errors.New("record not found")
	ErrBadRequest       = errors.New("bad request")
	ErrTemplateNotFound = errors.New("template not found")
)

// HTTPError pairs a failure with the status code it should be answered with.
type HTTPError struct {
	StatusCode int
	err        error
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for form errors)
	Cause      error  // The underlying cause of the error
}

func (e *HTTPError) Error() string {
	msg := e.err.Error()
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.err}
	}
	return []error{e.err, e.Cause}
}

// NewMissingFieldError reports a required form field that was not sent.
func NewMissingFieldError(field string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		err:        ErrBadRequest,
		Details:    fmt.Sprintf("missing required field: %s", field),
		Field:      field,
	}
}

// NewInvalidFieldError reports a form field whose value was rejected.
func NewInvalidFieldError(field, reason string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		err:        ErrBadRequest,
		Details:    fmt.Sprintf("invalid field %s: %s", field, reason),
		Field:      field,
	}
}

// NewNotFound wraps a lookup miss. Lookup misses are answered as server errors.
func NewNotFound(entity, key string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		err:        ErrNotFound,
		Details:    fmt.Sprintf("%s %q", entity, key),
	}
}

// NewAmbiguousMatch reports a lookup that expected one record and found several.
func NewAmbiguousMatch(entity, key string, n int) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		err:        ErrNotFound,
		Details:    fmt.Sprintf("%d %s records match %q", n, entity, key),
	}
}

// NewTemplateNotFound reports an unknown template name.
func NewTemplateNotFound(name string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		err:        ErrTemplateNotFound,
		Details:    name,
	}
}

// NewInternalErrorWithCause wraps an unexpected failure.
func NewInternalErrorWithCause(message string, cause error) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		err:        errors.New(message),
		Cause:      cause,
	}
}

// StatusCode returns the status an error should be answered with.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Validation Errors.
	// These are raised before any request is sent to the record store.

	// ErrEmptySelection indicates a bulk operation was requested with no items selected.
	ErrEmptySelection = errors.New("no items selected")

	// ErrEmptyOperationData indicates a bulk operation has no usable field/value pairs.
	ErrEmptyOperationData = errors.New("operation data is empty")

	// ErrDuplicateField indicates a field addition targets a name already present.
	// Overwrites must go through the update path instead.
	ErrDuplicateField = errors.New("field already exists")

	// ErrProtectedField indicates an attempt to remove a core field.
	ErrProtectedField = errors.New("core fields cannot be removed")

	// ErrMissingInput indicates a required name or value was empty.
	ErrMissingInput = errors.New("field name and value are required")

	// ErrRequiredField indicates a new obra or zona lacks a mandatory field.
	ErrRequiredField = errors.New("required field is empty")

	// ErrUnknownOperation indicates an unrecognised bulk operation kind.
	ErrUnknownOperation = errors.New("unknown bulk operation")

	// Execution Errors.

	// ErrAborted indicates the user declined a confirmation prompt.
	// Nothing was sent and no result exists.
	ErrAborted = errors.New("aborted by user")

	// ErrOperationInProgress indicates a bulk operation is already executing.
	ErrOperationInProgress = errors.New("bulk operation in progress")

	// ErrConfirmationRequired indicates a destructive action needs confirmation
	// but no interactive prompt is available.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ValidationError is a client-side, pre-dispatch failure.
// Err is always one of the validation sentinels above.
type ValidationError struct {
	// Field is the field name or input the failure refers to (may be empty).
	Field string

	// Err is the underlying sentinel.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Field)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// newValidationError wraps a sentinel with the offending field name.
func newValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err is a pre-dispatch validation failure.
func IsValidation(err error) bool {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return true
	}
	return errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrEmptyOperationData) ||
		errors.Is(err, ErrDuplicateField) ||
		errors.Is(err, ErrProtectedField) ||
		errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrRequiredField)
}

// TransportError is a failure of the outer request itself: a non-2xx
// response or a network error. Per-item failures inside a successful
// bulk response are never reported this way.
type TransportError struct {
	// Method is the HTTP method of the failed request.
	Method string

	// URL is the request URL.
	URL string

	// StatusCode is the HTTP status, or 0 for network failures.
	StatusCode int

	// Body is the textual response body, if any.
	Body string

	// Err is the underlying network error, if any.
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	body := e.Body
	if body == "" {
		body = "No body"
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is an outer-request failure.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// IsNotFound checks if the error indicates a missing record or collection.
func IsNotFound(err error) bool {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.StatusCode == 404
	}
	return errors.Is(err, ErrNotFound)
}

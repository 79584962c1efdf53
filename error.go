package prodsync

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These map failure classes to machine-readable codes so callers can
// branch on the kind of failure without string matching.
const (
	EINVALID     = "invalid"     // unparsable or invalid input
	ENOTFOUND    = "not_found"   // entity does not exist
	ENOTPRODUCT  = "not_product" // page is not a product page; clean exit, not a failure
	EPAYLOAD     = "payload"     // malformed JSON payload (embedded, fetched, or response body)
	ETOOMANY     = "too_many"    // variant expansion exceeded the configured cap
	EUNAVAILABLE = "unavailable" // network transport failure or non-success HTTP status
	EINTERNAL    = "internal"    // unexpected internal error
)

// Error represents an application error with a machine-readable code.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("prodsync error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper for creating an Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of an error, if available.
// Returns EINTERNAL for non-application errors and "" for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of an error, if available.
// Returns a generic message for non-application errors and "" for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

package darkcrawl

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to transport-level error
// reporting (CLI exit messages, HTTP status codes in future surfaces).
const (
	ECONFLICT    = "conflict"    // action cannot be performed (e.g. duplicate ID)
	EINVALID     = "invalid"     // validation failed
	EINTERNAL    = "internal"    // internal error
	ENOTFOUND    = "not_found"   // entity does not exist
	EUNAVAILABLE = "unavailable" // external collaborator unreachable or timed out
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("darkcrawl error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// AnalysisFailedError reports that the inference service exhausted its retry
// budget for one page. The crawl continues past it; the page still produces
// an Entry with zero findings and a provenance flag.
type AnalysisFailedError struct {
	// Address is the normalized address of the page whose analysis failed.
	Address string

	// Attempts is the number of inference attempts made.
	Attempts int

	// Err is the error from the final attempt.
	Err error
}

// Error implements the error interface.
func (e *AnalysisFailedError) Error() string {
	return fmt.Sprintf("analysis failed for %s after %d attempts: %v", e.Address, e.Attempts, e.Err)
}

// Unwrap returns the error from the final attempt.
func (e *AnalysisFailedError) Unwrap() error {
	return e.Err
}

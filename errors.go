package siterag

import (
	"errors"
	"fmt"
)

// Application error codes. These map failures to how the pipeline
// recovers from them: page-granular codes (ENETWORK, EPARSE) are
// recorded and the crawl continues; ECONFIG, EUNAVAILABLE and
// EMISMATCH are fatal to the operation that raised them.
const (
	ECONFIG      = "config"             // invalid chunking parameters
	EINVALID     = "invalid"            // validation failed
	EINTERNAL    = "internal"           // internal error
	EMISMATCH    = "dimension_mismatch" // vector dimension disagrees with the store
	ENETWORK     = "network"            // fetch failed or timed out
	ENOTFOUND    = "not_found"          // entity does not exist
	EPARSE       = "parse"              // content could not be extracted
	EPROVIDER    = "provider"           // answer generation failed
	EUNAVAILABLE = "unavailable"        // embedding backend cannot be reached
)

// Error represents an application error with a machine-readable code
// and a human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("siterag error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of the error, if available.
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

// ErrorMessage returns the message of the error, if available.
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

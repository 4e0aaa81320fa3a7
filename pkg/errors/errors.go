package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Pack errors
	ErrManifestLoad  ErrorCode = "MANIFEST_LOAD"
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"
	ErrPackInvalid   ErrorCode = "PACK_INVALID"
	ErrIgnoreRead    ErrorCode = "IGNORE_READ"
	ErrVersionParse  ErrorCode = "VERSION_PARSE"

	// Publish errors
	ErrStagingExists   ErrorCode = "STAGING_EXISTS"
	ErrArchiveBuild    ErrorCode = "ARCHIVE_BUILD"
	ErrRegistryPublish ErrorCode = "REGISTRY_PUBLISH"

	// VCS errors
	ErrVCSDirty  ErrorCode = "VCS_DIRTY"
	ErrVCSCommit ErrorCode = "VCS_COMMIT"
	ErrVCSAccess ErrorCode = "VCS_ACCESS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"
)

// PackshipError represents a structured error with code and details
type PackshipError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PackshipError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PackshipError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface; two PackshipErrors match when their
// codes match.
func (e *PackshipError) Is(target error) bool {
	var targetErr *PackshipError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PackshipError with the given code and message
func New(code ErrorCode, message string) *PackshipError {
	return &PackshipError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PackshipError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PackshipError {
	return &PackshipError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PackshipError
func Wrap(err error, code ErrorCode, message string) *PackshipError {
	if err == nil {
		return nil
	}
	return &PackshipError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PackshipError {
	if err == nil {
		return nil
	}
	return &PackshipError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error and returns it for chaining
func (e *PackshipError) WithDetail(key string, value interface{}) *PackshipError {
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, returning ErrUnknown for
// errors that are not PackshipErrors.
func GetCode(err error) ErrorCode {
	var pe *PackshipError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool {
	var pe *PackshipError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Helper command errors
	ErrCodeHelperMissing  ErrorCode = "HELPER_MISSING"
	ErrCodeCommandFailed  ErrorCode = "COMMAND_FAILED"
	ErrCodeCommandTimeout ErrorCode = "COMMAND_TIMEOUT"

	// Metric errors
	ErrCodeSysfsRead       ErrorCode = "SYSFS_READ"
	ErrCodeParse           ErrorCode = "PARSE"
	ErrCodeCollectorFailed ErrorCode = "COLLECTOR_FAILED"

	// Display errors
	ErrCodeDisplayUnavailable ErrorCode = "DISPLAY_UNAVAILABLE"

	// General errors
	ErrCodeAlreadyRunning ErrorCode = "ALREADY_RUNNING"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput   ErrorCode = "INVALID_INPUT"
)

// StatusError represents a structured error with context
type StatusError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StatusError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *StatusError) WithDetail(key string, value interface{}) *StatusError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *StatusError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new StatusError
func New(code ErrorCode, message string) *StatusError {
	return &StatusError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a StatusError
func Wrap(err error, code ErrorCode, message string) *StatusError {
	return &StatusError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// As returns the outermost StatusError in err's chain.
func As(err error) (*StatusError, bool) {
	for err != nil {
		if statusErr, ok := err.(*StatusError); ok {
			return statusErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}

// Is checks if any StatusError in the chain carries the given code
func Is(err error, code ErrorCode) bool {
	for err != nil {
		statusErr, ok := As(err)
		if !ok {
			return false
		}
		if statusErr.Code == code {
			return true
		}
		err = statusErr.Cause
	}
	return false
}

// GetCode extracts the error code of the outermost StatusError
func GetCode(err error) ErrorCode {
	statusErr, ok := As(err)
	if !ok {
		return ""
	}
	return statusErr.Code
}

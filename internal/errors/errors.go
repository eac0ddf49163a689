package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrMissingOutputDir         = errors.New("OUTPUT_DIRECTORY environment variable is not set")
	ErrEmptyInput               = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON              = errors.New("invalid JSON format")
	ErrMultipleJSON             = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrUnsupportedTopLevelShape = errors.New("top-level JSON value must be an object or an array of objects")
	ErrInvalidRecordShape       = errors.New("array elements must be JSON objects")
	ErrRecordPathNotFound       = errors.New("record path not found in input document")
)

// ErrorType categorizes errors. Each type maps to one process exit code:
// configuration 1, input 2, shape 3, output 4.
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeInput         ErrorType = "input"
	ErrorTypeShape         ErrorType = "shape"
	ErrorTypeOutput        ErrorType = "output"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewConfigurationError creates a new error related to environment or file configuration
func NewConfigurationError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to reading or parsing stdin
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewShapeError creates a new error related to the shape of the input document
func NewShapeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeShape,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to writing the result file
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// TypeOf returns the taxonomy type carried by err, or ErrorTypeUnknown for
// errors that did not originate in this package.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeConfiguration:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeShape:
			return fmt.Sprintf("Shape error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrMissingOutputDir) {
		return "Error: OUTPUT_DIRECTORY is not set. Please export the directory the result file should be written to."
	}
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data on stdin."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. Please provide a single JSON object or array."
	}
	if errors.Is(err, ErrUnsupportedTopLevelShape) {
		return "Error: The top-level JSON value must be an object or an array of objects."
	}
	if errors.Is(err, ErrInvalidRecordShape) {
		return "Error: Every element of a top-level array must be a JSON object."
	}
	if errors.Is(err, ErrRecordPathNotFound) {
		return "Error: The configured record path does not exist in the input document."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes recognized at the request boundary.
const (
	CodeInput        = "INPUT_ERROR"
	CodeAnalysis     = "ANALYSIS_ERROR"
	CodeDependency   = "DEPENDENCY_ERROR"
	CodeCollaborator = "COLLABORATOR_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Input reports a bad upload (missing file, unsupported extension).
func Input(format string, args ...interface{}) *AppError {
	return New(CodeInput, fmt.Sprintf(format, args...))
}

// Analysis reports an unanalyzable dataset (empty, no numeric metric).
func Analysis(message string) *AppError {
	return New(CodeAnalysis, message)
}

// Dependency reports a missing decoding capability.
func Dependency(message string, cause error) *AppError {
	return &AppError{Code: CodeDependency, Message: message, Cause: cause}
}

// Collaborator reports a failed or malformed narrative-generation call.
func Collaborator(message string, cause error) *AppError {
	return &AppError{Code: CodeCollaborator, Message: message, Cause: cause}
}

// Wrap wraps an error with additional context, preserving its code
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{Code: appErr.Code, Message: message, Cause: err}
	}
	return &AppError{Code: CodeInternal, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// CodeOf extracts the error code, defaulting to INTERNAL_ERROR.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HTTPStatus maps an error code to the response status used at the boundary.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInput, CodeAnalysis:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

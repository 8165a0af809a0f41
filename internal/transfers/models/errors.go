package models

import "fmt"

// ErrorCode is the stable taxonomy of transfer rejections.
type ErrorCode string

const (
	CodeUsernameTaken    ErrorCode = "USERNAME_TAKEN"
	CodeTooManyNames     ErrorCode = "TOO_MANY_NAMES"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeUsernameNotFound ErrorCode = "USERNAME_NOT_FOUND"
	CodeInvalidSignature ErrorCode = "INVALID_SIGNATURE"
	CodeInvalidUsername  ErrorCode = "INVALID_USERNAME"
	CodeInvalidTimestamp ErrorCode = "INVALID_TIMESTAMP"
)

// ValidationError rejects a transfer request with one taxonomy code.
type ValidationError struct {
	Code ErrorCode
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation error: %s", e.Code)
}

// Reject builds a ValidationError for code.
func Reject(code ErrorCode) *ValidationError {
	return &ValidationError{Code: code}
}

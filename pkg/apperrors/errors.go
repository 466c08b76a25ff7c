package apperrors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrInvalidInput indicates invalid input data (spam, too-fast, missing fields)
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid authentication
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream indicates a collaborator (Resend, Strapi, build hook) failed
	ErrUpstream = errors.New("upstream failure")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// UpstreamError creates an upstream failure error with context
func UpstreamError(service string, err error) error {
	return fmt.Errorf("%s: %v: %w", service, err, ErrUpstream)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

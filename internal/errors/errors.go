// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors are raised by services and use
// cases and mapped to user-visible replies by the bot orchestration layer.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors shared across all modules.
var (
	// ErrConfig indicates required configuration (credentials, API base,
	// destination path) is missing before any network call was made.
	ErrConfig = errors.New("configuration error")

	// ErrAuth indicates a login or refresh failure against the remote storage
	// service, including responses that carry no access token.
	ErrAuth = errors.New("authentication error")

	// ErrProtocol indicates a malformed or non-JSON response from the remote
	// storage service.
	ErrProtocol = errors.New("protocol error")

	// ErrRemoteSubmit indicates a remote-download submission was rejected after
	// the single bounded retry.
	ErrRemoteSubmit = errors.New("remote submit error")

	// ErrParse indicates no link could be extracted from a message by any
	// fallback stage.
	ErrParse = errors.New("parse error")

	// ErrRelay indicates every relay tier into the holding channel was exhausted.
	ErrRelay = errors.New("relay error")

	// ErrForbidden indicates the user is not allowed to use the bot.
	ErrForbidden = errors.New("forbidden")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new error with a formatted message.
func Newf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

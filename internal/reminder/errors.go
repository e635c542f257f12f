package reminder

import (
	"errors"
	"fmt"
)

// ErrNotAuthorized is wrapped by CreationError when no token is bound to the context.
var ErrNotAuthorized = errors.New("auth context has no bound token")

// ConfigurationError reports missing or invalid static credentials.
type ConfigurationError struct {
	Field  string // Credentials field name, e.g. "ClientID"
	Reason string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// AuthExchangeError reports that an authorization code was rejected.
type AuthExchangeError struct {
	Err error
}

// Error implements the error interface
func (e *AuthExchangeError) Error() string {
	return fmt.Sprintf("authorization code exchange failed: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *AuthExchangeError) Unwrap() error {
	return e.Err
}

// CreationError reports that the event submission was rejected.
type CreationError struct {
	Err error
}

// Error implements the error interface
func (e *CreationError) Error() string {
	return fmt.Sprintf("reminder creation failed: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *CreationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsAuthExchangeError reports whether err is or wraps an AuthExchangeError.
func IsAuthExchangeError(err error) bool {
	var target *AuthExchangeError
	return errors.As(err, &target)
}

// IsCreationError reports whether err is or wraps a CreationError.
func IsCreationError(err error) bool {
	var target *CreationError
	return errors.As(err, &target)
}

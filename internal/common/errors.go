// Package common defines sentinel errors and small helpers shared by the
// server, the notification worker and the CLI. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal = errors.New("internal error")

	// account lifecycle errors
	ErrDuplicateAccount       = errors.New("account already exists")
	ErrInvalidOtp             = errors.New("invalid verification code")
	ErrUnknownAccount         = errors.New("account not found")
	ErrAccountNotVerified     = errors.New("account is not verified")
	ErrPasswordTooLong        = errors.New("password is too long")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAuthenticationInternal = errors.New("authentication failed due to an internal error")

	// notification delivery failed; never surfaced to API callers
	ErrDelivery = errors.New("notification delivery failed")

	// request failed boundary validation
	ErrMalformedRequest = errors.New("malformed request")
)

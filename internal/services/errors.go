package services

import "errors"

var (
	ErrInvalidPassword      = errors.New("password is required")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrEmailTaken           = errors.New("email is already taken")
	ErrEmailNotSent         = errors.New("sending of email failed")
	ErrNotFound             = errors.New("entity was not found")
	ErrIncorrectPassword    = errors.New("password is incorrect")
	ErrTooManyLoginAttempts = errors.New("too many failed login attempts")
	ErrTooManyEmailChanges  = errors.New("too many email change attempts")
	ErrTooManyResetAttempts = errors.New("too many password reset attempts")
	ErrForbidden            = errors.New("forbidden")
	ErrReadOnlyProperty     = errors.New("property is read-only for external accounts")

	// ErrApp is the catch-all for conditions that do not warrant a dedicated
	// kind, such as an expired reset link.
	ErrApp = errors.New("something went wrong")
)

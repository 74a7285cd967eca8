package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInternal           = errors.New("internal error")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")
	ErrAlreadyVerified    = errors.New("already verified")
	ErrNotVerified        = errors.New("account is not verified")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotifierFailed     = errors.New("notifier failed")

	ErrInvalidEmail           = fmt.Errorf("%w: invalid email", ErrInvalidArgument)
	ErrInvalidRegistrationKey = fmt.Errorf("%w: incorrect registration key", ErrInvalidArgument)

	ErrTokenExpired  = fmt.Errorf("%w: token expired", ErrInvalidToken)
	ErrTokenTampered = fmt.Errorf("%w: wrong token", ErrInvalidToken)
)

func NewInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

func WrapInternal(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}

// WrapNotifier keeps transport failures apart from ErrInternal so callers can
// answer "failed to send the email" instead of a generic error.
func WrapNotifier(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrNotifierFailed, context, err)
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsAlreadyVerified(err error) bool {
	return errors.Is(err, ErrAlreadyVerified)
}

func IsConflict(err error) bool {
	return IsAlreadyExists(err) || IsAlreadyVerified(err)
}

func IsNotVerified(err error) bool {
	return errors.Is(err, ErrNotVerified)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsTokenExpired(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

func IsTokenTampered(err error) bool {
	return errors.Is(err, ErrTokenTampered)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsNotifierFailed(err error) bool {
	return errors.Is(err, ErrNotifierFailed)
}

package credit

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUserNotFound  = errors.New("credit user not found")
	ErrUserDisabled  = errors.New("credit user is disabled")
	ErrNoMobile      = errors.New("credit user has no mobile number on file")
	ErrOTPNotFound   = errors.New("no pending PIN for user")
	ErrOTPExpired    = errors.New("PIN has expired")
	ErrOTPMismatch   = errors.New("PIN does not match")
	ErrStoreNotFound = errors.New("store not found")
)

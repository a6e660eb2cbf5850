package accounts

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrMemberNotFound     = errors.New("member not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountNotActive   = errors.New("account is not activated")
	ErrAlreadyActive      = errors.New("account is already activated")
	ErrInvalidCredentials = errors.New("invalid member number or password")
)

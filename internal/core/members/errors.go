package members

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrMemberNotFound = errors.New("member not found")
)

package loans

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrLoanNotFound  = errors.New("loan not found")
	ErrNotLoanOwner  = errors.New("loan does not belong to member")
	ErrTypeNotFound  = errors.New("loan type not found")
	ErrTypeNotOnline = errors.New("loan type not open for online application")
	ErrPendingExists = errors.New("member already has a pending application")
)

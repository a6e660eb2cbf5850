package surveys

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrSurveyNotFound   = errors.New("survey not found")
	ErrSurveyClosed     = errors.New("survey is not open for responses")
	ErrAlreadyResponded = errors.New("member has already responded to survey")
	ErrUnknownQuestion  = errors.New("answer references unknown question")
	ErrUnknownChoice    = errors.New("answer references unknown choice")
	ErrMissingRequired  = errors.New("required question left unanswered")
)

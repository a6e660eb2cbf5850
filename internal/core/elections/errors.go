package elections

import "errors"

var (
	// ErrInvalidInput indicates the submission payload is malformed
	// (bad year, missing member, no candidates after de-duplication)
	ErrInvalidInput = errors.New("invalid vote submission")

	// ErrAlreadyVoted indicates a ballot already exists for this
	// member and election year
	ErrAlreadyVoted = errors.New("member already voted")

	// ErrUnknownPosition indicates a submitted position code is not registered
	ErrUnknownPosition = errors.New("unknown position")

	// ErrTooManySelections indicates more candidates were selected for
	// a position than its seat limit allows
	ErrTooManySelections = errors.New("too many selections for position")

	// ErrInvalidCandidate indicates a candidate is not registered for
	// the election year
	ErrInvalidCandidate = errors.New("candidate not registered for this year")

	// ErrCandidateMismatch indicates a candidate's registered position
	// differs from the submitted position code
	ErrCandidateMismatch = errors.New("candidate does not belong to submitted position")

	// ErrBallotNotFound indicates the member has no ballot for the year
	ErrBallotNotFound = errors.New("ballot not found")

	// ErrPositionExists indicates a duplicate position code on create
	ErrPositionExists = errors.New("position already exists")

	// ErrPositionNotFound indicates the position does not exist
	ErrPositionNotFound = errors.New("position not found")

	// ErrCandidateExists indicates a duplicate candidate on create
	ErrCandidateExists = errors.New("candidate already exists")

	// ErrCandidateNotFound indicates the candidate does not exist
	ErrCandidateNotFound = errors.New("candidate not found")
)

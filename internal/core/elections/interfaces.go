package elections

import "context"

// Service is the business logic interface for the election module.
type Service interface {
	// SubmitVote validates and persists one member's ballot for one
	// election year, atomically. The ballot number is issued under a
	// per-year lock so concurrent submitters can never collide.
	SubmitVote(ctx context.Context, req SubmitVoteRequest) (*BallotReceipt, error)

	// HasVoted reports whether the member already holds a ballot for the year.
	HasVoted(ctx context.Context, memberNo string, year int) (bool, error)

	// GetBallot returns the member's ballot header for the year.
	GetBallot(ctx context.Context, memberNo string, year int) (*Ballot, error)

	// ListCastVotes returns the member's vote lines for the year,
	// joined with candidate detail.
	ListCastVotes(ctx context.Context, memberNo string, year int) ([]CastVote, error)

	// Positions
	CreatePosition(ctx context.Context, p Position) error
	ListPositions(ctx context.Context) ([]Position, error)
	UpdatePosition(ctx context.Context, p Position) error
	DeletePosition(ctx context.Context, positionID string) error

	// Candidates
	CreateCandidate(ctx context.Context, c Candidate) error
	ListCandidates(ctx context.Context, year int) ([]CandidateDetail, error)
	UpdateCandidate(ctx context.Context, c Candidate) error
	DeleteCandidate(ctx context.Context, candidateID, memberNo string, year int) error
	GetCandidate(ctx context.Context, candidateID string, year int) (*Candidate, error)

	// Aggregates
	Status(ctx context.Context, year int) (*StatusCounts, error)
	Results(ctx context.Context, year int) ([]ResultRow, error)
}

// Repository is the data access interface for the election module.
// SubmitBallot owns the whole submission transaction; everything else
// is a straightforward read or single-statement write.
type Repository interface {
	// SubmitBallot runs the duplicate-ballot guard, seat-limit and
	// candidate-consistency validation, ballot sequence advance and all
	// inserts inside one transaction. The selections must already be
	// normalized (see NormalizeSelections). A failure at any step rolls
	// back every effect including the counter advance.
	SubmitBallot(ctx context.Context, year int, memberNo string, votes []PositionSelection) (*BallotReceipt, error)

	HasVoted(ctx context.Context, memberNo string, year int) (bool, error)
	GetBallot(ctx context.Context, memberNo string, year int) (*Ballot, error)
	ListCastVotes(ctx context.Context, memberNo string, year int) ([]CastVote, error)

	CreatePosition(ctx context.Context, p Position) error
	ListPositions(ctx context.Context) ([]Position, error)
	UpdatePosition(ctx context.Context, p Position) error
	DeletePosition(ctx context.Context, positionID string) error

	CreateCandidate(ctx context.Context, c Candidate) error
	ListCandidates(ctx context.Context, year int) ([]CandidateDetail, error)
	UpdateCandidate(ctx context.Context, c Candidate) error
	DeleteCandidate(ctx context.Context, candidateID, memberNo string, year int) error
	GetCandidate(ctx context.Context, candidateID string, year int) (*Candidate, error)

	CountRegisteredVoters(ctx context.Context) (int, error)
	CountBallots(ctx context.Context, year int) (int, error)
	CountPositions(ctx context.Context) (int, error)
	CountCandidates(ctx context.Context, year int) (int, error)
	TallyResults(ctx context.Context, year int) ([]ResultRow, error)
}

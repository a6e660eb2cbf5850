package elections

import (
	"context"
	"fmt"
	"strings"
)

type electionService struct {
	repo Repository
}

// NewElectionService creates a new election service
func NewElectionService(repo Repository) Service {
	return &electionService{repo: repo}
}

// SubmitVote normalizes the payload and hands it to the repository,
// which runs the remaining validation and the persistence inside one
// transaction. Input-shape failures never open a transaction.
func (s *electionService) SubmitVote(ctx context.Context, req SubmitVoteRequest) (*BallotReceipt, error) {
	if req.Year <= 0 {
		return nil, fmt.Errorf("%w: year must be positive", ErrInvalidInput)
	}
	memberNo := strings.TrimSpace(req.MemberNo)
	if memberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}
	if len(req.Votes) == 0 {
		return nil, fmt.Errorf("%w: no votes submitted", ErrInvalidInput)
	}

	votes, err := NormalizeSelections(req.Votes)
	if err != nil {
		return nil, err
	}

	return s.repo.SubmitBallot(ctx, req.Year, memberNo, votes)
}

func (s *electionService) HasVoted(ctx context.Context, memberNo string, year int) (bool, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" || year <= 0 {
		return false, fmt.Errorf("%w: member number and year are required", ErrInvalidInput)
	}
	return s.repo.HasVoted(ctx, memberNo, year)
}

func (s *electionService) GetBallot(ctx context.Context, memberNo string, year int) (*Ballot, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" || year <= 0 {
		return nil, fmt.Errorf("%w: member number and year are required", ErrInvalidInput)
	}
	return s.repo.GetBallot(ctx, memberNo, year)
}

func (s *electionService) ListCastVotes(ctx context.Context, memberNo string, year int) ([]CastVote, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" || year <= 0 {
		return nil, fmt.Errorf("%w: member number and year are required", ErrInvalidInput)
	}
	return s.repo.ListCastVotes(ctx, memberNo, year)
}

func (s *electionService) CreatePosition(ctx context.Context, p Position) error {
	if err := validatePosition(&p); err != nil {
		return err
	}
	return s.repo.CreatePosition(ctx, p)
}

func (s *electionService) ListPositions(ctx context.Context) ([]Position, error) {
	return s.repo.ListPositions(ctx)
}

func (s *electionService) UpdatePosition(ctx context.Context, p Position) error {
	if err := validatePosition(&p); err != nil {
		return err
	}
	return s.repo.UpdatePosition(ctx, p)
}

func (s *electionService) DeletePosition(ctx context.Context, positionID string) error {
	positionID = strings.ToUpper(strings.TrimSpace(positionID))
	if positionID == "" {
		return fmt.Errorf("%w: position code is required", ErrInvalidInput)
	}
	return s.repo.DeletePosition(ctx, positionID)
}

func (s *electionService) CreateCandidate(ctx context.Context, c Candidate) error {
	if err := validateCandidate(&c); err != nil {
		return err
	}
	return s.repo.CreateCandidate(ctx, c)
}

func (s *electionService) ListCandidates(ctx context.Context, year int) ([]CandidateDetail, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: invalid election year", ErrInvalidInput)
	}
	return s.repo.ListCandidates(ctx, year)
}

func (s *electionService) UpdateCandidate(ctx context.Context, c Candidate) error {
	if err := validateCandidate(&c); err != nil {
		return err
	}
	return s.repo.UpdateCandidate(ctx, c)
}

// DeleteCandidate keeps the composite (candidate_id, member_no, year)
// key so a stale member number can never remove another member's
// candidacy, even though lookups key on (candidate_id, year) alone.
func (s *electionService) DeleteCandidate(ctx context.Context, candidateID, memberNo string, year int) error {
	candidateID = strings.TrimSpace(candidateID)
	memberNo = strings.TrimSpace(memberNo)
	if candidateID == "" || memberNo == "" || year <= 0 {
		return fmt.Errorf("%w: candidate, member number and year are required", ErrInvalidInput)
	}
	return s.repo.DeleteCandidate(ctx, candidateID, memberNo, year)
}

func (s *electionService) GetCandidate(ctx context.Context, candidateID string, year int) (*Candidate, error) {
	candidateID = strings.TrimSpace(candidateID)
	if candidateID == "" || year <= 0 {
		return nil, fmt.Errorf("%w: candidate and year are required", ErrInvalidInput)
	}
	return s.repo.GetCandidate(ctx, candidateID, year)
}

func (s *electionService) Status(ctx context.Context, year int) (*StatusCounts, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: invalid election year", ErrInvalidInput)
	}

	voters, err := s.repo.CountRegisteredVoters(ctx)
	if err != nil {
		return nil, err
	}
	ballots, err := s.repo.CountBallots(ctx, year)
	if err != nil {
		return nil, err
	}
	positions, err := s.repo.CountPositions(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := s.repo.CountCandidates(ctx, year)
	if err != nil {
		return nil, err
	}

	return &StatusCounts{
		RegisteredVoters: voters,
		BallotsCast:      ballots,
		Positions:        positions,
		Candidates:       candidates,
	}, nil
}

func (s *electionService) Results(ctx context.Context, year int) ([]ResultRow, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: invalid election year", ErrInvalidInput)
	}
	return s.repo.TallyResults(ctx, year)
}

func validatePosition(p *Position) error {
	p.PositionID = strings.ToUpper(strings.TrimSpace(p.PositionID))
	p.PositionDesc = strings.TrimSpace(p.PositionDesc)
	if p.PositionID == "" || p.PositionDesc == "" {
		return fmt.Errorf("%w: position code and description are required", ErrInvalidInput)
	}
	if p.SeatLimit <= 0 {
		return fmt.Errorf("%w: seat limit must be positive", ErrInvalidInput)
	}
	return nil
}

func validateCandidate(c *Candidate) error {
	c.CandidateID = strings.TrimSpace(c.CandidateID)
	c.PositionID = strings.ToUpper(strings.TrimSpace(c.PositionID))
	c.MemberNo = strings.TrimSpace(c.MemberNo)
	c.Vision = strings.TrimSpace(c.Vision)
	if c.CandidateID == "" || c.PositionID == "" || c.MemberNo == "" || c.Vision == "" {
		return fmt.Errorf("%w: candidate fields are required", ErrInvalidInput)
	}
	if c.ElectYear <= 0 {
		return fmt.Errorf("%w: invalid election year", ErrInvalidInput)
	}
	if c.ElecOrder <= 0 {
		return fmt.Errorf("%w: ballot order must be positive", ErrInvalidInput)
	}
	return nil
}

package elections

import "time"

// Position is an electable office. SeatLimit is the maximum number of
// candidates a voter may select for it on one ballot.
type Position struct {
	PositionID   string `json:"position_id" db:"position_id"`
	PositionDesc string `json:"position_desc" db:"position_desc"`
	SeatLimit    int    `json:"position" db:"seat_limit"`
}

// Candidate is a member registered to run for a position in a given
// election year. Identity is (candidate_id, elect_year).
type Candidate struct {
	CandidateID string `json:"candidate_id" db:"candidate_id"`
	ElectYear   int    `json:"elect_year" db:"elect_year"`
	PositionID  string `json:"position_id" db:"position_id"`
	MemberNo    string `json:"member_no" db:"member_no"`
	ElecOrder   int    `json:"elec_order" db:"elec_order"`
	Vision      string `json:"vision" db:"vision"`
	PhotoURL    string `json:"photo_url,omitempty" db:"photo_url"`
}

// CandidateDetail is a candidate joined with member and position
// descriptive data for ballot display.
type CandidateDetail struct {
	Candidate
	MemberName   string `json:"member_name" db:"member_name"`
	PositionDesc string `json:"position_desc" db:"position_desc"`
}

// Ballot is one member's single submitted vote record for one year.
type Ballot struct {
	BallotNo  int64     `json:"ballot_no" db:"ballot_no"`
	ElectYear int       `json:"elect_year" db:"elect_year"`
	MemberNo  string    `json:"member_no" db:"member_no"`
	VoteDate  time.Time `json:"vote_date" db:"vote_date"`
}

// CastVote is one vote line of a member's ballot, joined with the
// candidate's descriptive data.
type CastVote struct {
	CandidateID       string `json:"candidate_id" db:"candidate_id"`
	CandidateMemberNo string `json:"candidate_member_no" db:"candidate_member_no"`
	CandidateName     string `json:"candidate_name" db:"candidate_name"`
	Vision            string `json:"vision" db:"vision"`
	PositionID        string `json:"position_id" db:"position_id"`
	PositionDesc      string `json:"position_desc" db:"position_desc"`
	PhotoURL          string `json:"photo_url" db:"photo_url"`
}

// PositionSelection is one position entry of a vote submission.
type PositionSelection struct {
	PositionID   string   `json:"positionId"`
	CandidateIDs []string `json:"candidateIds"`
}

// SubmitVoteRequest is the full payload of one ballot submission.
// MemberNo comes from the authenticated token, never from the body.
type SubmitVoteRequest struct {
	Year     int
	MemberNo string
	Votes    []PositionSelection
}

// BallotReceipt is returned on a successful submission.
type BallotReceipt struct {
	BallotNo   int64 `json:"ballotNo"`
	TotalVotes int   `json:"totalVotes"`
}

// ResultRow is one candidate's tally joined with descriptive data.
type ResultRow struct {
	Votes        int    `json:"votes" db:"votes"`
	ElectYear    int    `json:"elect_year" db:"elect_year"`
	CandidateID  string `json:"candidate_id" db:"candidate_id"`
	MemberNo     string `json:"member_no" db:"member_no"`
	MemberName   string `json:"member_name" db:"member_name"`
	PositionID   string `json:"position_id" db:"position_id"`
	PositionDesc string `json:"position_desc" db:"position_desc"`
	PhotoURL     string `json:"photo_url" db:"photo_url"`
}

// StatusCounts is the election dashboard summary for one year.
type StatusCounts struct {
	RegisteredVoters int `json:"totalRegisterVoter"`
	BallotsCast      int `json:"totalCastedVote"`
	Positions        int `json:"totalPosition"`
	Candidates       int `json:"totalCandidates"`
}

package postgres

import (
	"CoopLink/internal/core/elections"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

type postgresElectionRepo struct {
	db *sql.DB
}

// NewElectionRepository creates a new PostgreSQL election repository
func NewElectionRepository(db *sql.DB) elections.Repository {
	return &postgresElectionRepo{db: db}
}

// SubmitBallot persists one member's ballot atomically:
//
//  1. duplicate-ballot guard (fail fast on repeat submits)
//  2. seat-limit validation against the position registry
//  3. candidate/position/year consistency validation
//  4. per-year counter row locked FOR UPDATE, sequence advanced
//  5. ballot header + vote lines inserted
//
// Any failure rolls the whole transaction back, counter advance
// included. A racer that slips past the guard is still stopped by the
// UNIQUE(member_no, elect_year) constraint on the header insert.
func (r *postgresElectionRepo) SubmitBallot(ctx context.Context, year int, memberNo string, votes []elections.PositionSelection) (*elections.BallotReceipt, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Duplicate-vote guard. Not sufficient alone under concurrency;
	// the unique constraint on the header insert closes the race.
	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM evs_ballots WHERE member_no = $1 AND elect_year = $2`,
		memberNo, year,
	).Scan(&exists)
	if err == nil {
		return nil, elections.ErrAlreadyVoted
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check existing ballot: %w", err)
	}

	seatLimits, err := loadSeatLimits(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := elections.ValidateSeatLimits(votes, seatLimits); err != nil {
		return nil, err
	}

	candidateIDs := elections.FlattenCandidateIDs(votes)
	registered, err := loadCandidatePositions(ctx, tx, year, candidateIDs)
	if err != nil {
		return nil, err
	}
	if err := elections.ValidateCandidates(votes, registered); err != nil {
		return nil, err
	}

	seq, err := nextBallotSeq(ctx, tx, year)
	if err != nil {
		return nil, err
	}
	ballotNo := elections.FormatBallotNo(year, seq)

	voteDate := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO evs_ballots (ballot_no, elect_year, member_no, vote_date)
		 VALUES ($1, $2, $3, $4)`,
		ballotNo, year, memberNo, voteDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, elections.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to insert ballot header: %w", err)
	}

	for _, id := range candidateIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO evs_votes (ballot_no, elect_year, member_no, candidate_id, vote_date)
			 VALUES ($1, $2, $3, $4, $5)`,
			ballotNo, year, memberNo, id, voteDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert vote line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ballot: %w", err)
	}

	return &elections.BallotReceipt{BallotNo: ballotNo, TotalVotes: len(candidateIDs)}, nil
}

// nextBallotSeq advances the per-year counter under an exclusive row
// lock, serializing concurrent submitters for the same year until this
// transaction commits or rolls back. Different years never contend.
func nextBallotSeq(ctx context.Context, tx *sql.Tx, year int) (int, error) {
	var lastSeq int
	err := tx.QueryRowContext(ctx,
		`SELECT last_seq FROM evs_ballot_counter WHERE elect_year = $1 FOR UPDATE`,
		year,
	).Scan(&lastSeq)

	if err == sql.ErrNoRows {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO evs_ballot_counter (elect_year, last_seq) VALUES ($1, 1)`,
			year,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to create ballot counter: %w", err)
		}
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock ballot counter: %w", err)
	}

	seq := lastSeq + 1
	_, err = tx.ExecContext(ctx,
		`UPDATE evs_ballot_counter SET last_seq = $1 WHERE elect_year = $2`,
		seq, year,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to advance ballot counter: %w", err)
	}
	return seq, nil
}

func loadSeatLimits(ctx context.Context, tx *sql.Tx) (map[string]int, error) {
	rows, err := tx.QueryContext(ctx, `SELECT position_id, seat_limit FROM evs_position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	limits := make(map[string]int)
	for rows.Next() {
		var id string
		var limit int
		if err := rows.Scan(&id, &limit); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		limits[strings.ToUpper(strings.TrimSpace(id))] = limit
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}
	return limits, nil
}

func loadCandidatePositions(ctx context.Context, tx *sql.Tx, year int, candidateIDs []string) (map[string]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT candidate_id, position_id
		 FROM evs_candidates
		 WHERE elect_year = $1 AND candidate_id = ANY($2)`,
		year, pq.Array(candidateIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	registered := make(map[string]string)
	for rows.Next() {
		var id, positionID string
		if err := rows.Scan(&id, &positionID); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		registered[id] = strings.ToUpper(strings.TrimSpace(positionID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return registered, nil
}

func (r *postgresElectionRepo) HasVoted(ctx context.Context, memberNo string, year int) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM evs_ballots WHERE member_no = $1 AND elect_year = $2`,
		memberNo, year,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check ballot: %w", err)
	}
	return true, nil
}

func (r *postgresElectionRepo) GetBallot(ctx context.Context, memberNo string, year int) (*elections.Ballot, error) {
	var b elections.Ballot
	err := r.db.QueryRowContext(ctx,
		`SELECT ballot_no, elect_year, member_no, vote_date
		 FROM evs_ballots
		 WHERE member_no = $1 AND elect_year = $2`,
		memberNo, year,
	).Scan(&b.BallotNo, &b.ElectYear, &b.MemberNo, &b.VoteDate)
	if err == sql.ErrNoRows {
		return nil, elections.ErrBallotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ballot: %w", err)
	}
	return &b, nil
}

func (r *postgresElectionRepo) ListCastVotes(ctx context.Context, memberNo string, year int) ([]elections.CastVote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
			v.candidate_id,
			c.member_no,
			COALESCE(m.member_name, ''),
			c.vision,
			c.position_id,
			COALESCE(p.position_desc, ''),
			COALESCE(c.photo_url, '')
		 FROM evs_votes v
		 JOIN evs_candidates c
		   ON c.candidate_id = v.candidate_id AND c.elect_year = v.elect_year
		 LEFT JOIN member m ON m.member_no = c.member_no
		 LEFT JOIN evs_position p ON p.position_id = c.position_id
		 WHERE v.member_no = $1 AND v.elect_year = $2
		 ORDER BY c.position_id ASC, c.elec_order ASC`,
		memberNo, year,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cast votes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []elections.CastVote
	for rows.Next() {
		var v elections.CastVote
		err := rows.Scan(
			&v.CandidateID, &v.CandidateMemberNo, &v.CandidateName,
			&v.Vision, &v.PositionID, &v.PositionDesc, &v.PhotoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cast vote: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cast votes: %w", err)
	}
	return result, nil
}

func (r *postgresElectionRepo) CreatePosition(ctx context.Context, p elections.Position) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO evs_position (position_id, position_desc, seat_limit)
		 VALUES ($1, $2, $3)`,
		p.PositionID, p.PositionDesc, p.SeatLimit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return elections.ErrPositionExists
		}
		return fmt.Errorf("failed to insert position: %w", err)
	}
	return nil
}

func (r *postgresElectionRepo) ListPositions(ctx context.Context) ([]elections.Position, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT position_id, position_desc, seat_limit FROM evs_position ORDER BY position_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []elections.Position
	for rows.Next() {
		var p elections.Position
		if err := rows.Scan(&p.PositionID, &p.PositionDesc, &p.SeatLimit); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}
	return result, nil
}

func (r *postgresElectionRepo) UpdatePosition(ctx context.Context, p elections.Position) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE evs_position SET position_desc = $1, seat_limit = $2 WHERE position_id = $3`,
		p.PositionDesc, p.SeatLimit, p.PositionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	return requireRows(result, elections.ErrPositionNotFound)
}

func (r *postgresElectionRepo) DeletePosition(ctx context.Context, positionID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM evs_position WHERE position_id = $1`, positionID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return requireRows(result, elections.ErrPositionNotFound)
}

func (r *postgresElectionRepo) CreateCandidate(ctx context.Context, c elections.Candidate) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO evs_candidates
			(candidate_id, elect_year, position_id, member_no, elec_order, vision, photo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))`,
		c.CandidateID, c.ElectYear, c.PositionID, c.MemberNo, c.ElecOrder, c.Vision, c.PhotoURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return elections.ErrCandidateExists
		}
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

// ListCandidates orders by (position_id, elec_order) for stable ballot display
func (r *postgresElectionRepo) ListCandidates(ctx context.Context, year int) ([]elections.CandidateDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
			c.candidate_id,
			c.elect_year,
			c.position_id,
			c.member_no,
			c.elec_order,
			c.vision,
			COALESCE(c.photo_url, ''),
			COALESCE(m.member_name, ''),
			COALESCE(p.position_desc, '')
		 FROM evs_candidates c
		 LEFT JOIN member m ON m.member_no = c.member_no
		 LEFT JOIN evs_position p ON p.position_id = c.position_id
		 WHERE c.elect_year = $1
		 ORDER BY c.position_id ASC, c.elec_order ASC`,
		year,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []elections.CandidateDetail
	for rows.Next() {
		var d elections.CandidateDetail
		err := rows.Scan(
			&d.CandidateID, &d.ElectYear, &d.PositionID, &d.MemberNo,
			&d.ElecOrder, &d.Vision, &d.PhotoURL, &d.MemberName, &d.PositionDesc,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return result, nil
}

func (r *postgresElectionRepo) UpdateCandidate(ctx context.Context, c elections.Candidate) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE evs_candidates
		 SET position_id = $1, elec_order = $2, vision = $3, photo_url = NULLIF($4, '')
		 WHERE candidate_id = $5 AND member_no = $6 AND elect_year = $7`,
		c.PositionID, c.ElecOrder, c.Vision, c.PhotoURL,
		c.CandidateID, c.MemberNo, c.ElectYear,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	return requireRows(result, elections.ErrCandidateNotFound)
}

// DeleteCandidate keys on (candidate_id, member_no, elect_year); the
// extra member_no guards against deleting another member's candidacy.
func (r *postgresElectionRepo) DeleteCandidate(ctx context.Context, candidateID, memberNo string, year int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM evs_candidates
		 WHERE candidate_id = $1 AND member_no = $2 AND elect_year = $3`,
		candidateID, memberNo, year,
	)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return requireRows(result, elections.ErrCandidateNotFound)
}

func (r *postgresElectionRepo) GetCandidate(ctx context.Context, candidateID string, year int) (*elections.Candidate, error) {
	var c elections.Candidate
	err := r.db.QueryRowContext(ctx,
		`SELECT candidate_id, elect_year, position_id, member_no, elec_order, vision, COALESCE(photo_url, '')
		 FROM evs_candidates
		 WHERE candidate_id = $1 AND elect_year = $2`,
		candidateID, year,
	).Scan(&c.CandidateID, &c.ElectYear, &c.PositionID, &c.MemberNo, &c.ElecOrder, &c.Vision, &c.PhotoURL)
	if err == sql.ErrNoRows {
		return nil, elections.ErrCandidateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

func (r *postgresElectionRepo) CountRegisteredVoters(ctx context.Context) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM member WHERE member_type = 'R' AND mbr_status = 'A'`)
}

func (r *postgresElectionRepo) CountBallots(ctx context.Context, year int) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM evs_ballots WHERE elect_year = $1`, year)
}

func (r *postgresElectionRepo) CountPositions(ctx context.Context) (int, error) {
	return r.countRow(ctx,
		`SELECT COALESCE(SUM(seat_limit), 0) FROM evs_position`)
}

func (r *postgresElectionRepo) CountCandidates(ctx context.Context, year int) (int, error) {
	return r.countRow(ctx,
		`SELECT COUNT(*) FROM evs_candidates WHERE elect_year = $1`, year)
}

func (r *postgresElectionRepo) TallyResults(ctx context.Context, year int) ([]elections.ResultRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT
			COUNT(v.candidate_id) AS votes,
			c.elect_year,
			c.candidate_id,
			c.member_no,
			COALESCE(m.member_name, ''),
			c.position_id,
			COALESCE(p.position_desc, ''),
			COALESCE(c.photo_url, '')
		 FROM evs_candidates c
		 LEFT JOIN evs_votes v
		   ON v.candidate_id = c.candidate_id AND v.elect_year = c.elect_year
		 LEFT JOIN member m ON m.member_no = c.member_no
		 LEFT JOIN evs_position p ON p.position_id = c.position_id
		 WHERE c.elect_year = $1
		 GROUP BY c.elect_year, c.candidate_id, c.member_no, m.member_name,
			c.position_id, p.position_desc, c.photo_url
		 ORDER BY c.position_id ASC, votes DESC, c.candidate_id ASC`,
		year,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tally results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []elections.ResultRow
	for rows.Next() {
		var row elections.ResultRow
		err := rows.Scan(
			&row.Votes, &row.ElectYear, &row.CandidateID, &row.MemberNo,
			&row.MemberName, &row.PositionID, &row.PositionDesc, &row.PhotoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return result, nil
}

func (r *postgresElectionRepo) countRow(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return n, nil
}

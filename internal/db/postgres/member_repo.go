package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"CoopLink/internal/core/members"
)

type postgresMemberRepo struct {
	db *sql.DB
}

// NewMemberRepository creates a new PostgreSQL membership master repository
func NewMemberRepository(db *sql.DB) members.Repository {
	return &postgresMemberRepo{db: db}
}

const memberColumns = `
	member_no, last_name, first_name, COALESCE(middle_name, ''),
	birth_date, member_type, mbr_status, join_date,
	COALESCE(address, ''), COALESCE(email, ''), COALESCE(contact_no, '')`

func (r *postgresMemberRepo) GetByMemberNo(ctx context.Context, memberNo string) (*members.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM member WHERE member_no = $1`

	member, err := scanMember(r.db.QueryRowContext(ctx, query, memberNo))
	if err == sql.ErrNoRows {
		return nil, members.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func (r *postgresMemberRepo) GetDividend(ctx context.Context, memberNo string, year int) (*members.DividendSummary, error) {
	query := `
		SELECT div_year, COALESCE(dividend_amt, 0), COALESCE(patronage_amt, 0)
		FROM member_dividend
		WHERE member_no = $1 AND div_year = $2`

	summary := &members.DividendSummary{}
	err := r.db.QueryRowContext(ctx, query, memberNo, year).
		Scan(&summary.Year, &summary.Dividend, &summary.Patronage)
	if err == sql.ErrNoRows {
		// No posting for the year reads as zeroes, the way the teller
		// screens show it.
		return &members.DividendSummary{Year: year}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dividend summary: %w", err)
	}
	return summary, nil
}

func (r *postgresMemberRepo) SearchRegularActive(ctx context.Context, query string, limit int) ([]members.Member, error) {
	sqlQuery := `
		SELECT ` + memberColumns + `
		FROM member
		WHERE member_type = 'R' AND mbr_status = 'A'
		  AND (member_no ILIKE $1 OR last_name ILIKE $1 OR first_name ILIKE $1)
		ORDER BY last_name, first_name
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, sqlQuery, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search members: %w", err)
	}
	defer rows.Close()

	var results []members.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		results = append(results, *member)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row rowScanner) (*members.Member, error) {
	member := &members.Member{}
	var birthDate, joinDate sql.NullTime
	err := row.Scan(
		&member.MemberNo, &member.LastName, &member.FirstName, &member.MiddleName,
		&birthDate, &member.MemberType, &member.Status, &joinDate,
		&member.Address, &member.Email, &member.ContactNo,
	)
	if err != nil {
		return nil, err
	}
	if birthDate.Valid {
		member.BirthDate = &birthDate.Time
	}
	if joinDate.Valid {
		member.JoinDate = &joinDate.Time
	}
	return member, nil
}

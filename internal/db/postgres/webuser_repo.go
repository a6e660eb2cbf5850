package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"CoopLink/internal/core/accounts"
)

type postgresWebUserRepo struct {
	db *sql.DB
}

// NewWebUserRepository creates a new PostgreSQL web user repository
func NewWebUserRepository(db *sql.DB) accounts.Repository {
	return &postgresWebUserRepo{db: db}
}

// Create inserts a new web user. A member can hold one account only.
func (r *postgresWebUserRepo) Create(ctx context.Context, user *accounts.WebUser) (*accounts.WebUser, error) {
	query := `
		INSERT INTO webusers (member_no, email, password_hash, status)
		VALUES ($1, $2, $3, $4)
		RETURNING member_no, email, password_hash, status, created_at`

	err := r.db.QueryRowContext(ctx, query, user.MemberNo, user.Email, user.PasswordHash, user.Status).
		Scan(&user.MemberNo, &user.Email, &user.PasswordHash, &user.Status, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, accounts.ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create web user: %w", err)
	}

	return user, nil
}

func (r *postgresWebUserRepo) GetByMemberNo(ctx context.Context, memberNo string) (*accounts.WebUser, error) {
	user := &accounts.WebUser{}
	query := `
		SELECT member_no, email, password_hash, status, created_at, activated_at, last_login_at
		FROM webusers
		WHERE member_no = $1`

	var activatedAt, lastLoginAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, memberNo).
		Scan(&user.MemberNo, &user.Email, &user.PasswordHash, &user.Status,
			&user.CreatedAt, &activatedAt, &lastLoginAt)
	if err == sql.ErrNoRows {
		return nil, accounts.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get web user: %w", err)
	}

	if activatedAt.Valid {
		user.ActivatedAt = &activatedAt.Time
	}
	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}

	return user, nil
}

func (r *postgresWebUserRepo) SetStatus(ctx context.Context, memberNo, status string) error {
	query := `
		UPDATE webusers
		SET status = $2,
		    activated_at = CASE WHEN $2 = 'A' AND activated_at IS NULL THEN now() ELSE activated_at END
		WHERE member_no = $1`

	result, err := r.db.ExecContext(ctx, query, memberNo, status)
	if err != nil {
		return fmt.Errorf("failed to update web user status: %w", err)
	}
	return requireRows(result, accounts.ErrAccountNotFound)
}

func (r *postgresWebUserRepo) SetPasswordHash(ctx context.Context, memberNo, hash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE webusers SET password_hash = $2 WHERE member_no = $1`, memberNo, hash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireRows(result, accounts.ErrAccountNotFound)
}

func (r *postgresWebUserRepo) TouchLastLogin(ctx context.Context, memberNo string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE webusers SET last_login_at = now() WHERE member_no = $1`, memberNo)
	if err != nil {
		return fmt.Errorf("failed to record last login: %w", err)
	}
	return requireRows(result, accounts.ErrAccountNotFound)
}

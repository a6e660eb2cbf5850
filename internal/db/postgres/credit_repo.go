package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"CoopLink/internal/core/credit"
)

type postgresCreditRepo struct {
	db *sql.DB
}

// NewCreditRepository creates a new PostgreSQL credit repository
func NewCreditRepository(db *sql.DB) credit.Repository {
	return &postgresCreditRepo{db: db}
}

func (r *postgresCreditRepo) GetUser(ctx context.Context, username string) (*credit.User, error) {
	query := `
		SELECT username, member_no, COALESCE(mobile_no, ''), active
		FROM credit_users
		WHERE username = $1`

	user := &credit.User{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.Username, &user.MemberNo, &user.MobileNo, &user.Active)
	if err == sql.ErrNoRows {
		return nil, credit.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credit user: %w", err)
	}
	return user, nil
}

// SaveOTP replaces any pending PIN for the user. One pending PIN per
// user at a time.
func (r *postgresCreditRepo) SaveOTP(ctx context.Context, otp *credit.OTP) error {
	query := `
		INSERT INTO otp_logs (username, pin_hash, expires_at, consumed)
		VALUES ($1, $2, $3, false)
		ON CONFLICT (username) DO UPDATE
		SET pin_hash = EXCLUDED.pin_hash,
		    expires_at = EXCLUDED.expires_at,
		    consumed = false,
		    issued_at = now()`

	if _, err := r.db.ExecContext(ctx, query, otp.Username, otp.PinHash, otp.ExpiresAt); err != nil {
		return fmt.Errorf("failed to save OTP: %w", err)
	}
	return nil
}

func (r *postgresCreditRepo) GetPendingOTP(ctx context.Context, username string) (*credit.OTP, error) {
	query := `
		SELECT username, pin_hash, expires_at, consumed
		FROM otp_logs
		WHERE username = $1 AND consumed = false`

	otp := &credit.OTP{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&otp.Username, &otp.PinHash, &otp.ExpiresAt, &otp.Consumed)
	if err == sql.ErrNoRows {
		return nil, credit.ErrOTPNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending OTP: %w", err)
	}
	return otp, nil
}

func (r *postgresCreditRepo) ConsumeOTP(ctx context.Context, username string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE otp_logs SET consumed = true WHERE username = $1 AND consumed = false`, username)
	if err != nil {
		return fmt.Errorf("failed to consume OTP: %w", err)
	}
	return requireRows(result, credit.ErrOTPNotFound)
}

func (r *postgresCreditRepo) History(ctx context.Context, memberNo string, from, to time.Time) ([]credit.Record, error) {
	query := `
		SELECT h.tr_date, h.store_code, COALESCE(s.store_name, h.store_code),
		       COALESCE(h.reference, ''), COALESCE(h.charge_amt, 0),
		       COALESCE(h.payment_amt, 0), COALESCE(h.balance, 0)
		FROM credit_history h
		LEFT JOIN credit_stores s ON s.store_code = h.store_code
		WHERE h.member_no = $1 AND h.tr_date BETWEEN $2 AND $3
		ORDER BY h.tr_date DESC, h.history_seq DESC`

	rows, err := r.db.QueryContext(ctx, query, memberNo, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to read credit history: %w", err)
	}
	defer rows.Close()

	var records []credit.Record
	for rows.Next() {
		var rec credit.Record
		if err := rows.Scan(&rec.TrDate, &rec.StoreCode, &rec.StoreName,
			&rec.Reference, &rec.Charge, &rec.Payment, &rec.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan credit record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *postgresCreditRepo) ListStores(ctx context.Context) ([]credit.Store, error) {
	query := `
		SELECT store_code, store_name, active
		FROM credit_stores
		ORDER BY store_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	var stores []credit.Store
	for rows.Next() {
		var s credit.Store
		if err := rows.Scan(&s.StoreCode, &s.StoreName, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

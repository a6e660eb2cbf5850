package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"CoopLink/internal/core/deposits"
)

type postgresDepositRepo struct {
	db *sql.DB
}

// NewDepositRepository creates a new PostgreSQL deposit repository
func NewDepositRepository(db *sql.DB) deposits.Repository {
	return &postgresDepositRepo{db: db}
}

func (r *postgresDepositRepo) ListByMember(ctx context.Context, memberNo string) ([]deposits.Account, error) {
	query := `
		SELECT d.acct_no, d.member_no, d.acct_type, COALESCE(t.description, d.acct_type),
		       d.balance, d.acct_status
		FROM deposit d
		LEFT JOIN deposit_type t ON t.acct_type = d.acct_type
		WHERE d.member_no = $1
		ORDER BY d.acct_type, d.acct_no`

	rows, err := r.db.QueryContext(ctx, query, memberNo)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposit accounts: %w", err)
	}
	defer rows.Close()

	var accounts []deposits.Account
	for rows.Next() {
		var a deposits.Account
		if err := rows.Scan(&a.AcctNo, &a.MemberNo, &a.AcctType, &a.Description, &a.Balance, &a.Status); err != nil {
			return nil, fmt.Errorf("failed to scan deposit account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *postgresDepositRepo) GetByAcctNo(ctx context.Context, acctNo string) (*deposits.Account, error) {
	query := `
		SELECT d.acct_no, d.member_no, d.acct_type, COALESCE(t.description, d.acct_type),
		       d.balance, d.acct_status
		FROM deposit d
		LEFT JOIN deposit_type t ON t.acct_type = d.acct_type
		WHERE d.acct_no = $1`

	a := &deposits.Account{}
	err := r.db.QueryRowContext(ctx, query, acctNo).
		Scan(&a.AcctNo, &a.MemberNo, &a.AcctType, &a.Description, &a.Balance, &a.Status)
	if err == sql.ErrNoRows {
		return nil, deposits.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit account: %w", err)
	}
	return a, nil
}

func (r *postgresDepositRepo) Ledger(ctx context.Context, acctNo string) ([]deposits.LedgerEntry, error) {
	query := `
		SELECT tr_date, COALESCE(reference, ''), COALESCE(particulars, ''),
		       COALESCE(deposit_amt, 0), COALESCE(withdrawal_amt, 0), COALESCE(balance, 0)
		FROM deposit_ledger
		WHERE acct_no = $1
		ORDER BY tr_date, ledger_seq`

	rows, err := r.db.QueryContext(ctx, query, acctNo)
	if err != nil {
		return nil, fmt.Errorf("failed to read deposit ledger: %w", err)
	}
	defer rows.Close()

	var entries []deposits.LedgerEntry
	for rows.Next() {
		var e deposits.LedgerEntry
		if err := rows.Scan(&e.TrDate, &e.Reference, &e.Particulars, &e.Deposit, &e.Withdrawal, &e.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresDepositRepo) TimeDepositsByMember(ctx context.Context, memberNo string) ([]deposits.TimeDeposit, error) {
	query := `
		SELECT cert_no, member_no, amount, interest_rate, term_days,
		       issue_date, maturity_date, td_status
		FROM time_deposit
		WHERE member_no = $1
		ORDER BY issue_date DESC NULLS LAST, cert_no`

	rows, err := r.db.QueryContext(ctx, query, memberNo)
	if err != nil {
		return nil, fmt.Errorf("failed to list time deposits: %w", err)
	}
	defer rows.Close()

	var certs []deposits.TimeDeposit
	for rows.Next() {
		var td deposits.TimeDeposit
		var issue, maturity sql.NullTime
		if err := rows.Scan(&td.CertNo, &td.MemberNo, &td.Amount, &td.InterestRate, &td.TermDays,
			&issue, &maturity, &td.Status); err != nil {
			return nil, fmt.Errorf("failed to scan time deposit: %w", err)
		}
		if issue.Valid {
			td.IssueDate = &issue.Time
		}
		if maturity.Valid {
			td.MaturityDate = &maturity.Time
		}
		certs = append(certs, td)
	}
	return certs, rows.Err()
}

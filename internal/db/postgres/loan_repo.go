package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"CoopLink/internal/core/loans"
)

type postgresLoanRepo struct {
	db *sql.DB
}

// NewLoanRepository creates a new PostgreSQL loan repository
func NewLoanRepository(db *sql.DB) loans.Repository {
	return &postgresLoanRepo{db: db}
}

const loanColumns = `
	l.loan_no, l.member_no, l.loan_type, COALESCE(t.description, l.loan_type),
	l.principal_amt, l.balance, l.interest_rate, l.term_months,
	l.date_granted, l.maturity_date, l.loan_status`

func (r *postgresLoanRepo) ListByMember(ctx context.Context, memberNo string) ([]loans.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loan l
		LEFT JOIN loan_type t ON t.loan_type = l.loan_type
		WHERE l.member_no = $1
		ORDER BY l.date_granted DESC NULLS LAST, l.loan_no`

	rows, err := r.db.QueryContext(ctx, query, memberNo)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var result []loans.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		result = append(result, *loan)
	}
	return result, rows.Err()
}

func (r *postgresLoanRepo) GetByLoanNo(ctx context.Context, loanNo string) (*loans.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loan l
		LEFT JOIN loan_type t ON t.loan_type = l.loan_type
		WHERE l.loan_no = $1`

	loan, err := scanLoan(r.db.QueryRowContext(ctx, query, loanNo))
	if err == sql.ErrNoRows {
		return nil, loans.ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

func (r *postgresLoanRepo) Ledger(ctx context.Context, loanNo string) ([]loans.LedgerEntry, error) {
	query := `
		SELECT tr_date, COALESCE(reference, ''), COALESCE(particulars, ''),
		       COALESCE(debit, 0), COALESCE(credit, 0), COALESCE(balance, 0)
		FROM loan_ledger
		WHERE loan_no = $1
		ORDER BY tr_date, ledger_seq`

	rows, err := r.db.QueryContext(ctx, query, loanNo)
	if err != nil {
		return nil, fmt.Errorf("failed to read loan ledger: %w", err)
	}
	defer rows.Close()

	var entries []loans.LedgerEntry
	for rows.Next() {
		var e loans.LedgerEntry
		if err := rows.Scan(&e.TrDate, &e.Reference, &e.Particulars, &e.Debit, &e.Credit, &e.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresLoanRepo) Amortization(ctx context.Context, loanNo string) ([]loans.Amortization, error) {
	query := `
		SELECT due_date, COALESCE(principal_due, 0), COALESCE(interest_due, 0),
		       COALESCE(principal_due, 0) + COALESCE(interest_due, 0), paid
		FROM loan_amortization
		WHERE loan_no = $1
		ORDER BY due_date`

	rows, err := r.db.QueryContext(ctx, query, loanNo)
	if err != nil {
		return nil, fmt.Errorf("failed to read amortization schedule: %w", err)
	}
	defer rows.Close()

	var schedule []loans.Amortization
	for rows.Next() {
		var a loans.Amortization
		if err := rows.Scan(&a.DueDate, &a.Principal, &a.Interest, &a.Total, &a.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan amortization row: %w", err)
		}
		schedule = append(schedule, a)
	}
	return schedule, rows.Err()
}

func (r *postgresLoanRepo) ListOnlineTypes(ctx context.Context) ([]loans.LoanType, error) {
	query := `
		SELECT loan_type, description, online_status
		FROM loan_type
		WHERE online_status = true
		ORDER BY description`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan types: %w", err)
	}
	defer rows.Close()

	var types []loans.LoanType
	for rows.Next() {
		var t loans.LoanType
		if err := rows.Scan(&t.LoanType, &t.Description, &t.Online); err != nil {
			return nil, fmt.Errorf("failed to scan loan type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *postgresLoanRepo) GetType(ctx context.Context, loanType string) (*loans.LoanType, error) {
	t := &loans.LoanType{}
	err := r.db.QueryRowContext(ctx,
		`SELECT loan_type, description, online_status FROM loan_type WHERE loan_type = $1`,
		loanType).Scan(&t.LoanType, &t.Description, &t.Online)
	if err == sql.ErrNoRows {
		return nil, loans.ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan type: %w", err)
	}
	return t, nil
}

func (r *postgresLoanRepo) CreateApplication(ctx context.Context, app *loans.Application) (*loans.Application, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO loan_application (member_no, loan_type, amount, term_months, app_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING app_no, applied_at`,
		app.MemberNo, app.LoanType, app.Amount, app.TermMonths, app.Status,
	).Scan(&app.AppNo, &app.AppliedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create loan application: %w", err)
	}
	return app, nil
}

func (r *postgresLoanRepo) ApplicationsByMember(ctx context.Context, memberNo, status string) ([]loans.Application, error) {
	query := `
		SELECT app_no, member_no, loan_type, amount, term_months, app_status, applied_at
		FROM loan_application
		WHERE member_no = $1 AND ($2 = '' OR app_status = $2)
		ORDER BY applied_at DESC`

	rows, err := r.db.QueryContext(ctx, query, memberNo, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan applications: %w", err)
	}
	defer rows.Close()

	var apps []loans.Application
	for rows.Next() {
		var a loans.Application
		if err := rows.Scan(&a.AppNo, &a.MemberNo, &a.LoanType, &a.Amount,
			&a.TermMonths, &a.Status, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func scanLoan(row rowScanner) (*loans.Loan, error) {
	loan := &loans.Loan{}
	var granted, maturity sql.NullTime
	err := row.Scan(
		&loan.LoanNo, &loan.MemberNo, &loan.LoanType, &loan.Description,
		&loan.Principal, &loan.Balance, &loan.InterestRate, &loan.TermMonths,
		&granted, &maturity, &loan.Status,
	)
	if err != nil {
		return nil, err
	}
	if granted.Valid {
		loan.DateGranted = &granted.Time
	}
	if maturity.Valid {
		loan.MaturityDate = &maturity.Time
	}
	return loan, nil
}

package loans

import "context"

// Service exposes a member's loan records. Every operation is scoped to
// the requesting member; a loan owned by someone else reads as absent.
type Service interface {
	ListLoans(ctx context.Context, memberNo string) ([]Loan, error)
	GetLoan(ctx context.Context, memberNo, loanNo string) (*Loan, error)
	GetLedger(ctx context.Context, memberNo, loanNo string) ([]LedgerEntry, error)
	GetAmortization(ctx context.Context, memberNo, loanNo string) ([]Amortization, error)

	ListOnlineTypes(ctx context.Context) ([]LoanType, error)
	Apply(ctx context.Context, req ApplyRequest) (*Application, error)
	ListApplications(ctx context.Context, memberNo, status string) ([]Application, error)
}

// Repository handles loan persistence.
type Repository interface {
	ListByMember(ctx context.Context, memberNo string) ([]Loan, error)
	GetByLoanNo(ctx context.Context, loanNo string) (*Loan, error)
	Ledger(ctx context.Context, loanNo string) ([]LedgerEntry, error)
	Amortization(ctx context.Context, loanNo string) ([]Amortization, error)

	ListOnlineTypes(ctx context.Context) ([]LoanType, error)
	GetType(ctx context.Context, loanType string) (*LoanType, error)
	CreateApplication(ctx context.Context, app *Application) (*Application, error)
	ApplicationsByMember(ctx context.Context, memberNo, status string) ([]Application, error)
}

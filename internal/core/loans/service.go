package loans

import (
	"context"
	"fmt"
	"strings"
)

type loanService struct {
	repo Repository
}

func NewLoanService(repo Repository) Service {
	return &loanService{repo: repo}
}

func (s *loanService) ListLoans(ctx context.Context, memberNo string) ([]Loan, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}
	return s.repo.ListByMember(ctx, memberNo)
}

func (s *loanService) GetLoan(ctx context.Context, memberNo, loanNo string) (*Loan, error) {
	return s.ownedLoan(ctx, memberNo, loanNo)
}

func (s *loanService) GetLedger(ctx context.Context, memberNo, loanNo string) ([]LedgerEntry, error) {
	loan, err := s.ownedLoan(ctx, memberNo, loanNo)
	if err != nil {
		return nil, err
	}
	return s.repo.Ledger(ctx, loan.LoanNo)
}

func (s *loanService) GetAmortization(ctx context.Context, memberNo, loanNo string) ([]Amortization, error) {
	loan, err := s.ownedLoan(ctx, memberNo, loanNo)
	if err != nil {
		return nil, err
	}
	return s.repo.Amortization(ctx, loan.LoanNo)
}

func (s *loanService) ListOnlineTypes(ctx context.Context) ([]LoanType, error) {
	return s.repo.ListOnlineTypes(ctx)
}

// Apply files a new loan application. The product must be open for
// online applications and a member carries at most one pending
// application at a time.
func (s *loanService) Apply(ctx context.Context, req ApplyRequest) (*Application, error) {
	req.MemberNo = strings.TrimSpace(req.MemberNo)
	req.LoanType = strings.TrimSpace(strings.ToUpper(req.LoanType))
	if req.MemberNo == "" || req.LoanType == "" {
		return nil, fmt.Errorf("%w: member number and loan type are required", ErrInvalidInput)
	}
	if req.Amount <= 0 || req.TermMonths <= 0 {
		return nil, fmt.Errorf("%w: amount and term must be positive", ErrInvalidInput)
	}

	loanType, err := s.repo.GetType(ctx, req.LoanType)
	if err != nil {
		return nil, err
	}
	if !loanType.Online {
		return nil, ErrTypeNotOnline
	}

	pending, err := s.repo.ApplicationsByMember(ctx, req.MemberNo, AppPending)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, ErrPendingExists
	}

	return s.repo.CreateApplication(ctx, &Application{
		MemberNo:   req.MemberNo,
		LoanType:   req.LoanType,
		Amount:     req.Amount,
		TermMonths: req.TermMonths,
		Status:     AppPending,
	})
}

func (s *loanService) ListApplications(ctx context.Context, memberNo, status string) ([]Application, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}
	status = strings.TrimSpace(strings.ToUpper(status))
	switch status {
	case "", AppPending, AppApproved, AppReleased, AppDenied:
	default:
		return nil, fmt.Errorf("%w: unknown application status %q", ErrInvalidInput, status)
	}
	return s.repo.ApplicationsByMember(ctx, memberNo, status)
}

// ownedLoan loads a loan and verifies the requesting member holds it.
// Ownership failures surface as not-found so loan numbers cannot be
// probed across members.
func (s *loanService) ownedLoan(ctx context.Context, memberNo, loanNo string) (*Loan, error) {
	memberNo = strings.TrimSpace(memberNo)
	loanNo = strings.TrimSpace(loanNo)
	if memberNo == "" || loanNo == "" {
		return nil, fmt.Errorf("%w: member number and loan number are required", ErrInvalidInput)
	}

	loan, err := s.repo.GetByLoanNo(ctx, loanNo)
	if err != nil {
		return nil, err
	}
	if loan.MemberNo != memberNo {
		return nil, ErrLoanNotFound
	}
	return loan, nil
}

package deposits

import (
	"context"
	"fmt"
	"strings"
)

type depositService struct {
	repo Repository
}

func NewDepositService(repo Repository) Service {
	return &depositService{repo: repo}
}

func (s *depositService) ListAccounts(ctx context.Context, memberNo string) ([]Account, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}
	return s.repo.ListByMember(ctx, memberNo)
}

func (s *depositService) GetAccount(ctx context.Context, memberNo, acctNo string) (*Account, error) {
	return s.ownedAccount(ctx, memberNo, acctNo)
}

func (s *depositService) GetLedger(ctx context.Context, memberNo, acctNo string) ([]LedgerEntry, error) {
	acct, err := s.ownedAccount(ctx, memberNo, acctNo)
	if err != nil {
		return nil, err
	}
	return s.repo.Ledger(ctx, acct.AcctNo)
}

func (s *depositService) ListTimeDeposits(ctx context.Context, memberNo string) ([]TimeDeposit, error) {
	memberNo = strings.TrimSpace(memberNo)
	if memberNo == "" {
		return nil, fmt.Errorf("%w: member number is required", ErrInvalidInput)
	}
	return s.repo.TimeDepositsByMember(ctx, memberNo)
}

// ownedAccount loads an account and verifies ownership. Mismatches
// surface as not-found.
func (s *depositService) ownedAccount(ctx context.Context, memberNo, acctNo string) (*Account, error) {
	memberNo = strings.TrimSpace(memberNo)
	acctNo = strings.TrimSpace(acctNo)
	if memberNo == "" || acctNo == "" {
		return nil, fmt.Errorf("%w: member number and account number are required", ErrInvalidInput)
	}

	acct, err := s.repo.GetByAcctNo(ctx, acctNo)
	if err != nil {
		return nil, err
	}
	if acct.MemberNo != memberNo {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

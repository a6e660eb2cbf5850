package deposits

import "context"

// Service exposes a member's deposit records, scoped to the requesting
// member the same way loans are.
type Service interface {
	ListAccounts(ctx context.Context, memberNo string) ([]Account, error)
	GetAccount(ctx context.Context, memberNo, acctNo string) (*Account, error)
	GetLedger(ctx context.Context, memberNo, acctNo string) ([]LedgerEntry, error)
	ListTimeDeposits(ctx context.Context, memberNo string) ([]TimeDeposit, error)
}

// Repository handles deposit persistence.
type Repository interface {
	ListByMember(ctx context.Context, memberNo string) ([]Account, error)
	GetByAcctNo(ctx context.Context, acctNo string) (*Account, error)
	Ledger(ctx context.Context, acctNo string) ([]LedgerEntry, error)
	TimeDepositsByMember(ctx context.Context, memberNo string) ([]TimeDeposit, error)
}

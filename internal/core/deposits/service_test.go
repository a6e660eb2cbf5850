package deposits

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListByMember(ctx context.Context, memberNo string) ([]Account, error) {
	args := m.Called(ctx, memberNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Account), args.Error(1)
}

func (m *MockRepository) GetByAcctNo(ctx context.Context, acctNo string) (*Account, error) {
	args := m.Called(ctx, acctNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockRepository) Ledger(ctx context.Context, acctNo string) ([]LedgerEntry, error) {
	args := m.Called(ctx, acctNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LedgerEntry), args.Error(1)
}

func (m *MockRepository) TimeDepositsByMember(ctx context.Context, memberNo string) ([]TimeDeposit, error) {
	args := m.Called(ctx, memberNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TimeDeposit), args.Error(1)
}

func sampleAccount() *Account {
	return &Account{
		AcctNo:   "SA-1001-01",
		MemberNo: "1001",
		AcctType: "SA",
		Balance:  15250.75,
		Status:   StatusOpen,
	}
}

func TestGetAccount_ReturnsOwnedAccount(t *testing.T) {
	repo := new(MockRepository)
	service := NewDepositService(repo)
	ctx := context.Background()

	repo.On("GetByAcctNo", ctx, "SA-1001-01").Return(sampleAccount(), nil)

	acct, err := service.GetAccount(ctx, "1001", "SA-1001-01")
	require.NoError(t, err)
	assert.Equal(t, "SA-1001-01", acct.AcctNo)
}

func TestGetAccount_OtherMembersAccountLooksNotFound(t *testing.T) {
	repo := new(MockRepository)
	service := NewDepositService(repo)
	ctx := context.Background()

	repo.On("GetByAcctNo", ctx, "SA-1001-01").Return(sampleAccount(), nil)

	_, err := service.GetAccount(ctx, "2002", "SA-1001-01")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetLedger_ChecksOwnershipFirst(t *testing.T) {
	repo := new(MockRepository)
	service := NewDepositService(repo)
	ctx := context.Background()

	repo.On("GetByAcctNo", ctx, "SA-1001-01").Return(sampleAccount(), nil)

	_, err := service.GetLedger(ctx, "2002", "SA-1001-01")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	repo.AssertNotCalled(t, "Ledger", mock.Anything, mock.Anything)
}

func TestListAccounts_RequiresMemberNo(t *testing.T) {
	service := NewDepositService(new(MockRepository))

	_, err := service.ListAccounts(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListTimeDeposits(t *testing.T) {
	repo := new(MockRepository)
	service := NewDepositService(repo)
	ctx := context.Background()

	repo.On("TimeDepositsByMember", ctx, "1001").
		Return([]TimeDeposit{{CertNo: "TD-0001", MemberNo: "1001", Amount: 100000}}, nil)

	deposits, err := service.ListTimeDeposits(ctx, "1001")
	require.NoError(t, err)
	require.Len(t, deposits, 1)
	assert.Equal(t, "TD-0001", deposits[0].CertNo)
}

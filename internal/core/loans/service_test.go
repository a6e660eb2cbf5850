package loans

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

func (m *MockRepository) ListByMember(ctx context.Context, memberNo string) ([]Loan, error) {
	args := m.Called(ctx, memberNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Loan), args.Error(1)
}

func (m *MockRepository) GetByLoanNo(ctx context.Context, loanNo string) (*Loan, error) {
	args := m.Called(ctx, loanNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Loan), args.Error(1)
}

func (m *MockRepository) Ledger(ctx context.Context, loanNo string) ([]LedgerEntry, error) {
	args := m.Called(ctx, loanNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LedgerEntry), args.Error(1)
}

func (m *MockRepository) Amortization(ctx context.Context, loanNo string) ([]Amortization, error) {
	args := m.Called(ctx, loanNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Amortization), args.Error(1)
}

func (m *MockRepository) ListOnlineTypes(ctx context.Context) ([]LoanType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]LoanType), args.Error(1)
}

func (m *MockRepository) GetType(ctx context.Context, loanType string) (*LoanType, error) {
	args := m.Called(ctx, loanType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoanType), args.Error(1)
}

func (m *MockRepository) CreateApplication(ctx context.Context, app *Application) (*Application, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Application), args.Error(1)
}

func (m *MockRepository) ApplicationsByMember(ctx context.Context, memberNo, status string) ([]Application, error) {
	args := m.Called(ctx, memberNo, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Application), args.Error(1)
}

func sampleLoan() *Loan {
	return &Loan{
		LoanNo:    "LN-2026-001",
		MemberNo:  "1001",
		LoanType:  "RL",
		Principal: 50000,
		Balance:   32000,
		Status:    StatusCurrent,
	}
}

func TestGetLoan_ReturnsOwnedLoan(t *testing.T) {
	repo := new(MockRepository)
	service := NewLoanService(repo)
	ctx := context.Background()

	repo.On("GetByLoanNo", ctx, "LN-2026-001").Return(sampleLoan(), nil)

	loan, err := service.GetLoan(ctx, "1001", "LN-2026-001")
	require.NoError(t, err)
	assert.Equal(t, "LN-2026-001", loan.LoanNo)
}

func TestGetLoan_OtherMembersLoanLooksNotFound(t *testing.T) {
	repo := new(MockRepository)
	service := NewLoanService(repo)
	ctx := context.Background()

	repo.On("GetByLoanNo", ctx, "LN-2026-001").Return(sampleLoan(), nil)

	_, err := service.GetLoan(ctx, "2002", "LN-2026-001")
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestGetLedger_ChecksOwnershipFirst(t *testing.T) {
	repo := new(MockRepository)
	service := NewLoanService(repo)
	ctx := context.Background()

	repo.On("GetByLoanNo", ctx, "LN-2026-001").Return(sampleLoan(), nil)

	_, err := service.GetLedger(ctx, "2002", "LN-2026-001")
	assert.ErrorIs(t, err, ErrLoanNotFound)
	repo.AssertNotCalled(t, "Ledger", mock.Anything, mock.Anything)
}

func TestGetAmortization_ForwardsOwnedLoan(t *testing.T) {
	repo := new(MockRepository)
	service := NewLoanService(repo)
	ctx := context.Background()

	repo.On("GetByLoanNo", ctx, "LN-2026-001").Return(sampleLoan(), nil)
	repo.On("Amortization", ctx, "LN-2026-001").Return([]Amortization{{Total: 4500}}, nil)

	schedule, err := service.GetAmortization(ctx, "1001", "LN-2026-001")
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	repo.AssertExpectations(t)
}

func TestListLoans_RequiresMemberNo(t *testing.T) {
	service := NewLoanService(new(MockRepository))

	_, err := service.ListLoans(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetLoan_UnknownLoan(t *testing.T) {
	repo := new(MockRepository)
	service := NewLoanService(repo)
	ctx := context.Background()

	repo.On("GetByLoanNo", ctx, "LN-9999").Return(nil, ErrLoanNotFound)

	_, err := service.GetLoan(ctx, "1001", "LN-9999")
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestApply_FilesPendingApplication(t *testing.T) {
	repo := new(MockRepository)
	service := NewLoanService(repo)
	ctx := context.Background()

	repo.On("GetType", ctx, "RL").Return(&LoanType{LoanType: "RL", Description: "Regular Loan", Online: true}, nil)
	repo.On("ApplicationsByMember", ctx, "1001", AppPending).Return([]Application{}, nil)
	repo.On("CreateApplication", ctx, mock.AnythingOfType("*loans.Application")).
		Run(func(args mock.Arguments) {
			app := args.Get(1).(*Application)
			assert.Equal(t, AppPending, app.Status)
			assert.Equal(t, "1001", app.MemberNo)
			app.AppNo = 42
		}).
		Return(&Application{AppNo: 42, MemberNo: "1001", LoanType: "RL", Status: AppPending}, nil)

	app, err := service.Apply(ctx, ApplyRequest{MemberNo: "1001", LoanType: "rl", Amount: 25000, TermMonths: 12})
	require.NoError(t, err)
	assert.Equal(t, int64(42), app.AppNo)
	repo.AssertExpectations(t)
}

func TestApply_RejectsOfflineProduct(t *testing.T) {
	repo := new(MockRepository)
	service := NewLoanService(repo)
	ctx := context.Background()

	repo.On("GetType", ctx, "SL").Return(&LoanType{LoanType: "SL", Description: "Special Loan", Online: false}, nil)

	_, err := service.Apply(ctx, ApplyRequest{MemberNo: "1001", LoanType: "SL", Amount: 25000, TermMonths: 12})
	assert.ErrorIs(t, err, ErrTypeNotOnline)
	repo.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything)
}

func TestApply_RejectsSecondPendingApplication(t *testing.T) {
	repo := new(MockRepository)
	service := NewLoanService(repo)
	ctx := context.Background()

	repo.On("GetType", ctx, "RL").Return(&LoanType{LoanType: "RL", Online: true}, nil)
	repo.On("ApplicationsByMember", ctx, "1001", AppPending).
		Return([]Application{{AppNo: 7, Status: AppPending}}, nil)

	_, err := service.Apply(ctx, ApplyRequest{MemberNo: "1001", LoanType: "RL", Amount: 25000, TermMonths: 12})
	assert.ErrorIs(t, err, ErrPendingExists)
	repo.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything)
}

func TestApply_RejectsNonPositiveAmount(t *testing.T) {
	service := NewLoanService(new(MockRepository))

	_, err := service.Apply(context.Background(), ApplyRequest{MemberNo: "1001", LoanType: "RL", Amount: 0, TermMonths: 12})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListApplications_RejectsUnknownStatus(t *testing.T) {
	service := NewLoanService(new(MockRepository))

	_, err := service.ListApplications(context.Background(), "1001", "X")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListApplications_EmptyStatusListsAll(t *testing.T) {
	repo := new(MockRepository)
	service := NewLoanService(repo)
	ctx := context.Background()

	repo.On("ApplicationsByMember", ctx, "1001", "").
		Return([]Application{{AppNo: 1, Status: AppApproved}, {AppNo: 2, Status: AppPending}}, nil)

	apps, err := service.ListApplications(ctx, "1001", "")
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}

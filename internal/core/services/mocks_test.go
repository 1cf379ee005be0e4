package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsevents "github.com/SscSPs/vas_funding_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock FundingRequestRepository ---
type MockFundingRepository struct {
	mock.Mock
}

var _ portsrepo.FundingRequestRepository = (*MockFundingRepository)(nil)

func (m *MockFundingRepository) SaveFunding(ctx context.Context, funding domain.FundingRequest) error {
	args := m.Called(ctx, funding)
	return args.Error(0)
}

func (m *MockFundingRepository) GetFundingByRef(ctx context.Context, fundingRef string) (*domain.FundingRequest, error) {
	args := m.Called(ctx, fundingRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingRequest), args.Error(1)
}

func (m *MockFundingRepository) CompareAndSetApproved(ctx context.Context, fundingRef string, expectedVersion int64, actor string, at time.Time) (bool, error) {
	args := m.Called(ctx, fundingRef, expectedVersion, actor, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockFundingRepository) CompareAndSetRejected(ctx context.Context, fundingRef string, expectedVersion int64, actor string, at time.Time) (bool, error) {
	args := m.Called(ctx, fundingRef, expectedVersion, actor, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockFundingRepository) UpdateAmount(ctx context.Context, fundingRef string, expectedVersion int64, newAmount, newBalanceAfter decimal.Decimal, actor string, at time.Time) (bool, error) {
	args := m.Called(ctx, fundingRef, expectedVersion, newAmount, newBalanceAfter, actor, at)
	return args.Bool(0), args.Error(1)
}

// --- Mock MerchantBalanceStore ---
type MockMerchantStore struct {
	mock.Mock
}

var _ portsrepo.MerchantBalanceStore = (*MockMerchantStore)(nil)

func (m *MockMerchantStore) FindMerchantByID(ctx context.Context, merchantID int64) (*domain.Merchant, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Merchant), args.Error(1)
}

func (m *MockMerchantStore) GetBalance(ctx context.Context, merchantID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockMerchantStore) CreditBalance(ctx context.Context, merchantID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, merchantID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Fake unit of work handing out the mocks ---
type fakeUnitOfWork struct {
	funding   *MockFundingRepository
	merchants *MockMerchantStore
	calls     int
}

var _ portsrepo.FundingUnitOfWork = (*fakeUnitOfWork)(nil)

func (u *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	u.calls++
	return fn(ctx, portsrepo.TxRepositories{Funding: u.funding, Merchants: u.merchants})
}

// --- Mock FundingEventPublisher ---
type MockPublisher struct {
	mock.Mock
}

var _ portsevents.FundingEventPublisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishFundingEvent(ctx context.Context, event domain.FundingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// --- Mock FundingQueryReader ---
type MockQueryRepository struct {
	mock.Mock
}

var _ portsrepo.FundingQueryReader = (*MockQueryRepository)(nil)

func (m *MockQueryRepository) FindFundingByRef(ctx context.Context, fundingRef string) (*domain.FundingRequest, error) {
	args := m.Called(ctx, fundingRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingRequest), args.Error(1)
}

func (m *MockQueryRepository) ListByMerchant(ctx context.Context, merchantID int64, limit int, nextToken *string) ([]domain.FundingRequest, *string, error) {
	args := m.Called(ctx, merchantID, limit, nextToken)
	return queryResult(args)
}

func (m *MockQueryRepository) Search(ctx context.Context, filter domain.FundingFilter) ([]domain.FundingRequest, *string, error) {
	args := m.Called(ctx, filter)
	return queryResult(args)
}

func queryResult(args mock.Arguments) ([]domain.FundingRequest, *string, error) {
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		next = &tokenVal
	}
	return args.Get(0).([]domain.FundingRequest), next, args.Error(2)
}

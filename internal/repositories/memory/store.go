package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vas_funding_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// Store is an in-memory implementation of every funding repository port.
// It is safe for concurrent use. Funding rows are optimistic: writes are buffered
// and validated against stored versions at commit. A merchant balance is locked by
// the first credit of a unit of work until it ends, like a Postgres row lock.
type Store struct {
	mu             sync.Mutex
	fundings       map[string]domain.FundingRequest
	merchants      map[int64]domain.Merchant
	nextMerchantID int64

	// merchant_id -> *sync.Mutex. Always taken before mu.
	balanceLocks sync.Map
}

func (s *Store) balanceLock(merchantID int64) *sync.Mutex {
	l, _ := s.balanceLocks.LoadOrStore(merchantID, &sync.Mutex{})
	return l.(*sync.Mutex)
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		fundings:       make(map[string]domain.FundingRequest),
		merchants:      make(map[int64]domain.Merchant),
		nextMerchantID: 1,
	}
}

// NewRepositoryProvider exposes a single store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:    store,
		FundingRepo:   store,
		MerchantRepo:  store,
		MerchantAdmin: store,
		QueryRepo:     store,
	}
}

var (
	_ portsrepo.FundingRequestRepository = (*Store)(nil)
	_ portsrepo.MerchantBalanceStore     = (*Store)(nil)
	_ portsrepo.MerchantWriter           = (*Store)(nil)
	_ portsrepo.FundingQueryReader       = (*Store)(nil)
	_ portsrepo.FundingUnitOfWork        = (*Store)(nil)
)

func fundingNotFound(ref string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("funding request %s not found", ref))
}

func merchantNotFound(id int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("merchant %d not found", id))
}

// SaveMerchant registers a merchant, assigning an id when none is set.
func (s *Store) SaveMerchant(_ context.Context, merchant domain.Merchant) (*domain.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if merchant.MerchantID == 0 {
		merchant.MerchantID = s.nextMerchantID
	}
	if _, exists := s.merchants[merchant.MerchantID]; exists {
		return nil, fmt.Errorf("%w: merchant %d", apperrors.ErrDuplicate, merchant.MerchantID)
	}
	if merchant.MerchantID >= s.nextMerchantID {
		s.nextMerchantID = merchant.MerchantID + 1
	}
	s.merchants[merchant.MerchantID] = merchant
	return &merchant, nil
}

func (s *Store) FindMerchantByID(_ context.Context, merchantID int64) (*domain.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.merchants[merchantID]
	if !ok {
		return nil, merchantNotFound(merchantID)
	}
	return &m, nil
}

func (s *Store) GetBalance(ctx context.Context, merchantID int64) (decimal.Decimal, error) {
	m, err := s.FindMerchantByID(ctx, merchantID)
	if err != nil {
		return decimal.Zero, err
	}
	return m.CurrentBalance, nil
}

// CreditBalance adds amount under the merchant's balance lock.
func (s *Store) CreditBalance(_ context.Context, merchantID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("credit amount must be positive, got %s", amount), nil)
	}

	l := s.balanceLock(merchantID)
	l.Lock()
	defer l.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.merchants[merchantID]
	if !ok {
		return decimal.Zero, merchantNotFound(merchantID)
	}
	m.CurrentBalance = m.CurrentBalance.Add(amount)
	s.merchants[merchantID] = m
	return m.CurrentBalance, nil
}

// Debit simulates the external debit path that shares current_balance with this ledger.
// It is not part of any port. It waits for any unit of work that has credited the merchant.
func (s *Store) Debit(merchantID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	l := s.balanceLock(merchantID)
	l.Lock()
	defer l.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.merchants[merchantID]
	if !ok {
		return decimal.Zero, merchantNotFound(merchantID)
	}
	m.CurrentBalance = m.CurrentBalance.Sub(amount)
	s.merchants[merchantID] = m
	return m.CurrentBalance, nil
}

func (s *Store) SaveFunding(_ context.Context, funding domain.FundingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.fundings[funding.FundingRef]; exists {
		return fmt.Errorf("%w: funding request %s", apperrors.ErrDuplicate, funding.FundingRef)
	}
	s.fundings[funding.FundingRef] = funding
	return nil
}

func (s *Store) GetFundingByRef(_ context.Context, fundingRef string) (*domain.FundingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fundings[fundingRef]
	if !ok {
		return nil, fundingNotFound(fundingRef)
	}
	return &f, nil
}

func (s *Store) CompareAndSetApproved(_ context.Context, fundingRef string, expectedVersion int64, actor string, at time.Time) (bool, error) {
	return s.compareAndSet(fundingRef, expectedVersion, func(f *domain.FundingRequest) { applyApproved(f, actor, at) })
}

func (s *Store) CompareAndSetRejected(_ context.Context, fundingRef string, expectedVersion int64, actor string, at time.Time) (bool, error) {
	return s.compareAndSet(fundingRef, expectedVersion, func(f *domain.FundingRequest) { applyRejected(f, actor, at) })
}

func (s *Store) UpdateAmount(_ context.Context, fundingRef string, expectedVersion int64, newAmount, newBalanceAfter decimal.Decimal, actor string, at time.Time) (bool, error) {
	return s.compareAndSet(fundingRef, expectedVersion, func(f *domain.FundingRequest) {
		applyAmount(f, newAmount, newBalanceAfter, actor, at)
	})
}

func (s *Store) compareAndSet(fundingRef string, expectedVersion int64, apply func(*domain.FundingRequest)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fundings[fundingRef]
	if !ok {
		return false, fundingNotFound(fundingRef)
	}
	if !casMatches(f, expectedVersion) {
		return false, nil
	}
	apply(&f)
	s.fundings[fundingRef] = f
	return true, nil
}

// casMatches mirrors the SQL predicate: right version and still pending.
func casMatches(f domain.FundingRequest, expectedVersion int64) bool {
	return f.Version == expectedVersion && f.IsPending() && !f.IsCredited
}

func applyApproved(f *domain.FundingRequest, actor string, at time.Time) {
	*f = f.Approved(actor, at)
}

func applyRejected(f *domain.FundingRequest, actor string, at time.Time) {
	*f = f.Rejected(actor, at)
}

// applyAmount stores the balance_after the caller computed, as the SQL update does.
func applyAmount(f *domain.FundingRequest, newAmount, newBalanceAfter decimal.Decimal, actor string, at time.Time) {
	*f = f.Amended(newAmount, actor, at)
	f.BalanceAfter = newBalanceAfter
}

// FindFundingByRef serves the query side from the same maps.
func (s *Store) FindFundingByRef(ctx context.Context, fundingRef string) (*domain.FundingRequest, error) {
	return s.GetFundingByRef(ctx, fundingRef)
}

func (s *Store) ListByMerchant(ctx context.Context, merchantID int64, limit int, nextToken *string) ([]domain.FundingRequest, *string, error) {
	return s.Search(ctx, domain.FundingFilter{MerchantID: &merchantID, Limit: limit, NextToken: nextToken})
}

// Search filters and pages in (created_at DESC, funding_ref DESC) order.
func (s *Store) Search(_ context.Context, filter domain.FundingFilter) ([]domain.FundingRequest, *string, error) {
	limit := pagination.ClampLimit(filter.Limit)

	var (
		afterAt  time.Time
		afterRef string
	)
	if filter.NextToken != nil && *filter.NextToken != "" {
		var err error
		afterAt, afterRef, err = pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid next_token", err)
		}
	}

	s.mu.Lock()
	matched := make([]domain.FundingRequest, 0, len(s.fundings))
	for _, f := range s.fundings {
		if matchesFilter(f, filter) {
			matched = append(matched, f)
		}
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		return newerThan(matched[i].CreatedAt, matched[i].FundingRef, matched[j].CreatedAt, matched[j].FundingRef)
	})

	page := make([]domain.FundingRequest, 0, limit)
	for _, f := range matched {
		if afterRef != "" && !newerThan(afterAt, afterRef, f.CreatedAt, f.FundingRef) {
			continue
		}
		page = append(page, f)
		if len(page) == limit+1 {
			break
		}
	}

	var next *string
	if len(page) > limit {
		page = page[:limit]
		last := page[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.FundingRef)
		next = &token
	}
	return page, next, nil
}

func newerThan(aAt time.Time, aRef string, bAt time.Time, bRef string) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return aRef > bRef
}

func matchesFilter(f domain.FundingRequest, filter domain.FundingFilter) bool {
	if filter.MerchantID != nil && f.MerchantID != *filter.MerchantID {
		return false
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, st := range filter.Statuses {
			if f.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Search)); q != "" {
		if !strings.Contains(strings.ToLower(f.FundingRef), q) &&
			!strings.Contains(strings.ToLower(f.Description), q) &&
			!strings.Contains(strings.ToLower(f.Source), q) {
			return false
		}
	}
	return true
}

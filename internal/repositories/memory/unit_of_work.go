package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// WithinTx buffers every write made through the handed repositories and applies
// them at commit if no funding row they read has changed in the meantime.
// A credited merchant's balance stays locked until the unit of work ends, so the
// balance CreditBalance returns is the one commit leaves behind.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	tx := &txView{
		store:       s,
		fundings:    make(map[string]domain.FundingRequest),
		readVersion: make(map[string]int64),
		inserted:    make(map[string]bool),
		credits:     make(map[int64]decimal.Decimal),
		held:        make(map[int64]*sync.Mutex),
	}
	defer tx.release()
	if err := fn(ctx, portsrepo.TxRepositories{Funding: tx, Merchants: tx}); err != nil {
		return err
	}
	return tx.commit()
}

// txView is the buffered state of one unit of work. It is not shared across goroutines.
type txView struct {
	store       *Store
	fundings    map[string]domain.FundingRequest
	readVersion map[string]int64
	inserted    map[string]bool
	credits     map[int64]decimal.Decimal
	held        map[int64]*sync.Mutex
}

func (t *txView) release() {
	for id, l := range t.held {
		l.Unlock()
		delete(t.held, id)
	}
}

var (
	_ portsrepo.FundingRequestRepository = (*txView)(nil)
	_ portsrepo.MerchantBalanceStore     = (*txView)(nil)
)

func (t *txView) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for ref := range t.inserted {
		if _, exists := s.fundings[ref]; exists {
			return fmt.Errorf("%w: funding request %s", apperrors.ErrDuplicate, ref)
		}
	}
	for ref, v := range t.readVersion {
		if current, ok := s.fundings[ref]; !ok || current.Version != v {
			return fmt.Errorf("%w: funding request %s changed during the unit of work", apperrors.ErrConcurrentModification, ref)
		}
	}
	for id := range t.credits {
		if _, ok := s.merchants[id]; !ok {
			return merchantNotFound(id)
		}
	}

	for ref, f := range t.fundings {
		s.fundings[ref] = f
	}
	for id, delta := range t.credits {
		m := s.merchants[id]
		m.CurrentBalance = m.CurrentBalance.Add(delta)
		s.merchants[id] = m
	}
	return nil
}

func (t *txView) load(ref string) (domain.FundingRequest, bool) {
	if f, ok := t.fundings[ref]; ok {
		return f, true
	}
	t.store.mu.Lock()
	f, ok := t.store.fundings[ref]
	t.store.mu.Unlock()
	if ok {
		t.readVersion[ref] = f.Version
		t.fundings[ref] = f
	}
	return f, ok
}

func (t *txView) SaveFunding(_ context.Context, funding domain.FundingRequest) error {
	if _, ok := t.load(funding.FundingRef); ok {
		return fmt.Errorf("%w: funding request %s", apperrors.ErrDuplicate, funding.FundingRef)
	}
	t.fundings[funding.FundingRef] = funding
	t.inserted[funding.FundingRef] = true
	return nil
}

func (t *txView) GetFundingByRef(_ context.Context, fundingRef string) (*domain.FundingRequest, error) {
	f, ok := t.load(fundingRef)
	if !ok {
		return nil, fundingNotFound(fundingRef)
	}
	return &f, nil
}

func (t *txView) CompareAndSetApproved(_ context.Context, fundingRef string, expectedVersion int64, actor string, at time.Time) (bool, error) {
	return t.compareAndSet(fundingRef, expectedVersion, func(f *domain.FundingRequest) { applyApproved(f, actor, at) })
}

func (t *txView) CompareAndSetRejected(_ context.Context, fundingRef string, expectedVersion int64, actor string, at time.Time) (bool, error) {
	return t.compareAndSet(fundingRef, expectedVersion, func(f *domain.FundingRequest) { applyRejected(f, actor, at) })
}

func (t *txView) UpdateAmount(_ context.Context, fundingRef string, expectedVersion int64, newAmount, newBalanceAfter decimal.Decimal, actor string, at time.Time) (bool, error) {
	return t.compareAndSet(fundingRef, expectedVersion, func(f *domain.FundingRequest) {
		applyAmount(f, newAmount, newBalanceAfter, actor, at)
	})
}

func (t *txView) compareAndSet(fundingRef string, expectedVersion int64, apply func(*domain.FundingRequest)) (bool, error) {
	f, ok := t.load(fundingRef)
	if !ok {
		return false, fundingNotFound(fundingRef)
	}
	if !casMatches(f, expectedVersion) {
		return false, nil
	}
	apply(&f)
	t.fundings[fundingRef] = f
	return true, nil
}

func (t *txView) FindMerchantByID(ctx context.Context, merchantID int64) (*domain.Merchant, error) {
	m, err := t.store.FindMerchantByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if delta, ok := t.credits[merchantID]; ok {
		m.CurrentBalance = m.CurrentBalance.Add(delta)
	}
	return m, nil
}

func (t *txView) GetBalance(ctx context.Context, merchantID int64) (decimal.Decimal, error) {
	m, err := t.FindMerchantByID(ctx, merchantID)
	if err != nil {
		return decimal.Zero, err
	}
	return m.CurrentBalance, nil
}

func (t *txView) CreditBalance(ctx context.Context, merchantID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("credit amount must be positive, got %s", amount), nil)
	}
	if _, ok := t.held[merchantID]; !ok {
		l := t.store.balanceLock(merchantID)
		l.Lock()
		t.held[merchantID] = l
	}
	if _, err := t.store.FindMerchantByID(ctx, merchantID); err != nil {
		return decimal.Zero, err
	}
	t.credits[merchantID] = t.credits[merchantID].Add(amount)
	return t.GetBalance(ctx, merchantID)
}

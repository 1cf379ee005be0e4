package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsevents "github.com/SscSPs/vas_funding_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vas_funding_ledger/internal/core/ports/services"
	"github.com/SscSPs/vas_funding_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMaxCASRetries bounds how often a unit of work is replayed after losing a race.
const DefaultMaxCASRetries = 3

// fundingService is the funding workflow engine. Every transition runs as one unit
// of work: load, check the guard, compare-and-set, and for approval credit the merchant.
type fundingService struct {
	BaseService
	uow        portsrepo.FundingUnitOfWork
	publisher  portsevents.FundingEventPublisher
	maxRetries int
	backoff    func(attempt int) time.Duration
	now        func() time.Time
	newRef     func() string
}

// FundingServiceOption is a functional option for configuring the funding service
type FundingServiceOption func(*fundingService)

// WithEventPublisher publishes an event after each committed change.
func WithEventPublisher(p portsevents.FundingEventPublisher) FundingServiceOption {
	return func(s *fundingService) {
		s.publisher = p
	}
}

// WithMaxCASRetries sets how many times a unit of work is retried on concurrent modification.
func WithMaxCASRetries(n int) FundingServiceOption {
	return func(s *fundingService) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithRetryBackoff overrides the wait between retries.
func WithRetryBackoff(fn func(attempt int) time.Duration) FundingServiceOption {
	return func(s *fundingService) {
		s.backoff = fn
	}
}

// WithClock overrides the time source used for audit fields.
func WithClock(now func() time.Time) FundingServiceOption {
	return func(s *fundingService) {
		s.now = now
	}
}

// WithRefGenerator overrides funding_ref generation.
func WithRefGenerator(fn func() string) FundingServiceOption {
	return func(s *fundingService) {
		s.newRef = fn
	}
}

// jitteredBackoff waits 10ms, 20ms, 40ms... plus up to 10ms of jitter.
func jitteredBackoff(attempt int) time.Duration {
	base := 10 * time.Millisecond << min(attempt, 5)
	return base + rand.N(10*time.Millisecond)
}

// NewFundingService creates the workflow engine with the provided options
func NewFundingService(uow portsrepo.FundingUnitOfWork, options ...FundingServiceOption) portssvc.FundingSvcFacade {
	svc := &fundingService{
		uow:        uow,
		maxRetries: DefaultMaxCASRetries,
		backoff:    jitteredBackoff,
		now:        func() time.Time { return time.Now().UTC() },
		newRef:     uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FundingSvcFacade = (*fundingService)(nil)

func requireActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return apperrors.NewValidationError("actor is required", nil)
	}
	return nil
}

func (s *fundingService) CreateFunding(ctx context.Context, req dto.CreateFundingRequest, actor string) (*domain.FundingRequest, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var created domain.FundingRequest
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		merchant, err := repos.Merchants.FindMerchantByID(ctx, req.MerchantID)
		if err != nil {
			return err
		}
		created = domain.NewFundingRequest(s.newRef(), merchant.MerchantID, req.Amount, merchant.CurrentBalance,
			req.Description, req.Source, actor, s.now())
		return repos.Funding.SaveFunding(ctx, created)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create funding request",
			slog.Int64("merchant_id", req.MerchantID),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Funding request created",
		slog.String("funding_ref", created.FundingRef),
		slog.Int64("merchant_id", created.MerchantID),
		slog.String("amount", created.Amount.String()))
	s.publish(ctx, domain.FundingCreatedEvent, created, actor, nil)

	if !req.AutoApprove {
		return &created, nil
	}

	approved, err := s.ApproveFunding(ctx, dto.ApproveFundingRequest{FundingRef: created.FundingRef}, actor)
	if err != nil {
		// The pending request stays; the caller gets its ref alongside the error.
		return &created, fmt.Errorf("funding request %s created but auto-approve failed: %w", created.FundingRef, err)
	}
	return approved, nil
}

func (s *fundingService) ApproveFunding(ctx context.Context, req dto.ApproveFundingRequest, actor string) (*domain.FundingRequest, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var (
		approved   domain.FundingRequest
		newBalance decimal.Decimal
	)
	err := s.withRetry(ctx, "approve", req.FundingRef, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
			current, err := repos.Funding.GetFundingByRef(ctx, req.FundingRef)
			if err != nil {
				return err
			}
			if err := current.CanApprove(); err != nil {
				return err
			}

			now := s.now()
			ok, err := repos.Funding.CompareAndSetApproved(ctx, req.FundingRef, current.Version, actor, now)
			if err != nil {
				return err
			}
			if !ok {
				return s.lostRace(ctx, repos.Funding, req.FundingRef, domain.FundingRequest.CanApprove)
			}

			// Credit the live balance, never the creation snapshot.
			newBalance, err = repos.Merchants.CreditBalance(ctx, current.MerchantID, current.Amount)
			if err != nil {
				return err
			}
			approved = current.Approved(actor, now)
			return nil
		})
	})
	if err != nil {
		s.logTransitionError(ctx, err, "approve", req.FundingRef)
		return nil, err
	}

	s.LogInfo(ctx, "Funding request approved and credited",
		slog.String("funding_ref", approved.FundingRef),
		slog.Int64("merchant_id", approved.MerchantID),
		slog.String("amount", approved.Amount.String()),
		slog.String("merchant_balance", newBalance.String()))
	s.publish(ctx, domain.FundingApprovedEvent, approved, actor, &newBalance)

	return &approved, nil
}

func (s *fundingService) RejectFunding(ctx context.Context, req dto.RejectFundingRequest, actor string) (*domain.FundingRequest, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var rejected domain.FundingRequest
	err := s.withRetry(ctx, "reject", req.FundingRef, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
			current, err := repos.Funding.GetFundingByRef(ctx, req.FundingRef)
			if err != nil {
				return err
			}
			if err := current.CanReject(); err != nil {
				return err
			}

			now := s.now()
			ok, err := repos.Funding.CompareAndSetRejected(ctx, req.FundingRef, current.Version, actor, now)
			if err != nil {
				return err
			}
			if !ok {
				return s.lostRace(ctx, repos.Funding, req.FundingRef, domain.FundingRequest.CanReject)
			}
			rejected = current.Rejected(actor, now)
			return nil
		})
	})
	if err != nil {
		s.logTransitionError(ctx, err, "reject", req.FundingRef)
		return nil, err
	}

	s.LogInfo(ctx, "Funding request rejected", slog.String("funding_ref", rejected.FundingRef))
	s.publish(ctx, domain.FundingRejectedEvent, rejected, actor, nil)

	return &rejected, nil
}

func (s *fundingService) AmendFundingAmount(ctx context.Context, req dto.AmendFundingAmountRequest, actor string) (*domain.FundingRequest, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var amended domain.FundingRequest
	err := s.withRetry(ctx, "amend", req.FundingRef, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
			current, err := repos.Funding.GetFundingByRef(ctx, req.FundingRef)
			if err != nil {
				return err
			}
			if err := current.CanAmend(); err != nil {
				return err
			}

			now := s.now()
			next := current.Amended(req.NewAmount, actor, now)
			ok, err := repos.Funding.UpdateAmount(ctx, req.FundingRef, current.Version, next.Amount, next.BalanceAfter, actor, now)
			if err != nil {
				return err
			}
			if !ok {
				return s.lostRace(ctx, repos.Funding, req.FundingRef, domain.FundingRequest.CanAmend)
			}
			amended = next
			return nil
		})
	})
	if err != nil {
		s.logTransitionError(ctx, err, "amend", req.FundingRef)
		return nil, err
	}

	s.LogInfo(ctx, "Funding request amount amended",
		slog.String("funding_ref", amended.FundingRef),
		slog.String("amount", amended.Amount.String()))
	s.publish(ctx, domain.FundingAmendedEvent, amended, actor, nil)

	return &amended, nil
}

// lostRace explains a failed compare-and-set. If the row has since reached a state the
// guard refuses, that refusal is returned; otherwise another writer got there first.
func (s *fundingService) lostRace(ctx context.Context, repo portsrepo.FundingRequestReader, fundingRef string, guard func(domain.FundingRequest) error) error {
	latest, err := repo.GetFundingByRef(ctx, fundingRef)
	if err != nil {
		return err
	}
	if err := guard(*latest); err != nil {
		return err
	}
	return fmt.Errorf("%w: funding request %s", apperrors.ErrConcurrentModification, fundingRef)
}

// withRetry replays fn while it fails with a retryable error, up to maxRetries times.
func (s *fundingService) withRetry(ctx context.Context, op, fundingRef string, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if !apperrors.IsRetryable(err) || attempt >= s.maxRetries {
			return err
		}
		s.LogDebug(ctx, "Retrying funding unit of work after concurrent modification",
			slog.String("op", op),
			slog.String("funding_ref", fundingRef),
			slog.Int("attempt", attempt+1))

		wait := s.backoff(attempt)
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// logTransitionError logs rule violations at info level and everything else as errors.
func (s *fundingService) logTransitionError(ctx context.Context, err error, op, fundingRef string) {
	switch {
	case errors.Is(err, apperrors.ErrAlreadyApproved),
		errors.Is(err, apperrors.ErrAlreadyCredited),
		errors.Is(err, apperrors.ErrAlreadyRejected),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrValidation):
		s.LogInfo(ctx, "Funding transition refused",
			slog.String("op", op),
			slog.String("funding_ref", fundingRef),
			slog.String("reason", err.Error()))
	default:
		s.LogError(ctx, err, "Funding transition failed",
			slog.String("op", op),
			slog.String("funding_ref", fundingRef))
	}
}

func (s *fundingService) publish(ctx context.Context, eventType domain.FundingEventType, f domain.FundingRequest, actor string, balance *decimal.Decimal) {
	if s.publisher == nil {
		return
	}
	event := domain.FundingEvent{
		Type:            eventType,
		FundingRef:      f.FundingRef,
		MerchantID:      f.MerchantID,
		Amount:          f.Amount,
		MerchantBalance: balance,
		Actor:           actor,
		OccurredAt:      s.now(),
	}
	if err := s.publisher.PublishFundingEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish funding event",
			slog.String("type", string(eventType)),
			slog.String("funding_ref", f.FundingRef))
	}
}

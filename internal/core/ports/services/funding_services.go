package services

import (
	"context"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/SscSPs/vas_funding_ledger/internal/dto"
)

// FundingWriterSvc defines the funding workflow transitions
type FundingWriterSvc interface {
	// CreateFunding records a pending request. Never touches the merchant balance
	// unless AutoApprove is set, in which case the ordinary approval runs afterwards.
	CreateFunding(ctx context.Context, req dto.CreateFundingRequest, actor string) (*domain.FundingRequest, error)

	// ApproveFunding approves a pending request and credits the merchant exactly once.
	ApproveFunding(ctx context.Context, req dto.ApproveFundingRequest, actor string) (*domain.FundingRequest, error)

	// RejectFunding rejects a pending request.
	RejectFunding(ctx context.Context, req dto.RejectFundingRequest, actor string) (*domain.FundingRequest, error)

	// AmendFundingAmount changes the amount of a pending request.
	AmendFundingAmount(ctx context.Context, req dto.AmendFundingAmountRequest, actor string) (*domain.FundingRequest, error)
}

// FundingReaderSvc defines read operations for funding requests
type FundingReaderSvc interface {
	// GetFunding retrieves a request by funding_ref.
	GetFunding(ctx context.Context, fundingRef string) (*domain.FundingRequest, error)

	// ListFunding lists requests matching the given parameters.
	ListFunding(ctx context.Context, params dto.ListFundingParams) (*dto.ListFundingResponse, error)
}

// FundingSvcFacade is the workflow engine surface
type FundingSvcFacade interface {
	FundingWriterSvc
}

// FundingQuerySvc is the audit and listing surface
type FundingQuerySvc interface {
	FundingReaderSvc
}

package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vas_funding_ledger/internal/core/ports/services"
	"github.com/SscSPs/vas_funding_ledger/internal/dto"
	"github.com/SscSPs/vas_funding_ledger/internal/utils/pagination"
)

type fundingQueryService struct {
	BaseService
	queryRepo portsrepo.FundingQueryReader
}

// NewFundingQueryService creates the audit and listing service.
func NewFundingQueryService(queryRepo portsrepo.FundingQueryReader) portssvc.FundingQuerySvc {
	return &fundingQueryService{queryRepo: queryRepo}
}

var _ portssvc.FundingQuerySvc = (*fundingQueryService)(nil)

func (s *fundingQueryService) GetFunding(ctx context.Context, fundingRef string) (*domain.FundingRequest, error) {
	if strings.TrimSpace(fundingRef) == "" {
		return nil, apperrors.NewValidationError("funding_ref is required", nil)
	}
	f, err := s.queryRepo.FindFundingByRef(ctx, fundingRef)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.LogError(ctx, err, "Failed to get funding request", slog.String("funding_ref", fundingRef))
		}
		return nil, err
	}
	return f, nil
}

func (s *fundingQueryService) ListFunding(ctx context.Context, params dto.ListFundingParams) (*dto.ListFundingResponse, error) {
	if err := dto.Validate(params); err != nil {
		return nil, err
	}

	filter := params.ToFundingFilter()
	filter.Limit = pagination.ClampLimit(filter.Limit)

	var (
		fundings []domain.FundingRequest
		next     *string
		err      error
	)
	if filter.MerchantID != nil && len(filter.Statuses) == 0 && filter.Search == "" {
		fundings, next, err = s.queryRepo.ListByMerchant(ctx, *filter.MerchantID, filter.Limit, filter.NextToken)
	} else {
		fundings, next, err = s.queryRepo.Search(ctx, filter)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list funding requests")
		return nil, err
	}

	return &dto.ListFundingResponse{
		Fundings:  dto.ToFundingResponses(fundings),
		NextToken: next,
	}, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vas_funding_ledger/internal/core/ports/services"
)

type merchantService struct {
	BaseService
	merchantRepo portsrepo.MerchantReader
}

func NewMerchantService(merchantRepo portsrepo.MerchantReader) portssvc.MerchantSvc {
	return &merchantService{merchantRepo: merchantRepo}
}

func (s *merchantService) GetMerchantBalance(ctx context.Context, merchantID int64) (*domain.Merchant, error) {
	if merchantID <= 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid merchant id %d", merchantID), nil)
	}
	return s.merchantRepo.FindMerchantByID(ctx, merchantID)
}

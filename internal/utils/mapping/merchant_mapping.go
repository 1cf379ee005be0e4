package mapping

import (
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/SscSPs/vas_funding_ledger/internal/models"
)

// ToDomainMerchant converts a model Merchant to a domain Merchant
func ToDomainMerchant(m models.Merchant) domain.Merchant {
	return domain.Merchant{
		MerchantID:     m.MerchantID,
		Name:           m.Name,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
	}
}

// ToModelMerchant converts a domain Merchant to a model Merchant
func ToModelMerchant(d domain.Merchant) models.Merchant {
	return models.Merchant{
		MerchantID:     d.MerchantID,
		Name:           d.Name,
		CurrentBalance: d.CurrentBalance,
		IsActive:       d.IsActive,
	}
}

package mapping

import (
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/SscSPs/vas_funding_ledger/internal/models"
)

// FundingFlags is the persisted boolean triplet for a status.
type FundingFlags struct {
	IsApproved bool
	IsCredited bool
	IsActive   bool
}

// ToFundingFlags translates a domain status into the stored triplet.
func ToFundingFlags(status domain.FundingStatus) FundingFlags {
	switch status {
	case domain.FundingApproved:
		return FundingFlags{IsApproved: true, IsCredited: true, IsActive: true}
	case domain.FundingRejected:
		return FundingFlags{IsApproved: false, IsCredited: false, IsActive: false}
	default:
		return FundingFlags{IsApproved: false, IsCredited: false, IsActive: true}
	}
}

// ToFundingStatus translates a stored triplet into a status. Inactive rows are rejected;
// an approved active row is approved; anything else is pending, including legacy rows
// credited without the approved flag.
func ToFundingStatus(f FundingFlags) domain.FundingStatus {
	switch {
	case !f.IsActive:
		return domain.FundingRejected
	case f.IsApproved:
		return domain.FundingApproved
	default:
		return domain.FundingPending
	}
}

// ToModelFunding converts a domain FundingRequest to a model FundingRequest
func ToModelFunding(d domain.FundingRequest) models.FundingRequest {
	flags := ToFundingFlags(d.Status)
	if d.IsCredited {
		flags.IsCredited = true
	}
	return models.FundingRequest{
		FundingRef:    d.FundingRef,
		MerchantID:    d.MerchantID,
		Amount:        d.Amount,
		BalanceBefore: d.BalanceBefore,
		BalanceAfter:  d.BalanceAfter,
		Description:   d.Description,
		Source:        d.Source,
		IsApproved:    flags.IsApproved,
		IsCredited:    flags.IsCredited,
		IsActive:      flags.IsActive,
		ApprovedBy:    d.ApprovedBy,
		ApprovedAt:    d.ApprovedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFunding converts a model FundingRequest to a domain FundingRequest
func ToDomainFunding(m models.FundingRequest) domain.FundingRequest {
	return domain.FundingRequest{
		FundingRef:    m.FundingRef,
		MerchantID:    m.MerchantID,
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Description:   m.Description,
		Source:        m.Source,
		Status:        ToFundingStatus(FundingFlags{IsApproved: m.IsApproved, IsCredited: m.IsCredited, IsActive: m.IsActive}),
		IsCredited:    m.IsCredited,
		ApprovedBy:    m.ApprovedBy,
		ApprovedAt:    m.ApprovedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFundingSlice converts a slice of model FundingRequests to domain FundingRequests
func ToDomainFundingSlice(ms []models.FundingRequest) []domain.FundingRequest {
	ds := make([]domain.FundingRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFunding(m)
	}
	return ds
}

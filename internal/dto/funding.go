package dto

import (
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFundingRequest defines the data needed to open a funding request.
type CreateFundingRequest struct {
	MerchantID  int64           `json:"merchantID" binding:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount"` // > 0, at most 4 decimal places
	Description string          `json:"description" binding:"max=500"`
	Source      string          `json:"source" binding:"max=100"` // Bank transfer, card, manual...
	AutoApprove bool            `json:"autoApprove"`
}

// ApproveFundingRequest identifies the request to approve.
type ApproveFundingRequest struct {
	FundingRef string `json:"-" binding:"required,uuid"`
}

// RejectFundingRequest identifies the request to reject.
type RejectFundingRequest struct {
	FundingRef string `json:"-" binding:"required,uuid"`
}

// AmendFundingAmountRequest carries the replacement amount for a pending request.
type AmendFundingAmountRequest struct {
	FundingRef string          `json:"-" binding:"required,uuid"`
	NewAmount  decimal.Decimal `json:"amount"`
}

func (r CreateFundingRequest) fundingAmount() decimal.Decimal      { return r.Amount }
func (r AmendFundingAmountRequest) fundingAmount() decimal.Decimal { return r.NewAmount }

// AmendFundingAmountBody is the HTTP body of an amendment; the ref comes from the path.
type AmendFundingAmountBody struct {
	NewAmount decimal.Decimal `json:"amount"`
}

// ListFundingParams defines query parameters for listing funding requests.
type ListFundingParams struct {
	MerchantID *int64   `form:"merchant_id" binding:"omitempty,gt=0"`
	Status     []string `form:"status" binding:"omitempty,dive,oneof=PENDING APPROVED REJECTED"`
	Query      string   `form:"q" binding:"max=100"`
	Limit      int      `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken  *string  `form:"next_token"`
}

// FundingResponse defines the data returned for a funding request.
type FundingResponse struct {
	FundingRef    string               `json:"fundingRef"`
	MerchantID    int64                `json:"merchantID"`
	Amount        decimal.Decimal      `json:"amount"`
	BalanceBefore decimal.Decimal      `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal      `json:"balanceAfter"`
	Description   string               `json:"description"`
	Source        string               `json:"source"`
	Status        domain.FundingStatus `json:"status"`
	IsCredited    bool                 `json:"isCredited"`
	ApprovedBy    *string              `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time           `json:"approvedAt,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
	Version       int64                `json:"version"`
}

// ListFundingResponse wraps a page of funding requests.
type ListFundingResponse struct {
	Fundings  []FundingResponse `json:"fundings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToFundingResponse converts a domain.FundingRequest to FundingResponse DTO.
func ToFundingResponse(f *domain.FundingRequest) FundingResponse {
	return FundingResponse{
		FundingRef:    f.FundingRef,
		MerchantID:    f.MerchantID,
		Amount:        f.Amount,
		BalanceBefore: f.BalanceBefore,
		BalanceAfter:  f.BalanceAfter,
		Description:   f.Description,
		Source:        f.Source,
		Status:        f.Status,
		IsCredited:    f.IsCredited,
		ApprovedBy:    f.ApprovedBy,
		ApprovedAt:    f.ApprovedAt,
		CreatedAt:     f.CreatedAt,
		CreatedBy:     f.CreatedBy,
		LastUpdatedAt: f.LastUpdatedAt,
		LastUpdatedBy: f.LastUpdatedBy,
		Version:       f.Version,
	}
}

// ToFundingResponses converts a slice of domain.FundingRequest to []FundingResponse.
func ToFundingResponses(fs []domain.FundingRequest) []FundingResponse {
	responses := make([]FundingResponse, len(fs))
	for i := range fs {
		responses[i] = ToFundingResponse(&fs[i])
	}
	return responses
}

// ToFundingFilter converts listing params into the domain filter.
func (p ListFundingParams) ToFundingFilter() domain.FundingFilter {
	statuses := make([]domain.FundingStatus, 0, len(p.Status))
	for _, s := range p.Status {
		statuses = append(statuses, domain.FundingStatus(s))
	}
	return domain.FundingFilter{
		MerchantID: p.MerchantID,
		Statuses:   statuses,
		Search:     p.Query,
		Limit:      p.Limit,
		NextToken:  p.NextToken,
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vas_funding_ledger/internal/core/ports/services"
	"github.com/SscSPs/vas_funding_ledger/internal/dto"
	"github.com/bxcodec/faker/v3"
	"github.com/shopspring/decimal"
)

type fakeMerchant struct {
	Name        string `faker:"name"`
	Description string `faker:"sentence"`
}

type seededMerchant struct {
	Merchant *domain.Merchant
	Funding  *domain.FundingRequest
}

// merchantSeeder opens merchants at zero and funds them through the ordinary
// create and approve path so seeded balances have an audit trail.
type merchantSeeder struct {
	merchants portsrepo.MerchantWriter
	funding   portssvc.FundingSvcFacade
	operator  string
}

func (s *merchantSeeder) Seed(ctx context.Context, count int, amount decimal.Decimal) ([]seededMerchant, error) {
	if count <= 0 {
		return nil, fmt.Errorf("merchant count must be positive, got %d", count)
	}

	seeded := make([]seededMerchant, 0, count)
	for i := 0; i < count; i++ {
		var fake fakeMerchant
		if err := faker.FakeData(&fake); err != nil {
			return seeded, fmt.Errorf("failed to generate merchant data: %w", err)
		}

		m, err := s.merchants.SaveMerchant(ctx, domain.Merchant{
			Name:           fake.Name,
			CurrentBalance: decimal.Zero,
			IsActive:       true,
		})
		if err != nil {
			return seeded, err
		}

		f, err := s.funding.CreateFunding(ctx, dto.CreateFundingRequest{
			MerchantID:  m.MerchantID,
			Amount:      amount,
			Description: fake.Description,
			Source:      "seed",
			AutoApprove: true,
		}, s.operator)
		if err != nil {
			return seeded, fmt.Errorf("failed to fund merchant %d: %w", m.MerchantID, err)
		}
		m.CurrentBalance = f.BalanceAfter
		seeded = append(seeded, seededMerchant{Merchant: m, Funding: f})
	}
	return seeded, nil
}

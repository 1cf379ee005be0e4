package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/SscSPs/vas_funding_ledger/internal/core/services"
	"github.com/SscSPs/vas_funding_ledger/internal/dto"
	"github.com/SscSPs/vas_funding_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerchantSeeder_FundsThroughApproval(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seeder := &merchantSeeder{
		merchants: store,
		funding:   services.NewFundingService(store),
		operator:  "seed-operator",
	}

	seeded, err := seeder.Seed(ctx, 3, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.Len(t, seeded, 3)

	for _, s := range seeded {
		assert.NotEmpty(t, s.Merchant.Name)
		assert.Equal(t, domain.FundingApproved, s.Funding.Status)
		assert.Equal(t, "seed", s.Funding.Source)

		balance, err := store.GetBalance(ctx, s.Merchant.MerchantID)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(1000)))
	}
}

func TestMerchantSeeder_RejectsNonPositiveCount(t *testing.T) {
	store := memory.NewStore()
	seeder := &merchantSeeder{merchants: store, funding: services.NewFundingService(store), operator: "op"}

	_, err := seeder.Seed(context.Background(), 0, decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestPrintFundingTable(t *testing.T) {
	next := "abc"
	f := domain.NewFundingRequest("7c9e6679-7425-40de-944b-e07fc1f90ae7", 4, decimal.RequireFromString("12.5"), decimal.Zero,
		"", "", "op-1", time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC))

	var buf bytes.Buffer
	err := printFundingTable(&buf, &dto.ListFundingResponse{
		Fundings:  dto.ToFundingResponses([]domain.FundingRequest{f}),
		NextToken: &next,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "FUNDING_REF")
	assert.Contains(t, out, "7c9e6679-7425-40de-944b-e07fc1f90ae7")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "2024-07-01 09:30:00")
	assert.Contains(t, out, "next-token: abc")
}

package services

import (
	portsevents "github.com/SscSPs/vas_funding_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vas_funding_ledger/internal/core/ports/services"
	"github.com/SscSPs/vas_funding_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portsevents.FundingEventPublisher) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Funding: NewFundingService(
			repos.UnitOfWork,
			WithEventPublisher(publisher),
			WithMaxCASRetries(cfg.FundingMaxCASRetries),
		),
		FundingQuery: NewFundingQueryService(repos.QueryRepo),
		Merchant:     NewMerchantService(repos.MerchantRepo),
	}
}

var (
	_ portssvc.FundingSvcFacade = (*fundingService)(nil)
	_ portssvc.FundingQuerySvc  = (*fundingQueryService)(nil)
	_ portssvc.MerchantSvc      = (*merchantService)(nil)
)

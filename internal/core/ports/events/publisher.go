package events

import (
	"context"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
)

// FundingEventPublisher announces committed funding changes.
// Publishing happens after commit; a failure never undoes the change.
type FundingEventPublisher interface {
	PublishFundingEvent(ctx context.Context, event domain.FundingEvent) error
	Close() error
}

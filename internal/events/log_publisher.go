package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsevents "github.com/SscSPs/vas_funding_ledger/internal/core/ports/events"
	"github.com/SscSPs/vas_funding_ledger/internal/middleware"
)

// LogPublisher records funding events in the request log when no broker is configured.
type LogPublisher struct{}

var _ portsevents.FundingEventPublisher = LogPublisher{}

func (LogPublisher) PublishFundingEvent(ctx context.Context, event domain.FundingEvent) error {
	middleware.GetLoggerFromCtx(ctx).Info("Funding event",
		slog.String("type", string(event.Type)),
		slog.String("funding_ref", event.FundingRef),
		slog.Int64("merchant_id", event.MerchantID),
		slog.String("amount", event.Amount.String()),
		slog.String("actor", event.Actor),
	)
	return nil
}

func (LogPublisher) Close() error { return nil }

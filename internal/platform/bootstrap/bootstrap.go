package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	portsevents "github.com/SscSPs/vas_funding_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vas_funding_ledger/internal/core/ports/services"
	"github.com/SscSPs/vas_funding_ledger/internal/core/services"
	"github.com/SscSPs/vas_funding_ledger/internal/events"
	"github.com/SscSPs/vas_funding_ledger/internal/events/kafka"
	"github.com/SscSPs/vas_funding_ledger/internal/idempotency"
	"github.com/SscSPs/vas_funding_ledger/internal/platform/config"
	"github.com/SscSPs/vas_funding_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/vas_funding_ledger/internal/repositories/database/readmodel"
	"github.com/SscSPs/vas_funding_ledger/internal/repositories/memory"
	"github.com/SscSPs/vas_funding_ledger/pkg/database"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App holds the wired repositories and services shared by the server and the CLI.
type App struct {
	Repos       portsrepo.RepositoryProvider
	Services    *portssvc.ServiceContainer
	Publisher   portsevents.FundingEventPublisher
	Idempotency idempotency.Store

	// Set only for the postgres driver.
	DBPool *pgxpool.Pool
	ReadDB *sql.DB

	redisClient *redis.Client
	logger      *slog.Logger
}

// New opens every configured backend. Optional backends (Redis, Kafka) are
// skipped when not configured; a configured backend that cannot be reached is an error.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{logger: logger}

	if err := app.openStorage(ctx, cfg); err != nil {
		app.Close()
		return nil, err
	}

	if len(cfg.KafkaBrokers) > 0 {
		app.Publisher = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaFundingTopic)
		logger.Info("Publishing funding events to Kafka", slog.String("topic", cfg.KafkaFundingTopic))
	} else {
		app.Publisher = events.LogPublisher{}
	}

	if cfg.RedisAddr != "" {
		app.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := app.redisClient.Ping(ctx).Err(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		app.Idempotency = idempotency.NewRedisStore(app.redisClient, cfg.IdempotencyTTL, cfg.IdempotencyPendingTTL)
		logger.Info("Idempotency store connected", slog.String("addr", cfg.RedisAddr))
	}

	app.Services = services.NewServiceContainer(cfg, app.Repos, app.Publisher)
	return app, nil
}

func (a *App) openStorage(ctx context.Context, cfg *config.Config) error {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		a.Repos = memory.NewRepositoryProvider(memory.NewStore())
		a.logger.Warn("Using in-memory storage")
		return nil
	case config.StoragePostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize database pool: %w", err)
		}
		a.DBPool = pool

		readDB, err := database.NewReadDB(ctx, cfg.ReadDatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize read database: %w", err)
		}
		a.ReadDB = readDB

		a.Repos = pgsql.NewRepositoryProvider(pool, readmodel.NewFundingQueryRepository(readDB))
		a.logger.Info("Database connection pool established.")
		return nil
	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// HealthCheck pings the primary store, or returns nil for in-memory storage.
func (a *App) HealthCheck(ctx context.Context) error {
	if a.DBPool == nil {
		return nil
	}
	return a.DBPool.Ping(ctx)
}

// Close releases every opened backend. It is safe on a partially built App.
func (a *App) Close() {
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.logger.Error("Failed to close event publisher", slog.String("error", err.Error()))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if a.ReadDB != nil {
		if err := a.ReadDB.Close(); err != nil {
			a.logger.Error("Failed to close read database", slog.String("error", err.Error()))
		}
	}
	database.ClosePgxPool(a.DBPool)
}

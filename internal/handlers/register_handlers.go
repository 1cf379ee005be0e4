package handlers

import (
	"context"

	"github.com/SscSPs/vas_funding_ledger/cmd/docs"
	portssvc "github.com/SscSPs/vas_funding_ledger/internal/core/ports/services"
	"github.com/SscSPs/vas_funding_ledger/internal/idempotency"
	"github.com/SscSPs/vas_funding_ledger/internal/middleware"
	"github.com/SscSPs/vas_funding_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the optional collaborators of the HTTP layer.
type RouteDeps struct {
	Idempotency idempotency.Store
	RateLimiter *limiter.Limiter
	HealthCheck func(ctx context.Context) error
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	health := &healthHandler{check: deps.HealthCheck}
	r.GET("/health", health.getHealth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	// Auth runs first so the limiter can key on the operator.
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if deps.RateLimiter != nil {
		v1.Use(middleware.RateLimit(deps.RateLimiter))
	}

	registerFundingRoutes(v1, service.Funding, service.FundingQuery, deps.Idempotency)
	registerMerchantRoutes(v1, service.Merchant)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

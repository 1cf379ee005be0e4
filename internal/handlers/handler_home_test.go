package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	portssvc "github.com/SscSPs/vas_funding_ledger/internal/core/ports/services"
	"github.com/SscSPs/vas_funding_ledger/internal/handlers"
	"github.com/SscSPs/vas_funding_ledger/internal/middleware"
	"github.com/SscSPs/vas_funding_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newHealthRouter(check func(context.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers.RegisterRoutes(r, &config.Config{JWTSecret: "secret", IsProduction: true}, &portssvc.ServiceContainer{},
		handlers.RouteDeps{HealthCheck: check})
	return r
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		check  func(context.Context) error
		status int
	}{
		{name: "no check configured", check: nil, status: http.StatusOK},
		{name: "store reachable", check: func(context.Context) error { return nil }, status: http.StatusOK},
		{name: "store down", check: func(context.Context) error { return errors.New("dial tcp: connection refused") }, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/health", nil)
			newHealthRouter(tt.check).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

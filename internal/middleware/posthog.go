package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/vas_funding_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

var pathsToSkip = map[string]bool{
	"/health": true,
}

// fundingEvents names the analytics event for each funding route.
var fundingEvents = map[string]string{
	http.MethodPost + " /api/v1/fundings":             "funding_created",
	http.MethodPost + " /api/v1/fundings/:ref/approve": "funding_approved",
	http.MethodPost + " /api/v1/fundings/:ref/reject":  "funding_rejected",
	http.MethodPut + " /api/v1/fundings/:ref/amount":   "funding_amended",
}

// EventNameForRoute maps a route to its analytics event name.
func EventNameForRoute(method, fullPath string) string {
	if name, ok := fundingEvents[method+" "+fullPath]; ok {
		return name
	}
	name := strings.TrimPrefix(fullPath, "/")
	return strings.ReplaceAll(name, "/", "_")
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful operator actions
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		operatorID, exists := GetOperatorIDFromContext(c)
		if !exists {
			return
		}

		eventName := EventNameForRoute(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if ref := c.Param("ref"); ref != "" {
			props["funding_ref"] = ref
		}

		posthogClient.Enqueue(operatorID, eventName, props)
	}
}

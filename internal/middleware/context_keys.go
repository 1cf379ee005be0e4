package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// operatorIDKey stores the authenticated operator's ID; it is the actor on every funding change.
const operatorIDKey = contextKey("operatorID")

// WithOperatorID returns a copy of ctx carrying the operator ID.
func WithOperatorID(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorIDKey, operatorID)
}

// OperatorIDFromCtx retrieves the operator ID from a standard context.
func OperatorIDFromCtx(ctx context.Context) (string, bool) {
	operatorID, ok := ctx.Value(operatorIDKey).(string)
	return operatorID, ok && operatorID != ""
}

// GetOperatorIDFromContext retrieves the authenticated operator ID for a request.
func GetOperatorIDFromContext(c *gin.Context) (string, bool) {
	if c.Request == nil {
		return "", false
	}
	return OperatorIDFromCtx(c.Request.Context())
}

package middleware

import (
	"context"

	"github.com/bestsenki/storefront/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxRequestIDLen = 64

// RequestIDMiddleware propagates the caller's X-Request-ID or mints one.
// The ID is echoed back and carried on the request context for logs,
// error bodies and Sentry scopes.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" || len(requestID) > maxRequestIDLen {
		requestID = uuid.NewString()
	}

	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), types.CtxRequestID, requestID))
	c.Header(types.HeaderRequestID, requestID)
	c.Next()
}

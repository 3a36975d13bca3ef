package middleware

import (
	"time"

	"github.com/bestsenki/storefront/internal/config"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware captures panics and tags the request scope with the account
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryScopeMiddleware adds request and account tags to the hub created by SentryMiddleware
func SentryScopeMiddleware(c *gin.Context) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		ctx := c.Request.Context()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("request_id", types.GetRequestID(ctx))
			if userID := types.GetUserID(ctx); userID != "" {
				scope.SetUser(sentry.User{ID: userID, Email: types.GetUserEmail(ctx)})
			}
		})
	}
	c.Next()
}

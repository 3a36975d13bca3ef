package middleware

import (
	"context"
	"strings"

	"github.com/bestsenki/storefront/internal/auth"
	"github.com/bestsenki/storefront/internal/config"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware identifies the account when a bearer token is sent.
// Requests without a token continue as guests; a bad token is rejected so a
// logged-in customer never silently checks out as a guest.
func OptionalAuthMiddleware(provider auth.Provider, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.Next()
			return
		}

		ctx, err := authenticate(c.Request.Context(), provider, authHeader)
		if err != nil {
			logger.Debugw("rejected bearer token", "error", err, "path", c.Request.URL.Path)
			c.Error(err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuthMiddleware rejects guests. It runs after OptionalAuthMiddleware.
func RequireAuthMiddleware(c *gin.Context) {
	if !types.IsAuthenticated(c.Request.Context()) {
		c.Error(ierr.NewError("authentication required").
			WithHint("Войдите в аккаунт").
			Mark(ierr.ErrUnauthenticated))
		c.Abort()
		return
	}
	c.Next()
}

// AdminMiddleware lets through accounts whose token carries the configured admin role
func AdminMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if !types.IsAuthenticated(ctx) {
			c.Error(ierr.NewError("authentication required").
				WithHint("Войдите в аккаунт").
				Mark(ierr.ErrUnauthenticated))
			c.Abort()
			return
		}

		claims := &auth.Claims{UserID: types.GetUserID(ctx), Role: types.GetUserRole(ctx)}
		if !claims.IsAdmin(cfg.Auth.AdminRole) {
			logger.Warnw("admin access denied",
				"user_id", claims.UserID,
				"role", claims.Role,
				"path", c.Request.URL.Path,
			)
			c.Error(ierr.NewError("admin role required").
				WithHint("Недостаточно прав").
				Mark(ierr.ErrPermissionDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}

func authenticate(ctx context.Context, provider auth.Provider, authHeader string) (context.Context, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, ierr.NewError("invalid authorization header format").
			WithHint("Invalid authorization header format").
			Mark(ierr.ErrUnauthenticated)
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := provider.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	ctx = types.SetUserID(ctx, claims.UserID)
	ctx = types.SetUserEmail(ctx, claims.Email)
	ctx = types.SetUserRole(ctx, claims.Role)
	ctx = context.WithValue(ctx, types.CtxJWT, token)
	return ctx, nil
}

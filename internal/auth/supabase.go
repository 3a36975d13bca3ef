package auth

import (
	"context"
	"fmt"

	"github.com/bestsenki/storefront/internal/config"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/golang-jwt/jwt/v4"
)

// supabaseAuth verifies Supabase-issued HS256 access tokens locally with
// the project JWT secret; no round trip to the auth server.
type supabaseAuth struct {
	cfg config.AuthConfig
}

func NewSupabaseAuth(cfg *config.Configuration) Provider {
	return &supabaseAuth{cfg: cfg.Auth}
}

func (s *supabaseAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthenticated)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthenticated)
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthenticated)
	}

	email, _ := claims["email"].(string)

	var role string
	if appMetadata, ok := claims["app_metadata"].(map[string]interface{}); ok {
		role, _ = appMetadata["role"].(string)
	}

	return &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}

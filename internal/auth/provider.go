package auth

import (
	"context"

	"github.com/bestsenki/storefront/internal/config"
)

// Claims is the verified identity carried by an access token
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the token grants back-office access
func (c *Claims) IsAdmin(adminRole string) bool {
	return c != nil && adminRole != "" && c.Role == adminRole
}

type Provider interface {
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewSupabaseAuth(cfg)
}

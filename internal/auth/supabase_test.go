package auth

import (
	"context"
	"testing"
	"time"

	"github.com/bestsenki/storefront/internal/config"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newProvider() Provider {
	cfg := config.GetDefaultConfig()
	cfg.Auth.Secret = testSecret
	return NewProvider(cfg)
}

func TestValidateToken(t *testing.T) {
	p := newProvider()

	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub":          "user-1",
		"email":        "anna@example.kg",
		"exp":          time.Now().Add(time.Hour).Unix(),
		"app_metadata": map[string]interface{}{"role": "admin"},
	})

	claims, err := p.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "anna@example.kg", claims.Email)
	assert.True(t, claims.IsAdmin("admin"))
	assert.False(t, claims.IsAdmin(""))
}

func TestValidateTokenRejects(t *testing.T) {
	p := newProvider()

	tests := []struct {
		name  string
		token string
	}{
		{
			name: "wrong secret",
			token: sign(t, jwt.SigningMethodHS256, []byte("another-secret"), jwt.MapClaims{
				"sub": "user-1",
			}),
		},
		{
			name: "expired",
			token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
				"sub": "user-1",
				"exp": time.Now().Add(-time.Minute).Unix(),
			}),
		},
		{
			name:  "missing subject",
			token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"email": "x@example.kg"}),
		},
		{name: "garbage", token: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ValidateToken(context.Background(), tt.token)
			assert.True(t, ierr.IsUnauthenticated(err), "got %v", err)
		})
	}
}

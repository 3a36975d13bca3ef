package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.01, cfg.Loyalty.EarnRate)
	assert.Equal(t, int64(100), cfg.Referral.BonusPoints)
}

func TestValidateRejectsUnknownLoyaltyBackend(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Store.LoyaltyBackend = "redis"
	assert.Error(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	c := PostgresConfig{
		Host:     "db",
		Port:     5432,
		User:     "shop",
		Password: "secret",
		DBName:   "storefront",
		SSLMode:  "disable",
	}
	assert.Equal(t, "user=shop password=secret dbname=storefront host=db port=5432 sslmode=disable", c.GetDSN())
}

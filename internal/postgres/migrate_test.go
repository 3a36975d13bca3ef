package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbeddedInOrder(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "0001_init", migrations[0].Version)
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}

	for _, table := range []string{"orders", "loyalty_points", "loyalty_transactions", "referrals", "favorites", "recently_viewed", "promo_banners"} {
		assert.True(t, strings.Contains(migrations[0].SQL, "CREATE TABLE IF NOT EXISTS "+table+" "), table)
	}

	require.GreaterOrEqual(t, len(migrations), 2)
	assert.Equal(t, "0002_reviews", migrations[1].Version)
	assert.Contains(t, migrations[1].SQL, "CREATE TABLE IF NOT EXISTS reviews ")
}

package loyalty

import (
	"testing"

	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxUsable(t *testing.T) {
	tests := []struct {
		name      string
		available int64
		post      decimal.Decimal
		want      int64
	}{
		{name: "capped by balance", available: 500, post: decimal.NewFromInt(2700), want: 500},
		{name: "capped by half subtotal", available: 800, post: decimal.NewFromInt(1000), want: 500},
		{name: "odd subtotal floors", available: 800, post: decimal.NewFromInt(999), want: 499},
		{name: "fractional subtotal floors", available: 800, post: decimal.RequireFromString("3.9"), want: 1},
		{name: "zero balance", available: 0, post: decimal.NewFromInt(1000), want: 0},
		{name: "zero subtotal", available: 100, post: decimal.Zero, want: 0},
		{name: "negative subtotal", available: 100, post: decimal.NewFromInt(-10), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxUsable(tt.available, tt.post))
		})
	}
}

func TestResolveRedemption(t *testing.T) {
	tests := []struct {
		name      string
		requested int64
		available int64
		post      int64
		wantUsed  int64
	}{
		{name: "within caps", requested: 200, available: 500, post: 2700, wantUsed: 200},
		{name: "exceeds balance is clamped", requested: 900, available: 500, post: 2700, wantUsed: 500},
		{name: "exceeds half is clamped", requested: 700, available: 800, post: 1000, wantUsed: 500},
		{name: "negative request", requested: -5, available: 800, post: 1000, wantUsed: 0},
		{name: "zero request", requested: 0, available: 800, post: 1000, wantUsed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRedemption(tt.requested, tt.available, decimal.NewFromInt(tt.post))
			assert.Equal(t, tt.wantUsed, got.PointsUsed)
			assert.True(t, decimal.NewFromInt(tt.wantUsed).Equal(got.Discount))
		})
	}
}

func TestResolveRedemptionNeverExceedsCap(t *testing.T) {
	for available := int64(0); available <= 1200; available += 97 {
		for post := int64(0); post <= 3000; post += 113 {
			for _, requested := range []int64{-1, 0, 1, 250, 999, 5000} {
				got := ResolveRedemption(requested, available, decimal.NewFromInt(post))
				assert.LessOrEqual(t, got.PointsUsed, available)
				assert.LessOrEqual(t, got.PointsUsed, post/2)
				assert.GreaterOrEqual(t, got.PointsUsed, int64(0))
			}
		}
	}
}

func TestUseAll(t *testing.T) {
	got := UseAll(800, decimal.NewFromInt(1000))
	assert.Equal(t, int64(500), got.PointsUsed)
	assert.True(t, decimal.NewFromInt(500).Equal(got.Discount))
}

func TestEarnedPoints(t *testing.T) {
	rate := decimal.NewFromFloat(0.01)
	assert.Equal(t, int64(22), EarnedPoints(decimal.NewFromInt(2200), rate))
	assert.Equal(t, int64(1), EarnedPoints(decimal.NewFromInt(199), rate))
	assert.Equal(t, int64(0), EarnedPoints(decimal.NewFromInt(99), rate))
	assert.Equal(t, int64(0), EarnedPoints(decimal.Zero, rate))
}

func TestBalanceApply(t *testing.T) {
	b := &Balance{AccountID: "u1", AvailablePoints: 100, TotalEarned: 150, TotalSpent: 50}

	earned, err := b.Apply(&Operation{AccountID: "u1", Type: types.LoyaltyTransactionEarned, Points: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(130), earned.AvailablePoints)
	assert.Equal(t, int64(180), earned.TotalEarned)
	assert.Equal(t, int64(100), b.AvailablePoints, "receiver must not change")

	spent, err := b.Apply(&Operation{AccountID: "u1", Type: types.LoyaltyTransactionSpent, Points: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(0), spent.AvailablePoints)
	assert.Equal(t, int64(150), spent.TotalSpent)

	_, err = b.Apply(&Operation{AccountID: "u1", Type: types.LoyaltyTransactionSpent, Points: 101})
	assert.Error(t, err)
}

func TestOperationValidate(t *testing.T) {
	assert.NoError(t, (&Operation{AccountID: "u1", Type: types.LoyaltyTransactionBonus, Points: 1}).Validate())
	assert.Error(t, (&Operation{Type: types.LoyaltyTransactionBonus, Points: 1}).Validate())
	assert.Error(t, (&Operation{AccountID: "u1", Type: types.LoyaltyTransactionBonus}).Validate())
	assert.Error(t, (&Operation{AccountID: "u1", Type: "gift", Points: 1}).Validate())
}

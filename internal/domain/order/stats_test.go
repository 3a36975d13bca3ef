package order

import (
	"testing"
	"time"

	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsOrder(status types.OrderStatus, total int64, created time.Time, items ...Item) *Order {
	o := &Order{
		OrderStatus: status,
		Total:       decimal.NewFromInt(total),
		Items:       items,
	}
	o.CreatedAt = created
	return o
}

func TestCalculateStats(t *testing.T) {
	now := time.Now()
	orders := []*Order{
		statsOrder(types.OrderStatusCompleted, 3000, now),
		statsOrder(types.OrderStatusPending, 1000, now),
		statsOrder(types.OrderStatusCancelled, 9000, now),
	}

	stats := CalculateStats(orders)
	assert.True(t, decimal.NewFromInt(4000).Equal(stats.TotalRevenue))
	assert.Equal(t, 2, stats.TotalOrders)
	assert.True(t, decimal.NewFromInt(2000).Equal(stats.AverageOrderValue))
	assert.Equal(t, 1, stats.OrdersByStatus[types.OrderStatusCancelled])
	assert.Equal(t, 0, stats.OrdersByStatus[types.OrderStatusProcessing])
}

func TestCalculateStatsEmpty(t *testing.T) {
	stats := CalculateStats(nil)
	assert.True(t, stats.AverageOrderValue.IsZero())
	assert.Len(t, stats.OrdersByStatus, 4)
}

func TestGroupSalesByDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	orders := []*Order{
		statsOrder(types.OrderStatusCompleted, 1000, now),
		statsOrder(types.OrderStatusPending, 500, now.Add(-2*time.Hour)),
		statsOrder(types.OrderStatusCompleted, 700, now.AddDate(0, 0, -2)),
		statsOrder(types.OrderStatusCancelled, 5000, now),
		statsOrder(types.OrderStatusCompleted, 100, now.AddDate(0, 0, -10)),
	}

	sales := GroupSalesByDate(orders, 3, now)
	require.Len(t, sales, 3)
	assert.Equal(t, "2024-03-08", sales[0].Date)
	assert.Equal(t, "2024-03-10", sales[2].Date)

	assert.True(t, decimal.NewFromInt(700).Equal(sales[0].Revenue))
	assert.Equal(t, 0, sales[1].Orders)
	assert.True(t, sales[1].Revenue.IsZero())
	assert.True(t, decimal.NewFromInt(1500).Equal(sales[2].Revenue))
	assert.Equal(t, 2, sales[2].Orders)
}

func TestGroupSalesByDateDefaultsToThirtyDays(t *testing.T) {
	assert.Len(t, GroupSalesByDate(nil, 0, time.Now()), DefaultSalesDays)
}

func TestTopProducts(t *testing.T) {
	now := time.Now()
	bra := Item{Title: "Бюстгальтер", Quantity: 2, UnitPrice: decimal.NewFromInt(1500)}
	set := Item{Title: "Комплект", Quantity: 1, UnitPrice: decimal.NewFromInt(4000)}
	robe := Item{Title: "Халат", Quantity: 1, UnitPrice: decimal.NewFromInt(2500)}

	orders := []*Order{
		statsOrder(types.OrderStatusCompleted, 0, now, bra, robe),
		statsOrder(types.OrderStatusPending, 0, now, set, bra),
		statsOrder(types.OrderStatusCancelled, 0, now, robe, robe, robe),
	}

	top := TopProducts(orders, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Бюстгальтер", top[0].Title)
	assert.Equal(t, 4, top[0].Quantity)
	assert.True(t, decimal.NewFromInt(6000).Equal(top[0].Revenue))
	assert.Equal(t, "Комплект", top[1].Title)
}

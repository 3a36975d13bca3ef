package order

import (
	"sort"
	"time"

	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
)

const (
	DefaultSalesDays       = 30
	DefaultTopProductLimit = 10
)

type Stats struct {
	TotalRevenue      decimal.Decimal           `json:"total_revenue" swaggertype:"string"`
	TotalOrders       int                       `json:"total_orders"`
	AverageOrderValue decimal.Decimal           `json:"average_order_value" swaggertype:"string"`
	OrdersByStatus    map[types.OrderStatus]int `json:"orders_by_status"`
}

type DailySales struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue" swaggertype:"string"`
	Orders  int             `json:"orders"`
}

type TopProduct struct {
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue" swaggertype:"string"`
}

// CalculateStats sums revenue over non-cancelled orders. OrdersByStatus
// counts every order, cancelled included.
func CalculateStats(orders []*Order) Stats {
	stats := Stats{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		OrdersByStatus:    make(map[types.OrderStatus]int, len(types.OrderStatuses)),
	}
	for _, s := range types.OrderStatuses {
		stats.OrdersByStatus[s] = 0
	}

	for _, o := range orders {
		stats.OrdersByStatus[o.OrderStatus]++
		if !o.CountsTowardRevenue() {
			continue
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		stats.TotalOrders++
	}

	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(stats.TotalOrders))).
			Round(2)
	}
	return stats
}

// GroupSalesByDate buckets non-cancelled orders into the last days UTC
// calendar days ending at now, oldest first. Days without orders are zero.
func GroupSalesByDate(orders []*Order, days int, now time.Time) []DailySales {
	if days <= 0 {
		days = DefaultSalesDays
	}

	now = now.UTC()
	buckets := make(map[string]*DailySales, days)
	out := make([]*DailySales, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i).Format(time.DateOnly)
		entry := &DailySales{Date: d, Revenue: decimal.Zero}
		buckets[d] = entry
		out = append(out, entry)
	}

	for _, o := range orders {
		if !o.CountsTowardRevenue() {
			continue
		}
		entry, ok := buckets[o.CreatedAt.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		entry.Revenue = entry.Revenue.Add(o.Total)
		entry.Orders++
	}

	result := make([]DailySales, len(out))
	for i, e := range out {
		result[i] = *e
	}
	return result
}

// TopProducts ranks item titles by revenue across non-cancelled orders
func TopProducts(orders []*Order, limit int) []TopProduct {
	if limit <= 0 {
		limit = DefaultTopProductLimit
	}

	byTitle := make(map[string]*TopProduct)
	for _, o := range orders {
		if !o.CountsTowardRevenue() {
			continue
		}
		for _, item := range o.Items {
			title := item.Title
			if title == "" {
				title = "Unknown Product"
			}
			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}
			p, ok := byTitle[title]
			if !ok {
				p = &TopProduct{Title: title, Revenue: decimal.Zero}
				byTitle[title] = p
			}
			p.Quantity += qty
			p.Revenue = p.Revenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(qty))))
		}
	}

	products := make([]TopProduct, 0, len(byTitle))
	for _, p := range byTitle {
		products = append(products, *p)
	}
	sort.SliceStable(products, func(i, j int) bool {
		if !products[i].Revenue.Equal(products[j].Revenue) {
			return products[i].Revenue.GreaterThan(products[j].Revenue)
		}
		return products[i].Title < products[j].Title
	})

	if len(products) > limit {
		products = products[:limit]
	}
	return products
}

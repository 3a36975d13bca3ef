package pricing

import (
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
)

// Line is a cart line as seen by checkout. The cart owns it; the resolver
// only reads price and quantity.
type Line struct {
	ProductID    string          `json:"product_id"`
	VariantID    string          `json:"variant_id"`
	Title        string          `json:"title"`
	VariantTitle string          `json:"variant_title,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price" swaggertype:"string"`
	Quantity     int             `json:"quantity"`
	Options      types.Metadata  `json:"options,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
}

func (l Line) Validate() error {
	if l.Quantity < 1 {
		return ierr.NewError("line quantity must be at least 1").
			WithHint("Quantity must be at least 1").
			WithReportableDetails(map[string]any{
				"variant_id": l.VariantID,
				"quantity":   l.Quantity,
			}).
			Mark(ierr.ErrValidation)
	}
	if l.UnitPrice.IsNegative() {
		return ierr.NewError("line unit price is negative").
			WithHint("Price cannot be negative").
			WithReportableDetails(map[string]any{
				"variant_id": l.VariantID,
				"unit_price": l.UnitPrice.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Amount is unitPrice * quantity
func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Result is the priced checkout handed to order creation
type Result struct {
	Subtotal          decimal.Decimal    `json:"subtotal" swaggertype:"string"`
	PromoDiscount     decimal.Decimal    `json:"promo_discount" swaggertype:"string"`
	PromoCode         *string            `json:"promo_code,omitempty"`
	LoyaltyPointsUsed int64              `json:"loyalty_points_used"`
	LoyaltyDiscount   decimal.Decimal    `json:"loyalty_discount" swaggertype:"string"`
	Total             decimal.Decimal    `json:"total" swaggertype:"string"`
	State             types.PricingState `json:"state"`
}

// Equal compares two results field by field using decimal equality
func (r Result) Equal(o Result) bool {
	samePromo := (r.PromoCode == nil && o.PromoCode == nil) ||
		(r.PromoCode != nil && o.PromoCode != nil && *r.PromoCode == *o.PromoCode)
	return samePromo &&
		r.Subtotal.Equal(o.Subtotal) &&
		r.PromoDiscount.Equal(o.PromoDiscount) &&
		r.LoyaltyPointsUsed == o.LoyaltyPointsUsed &&
		r.LoyaltyDiscount.Equal(o.LoyaltyDiscount) &&
		r.Total.Equal(o.Total) &&
		r.State == o.State
}

// Adjustment reports discounts dropped because the cart changed under them
type Adjustment struct {
	PromoRemoved bool `json:"promo_removed"`
	LoyaltyReset bool `json:"loyalty_reset"`
}

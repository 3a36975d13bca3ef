package promo

import (
	"strings"

	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
)

// Rule is one entry of the promo code table
type Rule struct {
	Code     string           `json:"code"`
	Kind     types.PromoKind  `json:"kind"`
	Amount   decimal.Decimal  `json:"amount" swaggertype:"string"`
	MinOrder *decimal.Decimal `json:"min_order,omitempty" swaggertype:"string"`
}

// Reasons a code does not apply
const (
	ReasonNotFound       = "not found"
	ReasonMinOrderNotMet = "minimum order not met"
)

// Resolution is the outcome of checking a code against a subtotal
type Resolution struct {
	Applies        bool            `json:"applies"`
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount" swaggertype:"string"`
	Reason         string          `json:"reason,omitempty"`
	// Message is the customer-facing text for a failed resolution
	Message string `json:"message,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// NormalizeCode trims and upper-cases user input
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Discount returns the raw discount for a subtotal that already meets the
// minimum order. Percent rules round half away from zero to whole som; fixed
// rules are returned as-is and capped by the caller.
func (r *Rule) Discount(subtotal decimal.Decimal) decimal.Decimal {
	switch r.Kind {
	case types.PromoKindPercent:
		return subtotal.Mul(r.Amount).Div(hundred).Round(0)
	case types.PromoKindFixed:
		return r.Amount
	default:
		return decimal.Zero
	}
}

// MeetsMinimum reports whether the subtotal reaches the rule threshold
func (r *Rule) MeetsMinimum(subtotal decimal.Decimal) bool {
	return r.MinOrder == nil || subtotal.GreaterThanOrEqual(*r.MinOrder)
}

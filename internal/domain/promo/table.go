package promo

import (
	"fmt"

	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// table is fixed at build time. Codes are stored upper-cased.
var table = map[string]Rule{
	"WELCOME15": {
		Code:   "WELCOME15",
		Kind:   types.PromoKindPercent,
		Amount: decimal.NewFromInt(15),
	},
	"SALE10": {
		Code:   "SALE10",
		Kind:   types.PromoKindPercent,
		Amount: decimal.NewFromInt(10),
	},
	"DISCOUNT500": {
		Code:     "DISCOUNT500",
		Kind:     types.PromoKindFixed,
		Amount:   decimal.NewFromInt(500),
		MinOrder: lo.ToPtr(decimal.NewFromInt(3000)),
	},
}

// Lookup finds a rule by code, case-insensitively
func Lookup(code string) (Rule, bool) {
	r, ok := table[NormalizeCode(code)]
	return r, ok
}

// Resolve checks a code against the current subtotal. It never errors; a
// code that does not apply carries a Reason and a customer-facing Message.
func Resolve(code string, subtotal decimal.Decimal) Resolution {
	normalized := NormalizeCode(code)

	rule, ok := table[normalized]
	if !ok {
		return Resolution{
			Code:    normalized,
			Reason:  ReasonNotFound,
			Message: "Промокод не найден",
		}
	}

	if !rule.MeetsMinimum(subtotal) {
		return Resolution{
			Code:    normalized,
			Reason:  ReasonMinOrderNotMet,
			Message: fmt.Sprintf("Минимальный заказ %s сом", rule.MinOrder.String()),
		}
	}

	return Resolution{
		Applies:        true,
		Code:           normalized,
		DiscountAmount: rule.Discount(subtotal),
	}
}

package loyalty

import (
	"github.com/shopspring/decimal"
)

// MaxRedemptionShare is the largest part of the post-promo subtotal that
// points may cover
var MaxRedemptionShare = decimal.NewFromFloat(0.5)

// Redemption is the applied part of a points request
type Redemption struct {
	PointsUsed int64           `json:"points_used"`
	Discount   decimal.Decimal `json:"discount" swaggertype:"string"`
}

// MaxUsable = min(available, floor(postPromoSubtotal * 0.5)), never negative.
// This is the only place the cap is computed.
func MaxUsable(available int64, postPromoSubtotal decimal.Decimal) int64 {
	if available <= 0 || !postPromoSubtotal.IsPositive() {
		return 0
	}
	ceiling := postPromoSubtotal.Mul(MaxRedemptionShare).Floor().IntPart()
	if available < ceiling {
		return available
	}
	return ceiling
}

// ResolveRedemption clamps a request into [0, MaxUsable]. Asking for more
// than the balance is clamped rather than rejected.
func ResolveRedemption(requested, available int64, postPromoSubtotal decimal.Decimal) Redemption {
	if requested < 0 {
		requested = 0
	}
	maxUsable := MaxUsable(available, postPromoSubtotal)
	if requested > maxUsable {
		requested = maxUsable
	}
	return Redemption{
		PointsUsed: requested,
		Discount:   decimal.NewFromInt(requested).Mul(PointValue),
	}
}

// UseAll redeems the maximum usable amount
func UseAll(available int64, postPromoSubtotal decimal.Decimal) Redemption {
	return ResolveRedemption(MaxUsable(available, postPromoSubtotal), available, postPromoSubtotal)
}

// EarnedPoints is floor(total * rate)
func EarnedPoints(total decimal.Decimal, rate decimal.Decimal) int64 {
	if !total.IsPositive() || !rate.IsPositive() {
		return 0
	}
	return total.Mul(rate).Floor().IntPart()
}

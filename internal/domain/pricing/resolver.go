package pricing

import (
	"github.com/bestsenki/storefront/internal/domain/loyalty"
	"github.com/bestsenki/storefront/internal/domain/promo"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Resolver combines the cart subtotal, at most one promo code and a points
// redemption into a payable total.
//
// Invariants held after every method returns:
//   - promoDiscount <= subtotal, and a promo is only held while its minimum order is met
//   - pointsUsed <= available and pointsUsed <= floor(0.5 * (subtotal - promoDiscount))
//   - total = subtotal - promoDiscount - pointsUsed >= 0
//
// When a change would push the applied points over the cap the redemption is
// reset to zero, never truncated. Resolver is not safe for concurrent use.
type Resolver struct {
	lines         []Line
	subtotal      decimal.Decimal
	rule          *promo.Rule
	promoDiscount decimal.Decimal
	pointsUsed    int64
	available     int64
}

func NewResolver(lines []Line) (*Resolver, error) {
	r := &Resolver{}
	if _, err := r.SetLines(lines); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resolver) Lines() []Line {
	return append([]Line(nil), r.lines...)
}

func (r *Resolver) Subtotal() decimal.Decimal {
	return r.subtotal
}

// PostPromoSubtotal is the base the loyalty cap is computed from
func (r *Resolver) PostPromoSubtotal() decimal.Decimal {
	return r.subtotal.Sub(r.promoDiscount)
}

// MaxUsablePoints is the cap for a balance against the current post-promo subtotal
func (r *Resolver) MaxUsablePoints(available int64) int64 {
	return loyalty.MaxUsable(available, r.PostPromoSubtotal())
}

func (r *Resolver) State() types.PricingState {
	switch {
	case r.rule != nil && r.pointsUsed > 0:
		return types.PricingStatePromoAndLoyaltyApplied
	case r.rule != nil:
		return types.PricingStatePromoApplied
	case r.pointsUsed > 0:
		return types.PricingStateLoyaltyApplied
	default:
		return types.PricingStateEmpty
	}
}

// SetLines replaces the cart and re-prices. A promo whose minimum is no
// longer met is removed; points over the new cap are reset. Invalid lines
// leave the resolver unchanged.
func (r *Resolver) SetLines(lines []Line) (Adjustment, error) {
	subtotal := decimal.Zero
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return Adjustment{}, err
		}
		subtotal = subtotal.Add(l.Amount())
	}

	r.lines = append([]Line(nil), lines...)
	r.subtotal = subtotal

	var adj Adjustment
	if r.rule != nil {
		if r.rule.MeetsMinimum(subtotal) {
			r.promoDiscount = r.cappedPromoDiscount(r.rule.Discount(subtotal))
		} else {
			r.clearPromo()
			adj.PromoRemoved = true
		}
	}
	adj.LoyaltyReset = r.revalidateLoyalty()
	return adj, nil
}

// ApplyPromo validates code against the current subtotal and, if it applies,
// replaces any previously applied promo. A code that does not apply returns
// a validation error and leaves the resolver unchanged.
func (r *Resolver) ApplyPromo(code string) (promo.Resolution, error) {
	res := promo.Resolve(code, r.subtotal)
	if !res.Applies {
		return res, ierr.NewErrorf("promo code %q does not apply: %s", res.Code, res.Reason).
			WithHint(res.Message).
			WithReportableDetails(map[string]any{
				"code":   res.Code,
				"reason": res.Reason,
			}).
			Mark(ierr.ErrValidation)
	}

	rule, _ := promo.Lookup(res.Code)
	r.rule = &rule
	r.promoDiscount = r.cappedPromoDiscount(res.DiscountAmount)
	res.DiscountAmount = r.promoDiscount
	r.revalidateLoyalty()
	return res, nil
}

// RemovePromo drops the promo. Points stay applied while within the cap.
func (r *Resolver) RemovePromo() Adjustment {
	r.clearPromo()
	return Adjustment{LoyaltyReset: r.revalidateLoyalty()}
}

// ApplyLoyalty redeems up to requested points from a balance of available.
// A request of zero or less is ignored.
func (r *Resolver) ApplyLoyalty(requested, available int64) loyalty.Redemption {
	if requested <= 0 {
		return r.redemption()
	}
	red := loyalty.ResolveRedemption(requested, available, r.PostPromoSubtotal())
	r.pointsUsed = red.PointsUsed
	r.available = available
	return red
}

// UseAllLoyalty redeems the maximum usable points
func (r *Resolver) UseAllLoyalty(available int64) loyalty.Redemption {
	red := loyalty.UseAll(available, r.PostPromoSubtotal())
	r.pointsUsed = red.PointsUsed
	r.available = available
	return red
}

func (r *Resolver) RemoveLoyalty() {
	r.pointsUsed = 0
}

// Finalize computes the result for the current state. It does not mutate
// the resolver, so repeated calls return equal results.
func (r *Resolver) Finalize() Result {
	loyaltyDiscount := decimal.NewFromInt(r.pointsUsed).Mul(loyalty.PointValue)
	var code *string
	if r.rule != nil {
		code = lo.ToPtr(r.rule.Code)
	}
	return Result{
		Subtotal:          r.subtotal,
		PromoDiscount:     r.promoDiscount,
		PromoCode:         code,
		LoyaltyPointsUsed: r.pointsUsed,
		LoyaltyDiscount:   loyaltyDiscount,
		Total:             r.subtotal.Sub(r.promoDiscount).Sub(loyaltyDiscount),
		State:             r.State(),
	}
}

func (r *Resolver) redemption() loyalty.Redemption {
	return loyalty.Redemption{
		PointsUsed: r.pointsUsed,
		Discount:   decimal.NewFromInt(r.pointsUsed).Mul(loyalty.PointValue),
	}
}

func (r *Resolver) cappedPromoDiscount(d decimal.Decimal) decimal.Decimal {
	return decimal.Min(d, r.subtotal)
}

func (r *Resolver) clearPromo() {
	r.rule = nil
	r.promoDiscount = decimal.Zero
}

// revalidateLoyalty resets points that no longer fit the cap and reports whether it did
func (r *Resolver) revalidateLoyalty() bool {
	if r.pointsUsed == 0 {
		return false
	}
	if r.pointsUsed > loyalty.MaxUsable(r.available, r.PostPromoSubtotal()) {
		r.pointsUsed = 0
		return true
	}
	return false
}

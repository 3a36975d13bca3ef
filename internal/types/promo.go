package types

// PromoKind is how a promo rule turns into a discount
type PromoKind string

const (
	PromoKindPercent PromoKind = "percent"
	PromoKindFixed   PromoKind = "fixed"
)

// PricingState is the discount combination currently applied to a checkout
type PricingState string

const (
	PricingStateEmpty                  PricingState = "empty"
	PricingStatePromoApplied           PricingState = "promo_applied"
	PricingStateLoyaltyApplied         PricingState = "loyalty_applied"
	PricingStatePromoAndLoyaltyApplied PricingState = "promo_and_loyalty_applied"
)

// CurrencyKGS is the only currency the storefront sells in
const CurrencyKGS = "KGS"

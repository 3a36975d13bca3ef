package types

import (
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/samber/lo"
)

// LoyaltyTransactionType classifies a movement of loyalty points
type LoyaltyTransactionType string

const (
	LoyaltyTransactionEarned   LoyaltyTransactionType = "earned"
	LoyaltyTransactionSpent    LoyaltyTransactionType = "spent"
	LoyaltyTransactionBonus    LoyaltyTransactionType = "bonus"
	LoyaltyTransactionReferral LoyaltyTransactionType = "referral"
)

func (t LoyaltyTransactionType) Validate() error {
	allowed := []LoyaltyTransactionType{
		LoyaltyTransactionEarned,
		LoyaltyTransactionSpent,
		LoyaltyTransactionBonus,
		LoyaltyTransactionReferral,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid loyalty transaction type").
			WithHint("Invalid loyalty transaction type").
			WithReportableDetails(map[string]any{
				"type":           t,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsCredit reports whether the type adds points to the balance
func (t LoyaltyTransactionType) IsCredit() bool {
	return t != LoyaltyTransactionSpent
}

const (
	// DefaultLoyaltyHistoryLimit is how many recent transactions the account page shows
	DefaultLoyaltyHistoryLimit = 20
)

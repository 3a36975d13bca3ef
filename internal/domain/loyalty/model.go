package loyalty

import (
	"time"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
)

// Balance is the per-account points accumulator
type Balance struct {
	ID              string `db:"id" json:"id"`
	AccountID       string `db:"user_id" json:"account_id"`
	AvailablePoints int64  `db:"points" json:"available_points"`
	TotalEarned     int64  `db:"total_earned" json:"total_earned"`
	TotalSpent      int64  `db:"total_spent" json:"total_spent"`
	types.BaseModel
}

// NewBalance returns an empty balance for an account that has never earned points
func NewBalance(accountID string) *Balance {
	return &Balance{
		AccountID: accountID,
	}
}

// Transaction is one ledger row. Points are positive for credits and
// negative for spends.
type Transaction struct {
	ID          string                       `db:"id" json:"id"`
	AccountID   string                       `db:"user_id" json:"account_id"`
	OrderID     *string                      `db:"order_id" json:"order_id,omitempty"`
	Points      int64                        `db:"points" json:"points"`
	Type        types.LoyaltyTransactionType `db:"type" json:"type"`
	Description string                       `db:"description" json:"description"`
	CreatedAt   time.Time                    `db:"created_at" json:"created_at"`
}

// Operation is a request to move points in or out of a balance
type Operation struct {
	AccountID   string
	Type        types.LoyaltyTransactionType
	Points      int64
	OrderID     *string
	Description string
}

func (op *Operation) Validate() error {
	if op.AccountID == "" {
		return ierr.NewError("account id is required").
			WithHint("Log in to use loyalty points").
			Mark(ierr.ErrValidation)
	}
	if op.Points <= 0 {
		return ierr.NewError("points must be positive").
			WithHint("Points amount must be greater than zero").
			WithReportableDetails(map[string]any{
				"points": op.Points,
			}).
			Mark(ierr.ErrValidation)
	}
	return op.Type.Validate()
}

// Apply returns the balance after the operation without mutating b.
// Spending more than is available is an invalid operation.
func (b *Balance) Apply(op *Operation) (*Balance, error) {
	next := *b
	if op.Type.IsCredit() {
		next.AvailablePoints += op.Points
		next.TotalEarned += op.Points
		return &next, nil
	}

	if op.Points > b.AvailablePoints {
		return nil, ierr.NewError("insufficient loyalty points").
			WithHint("Недостаточно баллов").
			WithReportableDetails(map[string]any{
				"available": b.AvailablePoints,
				"requested": op.Points,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	next.AvailablePoints -= op.Points
	next.TotalSpent += op.Points
	return &next, nil
}

// SignedPoints is the ledger value for the operation
func (op *Operation) SignedPoints() int64 {
	if op.Type.IsCredit() {
		return op.Points
	}
	return -op.Points
}

// PointValue is what one point is worth at checkout, in som
var PointValue = decimal.NewFromInt(1)

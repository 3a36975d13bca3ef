package referral

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, r *Referral) error
	// GetByAccount returns ErrNotFound when the account has no record
	GetByAccount(ctx context.Context, accountID string) (*Referral, error)
	GetByCode(ctx context.Context, code string) (*Referral, error)
	SetReferredBy(ctx context.Context, id, referrerID string) error
	// RecordReferral increments referral_count and adds bonus to bonus_earned
	RecordReferral(ctx context.Context, id string, bonus decimal.Decimal) error
}

package supabase

import (
	"context"
	"strconv"
	"time"

	"github.com/bestsenki/storefront/internal/domain/referral"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/nedpals/supabase-go"
	"github.com/shopspring/decimal"
)

const tableReferrals = "referrals"

type referralRow struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	ReferralCode  string          `json:"referral_code"`
	ReferredBy    *string         `json:"referred_by"`
	ReferralCount int             `json:"referral_count"`
	BonusEarned   decimal.Decimal `json:"bonus_earned"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (r referralRow) toDomain() *referral.Referral {
	return &referral.Referral{
		ID:            r.ID,
		AccountID:     r.UserID,
		Code:          r.ReferralCode,
		ReferredBy:    r.ReferredBy,
		ReferralCount: r.ReferralCount,
		BonusEarned:   r.BonusEarned,
		BaseModel: types.BaseModel{
			Status:    types.StatusPublished,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
	}
}

type referralRepository struct {
	client *supabase.Client
	logger *logger.Logger
}

func NewReferralRepository(client *supabase.Client, logger *logger.Logger) referral.Repository {
	return &referralRepository{client: client, logger: logger}
}

func (r *referralRepository) Create(ctx context.Context, ref *referral.Referral) error {
	var inserted []referralRow
	err := r.client.DB.From(tableReferrals).
		Insert(referralRow{
			ID:            ref.ID,
			UserID:        ref.AccountID,
			ReferralCode:  ref.Code,
			ReferredBy:    ref.ReferredBy,
			ReferralCount: ref.ReferralCount,
			BonusEarned:   ref.BonusEarned,
			CreatedAt:     ref.CreatedAt,
			UpdatedAt:     ref.UpdatedAt,
		}).
		ExecuteWithContext(ctx, &inserted)
	if err != nil {
		return restError(err, "Failed to create referral code")
	}
	return nil
}

func (r *referralRepository) GetByAccount(ctx context.Context, accountID string) (*referral.Referral, error) {
	return r.getBy(ctx, "user_id", accountID)
}

func (r *referralRepository) GetByCode(ctx context.Context, code string) (*referral.Referral, error) {
	return r.getBy(ctx, "referral_code", code)
}

func (r *referralRepository) getBy(ctx context.Context, column, value string) (*referral.Referral, error) {
	var rows []referralRow
	err := r.client.DB.From(tableReferrals).
		Select("*").
		Eq(column, value).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, restError(err, "Failed to get referral")
	}
	if len(rows) == 0 {
		return nil, ierr.NewErrorf("referral %s not found", value).
			WithHint("referral not found").
			Mark(ierr.ErrNotFound)
	}
	return rows[0].toDomain(), nil
}

func (r *referralRepository) SetReferredBy(ctx context.Context, id, referrerID string) error {
	var updated []referralRow
	err := r.client.DB.From(tableReferrals).
		Update(map[string]interface{}{
			"referred_by": referrerID,
			"updated_at":  time.Now().UTC(),
		}).
		Eq("id", id).
		Is("referred_by", "null").
		ExecuteWithContext(ctx, &updated)
	if err != nil {
		return restError(err, "Failed to apply referral code")
	}
	if len(updated) > 0 {
		return nil
	}

	var rows []referralRow
	err = r.client.DB.From(tableReferrals).
		Select("id").
		Eq("id", id).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return restError(err, "Failed to apply referral code")
	}
	if len(rows) == 0 {
		return ierr.NewErrorf("referral %s not found", id).
			WithHint("referral not found").
			Mark(ierr.ErrNotFound)
	}
	return referral.ErrAlreadyReferred(id)
}

// RecordReferral increments the counters with a conditional update on the
// previous count, retrying when another referral landed first
func (r *referralRepository) RecordReferral(ctx context.Context, id string, bonus decimal.Decimal) error {
	conflict := ierr.NewError("referral counters changed concurrently").Mark(ierr.ErrInvalidOperation)

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(20*time.Millisecond),
		), maxBalanceConflicts),
		ctx,
	)

	return backoff.Retry(func() error {
		var rows []referralRow
		err := r.client.DB.From(tableReferrals).
			Select("*").
			Eq("id", id).
			ExecuteWithContext(ctx, &rows)
		if err != nil {
			return backoff.Permanent(restError(err, "Failed to get referrer"))
		}
		if len(rows) == 0 {
			return backoff.Permanent(ierr.NewErrorf("referral %s not found", id).
				WithHint("referral not found").
				Mark(ierr.ErrNotFound))
		}

		current := rows[0].toDomain()
		current.RecordReferral(bonus)

		var updated []referralRow
		err = r.client.DB.From(tableReferrals).
			Update(map[string]interface{}{
				"referral_count": current.ReferralCount,
				"bonus_earned":   current.BonusEarned,
				"updated_at":     time.Now().UTC(),
			}).
			Eq("id", id).
			Eq("referral_count", strconv.Itoa(rows[0].ReferralCount)).
			ExecuteWithContext(ctx, &updated)
		if err != nil {
			return backoff.Permanent(restError(err, "Failed to update referrer"))
		}
		if len(updated) == 0 {
			return conflict
		}
		return nil
	}, policy)
}

package postgres

import (
	"context"
	"time"

	"github.com/bestsenki/storefront/internal/domain/referral"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/postgres"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
)

type referralRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewReferralRepository(db *postgres.DB, logger *logger.Logger) referral.Repository {
	return &referralRepository{db: db, logger: logger}
}

func (r *referralRepository) Create(ctx context.Context, ref *referral.Referral) error {
	query := `
		INSERT INTO referrals (
			id, user_id, referral_code, referred_by, referral_count, bonus_earned,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :user_id, :referral_code, :referred_by, :referral_count, :bonus_earned,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating referral",
		"referral_id", ref.ID,
		"account_id", ref.AccountID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, ref); err != nil {
		return dbError(err, "Failed to create referral code")
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
	// column is one of two constants above, never user input
	rows, err := r.db.NamedQueryContext(ctx,
		"SELECT * FROM referrals WHERE "+column+" = :value AND status = :status",
		map[string]interface{}{
			"value":  value,
			"status": types.StatusPublished,
		})
	if err != nil {
		return nil, dbError(err, "Failed to get referral")
	}

	var ref referral.Referral
	found, err := scanOne(rows, &ref)
	if err != nil {
		return nil, dbError(err, "Failed to read referral")
	}
	if !found {
		return nil, notFound("referral", value)
	}
	return &ref, nil
}

func (r *referralRepository) SetReferredBy(ctx context.Context, id, referrerID string) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE referrals SET
			referred_by = :referred_by,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND referred_by IS NULL`,
		map[string]interface{}{
			"id":          id,
			"referred_by": referrerID,
			"updated_at":  time.Now().UTC(),
			"updated_by":  types.GetUserID(ctx),
		})
	if err != nil {
		return dbError(err, "Failed to apply referral code")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return r.referredByConflict(ctx, id)
	}
	return nil
}

// referredByConflict tells a missing row apart from one that already has a referrer
func (r *referralRepository) referredByConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM referrals WHERE id = $1)", id); err != nil {
		return dbError(err, "Failed to apply referral code")
	}
	if !exists {
		return notFound("referral", id)
	}
	return referral.ErrAlreadyReferred(id)
}

func (r *referralRepository) RecordReferral(ctx context.Context, id string, bonus decimal.Decimal) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE referrals SET
			referral_count = referral_count + 1,
			bonus_earned = bonus_earned + :bonus,
			updated_at = :updated_at
		WHERE id = :id`,
		map[string]interface{}{
			"id":         id,
			"bonus":      bonus,
			"updated_at": time.Now().UTC(),
		})
	if err != nil {
		return dbError(err, "Failed to update referrer")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound("referral", id)
	}
	return nil
}

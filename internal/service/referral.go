package service

import (
	"context"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/domain/referral"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
)

// codes are random; a collision only retries generation
const maxReferralCodeAttempts = 5

type ReferralService interface {
	// GetReferral returns the caller's referral record, ErrNotFound before one is created
	GetReferral(ctx context.Context) (*dto.ReferralResponse, error)
	// CreateReferral issues the caller's code. Repeated calls return the same record.
	CreateReferral(ctx context.Context) (*dto.ReferralResponse, error)
	// ApplyCode records that the caller was referred by the owner of code
	ApplyCode(ctx context.Context, req *dto.ApplyReferralRequest) (*dto.ReferralResponse, error)
}

type referralService struct {
	ServiceParams
	loyalty LoyaltyService
}

func NewReferralService(params ServiceParams, loyaltyService LoyaltyService) ReferralService {
	return &referralService{
		ServiceParams: params,
		loyalty:       loyaltyService,
	}
}

func (s *referralService) GetReferral(ctx context.Context) (*dto.ReferralResponse, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return nil, errLoginRequired("Войдите, чтобы увидеть реферальный код")
	}

	r, err := s.ReferralRepo.GetByAccount(ctx, accountID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("У вас ещё нет реферального кода").
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}
	return &dto.ReferralResponse{Referral: r}, nil
}

func (s *referralService) CreateReferral(ctx context.Context) (*dto.ReferralResponse, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return nil, errLoginRequired("Войдите, чтобы получить реферальный код")
	}

	r, err := s.ReferralRepo.GetByAccount(ctx, accountID)
	if err == nil {
		return &dto.ReferralResponse{Referral: r}, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	r, created, err := s.create(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if created {
		s.Logger.Infow("referral code created", "account_id", accountID, "referral_id", r.ID)
	}
	return &dto.ReferralResponse{Referral: r, Created: created}, nil
}

func (s *referralService) ApplyCode(ctx context.Context, req *dto.ApplyReferralRequest) (*dto.ReferralResponse, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return nil, errLoginRequired("Войдите, чтобы применить реферальный код")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	referrer, err := s.ReferralRepo.GetByCode(ctx, req.Code)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Реферальный код не найден").
				WithReportableDetails(map[string]any{
					"code": req.Code,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}

	own, err := s.ReferralRepo.GetByAccount(ctx, accountID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if err := referral.CheckApplicable(accountID, referrer, own); err != nil {
		return nil, err
	}

	bonusPoints := s.Config.Referral.BonusPoints
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if own == nil {
			if own, _, err = s.create(txCtx, accountID); err != nil {
				return err
			}
		}
		if err := s.ReferralRepo.SetReferredBy(txCtx, own.ID, referrer.ID); err != nil {
			return err
		}
		return s.ReferralRepo.RecordReferral(txCtx, referrer.ID, decimal.NewFromInt(bonusPoints))
	})
	if err != nil {
		return nil, err
	}

	own.ReferredBy = &referrer.ID
	s.Logger.Infow("referral code applied",
		"account_id", accountID,
		"referrer_id", referrer.ID,
		"referrer_account_id", referrer.AccountID,
	)

	if err := s.loyalty.CreditReferralBonus(ctx, referrer.AccountID, bonusPoints); err != nil {
		s.Logger.Errorw("failed to credit referral bonus points",
			"referrer_account_id", referrer.AccountID,
			"points", bonusPoints,
			"error", err,
		)
		s.Sentry.CaptureException(ctx, err)
	}

	return &dto.ReferralResponse{Referral: own}, nil
}

// create issues a new code, retrying on code collisions. created is false
// when a concurrent request created the account's record first.
func (s *referralService) create(ctx context.Context, accountID string) (*referral.Referral, bool, error) {
	var lastErr error
	for attempt := 0; attempt < maxReferralCodeAttempts; attempt++ {
		r := &referral.Referral{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REFERRAL),
			AccountID:   accountID,
			Code:        referral.GenerateCode(),
			BonusEarned: decimal.Zero,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		}
		err := s.ReferralRepo.Create(ctx, r)
		if err == nil {
			return r, true, nil
		}
		if !ierr.IsAlreadyExists(err) {
			return nil, false, err
		}

		if existing, getErr := s.ReferralRepo.GetByAccount(ctx, accountID); getErr == nil {
			return existing, false, nil
		}
		lastErr = err
	}

	return nil, false, ierr.WithError(lastErr).
		WithHint("Не удалось создать реферальный код").
		Mark(ierr.ErrSystem)
}

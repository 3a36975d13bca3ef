package service

import (
	"context"
	"time"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/domain/loyalty"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

const balanceRetryInterval = 200 * time.Millisecond

type LoyaltyService interface {
	// GetLoyalty returns the caller's balance and recent history
	GetLoyalty(ctx context.Context) (*dto.LoyaltyResponse, error)
	// FetchBalance reads available points with a bounded timeout and a single retry
	FetchBalance(ctx context.Context, accountID string) (int64, error)
	// SpendForOrder debits points redeemed on an order
	SpendForOrder(ctx context.Context, accountID, orderID string, points int64) error
	// EarnForOrder credits the earn rate share of a paid total and returns the points credited
	EarnForOrder(ctx context.Context, accountID, orderID string, total decimal.Decimal) (int64, error)
	// CreditReferralBonus credits the referrer for a new referral
	CreditReferralBonus(ctx context.Context, accountID string, points int64) error
}

type loyaltyService struct {
	ServiceParams
}

func NewLoyaltyService(params ServiceParams) LoyaltyService {
	return &loyaltyService{
		ServiceParams: params,
	}
}

func (s *loyaltyService) GetLoyalty(ctx context.Context) (*dto.LoyaltyResponse, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return nil, errLoginRequired("Войдите, чтобы увидеть бонусные баллы")
	}

	balance, err := s.LoyaltyRepo.GetBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}

	txs, err := s.LoyaltyRepo.ListTransactions(ctx, accountID, types.DefaultLoyaltyHistoryLimit)
	if err != nil {
		return nil, err
	}

	return dto.NewLoyaltyResponse(balance, txs), nil
}

func (s *loyaltyService) FetchBalance(ctx context.Context, accountID string) (int64, error) {
	attempt := 0
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(balanceRetryInterval), 1),
		ctx,
	)

	balance, err := backoff.RetryWithData(func() (*loyalty.Balance, error) {
		attempt++
		fetchCtx, cancel := context.WithTimeout(ctx, s.Config.Checkout.BalanceFetchTimeout)
		defer cancel()

		b, err := s.LoyaltyRepo.GetBalance(fetchCtx, accountID)
		if err != nil {
			s.Logger.Warnw("loyalty balance fetch failed",
				"account_id", accountID,
				"attempt", attempt,
				"error", err,
			)
			return nil, err
		}
		return b, nil
	}, policy)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Не удалось загрузить бонусные баллы").
			WithReportableDetails(map[string]any{
				"attempts": attempt,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	return balance.AvailablePoints, nil
}

func (s *loyaltyService) SpendForOrder(ctx context.Context, accountID, orderID string, points int64) error {
	if points <= 0 {
		return nil
	}
	tx, err := s.LoyaltyRepo.Debit(ctx, &loyalty.Operation{
		AccountID:   accountID,
		Type:        types.LoyaltyTransactionSpent,
		Points:      points,
		OrderID:     &orderID,
		Description: "Оплата заказа баллами",
	})
	if err != nil {
		return err
	}

	s.Logger.Infow("loyalty points spent",
		"account_id", accountID,
		"order_id", orderID,
		"points", points,
		"transaction_id", tx.ID,
	)
	return nil
}

func (s *loyaltyService) EarnForOrder(ctx context.Context, accountID, orderID string, total decimal.Decimal) (int64, error) {
	points := loyalty.EarnedPoints(total, decimal.NewFromFloat(s.Config.Loyalty.EarnRate))
	if points <= 0 {
		return 0, nil
	}

	tx, err := s.LoyaltyRepo.Credit(ctx, &loyalty.Operation{
		AccountID:   accountID,
		Type:        types.LoyaltyTransactionEarned,
		Points:      points,
		OrderID:     &orderID,
		Description: "Начисление за заказ",
	})
	if err != nil {
		return 0, err
	}

	s.Logger.Infow("loyalty points earned",
		"account_id", accountID,
		"order_id", orderID,
		"points", points,
		"transaction_id", tx.ID,
	)
	return points, nil
}

func (s *loyaltyService) CreditReferralBonus(ctx context.Context, accountID string, points int64) error {
	if points <= 0 {
		return nil
	}
	_, err := s.LoyaltyRepo.Credit(ctx, &loyalty.Operation{
		AccountID:   accountID,
		Type:        types.LoyaltyTransactionReferral,
		Points:      points,
		Description: "Бонус за приглашённого друга",
	})
	return err
}

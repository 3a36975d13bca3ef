package service

import (
	"context"
	"time"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/catalog"
	"github.com/bestsenki/storefront/internal/domain/checkout"
	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/domain/pricing"
	"github.com/bestsenki/storefront/internal/domain/product"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc"
	"golang.org/x/time/rate"
)

type CheckoutService interface {
	StartSession(ctx context.Context, req *dto.StartCheckoutRequest) (*dto.CheckoutSessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error)
	UpdateLines(ctx context.Context, id string, req *dto.UpdateCheckoutLinesRequest) (*dto.CheckoutSessionResponse, error)
	ApplyPromo(ctx context.Context, id string, req *dto.ApplyPromoRequest) (*dto.ApplyPromoResponse, error)
	RemovePromo(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error)
	ApplyLoyalty(ctx context.Context, id string, req *dto.ApplyLoyaltyRequest) (*dto.CheckoutSessionResponse, error)
	UseAllLoyalty(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error)
	RemoveLoyalty(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error)
	// Submit finalizes pricing, stores the order and runs post-order side effects
	Submit(ctx context.Context, id string, req *dto.SubmitCheckoutRequest) (*dto.SubmitCheckoutResponse, error)
}

type checkoutService struct {
	ServiceParams
	loyalty LoyaltyService
}

func NewCheckoutService(params ServiceParams, loyaltyService LoyaltyService) CheckoutService {
	return &checkoutService{
		ServiceParams: params,
		loyalty:       loyaltyService,
	}
}

func (s *checkoutService) StartSession(ctx context.Context, req *dto.StartCheckoutRequest) (*dto.CheckoutSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lines, err := s.priceLines(ctx, req.ToLines())
	if err != nil {
		return nil, err
	}

	resolver, err := pricing.NewResolver(lines)
	if err != nil {
		return nil, err
	}

	promoLimit := rate.Every(time.Minute / time.Duration(s.Config.Checkout.PromoAttemptsPerMinute))
	sess := checkout.NewSession(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CHECKOUT_SESSION),
		types.GetUserID(ctx),
		resolver,
		promoLimit,
		s.Config.Checkout.PromoAttemptBurst,
	)

	sess.Lock()
	defer sess.Unlock()

	s.loadBalance(ctx, sess)
	s.SessionStore.Save(ctx, sess)

	s.Logger.Infow("checkout session started",
		"session_id", sess.ID,
		"account_id", sess.AccountID,
		"lines", len(lines),
		"subtotal", resolver.Subtotal().String(),
	)

	return &dto.CheckoutSessionResponse{View: sess.View()}, nil
}

func (s *checkoutService) GetSession(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error) {
	return withSession(ctx, s, id, func(sess *checkout.Session) (*dto.CheckoutSessionResponse, error) {
		return &dto.CheckoutSessionResponse{View: sess.View()}, nil
	})
}

func (s *checkoutService) UpdateLines(ctx context.Context, id string, req *dto.UpdateCheckoutLinesRequest) (*dto.CheckoutSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lines, err := s.priceLines(ctx, req.ToLines())
	if err != nil {
		return nil, err
	}

	return withSession(ctx, s, id, func(sess *checkout.Session) (*dto.CheckoutSessionResponse, error) {
		adj, err := sess.Resolver.SetLines(lines)
		if err != nil {
			return nil, err
		}

		resp := &dto.CheckoutSessionResponse{View: sess.View()}
		if adj.PromoRemoved || adj.LoyaltyReset {
			resp.Adjustment = &adj
		}
		return resp, nil
	})
}

func (s *checkoutService) ApplyPromo(ctx context.Context, id string, req *dto.ApplyPromoRequest) (*dto.ApplyPromoResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return withSession(ctx, s, id, func(sess *checkout.Session) (*dto.ApplyPromoResponse, error) {
		if !sess.AllowPromoAttempt() {
			return nil, ierr.NewError("too many promo code attempts").
				WithHint("Слишком много попыток. Попробуйте позже").
				WithReportableDetails(map[string]any{
					"session_id": sess.ID,
				}).
				Mark(ierr.ErrTooManyRequests)
		}

		res, err := sess.Resolver.ApplyPromo(req.Code)
		if err != nil {
			s.Logger.Debugw("promo code rejected",
				"session_id", sess.ID,
				"code", res.Code,
				"reason", res.Reason,
			)
			return nil, err
		}

		return &dto.ApplyPromoResponse{
			CheckoutSessionResponse: dto.CheckoutSessionResponse{View: sess.View()},
			Promo:                   res,
		}, nil
	})
}

func (s *checkoutService) RemovePromo(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error) {
	return withSession(ctx, s, id, func(sess *checkout.Session) (*dto.CheckoutSessionResponse, error) {
		adj := sess.Resolver.RemovePromo()
		resp := &dto.CheckoutSessionResponse{View: sess.View()}
		if adj.LoyaltyReset {
			resp.Adjustment = &adj
		}
		return resp, nil
	})
}

func (s *checkoutService) ApplyLoyalty(ctx context.Context, id string, req *dto.ApplyLoyaltyRequest) (*dto.CheckoutSessionResponse, error) {
	return withSession(ctx, s, id, func(sess *checkout.Session) (*dto.CheckoutSessionResponse, error) {
		available, err := s.usableBalance(ctx, sess)
		if err != nil {
			return nil, err
		}
		sess.Resolver.ApplyLoyalty(req.Points, available)
		return &dto.CheckoutSessionResponse{View: sess.View()}, nil
	})
}

func (s *checkoutService) UseAllLoyalty(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error) {
	return withSession(ctx, s, id, func(sess *checkout.Session) (*dto.CheckoutSessionResponse, error) {
		available, err := s.usableBalance(ctx, sess)
		if err != nil {
			return nil, err
		}
		sess.Resolver.UseAllLoyalty(available)
		return &dto.CheckoutSessionResponse{View: sess.View()}, nil
	})
}

func (s *checkoutService) RemoveLoyalty(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error) {
	return withSession(ctx, s, id, func(sess *checkout.Session) (*dto.CheckoutSessionResponse, error) {
		sess.Resolver.RemoveLoyalty()
		return &dto.CheckoutSessionResponse{View: sess.View()}, nil
	})
}

func (s *checkoutService) Submit(ctx context.Context, id string, req *dto.SubmitCheckoutRequest) (*dto.SubmitCheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return withSession(ctx, s, id, func(sess *checkout.Session) (*dto.SubmitCheckoutResponse, error) {
		result := sess.Resolver.Finalize()
		o := buildOrder(ctx, sess, result, req)
		if err := o.Validate(); err != nil {
			return nil, err
		}

		if o.PaymentMethod == types.PaymentMethodOnline && s.Config.Catalog.Enabled {
			o.CheckoutURL = s.openHostedCheckout(ctx, o)
		}

		if err := s.OrderRepo.Create(ctx, o); err != nil {
			s.Logger.Errorw("failed to create order",
				"session_id", sess.ID,
				"error", err,
			)
			return nil, err
		}

		sess.Close()
		s.SessionStore.Delete(ctx, sess.ID)

		s.Logger.Infow("order created",
			"order_id", o.ID,
			"number", o.Number,
			"account_id", sess.AccountID,
			"total", o.Total.String(),
			"state", result.State,
		)

		// the order is stored; nothing below may fail the request
		sideCtx := context.WithoutCancel(ctx)
		var wg conc.WaitGroup
		if o.AccountID != nil {
			wg.Go(func() { s.settleLoyalty(sideCtx, o) })
		}
		wg.Go(func() { s.publishOrderEvent(sideCtx, types.TopicOrderCreated, order.NewEvent(o)) })
		wg.Wait()

		return &dto.SubmitCheckoutResponse{
			Order:       dto.NewOrderResponse(o),
			CheckoutURL: o.CheckoutURL,
		}, nil
	})
}

// settleLoyalty spends redeemed points, then credits earned points
func (s *checkoutService) settleLoyalty(ctx context.Context, o *order.Order) {
	accountID := lo.FromPtr(o.AccountID)

	if err := s.loyalty.SpendForOrder(ctx, accountID, o.ID, o.LoyaltyPointsUsed); err != nil {
		s.Logger.Errorw("failed to spend loyalty points for order",
			"order_id", o.ID,
			"account_id", accountID,
			"points", o.LoyaltyPointsUsed,
			"error", err,
		)
		s.Sentry.CaptureException(ctx, err)
	}

	if _, err := s.loyalty.EarnForOrder(ctx, accountID, o.ID, o.Total); err != nil {
		s.Logger.Errorw("failed to credit loyalty points for order",
			"order_id", o.ID,
			"account_id", accountID,
			"error", err,
		)
		s.Sentry.CaptureException(ctx, err)
	}
}

func (s *checkoutService) openHostedCheckout(ctx context.Context, o *order.Order) string {
	lines := lo.Map(o.Items, func(i order.Item, _ int) catalog.CartLine {
		return catalog.CartLine{VariantID: i.VariantID, Quantity: i.Quantity}
	})

	url, err := s.Catalog.CreateCheckout(ctx, lines, o.Email)
	if err != nil {
		s.Logger.Warnw("failed to create hosted checkout, order stays pending without payment link",
			"order_id", o.ID,
			"error", err,
		)
		s.Sentry.CaptureException(ctx, err)
		return ""
	}
	return url
}

// loadBalance fetches the balance once per session. Failure disables points
// for the session instead of failing checkout.
func (s *checkoutService) loadBalance(ctx context.Context, sess *checkout.Session) {
	if sess.IsGuest() {
		return
	}

	points, err := s.loyalty.FetchBalance(ctx, sess.AccountID)
	if err != nil {
		s.Logger.Warnw("loyalty balance unavailable, points disabled for session",
			"session_id", sess.ID,
			"account_id", sess.AccountID,
			"error", err,
		)
		sess.DisablePoints()
		return
	}
	sess.SetBalance(points)
}

func (s *checkoutService) usableBalance(ctx context.Context, sess *checkout.Session) (int64, error) {
	if sess.IsGuest() {
		return 0, ierr.NewError("loyalty points require login").
			WithHint("Войдите, чтобы использовать бонусные баллы").
			Mark(ierr.ErrUnauthenticated)
	}

	points, state := sess.Balance()
	if state == checkout.BalanceStateUnknown {
		s.loadBalance(ctx, sess)
		points, state = sess.Balance()
	}
	if state != checkout.BalanceStateAvailable {
		return 0, ierr.NewError("loyalty balance unavailable").
			WithHint("Бонусные баллы временно недоступны").
			WithReportableDetails(map[string]any{
				"session_id": sess.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return points, nil
}

// priceLines replaces client prices with catalog prices when the catalog is
// enabled. Without a catalog the client price is kept but must be positive.
func (s *checkoutService) priceLines(ctx context.Context, lines []pricing.Line) ([]pricing.Line, error) {
	if !s.Config.Catalog.Enabled {
		if l, found := lo.Find(lines, func(l pricing.Line) bool { return !l.UnitPrice.IsPositive() }); found {
			return nil, ierr.NewError("line unit price must be positive").
				WithHint("Некорректная цена товара").
				WithReportableDetails(map[string]any{
					"variant_id": l.VariantID,
					"unit_price": l.UnitPrice.String(),
				}).
				Mark(ierr.ErrValidation)
		}
		return lines, nil
	}

	ids := lo.Uniq(lo.Map(lines, func(l pricing.Line, _ int) string { return l.VariantID }))
	variants, err := s.Catalog.GetVariants(ctx, ids)
	if err != nil {
		return nil, err
	}

	priced := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		v, ok := variants[l.VariantID]
		if !ok {
			return nil, ierr.NewError("variant not found in catalog").
				WithHint("Товар больше не доступен").
				WithReportableDetails(map[string]any{
					"variant_id": l.VariantID,
				}).
				Mark(ierr.ErrValidation)
		}
		if !v.AvailableForSale {
			return nil, ierr.NewError("variant is not available for sale").
				WithHint("Товар закончился").
				WithReportableDetails(map[string]any{
					"variant_id": l.VariantID,
					"title":      v.ProductTitle,
				}).
				Mark(ierr.ErrValidation)
		}

		l.UnitPrice = v.Price
		l.ProductID = lo.CoalesceOrEmpty(l.ProductID, v.ProductID)
		l.Title = lo.CoalesceOrEmpty(l.Title, v.ProductTitle)
		l.ImageURL = lo.CoalesceOrEmpty(l.ImageURL, v.ImageURL)
		if l.VariantTitle == "" && v.Title != product.DefaultVariantTitle {
			l.VariantTitle = v.Title
		}
		priced = append(priced, l)
	}
	return priced, nil
}

// withSession runs fn under the session lock after checking ownership, then
// saves the session to refresh its TTL
func withSession[T any](ctx context.Context, s *checkoutService, id string, fn func(*checkout.Session) (T, error)) (T, error) {
	var zero T

	sess, ok := s.SessionStore.Get(ctx, id)
	if !ok {
		return zero, ierr.NewError("checkout session not found").
			WithHint("Сессия оформления заказа истекла. Начните заново").
			WithReportableDetails(map[string]any{
				"session_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	if sess.AccountID != types.GetUserID(ctx) {
		return zero, ierr.NewError("checkout session belongs to another account").
			WithHint("Нет доступа к этой сессии").
			Mark(ierr.ErrPermissionDenied)
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.IsClosed() {
		return zero, ierr.NewError("checkout session is already submitted").
			WithHint("Заказ уже оформлен").
			Mark(ierr.ErrInvalidOperation)
	}

	out, err := fn(sess)
	if err != nil {
		return zero, err
	}
	if !sess.IsClosed() {
		s.SessionStore.Save(ctx, sess)
	}
	return out, nil
}

func buildOrder(ctx context.Context, sess *checkout.Session, result pricing.Result, req *dto.SubmitCheckoutRequest) *order.Order {
	items := lo.Map(sess.Resolver.Lines(), func(l pricing.Line, _ int) order.Item {
		return order.Item{
			ProductID:    l.ProductID,
			VariantID:    l.VariantID,
			Title:        l.Title,
			VariantTitle: l.VariantTitle,
			UnitPrice:    l.UnitPrice,
			Quantity:     l.Quantity,
			Options:      l.Options,
			ImageURL:     l.ImageURL,
		}
	})

	return &order.Order{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		Number:            types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_ORDER),
		AccountID:         lo.EmptyableToPtr(sess.AccountID),
		CustomerName:      req.CustomerName,
		Email:             req.Email,
		Phone:             req.Phone,
		Items:             items,
		Currency:          types.CurrencyKGS,
		Subtotal:          result.Subtotal,
		PromoCode:         result.PromoCode,
		PromoDiscount:     result.PromoDiscount,
		LoyaltyPointsUsed: result.LoyaltyPointsUsed,
		LoyaltyDiscount:   result.LoyaltyDiscount,
		Total:             result.Total,
		ShippingAddress:   req.ShippingAddress,
		Notes:             req.Notes,
		PaymentMethod:     req.PaymentMethod,
		OrderStatus:       types.OrderStatusPending,
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}
}

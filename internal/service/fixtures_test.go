package service

import (
	"context"
	"time"

	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type orderFixture struct {
	accountID string
	status    types.OrderStatus
	method    types.PaymentMethod
	title     string
	price     int64
	quantity  int
	createdAt time.Time
}

func (f orderFixture) build(ctx context.Context) *order.Order {
	item := order.Item{
		ProductID: "prod_1",
		VariantID: "var_1",
		Title:     lo.CoalesceOrEmpty(f.title, "Розы"),
		UnitPrice: decimal.NewFromInt(f.price),
		Quantity:  max(f.quantity, 1),
	}
	items := order.Items{item}
	o := &order.Order{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		Number:          types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_ORDER),
		AccountID:       lo.EmptyableToPtr(f.accountID),
		CustomerName:    "Анна",
		Email:           "anna@example.kg",
		Phone:           "+996555123456",
		Items:           items,
		Currency:        types.CurrencyKGS,
		Subtotal:        items.Subtotal(),
		PromoDiscount:   decimal.Zero,
		LoyaltyDiscount: decimal.Zero,
		Total:           items.Subtotal(),
		ShippingAddress: "Бишкек, ул. Киевская 1",
		PaymentMethod:   lo.CoalesceOrEmpty(f.method, types.PaymentMethodCash),
		OrderStatus:     lo.CoalesceOrEmpty(f.status, types.OrderStatusPending),
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	if !f.createdAt.IsZero() {
		o.CreatedAt = f.createdAt
		o.UpdatedAt = f.createdAt
	}
	return o
}

func createOrder(ctx context.Context, repo order.Repository, f orderFixture) *order.Order {
	o := f.build(ctx)
	if err := repo.Create(ctx, o); err != nil {
		panic(err)
	}
	return o
}

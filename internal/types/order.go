package types

import (
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/samber/lo"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Validate() error {
	if !lo.Contains(OrderStatuses, s) {
		return ierr.NewError("invalid order status").
			WithHint("Order status must be one of pending, processing, completed or cancelled").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_values": OrderStatuses,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Label is the customer-facing name used in emails and exports
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "В ожидании"
	case OrderStatusProcessing:
		return "В обработке"
	case OrderStatusCompleted:
		return "Завершён"
	case OrderStatusCancelled:
		return "Отменён"
	default:
		return string(s)
	}
}

type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCash   PaymentMethod = "cash"
)

func (p PaymentMethod) Validate() error {
	allowed := []PaymentMethod{PaymentMethodOnline, PaymentMethodCash}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid payment method").
			WithHint("Payment method must be online or cash").
			WithReportableDetails(map[string]any{
				"payment_method": p,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (p PaymentMethod) Label() string {
	switch p {
	case PaymentMethodOnline:
		return "Онлайн"
	case PaymentMethodCash:
		return "При получении"
	default:
		return string(p)
	}
}

// OrderFilter narrows admin and account order listings
type OrderFilter struct {
	*QueryFilter
	AccountID string        `json:"account_id,omitempty" form:"account_id"`
	Status    []OrderStatus `json:"status,omitempty" form:"status"`
}

func NewOrderFilter() *OrderFilter {
	return &OrderFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *OrderFilter) Validate() error {
	if f == nil {
		return nil
	}
	for _, s := range f.Status {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

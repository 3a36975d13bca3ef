package dto

import (
	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/bestsenki/storefront/internal/validator"
)

type OrderResponse struct {
	*order.Order
	StatusLabel        string `json:"status_label"`
	PaymentMethodLabel string `json:"payment_method_label"`
}

func NewOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		Order:              o,
		StatusLabel:        o.OrderStatus.Label(),
		PaymentMethodLabel: o.PaymentMethod.Label(),
	}
}

type ListOrdersResponse = types.ListResponse[*OrderResponse]

type UpdateOrderStatusRequest struct {
	Status types.OrderStatus `json:"status" validate:"required"`
}

func (r *UpdateOrderStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Status.Validate()
}

package order

import (
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
)

// Event is the payload published on order topics
type Event struct {
	OrderID        string            `json:"order_id"`
	Number         string            `json:"number"`
	Email          string            `json:"email"`
	Total          decimal.Decimal   `json:"total"`
	Status         types.OrderStatus `json:"status"`
	PreviousStatus types.OrderStatus `json:"previous_status,omitempty"`
}

func NewEvent(o *Order) *Event {
	return &Event{
		OrderID: o.ID,
		Number:  o.Number,
		Email:   o.Email,
		Total:   o.Total,
		Status:  o.OrderStatus,
	}
}

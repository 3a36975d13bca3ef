package order

import (
	"context"

	"github.com/bestsenki/storefront/internal/types"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, filter *types.OrderFilter) ([]*Order, error)
	Count(ctx context.Context, filter *types.OrderFilter) (int, error)
	UpdateStatus(ctx context.Context, id string, status types.OrderStatus) error
}

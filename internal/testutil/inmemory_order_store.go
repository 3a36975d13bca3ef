package testutil

import (
	"context"

	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
)

// InMemoryOrderStore implements order.Repository
type InMemoryOrderStore struct {
	*InMemoryStore[*order.Order]

	// CreateErr, when set, fails every Create
	CreateErr error
}

func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		InMemoryStore: NewInMemoryStore[*order.Order](),
	}
}

func copyOrder(o *order.Order) *order.Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append(order.Items(nil), o.Items...)
	if o.PromoCode != nil {
		c.PromoCode = lo.ToPtr(*o.PromoCode)
	}
	if o.AccountID != nil {
		c.AccountID = lo.ToPtr(*o.AccountID)
	}
	return &c
}

func orderFilterFn(ctx context.Context, o *order.Order, filter interface{}) bool {
	if o.Status != types.StatusPublished {
		return false
	}
	f, ok := filter.(*types.OrderFilter)
	if !ok || f == nil {
		return true
	}
	if f.AccountID != "" && lo.FromPtr(o.AccountID) != f.AccountID {
		return false
	}
	if len(f.Status) > 0 && !lo.Contains(f.Status, o.OrderStatus) {
		return false
	}
	return true
}

func orderSortFn(i, j *order.Order) bool {
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryOrderStore) Create(ctx context.Context, o *order.Order) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	return s.InMemoryStore.Create(ctx, o.ID, copyOrder(o))
}

func (s *InMemoryOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyOrder(o), nil
}

func (s *InMemoryOrderStore) List(ctx context.Context, filter *types.OrderFilter) ([]*order.Order, error) {
	if filter == nil {
		filter = types.NewOrderFilter()
	}
	orders, err := s.InMemoryStore.List(ctx, filter, orderFilterFn, orderSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(orders, func(o *order.Order, _ int) *order.Order { return copyOrder(o) }), nil
}

func (s *InMemoryOrderStore) Count(ctx context.Context, filter *types.OrderFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, orderFilterFn)
}

func (s *InMemoryOrderStore) UpdateStatus(ctx context.Context, id string, status types.OrderStatus) error {
	return s.InMemoryStore.Mutate(ctx, id, func(o *order.Order) (*order.Order, error) {
		c := copyOrder(o)
		c.OrderStatus = status
		return c, nil
	})
}

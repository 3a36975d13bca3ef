package service

import (
	"context"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/domain/order"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
)

type OrderService interface {
	// GetOrder returns an order owned by the caller
	GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error)
	// ListMyOrders lists the caller's orders, newest first
	ListMyOrders(ctx context.Context, filter *types.OrderFilter) (*dto.ListOrdersResponse, error)

	// admin
	GetOrderByID(ctx context.Context, id string) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, filter *types.OrderFilter) (*dto.ListOrdersResponse, error)
	UpdateOrderStatus(ctx context.Context, id string, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
}

type orderService struct {
	ServiceParams
}

func NewOrderService(params ServiceParams) OrderService {
	return &orderService{
		ServiceParams: params,
	}
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return nil, errLoginRequired("Войдите, чтобы увидеть заказ")
	}

	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// another account's order is reported as missing
	if lo.FromPtr(o.AccountID) != accountID {
		return nil, ierr.NewError("order not found").
			WithHint("Заказ не найден").
			WithReportableDetails(map[string]any{
				"order_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return dto.NewOrderResponse(o), nil
}

func (s *orderService) ListMyOrders(ctx context.Context, filter *types.OrderFilter) (*dto.ListOrdersResponse, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return nil, errLoginRequired("Войдите, чтобы увидеть заказы")
	}

	if filter == nil {
		filter = types.NewOrderFilter()
	}
	filter.AccountID = accountID
	return s.list(ctx, filter)
}

func (s *orderService) GetOrderByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(o), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter *types.OrderFilter) (*dto.ListOrdersResponse, error) {
	if filter == nil {
		filter = types.NewOrderFilter()
	}
	return s.list(ctx, filter)
}

func (s *orderService) list(ctx context.Context, filter *types.OrderFilter) (*dto.ListOrdersResponse, error) {
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	orders, err := s.OrderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.OrderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(orders, func(o *order.Order, _ int) *dto.OrderResponse {
		return dto.NewOrderResponse(o)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.OrderStatus == req.Status {
		return dto.NewOrderResponse(o), nil
	}

	if err := s.OrderRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}

	previous := o.OrderStatus
	o.OrderStatus = req.Status

	s.Logger.Infow("order status updated",
		"order_id", id,
		"from", previous,
		"to", req.Status,
	)

	evt := order.NewEvent(o)
	evt.PreviousStatus = previous
	s.publishOrderEvent(context.WithoutCancel(ctx), types.TopicOrderStatusUpdated, evt)

	return dto.NewOrderResponse(o), nil
}

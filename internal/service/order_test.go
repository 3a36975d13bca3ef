package service

import (
	"encoding/json"
	"testing"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/domain/order"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/testutil"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/stretchr/testify/suite"
)

type OrderServiceSuite struct {
	testutil.BaseServiceTestSuite
	service OrderService
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewOrderService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *OrderServiceSuite) TestGetOrderChecksOwnership() {
	repo := s.GetStores().OrderRepo
	mine := createOrder(s.GetContext(), repo, orderFixture{accountID: testutil.DefaultAccountID, price: 1200})
	theirs := createOrder(s.GetContext(), repo, orderFixture{accountID: "other", price: 800})

	resp, err := s.service.GetOrder(s.GetContext(), mine.ID)
	s.Require().NoError(err)
	s.Equal(mine.ID, resp.ID)
	s.Equal("В ожидании", resp.StatusLabel)
	s.Equal("При получении", resp.PaymentMethodLabel)

	_, err = s.service.GetOrder(s.GetContext(), theirs.ID)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.GetOrder(testutil.SetupGuestContext(), mine.ID)
	s.True(ierr.IsUnauthenticated(err))
}

func (s *OrderServiceSuite) TestListMyOrdersScopesToCaller() {
	repo := s.GetStores().OrderRepo
	createOrder(s.GetContext(), repo, orderFixture{accountID: testutil.DefaultAccountID, price: 100})
	createOrder(s.GetContext(), repo, orderFixture{accountID: testutil.DefaultAccountID, price: 200})
	createOrder(s.GetContext(), repo, orderFixture{accountID: "other", price: 300})
	createOrder(s.GetContext(), repo, orderFixture{price: 400})

	// a caller-supplied account id is ignored
	filter := types.NewOrderFilter()
	filter.AccountID = "other"
	resp, err := s.service.ListMyOrders(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
	for _, o := range resp.Items {
		s.Equal(testutil.DefaultAccountID, *o.AccountID)
	}
}

func (s *OrderServiceSuite) TestListOrdersFiltersByStatus() {
	repo := s.GetStores().OrderRepo
	createOrder(s.GetContext(), repo, orderFixture{price: 100})
	createOrder(s.GetContext(), repo, orderFixture{price: 200, status: types.OrderStatusCompleted})
	createOrder(s.GetContext(), repo, orderFixture{price: 300, status: types.OrderStatusCancelled})

	filter := types.NewOrderFilter()
	filter.Status = []types.OrderStatus{types.OrderStatusCompleted, types.OrderStatusCancelled}
	resp, err := s.service.ListOrders(testutil.SetupAdminContext(), filter)
	s.Require().NoError(err)
	s.Len(resp.Items, 2)

	filter.Status = []types.OrderStatus{"shipped"}
	_, err = s.service.ListOrders(testutil.SetupAdminContext(), filter)
	s.True(ierr.IsValidation(err))
}

func (s *OrderServiceSuite) TestUpdateOrderStatusPublishesEvent() {
	o := createOrder(s.GetContext(), s.GetStores().OrderRepo, orderFixture{accountID: testutil.DefaultAccountID, price: 1500})
	ctx := testutil.SetupAdminContext()

	resp, err := s.service.UpdateOrderStatus(ctx, o.ID, &dto.UpdateOrderStatusRequest{Status: types.OrderStatusProcessing})
	s.Require().NoError(err)
	s.Equal(types.OrderStatusProcessing, resp.OrderStatus)
	s.Equal("В обработке", resp.StatusLabel)

	stored, err := s.GetStores().OrderRepo.Get(ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(types.OrderStatusProcessing, stored.OrderStatus)

	msgs := s.GetPubSub().Messages(types.TopicOrderStatusUpdated)
	s.Require().Len(msgs, 1)
	var evt order.Event
	s.Require().NoError(json.Unmarshal(msgs[0].Payload, &evt))
	s.Equal(o.ID, evt.OrderID)
	s.Equal(types.OrderStatusProcessing, evt.Status)
	s.Equal(types.OrderStatusPending, evt.PreviousStatus)
	s.Equal(o.ID, msgs[0].Metadata.Get("order_id"))
}

func (s *OrderServiceSuite) TestUpdateOrderStatusToSameStatusIsNoop() {
	o := createOrder(s.GetContext(), s.GetStores().OrderRepo, orderFixture{price: 1500})

	_, err := s.service.UpdateOrderStatus(testutil.SetupAdminContext(), o.ID, &dto.UpdateOrderStatusRequest{Status: types.OrderStatusPending})
	s.Require().NoError(err)
	s.Empty(s.GetPubSub().Messages(types.TopicOrderStatusUpdated))
}

func (s *OrderServiceSuite) TestUpdateOrderStatusRejectsUnknownStatus() {
	o := createOrder(s.GetContext(), s.GetStores().OrderRepo, orderFixture{price: 1500})

	_, err := s.service.UpdateOrderStatus(testutil.SetupAdminContext(), o.ID, &dto.UpdateOrderStatusRequest{Status: "lost"})
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateOrderStatus(testutil.SetupAdminContext(), "ord_missing", &dto.UpdateOrderStatusRequest{Status: types.OrderStatusCompleted})
	s.True(ierr.IsNotFound(err))
}

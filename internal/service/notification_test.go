package service

import (
	"encoding/json"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/email"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/testutil"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type NotificationServiceSuite struct {
	testutil.BaseServiceTestSuite
	service NotificationService
}

func TestNotificationService(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func (s *NotificationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewNotificationService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *NotificationServiceSuite) message(evt order.Event) *message.Message {
	payload, err := json.Marshal(evt)
	s.Require().NoError(err)
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(s.GetContext())
	return msg
}

func (s *NotificationServiceSuite) TestOrderCreatedSendsEmail() {
	err := s.service.HandleOrderCreated(s.message(order.Event{
		OrderID: "ord_0123456789abcdef",
		Email:   "anna@example.kg",
		Total:   decimal.NewFromInt(12500),
		Status:  types.OrderStatusPending,
	}))
	s.Require().NoError(err)

	sent := s.GetEmailSender().Messages()
	s.Require().Len(sent, 1)
	s.Equal("anna@example.kg", sent[0].To)
	s.Equal("Бесценки: Ваш заказ принят! 💝", sent[0].Subject)
	s.Contains(sent[0].HTML, email.FormatSom(decimal.NewFromInt(12500)))
}

func (s *NotificationServiceSuite) TestStatusUpdatedSendsEmail() {
	err := s.service.HandleOrderStatusUpdated(s.message(order.Event{
		OrderID:        "ord_0123456789abcdef",
		Email:          "anna@example.kg",
		Status:         types.OrderStatusCompleted,
		PreviousStatus: types.OrderStatusProcessing,
	}))
	s.Require().NoError(err)

	sent := s.GetEmailSender().Messages()
	s.Require().Len(sent, 1)
	s.Equal(`Бесценки: Статус заказа изменён на "Завершён"`, sent[0].Subject)
}

func (s *NotificationServiceSuite) TestSkipsWithoutRecipient() {
	err := s.service.HandleOrderCreated(s.message(order.Event{OrderID: "ord_1"}))
	s.NoError(err)
	s.Empty(s.GetEmailSender().Messages())
}

func (s *NotificationServiceSuite) TestMalformedPayloadIsNotRetried() {
	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	err := s.service.HandleOrderCreated(msg)
	s.True(ierr.IsValidation(err))
}

func (s *NotificationServiceSuite) TestSendFailureIsReturned() {
	s.GetEmailSender().Err = ierr.NewError("resend unavailable").Mark(ierr.ErrHTTPClient)

	err := s.service.HandleOrderCreated(s.message(order.Event{OrderID: "ord_1", Email: "anna@example.kg"}))
	s.True(ierr.IsHTTPClient(err))
}

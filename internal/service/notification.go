package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/email"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/pubsub/router"
	"github.com/bestsenki/storefront/internal/types"
)

// NotificationService turns order events into customer emails
type NotificationService interface {
	RegisterHandlers(r *router.Router)
	HandleOrderCreated(msg *message.Message) error
	HandleOrderStatusUpdated(msg *message.Message) error
}

type notificationService struct {
	ServiceParams
}

func NewNotificationService(params ServiceParams) NotificationService {
	return &notificationService{
		ServiceParams: params,
	}
}

func (s *notificationService) RegisterHandlers(r *router.Router) {
	sub := router.AsSubscriber(s.PubSub)
	r.AddNoPublishHandler("order_created_email", types.TopicOrderCreated, sub, s.HandleOrderCreated)
	r.AddNoPublishHandler("order_status_updated_email", types.TopicOrderStatusUpdated, sub, s.HandleOrderStatusUpdated)
}

func (s *notificationService) HandleOrderCreated(msg *message.Message) error {
	evt, err := decodeOrderEvent(msg)
	if err != nil {
		return err
	}

	_, err = s.Email.SendOrderCreated(msg.Context(), evt.Email, email.OrderCreated{
		OrderID: evt.OrderID,
		Total:   evt.Total,
	})
	return err
}

func (s *notificationService) HandleOrderStatusUpdated(msg *message.Message) error {
	evt, err := decodeOrderEvent(msg)
	if err != nil {
		return err
	}

	_, err = s.Email.SendOrderStatusUpdated(msg.Context(), evt.Email, email.OrderStatusUpdated{
		OrderID: evt.OrderID,
		Status:  evt.Status,
	})
	return err
}

func decodeOrderEvent(msg *message.Message) (*order.Event, error) {
	var evt order.Event
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Malformed order event payload").
			WithReportableDetails(map[string]any{
				"message_uuid": msg.UUID,
			}).
			Mark(ierr.ErrValidation)
	}
	return &evt, nil
}

package email

import (
	"context"
	"strings"

	"github.com/bestsenki/storefront/internal/logger"
)

// Email renders order notifications and hands them to the Sender
type Email struct {
	client Sender
	logger *logger.Logger
}

func NewEmail(client Sender, logger *logger.Logger) *Email {
	return &Email{
		client: client,
		logger: logger,
	}
}

// SendOrderCreated returns "" without error when the email is skipped
func (s *Email) SendOrderCreated(ctx context.Context, to string, d OrderCreated) (string, error) {
	msg, err := RenderOrderCreated(d)
	if err != nil {
		return "", err
	}
	return s.send(ctx, to, msg, "order_created", d.OrderID)
}

func (s *Email) SendOrderStatusUpdated(ctx context.Context, to string, d OrderStatusUpdated) (string, error) {
	msg, err := RenderOrderStatusUpdated(d)
	if err != nil {
		return "", err
	}
	return s.send(ctx, to, msg, "order_status_updated", d.OrderID)
}

func (s *Email) send(ctx context.Context, to string, msg Message, kind, orderID string) (string, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		s.logger.Debugw("no email address, skipping", "kind", kind, "order_id", orderID)
		return "", nil
	}
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping email send",
			"kind", kind,
			"order_id", orderID,
		)
		return "", nil
	}

	msg.To = to
	messageID, err := s.client.Send(ctx, msg)
	if err != nil {
		s.logger.Errorw("failed to send email",
			"error", err,
			"kind", kind,
			"order_id", orderID,
		)
		return "", err
	}

	s.logger.Infow("email sent",
		"message_id", messageID,
		"kind", kind,
		"order_id", orderID,
	)
	return messageID, nil
}

package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/types"
)

// publishOrderEvent is best effort: a failure is logged and reported, and
// never surfaces to the caller whose order has already been stored
func (p ServiceParams) publishOrderEvent(ctx context.Context, topic string, evt *order.Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		p.Logger.Errorw("failed to marshal order event", "topic", topic, "order_id", evt.OrderID, "error", err)
		return
	}

	msg := message.NewMessage(types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT), payload)
	msg.Metadata.Set("order_id", evt.OrderID)
	if requestID := types.GetRequestID(ctx); requestID != "" {
		middleware.SetCorrelationID(requestID, msg)
	}

	if err := p.PubSub.Publish(ctx, topic, msg); err != nil {
		p.Logger.Errorw("failed to publish order event",
			"topic", topic,
			"order_id", evt.OrderID,
			"error", err,
		)
		p.Sentry.CaptureException(ctx, err)
		return
	}

	p.Logger.Debugw("published order event",
		"topic", topic,
		"order_id", evt.OrderID,
		"message_id", msg.UUID,
	)
}

package memory

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/pubsub"
)

// PubSub is the in-process event bus backed by watermill's gochannel
type PubSub struct {
	pubsub *gochannel.GoChannel
	logger *logger.Logger
}

func NewPubSub(logger *logger.Logger) pubsub.PubSub {
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{
			// keep messages published before the router subscribes
			Persistent:                     true,
			BlockPublishUntilSubscriberAck: false,
			OutputChannelBuffer:            100,
		},
		pubsub.NewWatermillLogger(logger),
	)

	return &PubSub{
		pubsub: goChannel,
		logger: logger,
	}
}

// Publish hands msg to every subscriber of topic. The message keeps ctx so
// handlers see the request ID and Sentry hub of the request that caused it.
func (p *PubSub) Publish(ctx context.Context, topic string, msg *message.Message) error {
	msg.SetContext(ctx)
	if err := p.pubsub.Publish(topic, msg); err != nil {
		p.logger.Errorw("failed to publish event",
			"topic", topic,
			"message_id", msg.UUID,
			"error", err,
		)
		return err
	}
	p.logger.Debugw("event published",
		"topic", topic,
		"message_id", msg.UUID,
		"order_id", msg.Metadata.Get("order_id"),
	)
	return nil
}

func (p *PubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.pubsub.Subscribe(ctx, topic)
}

func (p *PubSub) Close() error {
	return p.pubsub.Close()
}

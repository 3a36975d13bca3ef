package router

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bestsenki/storefront/internal/config"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/pubsub"
	"github.com/bestsenki/storefront/internal/sentry"
)

const poisonTopic = "events_dlq"

// Router dispatches bus messages to registered handlers
type Router struct {
	router *message.Router
	logger *logger.Logger
	sentry *sentry.Service
	dlq    *gochannel.GoChannel
}

func NewRouter(cfg *config.Configuration, logger *logger.Logger, sentry *sentry.Service) (*Router, error) {
	wmLogger := pubsub.NewWatermillLogger(logger)

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, err
	}

	// exhausted messages land here and are dropped
	dlq := gochannel.NewGoChannel(gochannel.Config{Persistent: false}, wmLogger)
	poisonQueue, err := middleware.PoisonQueue(dlq, poisonTopic)
	if err != nil {
		return nil, err
	}

	retry := middleware.Retry{
		MaxRetries:          cfg.PubSub.MaxRetries,
		InitialInterval:     cfg.PubSub.InitialInterval,
		MaxInterval:         cfg.PubSub.MaxInterval,
		Multiplier:          cfg.PubSub.Multiplier,
		MaxElapsedTime:      cfg.PubSub.MaxElapsedTime,
		RandomizationFactor: 0.5,
		OnRetryHook: func(retryNum int, delay time.Duration) {
			logger.Infow("retrying message",
				"retry_number", retryNum,
				"max_retries", cfg.PubSub.MaxRetries,
				"delay", delay,
			)
		},
		Logger: wmLogger,
	}

	router.AddMiddleware(
		poisonQueue,
		middleware.Recoverer,
		middleware.CorrelationID,
		retry.Middleware,
	)

	return &Router{
		router: router,
		logger: logger,
		sentry: sentry,
		dlq:    dlq,
	}, nil
}

// AddNoPublishHandler registers a consumer that reports failures to Sentry.
// Failures that cannot succeed on a retry are acknowledged after reporting.
func (r *Router) AddNoPublishHandler(
	handlerName string,
	topicName string,
	subscriber message.Subscriber,
	handlerFunc func(msg *message.Message) error,
) {
	r.router.AddNoPublisherHandler(
		handlerName,
		topicName,
		subscriber,
		func(msg *message.Message) error {
			span, ctx := r.sentry.StartEventSpan(msg.Context(), topicName, msg.UUID)
			msg.SetContext(ctx)

			err := handlerFunc(msg)
			sentry.FinishSpan(span, err)
			if err != nil {
				r.sentry.CaptureException(ctx, err)
				r.logger.Errorw("handler failed",
					"handler", handlerName,
					"error", err,
					"correlation_id", middleware.MessageCorrelationID(msg),
					"message_uuid", msg.UUID,
				)
				if !shouldRetry(r.logger, err) {
					return nil
				}
			}
			return err
		},
	)
}

// Run blocks until ctx is cancelled or Close is called
func (r *Router) Run(ctx context.Context) error {
	r.logger.Info("starting message router")
	return r.router.Run(ctx)
}

// Running is closed once all handlers are subscribed
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

func (r *Router) Close() error {
	r.logger.Info("closing message router")
	if err := r.router.Close(); err != nil {
		return err
	}
	return r.dlq.Close()
}

// adapter so that handlers can subscribe through the bus interface
type subscriberAdapter struct {
	sub pubsub.Subscriber
}

func (a subscriberAdapter) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return a.sub.Subscribe(ctx, topic)
}

func (a subscriberAdapter) Close() error {
	return a.sub.Close()
}

// AsSubscriber exposes a bus subscriber as a watermill subscriber
func AsSubscriber(sub pubsub.Subscriber) message.Subscriber {
	return subscriberAdapter{sub: sub}
}

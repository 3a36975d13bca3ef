package cache

import (
	"context"

	sentryService "github.com/bestsenki/storefront/internal/sentry"
	"github.com/getsentry/sentry-go"
)

// startSpan opens a cache span only when the request already carries a Sentry hub
func startSpan(ctx context.Context, op, key string) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, op)
	span.Description = key
	span.SetData("cache.key", key)
	return span
}

func finishSpan(span *sentry.Span, hit bool) {
	if span != nil {
		span.SetData("cache.hit", hit)
	}
	sentryService.FinishSpan(span, nil)
}

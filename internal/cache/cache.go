package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is the read-through cache used for catalog lookups and live banners.
// Implementations may drop entries at any time; callers must tolerate misses.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	// Set stores value for expiration; zero keeps it until evicted
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
	Flush(ctx context.Context)
}

// Key prefixes carry a version so a shape change never reads stale entries
const (
	PrefixCheckoutSession = "checkout_session:v1:"
	PrefixCatalogVariant  = "catalog_variant:v1:"
	PrefixBanner          = "banner:v1:"
	PrefixReviews         = "reviews:v1:"
)

// GenerateKey appends params to prefix, colon separated
func GenerateKey(prefix string, params ...interface{}) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range params {
		b.WriteByte(':')
		fmt.Fprint(&b, p)
	}
	return b.String()
}

package cache

import (
	"context"

	"github.com/bestsenki/storefront/internal/config"
	"github.com/bestsenki/storefront/internal/domain/checkout"
)

// SessionStore keeps checkout sessions in the in-memory cache with a
// sliding TTL: every Save pushes expiry out by checkout.session_ttl.
type SessionStore struct {
	cache *InMemoryCache
	cfg   *config.Configuration
}

func NewSessionStore(c *InMemoryCache, cfg *config.Configuration) checkout.Store {
	return &SessionStore{cache: c, cfg: cfg}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*checkout.Session, bool) {
	v, ok := s.cache.ForceCacheGet(ctx, GenerateKey(PrefixCheckoutSession, id))
	if !ok {
		return nil, false
	}
	sess, ok := v.(*checkout.Session)
	return sess, ok
}

func (s *SessionStore) Save(ctx context.Context, sess *checkout.Session) {
	s.cache.ForceCacheSet(ctx, GenerateKey(PrefixCheckoutSession, sess.ID), sess, s.cfg.Checkout.SessionTTL)
}

func (s *SessionStore) Delete(ctx context.Context, id string) {
	s.cache.ForceCacheDelete(ctx, GenerateKey(PrefixCheckoutSession, id))
}

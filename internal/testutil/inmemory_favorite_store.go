package testutil

import (
	"context"

	"github.com/bestsenki/storefront/internal/domain/favorite"
	"github.com/bestsenki/storefront/internal/domain/recentlyviewed"
	"github.com/samber/lo"
)

func accountHandleKey(accountID, handle string) string {
	return accountID + "/" + handle
}

// InMemoryFavoriteStore implements favorite.Repository
type InMemoryFavoriteStore struct {
	*InMemoryStore[*favorite.Favorite]
}

func NewInMemoryFavoriteStore() *InMemoryFavoriteStore {
	return &InMemoryFavoriteStore{
		InMemoryStore: NewInMemoryStore[*favorite.Favorite](),
	}
}

func (s *InMemoryFavoriteStore) Add(ctx context.Context, f *favorite.Favorite) error {
	key := accountHandleKey(f.AccountID, f.Handle)
	if _, err := s.InMemoryStore.Get(ctx, key); err == nil {
		return nil
	}
	c := *f
	return s.InMemoryStore.Create(ctx, key, &c)
}

func (s *InMemoryFavoriteStore) Remove(ctx context.Context, accountID, handle string) error {
	key := accountHandleKey(accountID, handle)
	if _, err := s.InMemoryStore.Get(ctx, key); err != nil {
		return nil
	}
	return s.InMemoryStore.Delete(ctx, key)
}

func (s *InMemoryFavoriteStore) Exists(ctx context.Context, accountID, handle string) (bool, error) {
	_, err := s.InMemoryStore.Get(ctx, accountHandleKey(accountID, handle))
	return err == nil, nil
}

func (s *InMemoryFavoriteStore) List(ctx context.Context, accountID string) ([]*favorite.Favorite, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(_ context.Context, f *favorite.Favorite, _ interface{}) bool { return f.AccountID == accountID },
		func(i, j *favorite.Favorite) bool { return i.CreatedAt.Before(j.CreatedAt) },
	)
}

// InMemoryRecentlyViewedStore implements recentlyviewed.Repository
type InMemoryRecentlyViewedStore struct {
	*InMemoryStore[*recentlyviewed.Entry]
}

func NewInMemoryRecentlyViewedStore() *InMemoryRecentlyViewedStore {
	return &InMemoryRecentlyViewedStore{
		InMemoryStore: NewInMemoryStore[*recentlyviewed.Entry](),
	}
}

func (s *InMemoryRecentlyViewedStore) Upsert(ctx context.Context, e *recentlyviewed.Entry) error {
	key := accountHandleKey(e.AccountID, e.Handle)
	c := *e
	if existing, err := s.InMemoryStore.Get(ctx, key); err == nil {
		c.ID = existing.ID
		return s.InMemoryStore.Update(ctx, key, &c)
	}
	return s.InMemoryStore.Create(ctx, key, &c)
}

func (s *InMemoryRecentlyViewedStore) List(ctx context.Context, accountID string, limit int) ([]*recentlyviewed.Entry, error) {
	entries, err := s.InMemoryStore.List(ctx, nil,
		func(_ context.Context, e *recentlyviewed.Entry, _ interface{}) bool { return e.AccountID == accountID },
		func(i, j *recentlyviewed.Entry) bool { return i.ViewedAt.After(j.ViewedAt) },
	)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *InMemoryRecentlyViewedStore) Trim(ctx context.Context, accountID string, keep int) error {
	entries, err := s.List(ctx, accountID, 0)
	if err != nil {
		return err
	}
	if len(entries) <= keep {
		return nil
	}
	for _, e := range entries[keep:] {
		if err := s.InMemoryStore.Delete(ctx, accountHandleKey(e.AccountID, e.Handle)); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryRecentlyViewedStore) Clear(ctx context.Context, accountID string) error {
	entries, err := s.List(ctx, accountID, 0)
	if err != nil {
		return err
	}
	lo.ForEach(entries, func(e *recentlyviewed.Entry, _ int) {
		_ = s.InMemoryStore.Delete(ctx, accountHandleKey(e.AccountID, e.Handle))
	})
	return nil
}

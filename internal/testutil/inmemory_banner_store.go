package testutil

import (
	"context"

	"github.com/bestsenki/storefront/internal/domain/banner"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
)

// InMemoryBannerStore implements banner.Repository
type InMemoryBannerStore struct {
	*InMemoryStore[*banner.Banner]
}

func NewInMemoryBannerStore() *InMemoryBannerStore {
	return &InMemoryBannerStore{
		InMemoryStore: NewInMemoryStore[*banner.Banner](),
	}
}

func copyBanner(b *banner.Banner) *banner.Banner {
	c := *b
	return &c
}

func bannerFilterFn(ctx context.Context, b *banner.Banner, filter interface{}) bool {
	if b.Status != types.StatusPublished {
		return false
	}
	f, ok := filter.(*banner.Filter)
	if !ok || f == nil {
		return true
	}
	if f.ActiveOnly && !b.IsActive {
		return false
	}
	return f.LiveAt == nil || b.IsLive(*f.LiveAt)
}

func (s *InMemoryBannerStore) Create(ctx context.Context, b *banner.Banner) error {
	return s.InMemoryStore.Create(ctx, b.ID, copyBanner(b))
}

func (s *InMemoryBannerStore) Get(ctx context.Context, id string) (*banner.Banner, error) {
	b, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != types.StatusPublished {
		return nil, ierr.NewErrorf("banner %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyBanner(b), nil
}

func (s *InMemoryBannerStore) List(ctx context.Context, filter *banner.Filter) ([]*banner.Banner, error) {
	if filter == nil {
		filter = banner.NewFilter()
	}
	return s.InMemoryStore.List(ctx, filter, bannerFilterFn, func(i, j *banner.Banner) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
}

func (s *InMemoryBannerStore) Update(ctx context.Context, b *banner.Banner) error {
	return s.InMemoryStore.Update(ctx, b.ID, copyBanner(b))
}

func (s *InMemoryBannerStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Mutate(ctx, id, func(b *banner.Banner) (*banner.Banner, error) {
		c := copyBanner(b)
		c.Status = types.StatusDeleted
		return c, nil
	})
}

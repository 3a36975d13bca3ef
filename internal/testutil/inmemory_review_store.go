package testutil

import (
	"context"

	"github.com/bestsenki/storefront/internal/domain/review"
)

// InMemoryReviewStore implements review.Repository
type InMemoryReviewStore struct {
	*InMemoryStore[*review.Review]
}

func NewInMemoryReviewStore() *InMemoryReviewStore {
	return &InMemoryReviewStore{
		InMemoryStore: NewInMemoryStore[*review.Review](),
	}
}

func (s *InMemoryReviewStore) Create(ctx context.Context, r *review.Review) error {
	c := *r
	return s.InMemoryStore.Create(ctx, r.ID, &c)
}

func (s *InMemoryReviewStore) ListByHandle(ctx context.Context, handle string) ([]*review.Review, error) {
	return s.InMemoryStore.List(ctx, nil,
		func(_ context.Context, r *review.Review, _ interface{}) bool { return r.Handle == handle },
		func(i, j *review.Review) bool { return i.CreatedAt.After(j.CreatedAt) },
	)
}

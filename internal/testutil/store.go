package testutil

import (
	"context"
	"sort"
	"sync"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
)

type FilterFunc[T any] func(ctx context.Context, item T, filter interface{}) bool

type SortFunc[T any] func(i, j T) bool

// InMemoryStore is a map-backed table keyed by ID. Its errors carry the
// marks the SQL repositories use, so services see the same failures.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{items: map[string]T{}}
}

func missing(id string) error {
	return ierr.NewErrorf("item %s not found", id).Mark(ierr.ErrNotFound)
}

func (s *InMemoryStore[T]) Create(_ context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		return ierr.NewErrorf("item %s already exists", id).Mark(ierr.ErrAlreadyExists)
	}
	s.items[id] = item
	return nil
}

func (s *InMemoryStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return item, missing(id)
	}
	return item, nil
}

func (s *InMemoryStore[T]) matching(ctx context.Context, filter interface{}, filterFn FilterFunc[T]) []T {
	return lo.Filter(lo.Values(s.items), func(item T, _ int) bool {
		return filterFn == nil || filterFn(ctx, item, filter)
	})
}

// List filters and sorts the items, then pages them when filter is a types.BaseFilter
func (s *InMemoryStore[T]) List(ctx context.Context, filter interface{}, filterFn FilterFunc[T], sortFn SortFunc[T]) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := s.matching(ctx, filter, filterFn)
	if sortFn != nil {
		sort.SliceStable(result, func(i, j int) bool { return sortFn(result[i], result[j]) })
	}

	f, ok := filter.(types.BaseFilter)
	if !ok || f.IsUnlimited() {
		return result, nil
	}
	return lo.Subset(result, f.GetOffset(), uint(f.GetLimit())), nil
}

func (s *InMemoryStore[T]) Count(ctx context.Context, filter interface{}, filterFn FilterFunc[T]) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(ctx, filter, filterFn)), nil
}

func (s *InMemoryStore[T]) Update(ctx context.Context, id string, item T) error {
	return s.Mutate(ctx, id, func(T) (T, error) { return item, nil })
}

// Mutate replaces the stored item with fn's result under the write lock
func (s *InMemoryStore[T]) Mutate(_ context.Context, id string, fn func(T) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return missing(id)
	}
	next, err := fn(item)
	if err != nil {
		return err
	}
	s.items[id] = next
	return nil
}

func (s *InMemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return missing(id)
	}
	delete(s.items, id)
	return nil
}

func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.items)
}

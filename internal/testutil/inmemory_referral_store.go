package testutil

import (
	"context"

	"github.com/bestsenki/storefront/internal/domain/referral"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryReferralStore implements referral.Repository
type InMemoryReferralStore struct {
	*InMemoryStore[*referral.Referral]
}

func NewInMemoryReferralStore() *InMemoryReferralStore {
	return &InMemoryReferralStore{
		InMemoryStore: NewInMemoryStore[*referral.Referral](),
	}
}

func copyReferral(r *referral.Referral) *referral.Referral {
	c := *r
	if r.ReferredBy != nil {
		c.ReferredBy = lo.ToPtr(*r.ReferredBy)
	}
	return &c
}

func (s *InMemoryReferralStore) Create(ctx context.Context, r *referral.Referral) error {
	if _, err := s.GetByCode(ctx, r.Code); err == nil {
		return ierr.NewErrorf("referral code %s already exists", r.Code).
			Mark(ierr.ErrAlreadyExists)
	}
	if _, err := s.GetByAccount(ctx, r.AccountID); err == nil {
		return ierr.NewErrorf("referral for account %s already exists", r.AccountID).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, r.ID, copyReferral(r))
}

func (s *InMemoryReferralStore) findOne(ctx context.Context, match func(*referral.Referral) bool, what string) (*referral.Referral, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, r *referral.Referral, _ interface{}) bool {
		return match(r)
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewErrorf("referral %s not found", what).
			Mark(ierr.ErrNotFound)
	}
	return copyReferral(items[0]), nil
}

func (s *InMemoryReferralStore) GetByAccount(ctx context.Context, accountID string) (*referral.Referral, error) {
	return s.findOne(ctx, func(r *referral.Referral) bool { return r.AccountID == accountID }, accountID)
}

func (s *InMemoryReferralStore) GetByCode(ctx context.Context, code string) (*referral.Referral, error) {
	return s.findOne(ctx, func(r *referral.Referral) bool { return r.Code == code }, code)
}

func (s *InMemoryReferralStore) SetReferredBy(ctx context.Context, id, referrerID string) error {
	return s.InMemoryStore.Mutate(ctx, id, func(r *referral.Referral) (*referral.Referral, error) {
		if r.HasReferrer() {
			return nil, referral.ErrAlreadyReferred(id)
		}
		c := copyReferral(r)
		c.ReferredBy = lo.ToPtr(referrerID)
		return c, nil
	})
}

func (s *InMemoryReferralStore) RecordReferral(ctx context.Context, id string, bonus decimal.Decimal) error {
	return s.InMemoryStore.Mutate(ctx, id, func(r *referral.Referral) (*referral.Referral, error) {
		c := copyReferral(r)
		c.RecordReferral(bonus)
		return c, nil
	})
}

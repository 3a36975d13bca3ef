package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bestsenki/storefront/internal/domain/loyalty"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
)

// InMemoryLoyaltyStore implements loyalty.Repository
type InMemoryLoyaltyStore struct {
	mu           sync.Mutex
	balances     map[string]*loyalty.Balance
	transactions []*loyalty.Transaction

	// FailGetBalance makes the next n GetBalance calls return the error
	FailGetBalance int
	GetBalanceErr  error
	// GetBalanceCalls counts every GetBalance call
	GetBalanceCalls int

	// DebitErr and CreditErr, when set, fail every Debit or Credit
	DebitErr  error
	CreditErr error
}

func NewInMemoryLoyaltyStore() *InMemoryLoyaltyStore {
	return &InMemoryLoyaltyStore{
		balances: make(map[string]*loyalty.Balance),
	}
}

// Seed sets an account's available points
func (s *InMemoryLoyaltyStore) Seed(accountID string, points int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[accountID] = &loyalty.Balance{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LOYALTY_ACCOUNT),
		AccountID:       accountID,
		AvailablePoints: points,
		TotalEarned:     points,
	}
}

func (s *InMemoryLoyaltyStore) GetBalance(ctx context.Context, accountID string) (*loyalty.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.GetBalanceCalls++
	if s.FailGetBalance > 0 {
		s.FailGetBalance--
		if s.GetBalanceErr != nil {
			return nil, s.GetBalanceErr
		}
		return nil, ierr.NewError("loyalty store unavailable").Mark(ierr.ErrDatabase)
	}

	if b, ok := s.balances[accountID]; ok {
		c := *b
		return &c, nil
	}
	return loyalty.NewBalance(accountID), nil
}

func (s *InMemoryLoyaltyStore) Credit(ctx context.Context, op *loyalty.Operation) (*loyalty.Transaction, error) {
	if err := s.injected(func() error { return s.CreditErr }); err != nil {
		return nil, err
	}
	return s.apply(op)
}

func (s *InMemoryLoyaltyStore) Debit(ctx context.Context, op *loyalty.Operation) (*loyalty.Transaction, error) {
	if err := s.injected(func() error { return s.DebitErr }); err != nil {
		return nil, err
	}
	return s.apply(op)
}

func (s *InMemoryLoyaltyStore) injected(get func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return get()
}

func (s *InMemoryLoyaltyStore) apply(op *loyalty.Operation) (*loyalty.Transaction, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.balances[op.AccountID]
	if !ok {
		current = loyalty.NewBalance(op.AccountID)
		current.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LOYALTY_ACCOUNT)
	}
	next, err := current.Apply(op)
	if err != nil {
		return nil, err
	}
	s.balances[op.AccountID] = next

	tx := &loyalty.Transaction{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LOYALTY_TRANSACTION),
		AccountID:   op.AccountID,
		OrderID:     op.OrderID,
		Points:      op.SignedPoints(),
		Type:        op.Type,
		Description: op.Description,
		CreatedAt:   time.Now().UTC().Add(time.Duration(len(s.transactions)) * time.Microsecond),
	}
	s.transactions = append(s.transactions, tx)
	return tx, nil
}

func (s *InMemoryLoyaltyStore) ListTransactions(ctx context.Context, accountID string, limit int) ([]*loyalty.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*loyalty.Transaction
	for _, tx := range s.transactions {
		if tx.AccountID == accountID {
			c := *tx
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryLoyaltyStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances = make(map[string]*loyalty.Balance)
	s.transactions = nil
	s.FailGetBalance = 0
	s.GetBalanceErr = nil
	s.GetBalanceCalls = 0
	s.DebitErr = nil
	s.CreditErr = nil
}

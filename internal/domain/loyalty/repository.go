package loyalty

import (
	"context"
)

// Repository persists balances and their ledger
type Repository interface {
	// GetBalance returns a zero balance when the account has no record yet
	GetBalance(ctx context.Context, accountID string) (*Balance, error)
	// Credit adds points and records the transaction atomically
	Credit(ctx context.Context, op *Operation) (*Transaction, error)
	// Debit removes points, failing with ErrInvalidOperation when the balance is short
	Debit(ctx context.Context, op *Operation) (*Transaction, error)
	// ListTransactions returns the newest transactions first
	ListTransactions(ctx context.Context, accountID string, limit int) ([]*Transaction, error)
}

package supabase

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/bestsenki/storefront/internal/domain/loyalty"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/nedpals/supabase-go"
)

const (
	tableLoyaltyPoints       = "loyalty_points"
	tableLoyaltyTransactions = "loyalty_transactions"

	// maxBalanceConflicts bounds compare-and-swap retries on a contended balance
	maxBalanceConflicts = 5
)

type balanceRow struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Points      int64     `json:"points"`
	TotalEarned int64     `json:"total_earned"`
	TotalSpent  int64     `json:"total_spent"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r balanceRow) toDomain() *loyalty.Balance {
	return &loyalty.Balance{
		ID:              r.ID,
		AccountID:       r.UserID,
		AvailablePoints: r.Points,
		TotalEarned:     r.TotalEarned,
		TotalSpent:      r.TotalSpent,
		BaseModel: types.BaseModel{
			Status:    types.StatusPublished,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
	}
}

type transactionRow struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	OrderID     *string   `json:"order_id"`
	Points      int64     `json:"points"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r transactionRow) toDomain() *loyalty.Transaction {
	return &loyalty.Transaction{
		ID:          r.ID,
		AccountID:   r.UserID,
		OrderID:     r.OrderID,
		Points:      r.Points,
		Type:        types.LoyaltyTransactionType(r.Type),
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

type loyaltyRepository struct {
	client *supabase.Client
	logger *logger.Logger
}

// NewLoyaltyRepository stores balances through PostgREST. PostgREST has no
// multi-statement transactions, so balance changes are conditional updates
// on the previous points value, retried on conflict.
func NewLoyaltyRepository(client *supabase.Client, logger *logger.Logger) loyalty.Repository {
	return &loyaltyRepository{client: client, logger: logger}
}

func (r *loyaltyRepository) GetBalance(ctx context.Context, accountID string) (*loyalty.Balance, error) {
	row, err := r.getRow(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return loyalty.NewBalance(accountID), nil
	}
	return row.toDomain(), nil
}

func (r *loyaltyRepository) Credit(ctx context.Context, op *loyalty.Operation) (*loyalty.Transaction, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	if !op.Type.IsCredit() {
		return nil, ierr.NewError("credit called with a debit operation").
			WithHint("Invalid loyalty operation").
			Mark(ierr.ErrInvalidOperation)
	}
	if err := r.applyWithRetry(ctx, op); err != nil {
		return nil, err
	}
	return r.insertTransaction(ctx, op)
}

func (r *loyaltyRepository) Debit(ctx context.Context, op *loyalty.Operation) (*loyalty.Transaction, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	if op.Type.IsCredit() {
		return nil, ierr.NewError("debit called with a credit operation").
			WithHint("Invalid loyalty operation").
			Mark(ierr.ErrInvalidOperation)
	}
	if err := r.applyWithRetry(ctx, op); err != nil {
		return nil, err
	}
	return r.insertTransaction(ctx, op)
}

func (r *loyaltyRepository) ListTransactions(ctx context.Context, accountID string, limit int) ([]*loyalty.Transaction, error) {
	if limit <= 0 {
		limit = types.DefaultLoyaltyHistoryLimit
	}

	var rows []transactionRow
	err := r.client.DB.From(tableLoyaltyTransactions).
		Select("*").
		Eq("user_id", accountID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, restError(err, "Failed to list loyalty transactions")
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]*loyalty.Transaction, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *loyaltyRepository) getRow(ctx context.Context, accountID string) (*balanceRow, error) {
	var rows []balanceRow
	err := r.client.DB.From(tableLoyaltyPoints).
		Select("*").
		Eq("user_id", accountID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, restError(err, "Failed to get loyalty balance")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

var errBalanceConflict = ierr.NewError("loyalty balance changed concurrently").
	WithHint("Please try again").
	Mark(ierr.ErrInvalidOperation)

func (r *loyaltyRepository) applyWithRetry(ctx context.Context, op *loyalty.Operation) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(20*time.Millisecond),
		), maxBalanceConflicts),
		ctx,
	)

	return backoff.Retry(func() error {
		err := r.applyOnce(ctx, op)
		if err == errBalanceConflict {
			r.logger.Debugw("loyalty balance conflict, retrying", "account_id", op.AccountID)
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}, policy)
}

func (r *loyaltyRepository) applyOnce(ctx context.Context, op *loyalty.Operation) error {
	row, err := r.getRow(ctx, op.AccountID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if row == nil {
		current := loyalty.NewBalance(op.AccountID)
		next, err := current.Apply(op)
		if err != nil {
			return err
		}

		var inserted []balanceRow
		err = r.client.DB.From(tableLoyaltyPoints).
			Insert(balanceRow{
				ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LOYALTY_ACCOUNT),
				UserID:      op.AccountID,
				Points:      next.AvailablePoints,
				TotalEarned: next.TotalEarned,
				TotalSpent:  next.TotalSpent,
				CreatedAt:   now,
				UpdatedAt:   now,
			}).
			ExecuteWithContext(ctx, &inserted)
		if err != nil {
			// a concurrent first credit created the row; go around again
			return errBalanceConflict
		}
		return nil
	}

	next, err := row.toDomain().Apply(op)
	if err != nil {
		return err
	}

	var updated []balanceRow
	err = r.client.DB.From(tableLoyaltyPoints).
		Update(map[string]interface{}{
			"points":       next.AvailablePoints,
			"total_earned": next.TotalEarned,
			"total_spent":  next.TotalSpent,
			"updated_at":   now,
		}).
		Eq("id", row.ID).
		Eq("points", strconv.FormatInt(row.Points, 10)).
		ExecuteWithContext(ctx, &updated)
	if err != nil {
		return restError(err, "Failed to update loyalty balance")
	}
	if len(updated) == 0 {
		return errBalanceConflict
	}
	return nil
}

func (r *loyaltyRepository) insertTransaction(ctx context.Context, op *loyalty.Operation) (*loyalty.Transaction, error) {
	row := transactionRow{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LOYALTY_TRANSACTION),
		UserID:      op.AccountID,
		OrderID:     op.OrderID,
		Points:      op.SignedPoints(),
		Type:        string(op.Type),
		Description: op.Description,
		CreatedAt:   time.Now().UTC(),
	}

	var inserted []transactionRow
	err := r.client.DB.From(tableLoyaltyTransactions).
		Insert(row).
		ExecuteWithContext(ctx, &inserted)
	if err != nil {
		return nil, restError(err, "Failed to record loyalty transaction")
	}
	return row.toDomain(), nil
}

package postgres

import (
	"context"
	"time"

	"github.com/bestsenki/storefront/internal/domain/loyalty"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/postgres"
	"github.com/bestsenki/storefront/internal/types"
)

type loyaltyRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewLoyaltyRepository(db *postgres.DB, logger *logger.Logger) loyalty.Repository {
	return &loyaltyRepository{db: db, logger: logger}
}

func (r *loyaltyRepository) GetBalance(ctx context.Context, accountID string) (*loyalty.Balance, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		"SELECT * FROM loyalty_points WHERE user_id = :user_id",
		map[string]interface{}{"user_id": accountID})
	if err != nil {
		return nil, dbError(err, "Failed to get loyalty balance")
	}

	var b loyalty.Balance
	found, err := scanOne(rows, &b)
	if err != nil {
		return nil, dbError(err, "Failed to read loyalty balance")
	}
	if !found {
		return loyalty.NewBalance(accountID), nil
	}
	return &b, nil
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

	query := `
		INSERT INTO loyalty_points (id, user_id, points, total_earned, total_spent, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :user_id, :points, :points, 0, :status, :now, :now, :user_id, :user_id)
		ON CONFLICT (user_id) DO UPDATE SET
			points = loyalty_points.points + EXCLUDED.points,
			total_earned = loyalty_points.total_earned + EXCLUDED.points,
			updated_at = EXCLUDED.updated_at`

	var tx *loyalty.Transaction
	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		_, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
			"id":      types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LOYALTY_ACCOUNT),
			"user_id": op.AccountID,
			"points":  op.Points,
			"status":  types.StatusPublished,
			"now":     time.Now().UTC(),
		})
		if err != nil {
			return dbError(err, "Failed to credit loyalty points")
		}

		tx, err = r.insertTransaction(ctx, op)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debugw("credited loyalty points",
		"account_id", op.AccountID,
		"points", op.Points,
		"type", op.Type,
	)
	return tx, nil
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

	// the points guard makes the check and the decrement one statement
	query := `
		UPDATE loyalty_points SET
			points = points - :points,
			total_spent = total_spent + :points,
			updated_at = :now
		WHERE user_id = :user_id AND points >= :points`

	var tx *loyalty.Transaction
	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
			"user_id": op.AccountID,
			"points":  op.Points,
			"now":     time.Now().UTC(),
		})
		if err != nil {
			return dbError(err, "Failed to spend loyalty points")
		}
		if n, err := result.RowsAffected(); err != nil || n == 0 {
			return ierr.NewError("insufficient loyalty points").
				WithHint("Недостаточно баллов").
				WithReportableDetails(map[string]any{
					"account_id": op.AccountID,
					"requested":  op.Points,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		tx, err = r.insertTransaction(ctx, op)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debugw("debited loyalty points",
		"account_id", op.AccountID,
		"points", op.Points,
	)
	return tx, nil
}

func (r *loyaltyRepository) ListTransactions(ctx context.Context, accountID string, limit int) ([]*loyalty.Transaction, error) {
	if limit <= 0 {
		limit = types.DefaultLoyaltyHistoryLimit
	}

	rows, err := r.db.NamedQueryContext(ctx, `
		SELECT * FROM loyalty_transactions
		WHERE user_id = :user_id
		ORDER BY created_at DESC
		LIMIT :limit`,
		map[string]interface{}{
			"user_id": accountID,
			"limit":   limit,
		})
	if err != nil {
		return nil, dbError(err, "Failed to list loyalty transactions")
	}
	txs, err := scanAll[loyalty.Transaction](rows)
	if err != nil {
		return nil, dbError(err, "Failed to read loyalty transactions")
	}
	return txs, nil
}

func (r *loyaltyRepository) insertTransaction(ctx context.Context, op *loyalty.Operation) (*loyalty.Transaction, error) {
	tx := &loyalty.Transaction{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LOYALTY_TRANSACTION),
		AccountID:   op.AccountID,
		OrderID:     op.OrderID,
		Points:      op.SignedPoints(),
		Type:        op.Type,
		Description: op.Description,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO loyalty_transactions (id, user_id, order_id, points, type, description, created_at)
		VALUES (:id, :user_id, :order_id, :points, :type, :description, :created_at)`, tx)
	if err != nil {
		return nil, dbError(err, "Failed to record loyalty transaction")
	}
	return tx, nil
}

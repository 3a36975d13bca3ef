package postgres

import (
	"context"
	"database/sql"
	"fmt"

	ierr "github.com/bestsenki/storefront/internal/errors"
	sentryService "github.com/bestsenki/storefront/internal/sentry"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// Tx is an open transaction. Nested units of work on the same context
// become savepoints on it; depth counts how many are open.
type Tx struct {
	*sqlx.Tx
	ID    string
	depth int
}

// GetTx returns the transaction carried by ctx, if any
func GetTx(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*Tx)
	return tx, ok
}

func savepoint(depth int) string {
	return fmt.Sprintf("sp_%d", depth)
}

// WithTx runs fn in a unit of work. The outermost call owns a READ COMMITTED
// transaction; inner calls run inside a savepoint so a failing inner fn
// rolls back only its own writes. Panics roll back and are re-raised.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, nested := GetTx(ctx)

	span, ctx := db.sentry.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{
		"nested": nested,
	})
	defer func() { sentryService.FinishSpan(span, err) }()

	if !nested {
		sqlxTx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return txError(err, "begin")
		}
		tx = &Tx{Tx: sqlxTx, ID: types.GenerateUUID()}
		ctx = context.WithValue(ctx, txKey{}, tx)
		db.logger.Debugw("transaction started", "tx_id", tx.ID)
	} else {
		tx.depth++
		if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepoint(tx.depth)); err != nil {
			tx.depth--
			return txError(err, "savepoint")
		}
	}

	defer func() {
		if r := recover(); r != nil {
			db.logger.Errorw("panic in transaction", "tx_id", tx.ID, "panic", r)
			_ = db.rollback(ctx, tx, nested)
			panic(r)
		}
	}()

	if err := fn(ctx); err != nil {
		db.logger.Debugw("transaction rolled back", "tx_id", tx.ID, "depth", tx.depth, "error", err)
		if rbErr := db.rollback(ctx, tx, nested); rbErr != nil {
			return ierr.WithError(err).
				WithReportableDetails(map[string]any{"rollback_error": rbErr.Error()}).
				Mark(ierr.ErrDatabase)
		}
		return err
	}

	return db.commit(ctx, tx, nested)
}

func (db *DB) commit(ctx context.Context, tx *Tx, nested bool) error {
	if nested {
		defer func() { tx.depth-- }()
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint(tx.depth)); err != nil {
			return txError(err, "release savepoint")
		}
		return nil
	}

	if err := tx.Commit(); err != nil {
		return txError(err, "commit")
	}
	db.logger.Debugw("transaction committed", "tx_id", tx.ID)
	return nil
}

func (db *DB) rollback(ctx context.Context, tx *Tx, nested bool) error {
	if nested {
		defer func() { tx.depth-- }()
		_, err := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint(tx.depth))
		return err
	}
	return tx.Rollback()
}

func txError(err error, step string) error {
	return ierr.WithError(err).
		WithHintf("Failed to %s transaction", step).
		Mark(ierr.ErrDatabase)
}

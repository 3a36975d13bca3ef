package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bestsenki/storefront/internal/logger"
	"github.com/jmoiron/sqlx"
)

// TracedQuerier logs every statement it runs with its duration and, inside
// a transaction, the transaction ID
type TracedQuerier struct {
	q      Querier
	logger *logger.Logger
	txID   string
}

func NewTracedQuerier(q Querier, logger *logger.Logger, txID string) *TracedQuerier {
	return &TracedQuerier{q: q, logger: logger, txID: txID}
}

// trace returns the callback that records the outcome of query
func (t *TracedQuerier) trace(query string, params interface{}) func(error) {
	start := time.Now()
	return func(err error) {
		fields := []interface{}{
			"duration_ms", time.Since(start).Milliseconds(),
			"query", query,
			"params", fmt.Sprintf("%+v", params),
		}
		if t.txID != "" {
			fields = append(fields, "tx_id", t.txID)
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			t.logger.Errorw("database query failed", append(fields, "error", err.Error())...)
			return
		}
		t.logger.Debugw("database query completed", fields...)
	}
}

func (t *TracedQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	done := t.trace(query, args)
	res, err := t.q.ExecContext(ctx, query, args...)
	done(err)
	return res, err
}

func (t *TracedQuerier) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	done := t.trace(query, args)
	err := t.q.GetContext(ctx, dest, query, args...)
	done(err)
	return err
}

func (t *TracedQuerier) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	done := t.trace(query, args)
	err := t.q.SelectContext(ctx, dest, query, args...)
	done(err)
	return err
}

func (t *TracedQuerier) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	done := t.trace(query, arg)
	res, err := sqlx.NamedExecContext(ctx, t.q, query, arg)
	done(err)
	return res, err
}

func (t *TracedQuerier) NamedQueryContext(ctx context.Context, query string, arg interface{}) (*sqlx.Rows, error) {
	done := t.trace(query, arg)
	rows, err := sqlx.NamedQueryContext(ctx, t.q, query, arg)
	done(err)
	return rows, err
}

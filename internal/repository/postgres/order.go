package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/postgres"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

type orderRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewOrderRepository(db *postgres.DB, logger *logger.Logger) order.Repository {
	return &orderRepository{db: db, logger: logger}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (
			id, number, user_id, customer_name, email, phone, items, currency,
			subtotal, promo_code, promo_discount, loyalty_points_used, loyalty_discount, total,
			shipping_address, notes, payment_method, order_status, checkout_url,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :number, :user_id, :customer_name, :email, :phone, :items, :currency,
			:subtotal, :promo_code, :promo_discount, :loyalty_points_used, :loyalty_discount, :total,
			:shipping_address, :notes, :payment_method, :order_status, :checkout_url,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating order",
		"order_id", o.ID,
		"number", o.Number,
		"total", o.Total.String(),
	)

	if _, err := r.db.NamedExecContext(ctx, query, o); err != nil {
		return dbError(err, "Failed to create order")
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		"SELECT * FROM orders WHERE id = :id AND status = :status",
		map[string]interface{}{
			"id":     id,
			"status": types.StatusPublished,
		})
	if err != nil {
		return nil, dbError(err, "Failed to get order")
	}

	var o order.Order
	found, err := scanOne(rows, &o)
	if err != nil {
		return nil, dbError(err, "Failed to read order")
	}
	if !found {
		return nil, notFound("order", id)
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, filter *types.OrderFilter) ([]*order.Order, error) {
	if filter == nil {
		filter = types.NewOrderFilter()
	}
	where, args := orderConditions(filter)

	query := "SELECT * FROM orders WHERE " + where + " ORDER BY created_at"
	if filter.GetOrder() == types.OrderAsc {
		query += " ASC"
	} else {
		query += " DESC"
	}
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		args["limit"] = filter.GetLimit()
		args["offset"] = filter.GetOffset()
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, dbError(err, "Failed to list orders")
	}
	orders, err := scanAll[order.Order](rows)
	if err != nil {
		return nil, dbError(err, "Failed to read orders")
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context, filter *types.OrderFilter) (int, error) {
	where, args := orderConditions(filter)

	rows, err := r.db.NamedQueryContext(ctx, "SELECT COUNT(*) FROM orders WHERE "+where, args)
	if err != nil {
		return 0, dbError(err, "Failed to count orders")
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, dbError(err, "Failed to count orders")
		}
	}
	return count, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status types.OrderStatus) error {
	query := `
		UPDATE orders SET
			order_status = :order_status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND status = :status`

	r.logger.Debugw("updating order status",
		"order_id", id,
		"order_status", status,
	)

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":           id,
		"order_status": status,
		"status":       types.StatusPublished,
		"updated_at":   time.Now().UTC(),
		"updated_by":   types.GetUserID(ctx),
	})
	if err != nil {
		return dbError(err, "Failed to update order status")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound("order", id)
	}
	return nil
}

func orderConditions(filter *types.OrderFilter) (string, map[string]interface{}) {
	conds := []string{"status = :status"}
	args := map[string]interface{}{
		"status": types.StatusPublished,
	}
	if filter == nil {
		return conds[0], args
	}

	if filter.AccountID != "" {
		conds = append(conds, "user_id = :user_id")
		args["user_id"] = filter.AccountID
	}
	if len(filter.Status) > 0 {
		conds = append(conds, "order_status = ANY(:order_statuses)")
		args["order_statuses"] = pq.Array(lo.Map(filter.Status, func(s types.OrderStatus, _ int) string {
			return string(s)
		}))
	}
	return strings.Join(conds, " AND "), args
}

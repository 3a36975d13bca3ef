package postgres

import (
	"context"

	"github.com/bestsenki/storefront/internal/domain/recentlyviewed"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/postgres"
)

type recentlyViewedRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRecentlyViewedRepository(db *postgres.DB, logger *logger.Logger) recentlyviewed.Repository {
	return &recentlyViewedRepository{db: db, logger: logger}
}

func (r *recentlyViewedRepository) Upsert(ctx context.Context, e *recentlyviewed.Entry) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO recently_viewed (id, user_id, handle, title, image_url, price, viewed_at)
		VALUES (:id, :user_id, :handle, :title, :image_url, :price, :viewed_at)
		ON CONFLICT (user_id, handle) DO UPDATE SET
			title = EXCLUDED.title,
			image_url = EXCLUDED.image_url,
			price = EXCLUDED.price,
			viewed_at = EXCLUDED.viewed_at`, e)
	if err != nil {
		return dbError(err, "Failed to record product view")
	}
	return nil
}

func (r *recentlyViewedRepository) List(ctx context.Context, accountID string, limit int) ([]*recentlyviewed.Entry, error) {
	rows, err := r.db.NamedQueryContext(ctx, `
		SELECT * FROM recently_viewed
		WHERE user_id = :user_id
		ORDER BY viewed_at DESC
		LIMIT :limit`,
		map[string]interface{}{
			"user_id": accountID,
			"limit":   limit,
		})
	if err != nil {
		return nil, dbError(err, "Failed to list recently viewed products")
	}
	entries, err := scanAll[recentlyviewed.Entry](rows)
	if err != nil {
		return nil, dbError(err, "Failed to read recently viewed products")
	}
	return entries, nil
}

func (r *recentlyViewedRepository) Trim(ctx context.Context, accountID string, keep int) error {
	_, err := r.db.NamedExecContext(ctx, `
		DELETE FROM recently_viewed
		WHERE user_id = :user_id AND id NOT IN (
			SELECT id FROM recently_viewed
			WHERE user_id = :user_id
			ORDER BY viewed_at DESC
			LIMIT :keep
		)`,
		map[string]interface{}{
			"user_id": accountID,
			"keep":    keep,
		})
	if err != nil {
		return dbError(err, "Failed to trim recently viewed products")
	}
	return nil
}

func (r *recentlyViewedRepository) Clear(ctx context.Context, accountID string) error {
	_, err := r.db.NamedExecContext(ctx,
		"DELETE FROM recently_viewed WHERE user_id = :user_id",
		map[string]interface{}{"user_id": accountID})
	if err != nil {
		return dbError(err, "Failed to clear recently viewed products")
	}
	return nil
}

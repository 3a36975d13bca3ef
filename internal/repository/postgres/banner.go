package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/bestsenki/storefront/internal/domain/banner"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/postgres"
	"github.com/bestsenki/storefront/internal/types"
)

type bannerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewBannerRepository(db *postgres.DB, logger *logger.Logger) banner.Repository {
	return &bannerRepository{db: db, logger: logger}
}

func (r *bannerRepository) Create(ctx context.Context, b *banner.Banner) error {
	query := `
		INSERT INTO promo_banners (
			id, title, description, code, discount, background_color, is_active, start_date, end_date,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :title, :description, :code, :discount, :background_color, :is_active, :start_date, :end_date,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating banner", "banner_id", b.ID)

	if _, err := r.db.NamedExecContext(ctx, query, b); err != nil {
		return dbError(err, "Failed to create banner")
	}
	return nil
}

func (r *bannerRepository) Get(ctx context.Context, id string) (*banner.Banner, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		"SELECT * FROM promo_banners WHERE id = :id AND status = :status",
		map[string]interface{}{
			"id":     id,
			"status": types.StatusPublished,
		})
	if err != nil {
		return nil, dbError(err, "Failed to get banner")
	}

	var b banner.Banner
	found, err := scanOne(rows, &b)
	if err != nil {
		return nil, dbError(err, "Failed to read banner")
	}
	if !found {
		return nil, notFound("banner", id)
	}
	return &b, nil
}

func (r *bannerRepository) List(ctx context.Context, filter *banner.Filter) ([]*banner.Banner, error) {
	if filter == nil {
		filter = banner.NewFilter()
	}

	conds := []string{"status = :status"}
	args := map[string]interface{}{"status": types.StatusPublished}
	if filter.ActiveOnly || filter.LiveAt != nil {
		conds = append(conds, "is_active")
	}
	if filter.LiveAt != nil {
		conds = append(conds,
			"(start_date IS NULL OR start_date <= :now)",
			"(end_date IS NULL OR end_date > :now)",
		)
		args["now"] = *filter.LiveAt
	}

	query := "SELECT * FROM promo_banners WHERE " + strings.Join(conds, " AND ") + " ORDER BY created_at DESC"
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		args["limit"] = filter.GetLimit()
		args["offset"] = filter.GetOffset()
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, dbError(err, "Failed to list banners")
	}
	banners, err := scanAll[banner.Banner](rows)
	if err != nil {
		return nil, dbError(err, "Failed to read banners")
	}
	return banners, nil
}

func (r *bannerRepository) Update(ctx context.Context, b *banner.Banner) error {
	query := `
		UPDATE promo_banners SET
			title = :title,
			description = :description,
			code = :code,
			discount = :discount,
			background_color = :background_color,
			is_active = :is_active,
			start_date = :start_date,
			end_date = :end_date,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND status = :status`

	result, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		return dbError(err, "Failed to update banner")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound("banner", b.ID)
	}
	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting banner", "banner_id", id)

	result, err := r.db.NamedExecContext(ctx, `
		UPDATE promo_banners SET
			status = :deleted,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND status = :status`,
		map[string]interface{}{
			"id":         id,
			"deleted":    types.StatusDeleted,
			"status":     types.StatusPublished,
			"updated_at": time.Now().UTC(),
			"updated_by": types.GetUserID(ctx),
		})
	if err != nil {
		return dbError(err, "Failed to delete banner")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound("banner", id)
	}
	return nil
}

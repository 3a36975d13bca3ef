package postgres

import (
	"context"

	"github.com/bestsenki/storefront/internal/domain/favorite"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/postgres"
)

type favoriteRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewFavoriteRepository(db *postgres.DB, logger *logger.Logger) favorite.Repository {
	return &favoriteRepository{db: db, logger: logger}
}

func (r *favoriteRepository) Add(ctx context.Context, f *favorite.Favorite) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO favorites (id, user_id, handle, created_at)
		VALUES (:id, :user_id, :handle, :created_at)
		ON CONFLICT (user_id, handle) DO NOTHING`, f)
	if err != nil {
		return dbError(err, "Failed to add favorite")
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, accountID, handle string) error {
	_, err := r.db.NamedExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = :user_id AND handle = :handle",
		map[string]interface{}{
			"user_id": accountID,
			"handle":  handle,
		})
	if err != nil {
		return dbError(err, "Failed to remove favorite")
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, accountID, handle string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND handle = $2)",
		accountID, handle)
	if err != nil {
		return false, dbError(err, "Failed to check favorite")
	}
	return exists, nil
}

func (r *favoriteRepository) List(ctx context.Context, accountID string) ([]*favorite.Favorite, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		"SELECT * FROM favorites WHERE user_id = :user_id ORDER BY created_at ASC",
		map[string]interface{}{"user_id": accountID})
	if err != nil {
		return nil, dbError(err, "Failed to list favorites")
	}
	favs, err := scanAll[favorite.Favorite](rows)
	if err != nil {
		return nil, dbError(err, "Failed to read favorites")
	}
	return favs, nil
}

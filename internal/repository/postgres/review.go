package postgres

import (
	"context"

	"github.com/bestsenki/storefront/internal/domain/review"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/postgres"
)

type reviewRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewReviewRepository(db *postgres.DB, logger *logger.Logger) review.Repository {
	return &reviewRepository{db: db, logger: logger}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	r.logger.Debugw("creating review",
		"review_id", rv.ID,
		"handle", rv.Handle,
		"rating", rv.Rating,
	)

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO reviews (id, user_id, handle, rating, comment, user_name, created_at)
		VALUES (:id, :user_id, :handle, :rating, :comment, :user_name, :created_at)`, rv)
	if err != nil {
		return dbError(err, "Failed to save review")
	}
	return nil
}

func (r *reviewRepository) ListByHandle(ctx context.Context, handle string) ([]*review.Review, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		"SELECT * FROM reviews WHERE handle = :handle ORDER BY created_at DESC",
		map[string]interface{}{"handle": handle})
	if err != nil {
		return nil, dbError(err, "Failed to list reviews")
	}
	reviews, err := scanAll[review.Review](rows)
	if err != nil {
		return nil, dbError(err, "Failed to read reviews")
	}
	return reviews, nil
}

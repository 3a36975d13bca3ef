package repository

import (
	"github.com/bestsenki/storefront/internal/config"
	"github.com/bestsenki/storefront/internal/domain/banner"
	"github.com/bestsenki/storefront/internal/domain/favorite"
	"github.com/bestsenki/storefront/internal/domain/loyalty"
	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/domain/recentlyviewed"
	"github.com/bestsenki/storefront/internal/domain/referral"
	"github.com/bestsenki/storefront/internal/domain/review"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/postgres"
	postgresRepo "github.com/bestsenki/storefront/internal/repository/postgres"
	supabaseRepo "github.com/bestsenki/storefront/internal/repository/supabase"
	"github.com/bestsenki/storefront/internal/types"
	"go.uber.org/fx"
)

// RepositoryParams holds the stores a repository may be built on. Supabase
// is only constructed when store.loyalty_backend selects it.
type RepositoryParams struct {
	fx.In

	Config *config.Configuration
	DB     *postgres.DB
	Logger *logger.Logger
}

func NewOrderRepository(p RepositoryParams) order.Repository {
	return postgresRepo.NewOrderRepository(p.DB, p.Logger)
}

func NewFavoriteRepository(p RepositoryParams) favorite.Repository {
	return postgresRepo.NewFavoriteRepository(p.DB, p.Logger)
}

func NewRecentlyViewedRepository(p RepositoryParams) recentlyviewed.Repository {
	return postgresRepo.NewRecentlyViewedRepository(p.DB, p.Logger)
}

func NewBannerRepository(p RepositoryParams) banner.Repository {
	return postgresRepo.NewBannerRepository(p.DB, p.Logger)
}

func NewReviewRepository(p RepositoryParams) review.Repository {
	return postgresRepo.NewReviewRepository(p.DB, p.Logger)
}

func NewLoyaltyRepository(p RepositoryParams) (loyalty.Repository, error) {
	if p.Config.Store.LoyaltyBackend == types.StoreBackendSupabase {
		client, err := supabaseRepo.NewClient(p.Config, p.Logger)
		if err != nil {
			return nil, err
		}
		return supabaseRepo.NewLoyaltyRepository(client, p.Logger), nil
	}
	return postgresRepo.NewLoyaltyRepository(p.DB, p.Logger), nil
}

func NewReferralRepository(p RepositoryParams) (referral.Repository, error) {
	if p.Config.Store.LoyaltyBackend == types.StoreBackendSupabase {
		client, err := supabaseRepo.NewClient(p.Config, p.Logger)
		if err != nil {
			return nil, err
		}
		return supabaseRepo.NewReferralRepository(client, p.Logger), nil
	}
	return postgresRepo.NewReferralRepository(p.DB, p.Logger), nil
}

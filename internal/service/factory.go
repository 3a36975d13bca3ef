package service

import (
	"github.com/bestsenki/storefront/internal/cache"
	"github.com/bestsenki/storefront/internal/catalog"
	"github.com/bestsenki/storefront/internal/config"
	"github.com/bestsenki/storefront/internal/domain/banner"
	"github.com/bestsenki/storefront/internal/domain/checkout"
	"github.com/bestsenki/storefront/internal/domain/favorite"
	"github.com/bestsenki/storefront/internal/domain/loyalty"
	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/domain/recentlyviewed"
	"github.com/bestsenki/storefront/internal/domain/referral"
	"github.com/bestsenki/storefront/internal/domain/review"
	"github.com/bestsenki/storefront/internal/email"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/postgres"
	"github.com/bestsenki/storefront/internal/pubsub"
	"github.com/bestsenki/storefront/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Sentry *sentry.Service

	// Repositories
	OrderRepo          order.Repository
	LoyaltyRepo        loyalty.Repository
	ReferralRepo       referral.Repository
	FavoriteRepo       favorite.Repository
	RecentlyViewedRepo recentlyviewed.Repository
	BannerRepo         banner.Repository
	ReviewRepo         review.Repository

	// Collaborators
	Cache        cache.Cache
	SessionStore checkout.Store
	Catalog      catalog.Client
	PubSub       pubsub.PubSub
	Email        *email.Email
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	sentry *sentry.Service,
	orderRepo order.Repository,
	loyaltyRepo loyalty.Repository,
	referralRepo referral.Repository,
	favoriteRepo favorite.Repository,
	recentlyViewedRepo recentlyviewed.Repository,
	bannerRepo banner.Repository,
	reviewRepo review.Repository,
	cache cache.Cache,
	sessionStore checkout.Store,
	catalogClient catalog.Client,
	pubSub pubsub.PubSub,
	emailService *email.Email,
) ServiceParams {
	return ServiceParams{
		Logger:             logger,
		Config:             config,
		DB:                 db,
		Sentry:             sentry,
		OrderRepo:          orderRepo,
		LoyaltyRepo:        loyaltyRepo,
		ReferralRepo:       referralRepo,
		FavoriteRepo:       favoriteRepo,
		RecentlyViewedRepo: recentlyViewedRepo,
		BannerRepo:         bannerRepo,
		ReviewRepo:         reviewRepo,
		Cache:              cache,
		SessionStore:       sessionStore,
		Catalog:            catalogClient,
		PubSub:             pubSub,
		Email:              emailService,
	}
}

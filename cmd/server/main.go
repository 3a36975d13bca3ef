package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bestsenki/storefront/internal/api"
	v1 "github.com/bestsenki/storefront/internal/api/v1"
	"github.com/bestsenki/storefront/internal/auth"
	"github.com/bestsenki/storefront/internal/cache"
	"github.com/bestsenki/storefront/internal/catalog"
	"github.com/bestsenki/storefront/internal/config"
	"github.com/bestsenki/storefront/internal/email"
	"github.com/bestsenki/storefront/internal/httpclient"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/postgres"
	"github.com/bestsenki/storefront/internal/pubsub/memory"
	pubsubRouter "github.com/bestsenki/storefront/internal/pubsub/router"
	"github.com/bestsenki/storefront/internal/repository"
	"github.com/bestsenki/storefront/internal/sentry"
	"github.com/bestsenki/storefront/internal/service"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/bestsenki/storefront/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Storefront API
// @version 1.0
// @description Checkout, account and admin API for the storefront
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func init() {
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Postgres
			postgres.NewDB,
			provideDBClient,

			// Cache
			cache.NewInMemoryCache,
			provideCache,
			cache.NewSessionStore,

			// Collaborators
			provideHTTPClient,
			catalog.NewShopifyClient,
			email.NewEmailClient,
			email.NewEmail,
			auth.NewProvider,

			// Repositories
			repository.NewOrderRepository,
			repository.NewLoyaltyRepository,
			repository.NewReferralRepository,
			repository.NewFavoriteRepository,
			repository.NewRecentlyViewedRepository,
			repository.NewBannerRepository,
			repository.NewReviewRepository,

			// PubSub
			memory.NewPubSub,
			pubsubRouter.NewRouter,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewLoyaltyService,
			service.NewCheckoutService,
			service.NewOrderService,
			service.NewReferralService,
			service.NewFavoriteService,
			service.NewRecentlyViewedService,
			service.NewBannerService,
			service.NewAdminService,
			service.NewProductService,
			service.NewReviewService,
			service.NewNotificationService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			registerDBHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideDBClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideCache(c *cache.InMemoryCache) cache.Cache {
	return c
}

func provideHTTPClient(cfg *config.Configuration, log *logger.Logger) httpclient.Client {
	return httpclient.NewDefaultClient(httpclient.ClientConfig{
		Timeout:    cfg.Catalog.Timeout,
		MaxRetries: cfg.Catalog.MaxRetries,
	}, log)
}

func provideHandlers(
	db *postgres.DB,
	logger *logger.Logger,
	checkoutService service.CheckoutService,
	orderService service.OrderService,
	loyaltyService service.LoyaltyService,
	referralService service.ReferralService,
	favoriteService service.FavoriteService,
	recentlyViewedService service.RecentlyViewedService,
	bannerService service.BannerService,
	adminService service.AdminService,
	productService service.ProductService,
	reviewService service.ReviewService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(db, logger),
		Checkout: v1.NewCheckoutHandler(checkoutService, logger),
		Order:    v1.NewOrderHandler(orderService, logger),
		Loyalty:  v1.NewLoyaltyHandler(loyaltyService, logger),
		Referral: v1.NewReferralHandler(referralService, logger),
		Favorite: v1.NewFavoriteHandler(favoriteService, recentlyViewedService, logger),
		Banner:   v1.NewBannerHandler(bannerService, logger),
		Review:   v1.NewReviewHandler(reviewService, logger),
		Admin:    v1.NewAdminHandler(adminService, orderService, productService, logger),
	}
}

func registerDBHooks(lc fx.Lifecycle, db *postgres.DB, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing database connections")
			db.Close()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	router *pubsubRouter.Router,
	notificationService service.NotificationService,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
		startMessageRouter(lc, router, notificationService, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down API server")
			return srv.Shutdown(ctx)
		},
	})
}

func startMessageRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	notificationService service.NotificationService,
	log *logger.Logger,
) {
	notificationService.RegisterHandlers(router)

	var cancel context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting message router")
			var runCtx context.Context
			runCtx, cancel = context.WithCancel(context.Background())
			go func() {
				if err := router.Run(runCtx); err != nil {
					log.Errorw("message router failed", "error", err)
				}
			}()
			select {
			case <-router.Running():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping message router")
			if cancel != nil {
				cancel()
			}
			return router.Close()
		},
	})
}

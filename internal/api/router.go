package api

import (
	v1 "github.com/bestsenki/storefront/internal/api/v1"
	"github.com/bestsenki/storefront/internal/auth"
	"github.com/bestsenki/storefront/internal/config"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/rest/middleware"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Checkout *v1.CheckoutHandler
	Order    *v1.OrderHandler
	Loyalty  *v1.LoyaltyHandler
	Referral *v1.ReferralHandler
	Favorite *v1.FavoriteHandler
	Banner   *v1.BannerHandler
	Review   *v1.ReviewHandler
	Admin    *v1.AdminHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, authProvider auth.Provider) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg),
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)

	v1Router := router.Group("/v1")
	v1Router.Use(middleware.OptionalAuthMiddleware(authProvider, logger), middleware.SentryScopeMiddleware)

	// guests may check out; loyalty endpoints check login themselves
	checkout := v1Router.Group("/checkout/sessions")
	{
		checkout.POST("", handlers.Checkout.StartSession)
		checkout.GET("/:id", handlers.Checkout.GetSession)
		checkout.PUT("/:id/lines", handlers.Checkout.UpdateLines)
		checkout.POST("/:id/promo", handlers.Checkout.ApplyPromo)
		checkout.DELETE("/:id/promo", handlers.Checkout.RemovePromo)
		checkout.POST("/:id/loyalty", handlers.Checkout.ApplyLoyalty)
		checkout.POST("/:id/loyalty/use-all", handlers.Checkout.UseAllLoyalty)
		checkout.DELETE("/:id/loyalty", handlers.Checkout.RemoveLoyalty)
		checkout.POST("/:id/submit", handlers.Checkout.Submit)
	}

	v1Router.GET("/banners", handlers.Banner.ListLiveBanners)
	v1Router.GET("/recently-viewed", handlers.Favorite.ListRecentlyViewed)
	v1Router.GET("/favorites/:handle", handlers.Favorite.IsFavorite)
	v1Router.GET("/products/:handle/reviews", handlers.Review.ListReviews)

	account := v1Router.Group("", middleware.RequireAuthMiddleware)
	{
		account.GET("/orders", handlers.Order.ListMyOrders)
		account.GET("/orders/:id", handlers.Order.GetOrder)

		account.GET("/loyalty", handlers.Loyalty.GetLoyalty)

		account.GET("/referrals", handlers.Referral.GetReferral)
		account.POST("/referrals", handlers.Referral.CreateReferral)
		account.POST("/referrals/apply", handlers.Referral.ApplyCode)

		account.GET("/favorites", handlers.Favorite.ListFavorites)
		account.POST("/favorites", handlers.Favorite.AddFavorite)
		account.POST("/favorites/toggle", handlers.Favorite.ToggleFavorite)
		account.DELETE("/favorites/:handle", handlers.Favorite.RemoveFavorite)

		account.POST("/recently-viewed", handlers.Favorite.AddRecentlyViewed)
		account.DELETE("/recently-viewed", handlers.Favorite.ClearRecentlyViewed)

		account.POST("/products/:handle/reviews", handlers.Review.CreateReview)
	}

	admin := v1Router.Group("/admin", middleware.AdminMiddleware(cfg, logger))
	{
		admin.GET("/dashboard", handlers.Admin.GetDashboard)

		admin.GET("/orders", handlers.Admin.ListOrders)
		admin.GET("/orders/export", handlers.Admin.ExportOrders)
		admin.GET("/orders/:id", handlers.Admin.GetOrder)
		admin.PUT("/orders/:id/status", handlers.Admin.UpdateOrderStatus)

		admin.GET("/banners", handlers.Banner.ListBanners)
		admin.POST("/banners", handlers.Banner.CreateBanner)
		admin.PUT("/banners/:id", handlers.Banner.UpdateBanner)
		admin.POST("/banners/:id/toggle", handlers.Banner.ToggleBanner)
		admin.DELETE("/banners/:id", handlers.Banner.DeleteBanner)

		admin.POST("/products/variants/preview", handlers.Admin.PreviewVariants)
	}

	return router
}

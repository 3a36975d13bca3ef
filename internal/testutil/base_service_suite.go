package testutil

import (
	"context"
	"time"

	"github.com/bestsenki/storefront/internal/cache"
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
	"github.com/bestsenki/storefront/internal/sentry"
	"github.com/bestsenki/storefront/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	OrderRepo          order.Repository
	LoyaltyRepo        loyalty.Repository
	ReferralRepo       referral.Repository
	FavoriteRepo       favorite.Repository
	RecentlyViewedRepo recentlyviewed.Repository
	BannerRepo         banner.Repository
	ReviewRepo         review.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	db           postgres.IClient
	logger       *logger.Logger
	config       *config.Configuration
	sentry       *sentry.Service
	cache        *cache.InMemoryCache
	sessionStore checkout.Store
	catalog      *MockCatalog
	pubsub       *InMemoryPubSub
	emailSender  *MockEmailSender
	email        *email.Email
	now          time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()
	s.logger = logger.NewNoopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.config = config.GetDefaultConfig()
	s.sentry = sentry.NewSentryService(s.config, s.logger)
	s.db = NewMockPostgresClient()
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.sessionStore = cache.NewSessionStore(s.cache, s.config)
	s.catalog = NewMockCatalog()
	s.pubsub = NewInMemoryPubSub()
	s.emailSender = NewMockEmailSender()
	s.email = email.NewEmail(s.emailSender, s.logger)
	s.now = time.Now().UTC()
	s.setupStores()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		OrderRepo:          NewInMemoryOrderStore(),
		LoyaltyRepo:        NewInMemoryLoyaltyStore(),
		ReferralRepo:       NewInMemoryReferralStore(),
		FavoriteRepo:       NewInMemoryFavoriteStore(),
		RecentlyViewedRepo: NewInMemoryRecentlyViewedStore(),
		BannerRepo:         NewInMemoryBannerStore(),
		ReviewRepo:         NewInMemoryReviewStore(),
	}
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

func (s *BaseServiceTestSuite) GetCache() *cache.InMemoryCache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetSessionStore() checkout.Store {
	return s.sessionStore
}

func (s *BaseServiceTestSuite) GetCatalog() *MockCatalog {
	return s.catalog
}

func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubsub
}

func (s *BaseServiceTestSuite) GetEmailSender() *MockEmailSender {
	return s.emailSender
}

func (s *BaseServiceTestSuite) GetEmail() *email.Email {
	return s.email
}

func (s *BaseServiceTestSuite) GetLoyaltyStore() *InMemoryLoyaltyStore {
	return s.stores.LoyaltyRepo.(*InMemoryLoyaltyStore)
}

func (s *BaseServiceTestSuite) GetOrderStore() *InMemoryOrderStore {
	return s.stores.OrderRepo.(*InMemoryOrderStore)
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

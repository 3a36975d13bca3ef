package service

import (
	"github.com/bestsenki/storefront/internal/testutil"
)

func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetSentry(),
		stores.OrderRepo,
		stores.LoyaltyRepo,
		stores.ReferralRepo,
		stores.FavoriteRepo,
		stores.RecentlyViewedRepo,
		stores.BannerRepo,
		stores.ReviewRepo,
		s.GetCache(),
		s.GetSessionStore(),
		s.GetCatalog(),
		s.GetPubSub(),
		s.GetEmail(),
	)
}

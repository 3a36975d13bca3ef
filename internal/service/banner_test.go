package service

import (
	"testing"
	"time"

	"github.com/bestsenki/storefront/internal/api/dto"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type BannerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BannerService
}

func TestBannerService(t *testing.T) {
	suite.Run(t, new(BannerServiceSuite))
}

func (s *BannerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewBannerService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *BannerServiceSuite) create(req *dto.CreateBannerRequest) *dto.BannerResponse {
	resp, err := s.service.CreateBanner(testutil.SetupAdminContext(), req)
	s.Require().NoError(err)
	return resp
}

func (s *BannerServiceSuite) TestCreateBannerDefaults() {
	resp := s.create(&dto.CreateBannerRequest{
		Title:    " Весенняя распродажа ",
		Discount: "-15%",
		Code:     lo.ToPtr(" welcome15 "),
	})
	s.True(resp.IsActive)
	s.Equal("Весенняя распродажа", resp.Title)
	s.Equal("WELCOME15", *resp.Code)
}

func (s *BannerServiceSuite) TestCreateBannerValidatesWindow() {
	now := time.Now().UTC()
	_, err := s.service.CreateBanner(testutil.SetupAdminContext(), &dto.CreateBannerRequest{
		Title:     "Скидки",
		Discount:  "-10%",
		StartDate: lo.ToPtr(now),
		EndDate:   lo.ToPtr(now.Add(-time.Hour)),
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.CreateBanner(testutil.SetupAdminContext(), &dto.CreateBannerRequest{Discount: "-10%"})
	s.True(ierr.IsValidation(err))
}

func (s *BannerServiceSuite) TestLiveBannersRespectWindowAndState() {
	now := time.Now().UTC()
	live := s.create(&dto.CreateBannerRequest{Title: "Сейчас", Discount: "-10%"})
	s.create(&dto.CreateBannerRequest{Title: "Выключен", Discount: "-10%", IsActive: lo.ToPtr(false)})
	s.create(&dto.CreateBannerRequest{Title: "Будущий", Discount: "-10%", StartDate: lo.ToPtr(now.Add(24 * time.Hour))})
	s.create(&dto.CreateBannerRequest{Title: "Прошедший", Discount: "-10%", EndDate: lo.ToPtr(now.Add(-time.Hour))})

	resp, err := s.service.ListLiveBanners(s.GetContext())
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(live.ID, resp.Items[0].ID)

	all, err := s.service.ListBanners(testutil.SetupAdminContext())
	s.Require().NoError(err)
	s.Len(all.Items, 4)
}

func (s *BannerServiceSuite) TestScheduledBannerAppearsWhileCached() {
	startsAt := time.Now().UTC().Add(300 * time.Millisecond)
	scheduled := s.create(&dto.CreateBannerRequest{Title: "Скоро", Discount: "-20%", StartDate: lo.ToPtr(startsAt)})

	resp, err := s.service.ListLiveBanners(s.GetContext())
	s.Require().NoError(err)
	s.Empty(resp.Items)

	s.Eventually(func() bool {
		resp, err := s.service.ListLiveBanners(s.GetContext())
		return err == nil && len(resp.Items) == 1 && resp.Items[0].ID == scheduled.ID
	}, 2*time.Second, 50*time.Millisecond)
}

func (s *BannerServiceSuite) TestChangesInvalidateLiveCache() {
	b := s.create(&dto.CreateBannerRequest{Title: "Сейчас", Discount: "-10%"})

	resp, err := s.service.ListLiveBanners(s.GetContext())
	s.Require().NoError(err)
	s.Len(resp.Items, 1)

	toggled, err := s.service.ToggleBanner(testutil.SetupAdminContext(), b.ID)
	s.Require().NoError(err)
	s.False(toggled.IsActive)

	resp, err = s.service.ListLiveBanners(s.GetContext())
	s.Require().NoError(err)
	s.Empty(resp.Items)

	_, err = s.service.UpdateBanner(testutil.SetupAdminContext(), b.ID, &dto.UpdateBannerRequest{
		IsActive: lo.ToPtr(true),
		Title:    lo.ToPtr("Обновлён"),
	})
	s.Require().NoError(err)

	resp, err = s.service.ListLiveBanners(s.GetContext())
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal("Обновлён", resp.Items[0].Title)

	s.Require().NoError(s.service.DeleteBanner(testutil.SetupAdminContext(), b.ID))
	resp, err = s.service.ListLiveBanners(s.GetContext())
	s.Require().NoError(err)
	s.Empty(resp.Items)

	_, err = s.service.ToggleBanner(testutil.SetupAdminContext(), b.ID)
	s.True(ierr.IsNotFound(err))
}

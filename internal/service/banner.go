package service

import (
	"context"
	"time"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/cache"
	"github.com/bestsenki/storefront/internal/domain/banner"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
)

// live banners are read on every storefront page load
const liveBannersTTL = time.Minute

type BannerService interface {
	// ListLiveBanners returns active banners inside their date window, newest first
	ListLiveBanners(ctx context.Context) (*dto.ListBannersResponse, error)

	// admin
	ListBanners(ctx context.Context) (*dto.ListBannersResponse, error)
	CreateBanner(ctx context.Context, req *dto.CreateBannerRequest) (*dto.BannerResponse, error)
	UpdateBanner(ctx context.Context, id string, req *dto.UpdateBannerRequest) (*dto.BannerResponse, error)
	ToggleBanner(ctx context.Context, id string) (*dto.BannerResponse, error)
	DeleteBanner(ctx context.Context, id string) error
}

type bannerService struct {
	ServiceParams
}

func NewBannerService(params ServiceParams) BannerService {
	return &bannerService{
		ServiceParams: params,
	}
}

// ListLiveBanners caches every active banner and applies the date window on
// each read, so a scheduled banner appears as soon as it starts
func (s *bannerService) ListLiveBanners(ctx context.Context) (*dto.ListBannersResponse, error) {
	key := cache.GenerateKey(cache.PrefixBanner, "active")
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if banners, ok := cached.([]*banner.Banner); ok {
			return toBannerList(filterLive(banners, time.Now().UTC())), nil
		}
	}

	filter := banner.NewFilter()
	filter.QueryFilter = types.NewNoLimitQueryFilter()
	filter.ActiveOnly = true

	banners, err := s.BannerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, banners, liveBannersTTL)
	return toBannerList(filterLive(banners, time.Now().UTC())), nil
}

func (s *bannerService) ListBanners(ctx context.Context) (*dto.ListBannersResponse, error) {
	filter := banner.NewFilter()
	filter.QueryFilter = types.NewNoLimitQueryFilter()

	banners, err := s.BannerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toBannerList(banners), nil
}

func (s *bannerService) CreateBanner(ctx context.Context, req *dto.CreateBannerRequest) (*dto.BannerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b := req.ToBanner(ctx)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.BannerRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.Logger.Infow("banner created", "banner_id", b.ID, "title", b.Title)
	return &dto.BannerResponse{Banner: b}, nil
}

func (s *bannerService) UpdateBanner(ctx context.Context, id string, req *dto.UpdateBannerRequest) (*dto.BannerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.BannerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(b)
	return s.save(ctx, b)
}

func (s *bannerService) ToggleBanner(ctx context.Context, id string) (*dto.BannerResponse, error) {
	b, err := s.BannerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	b.IsActive = !b.IsActive
	return s.save(ctx, b)
}

func (s *bannerService) DeleteBanner(ctx context.Context, id string) error {
	if err := s.BannerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.Logger.Infow("banner deleted", "banner_id", id)
	return nil
}

func (s *bannerService) save(ctx context.Context, b *banner.Banner) (*dto.BannerResponse, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	b.UpdatedAt = time.Now().UTC()
	b.UpdatedBy = types.GetUserID(ctx)
	if err := s.BannerRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &dto.BannerResponse{Banner: b}, nil
}

func (s *bannerService) invalidate(ctx context.Context) {
	s.Cache.DeleteByPrefix(ctx, cache.PrefixBanner)
}

func filterLive(banners []*banner.Banner, now time.Time) []*banner.Banner {
	return lo.Filter(banners, func(b *banner.Banner, _ int) bool { return b.IsLive(now) })
}

func toBannerList(banners []*banner.Banner) *dto.ListBannersResponse {
	return &dto.ListBannersResponse{
		Items: lo.Map(banners, func(b *banner.Banner, _ int) *dto.BannerResponse {
			return &dto.BannerResponse{Banner: b}
		}),
	}
}

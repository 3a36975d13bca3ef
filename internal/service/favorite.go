package service

import (
	"context"
	"strings"
	"time"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/domain/favorite"
	"github.com/bestsenki/storefront/internal/domain/recentlyviewed"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
)

type FavoriteService interface {
	AddFavorite(ctx context.Context, req *dto.FavoriteRequest) error
	RemoveFavorite(ctx context.Context, handle string) error
	ToggleFavorite(ctx context.Context, req *dto.FavoriteRequest) (*dto.ToggleFavoriteResponse, error)
	ListFavorites(ctx context.Context) (*dto.ListFavoritesResponse, error)
	IsFavorite(ctx context.Context, handle string) (bool, error)
}

type favoriteService struct {
	ServiceParams
}

func NewFavoriteService(params ServiceParams) FavoriteService {
	return &favoriteService{
		ServiceParams: params,
	}
}

func (s *favoriteService) AddFavorite(ctx context.Context, req *dto.FavoriteRequest) error {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return errLoginRequired("Войдите, чтобы добавить в избранное")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	return s.FavoriteRepo.Add(ctx, &favorite.Favorite{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_FAVORITE),
		AccountID: accountID,
		Handle:    strings.TrimSpace(req.Handle),
		CreatedAt: time.Now().UTC(),
	})
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, handle string) error {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return errLoginRequired("Войдите, чтобы изменить избранное")
	}
	if err := favorite.ValidateHandle(handle); err != nil {
		return err
	}
	return s.FavoriteRepo.Remove(ctx, accountID, strings.TrimSpace(handle))
}

func (s *favoriteService) ToggleFavorite(ctx context.Context, req *dto.FavoriteRequest) (*dto.ToggleFavoriteResponse, error) {
	isFavorite, err := s.IsFavorite(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	if isFavorite {
		err = s.RemoveFavorite(ctx, req.Handle)
	} else {
		err = s.AddFavorite(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	return &dto.ToggleFavoriteResponse{
		Handle:     strings.TrimSpace(req.Handle),
		IsFavorite: !isFavorite,
	}, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context) (*dto.ListFavoritesResponse, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return nil, errLoginRequired("Войдите, чтобы увидеть избранное")
	}

	favorites, err := s.FavoriteRepo.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []*favorite.Favorite{}
	}

	return &dto.ListFavoritesResponse{
		Items:   favorites,
		Handles: lo.Map(favorites, func(f *favorite.Favorite, _ int) string { return f.Handle }),
	}, nil
}

// IsFavorite is false for guests rather than an error
func (s *favoriteService) IsFavorite(ctx context.Context, handle string) (bool, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return false, nil
	}
	if err := favorite.ValidateHandle(handle); err != nil {
		return false, err
	}
	return s.FavoriteRepo.Exists(ctx, accountID, strings.TrimSpace(handle))
}

type RecentlyViewedService interface {
	AddRecentlyViewed(ctx context.Context, req *dto.RecentlyViewedRequest) (*dto.ListRecentlyViewedResponse, error)
	ListRecentlyViewed(ctx context.Context) (*dto.ListRecentlyViewedResponse, error)
	ClearRecentlyViewed(ctx context.Context) error
}

type recentlyViewedService struct {
	ServiceParams
}

func NewRecentlyViewedService(params ServiceParams) RecentlyViewedService {
	return &recentlyViewedService{
		ServiceParams: params,
	}
}

// AddRecentlyViewed moves the product to the front and drops anything past the limit
func (s *recentlyViewedService) AddRecentlyViewed(ctx context.Context, req *dto.RecentlyViewedRequest) (*dto.ListRecentlyViewedResponse, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return nil, errLoginRequired("Войдите, чтобы сохранять историю просмотров")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.RecentlyViewedRepo.List(ctx, accountID, types.DefaultRecentlyViewedLimit)
	if err != nil {
		return nil, err
	}

	entry := &recentlyviewed.Entry{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RECENTLY_VIEWED),
		AccountID: accountID,
		Handle:    strings.TrimSpace(req.Handle),
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Price:     req.Price,
		ViewedAt:  time.Now().UTC(),
	}
	if err := s.RecentlyViewedRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.RecentlyViewedRepo.Trim(ctx, accountID, types.DefaultRecentlyViewedLimit); err != nil {
		return nil, err
	}

	return &dto.ListRecentlyViewedResponse{
		Items: recentlyviewed.Push(current, entry, types.DefaultRecentlyViewedLimit),
	}, nil
}

func (s *recentlyViewedService) ListRecentlyViewed(ctx context.Context) (*dto.ListRecentlyViewedResponse, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return &dto.ListRecentlyViewedResponse{Items: []*recentlyviewed.Entry{}}, nil
	}

	entries, err := s.RecentlyViewedRepo.List(ctx, accountID, types.DefaultRecentlyViewedLimit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*recentlyviewed.Entry{}
	}
	return &dto.ListRecentlyViewedResponse{Items: entries}, nil
}

func (s *recentlyViewedService) ClearRecentlyViewed(ctx context.Context) error {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return errLoginRequired("Войдите, чтобы очистить историю просмотров")
	}
	return s.RecentlyViewedRepo.Clear(ctx, accountID)
}

package dto

import (
	"github.com/bestsenki/storefront/internal/domain/favorite"
	"github.com/bestsenki/storefront/internal/domain/recentlyviewed"
	"github.com/bestsenki/storefront/internal/validator"
	"github.com/shopspring/decimal"
)

type FavoriteRequest struct {
	Handle string `json:"handle" validate:"required,max=255"`
}

func (r *FavoriteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ToggleFavoriteResponse struct {
	Handle     string `json:"handle"`
	IsFavorite bool   `json:"is_favorite"`
}

type ListFavoritesResponse struct {
	Items   []*favorite.Favorite `json:"items"`
	Handles []string             `json:"handles"`
}

type RecentlyViewedRequest struct {
	Handle   string          `json:"handle" validate:"required,max=255"`
	Title    string          `json:"title" validate:"required"`
	ImageURL string          `json:"image_url"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
}

func (r *RecentlyViewedRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ListRecentlyViewedResponse struct {
	Items []*recentlyviewed.Entry `json:"items"`
}

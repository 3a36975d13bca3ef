package dto

import (
	"context"
	"strings"
	"time"

	"github.com/bestsenki/storefront/internal/domain/banner"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/bestsenki/storefront/internal/validator"
	"github.com/samber/lo"
)

type CreateBannerRequest struct {
	Title           string     `json:"title" validate:"required,max=255"`
	Description     *string    `json:"description"`
	Code            *string    `json:"code"`
	Discount        string     `json:"discount" validate:"required,max=100"`
	BackgroundColor *string    `json:"background_color"`
	IsActive        *bool      `json:"is_active"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
}

func (r *CreateBannerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateBannerRequest) ToBanner(ctx context.Context) *banner.Banner {
	return &banner.Banner{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BANNER),
		Title:           strings.TrimSpace(r.Title),
		Description:     r.Description,
		Code:            normalizeBannerCode(r.Code),
		Discount:        strings.TrimSpace(r.Discount),
		BackgroundColor: r.BackgroundColor,
		IsActive:        lo.FromPtrOr(r.IsActive, true),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

type UpdateBannerRequest struct {
	Title           *string    `json:"title" validate:"omitempty,max=255"`
	Description     *string    `json:"description"`
	Code            *string    `json:"code"`
	Discount        *string    `json:"discount" validate:"omitempty,max=100"`
	BackgroundColor *string    `json:"background_color"`
	IsActive        *bool      `json:"is_active"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
}

func (r *UpdateBannerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto b
func (r *UpdateBannerRequest) Apply(b *banner.Banner) {
	if r.Title != nil {
		b.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		b.Description = r.Description
	}
	if r.Code != nil {
		b.Code = normalizeBannerCode(r.Code)
	}
	if r.Discount != nil {
		b.Discount = strings.TrimSpace(*r.Discount)
	}
	if r.BackgroundColor != nil {
		b.BackgroundColor = r.BackgroundColor
	}
	if r.IsActive != nil {
		b.IsActive = *r.IsActive
	}
	if r.StartDate != nil {
		b.StartDate = r.StartDate
	}
	if r.EndDate != nil {
		b.EndDate = r.EndDate
	}
}

func normalizeBannerCode(code *string) *string {
	if code == nil {
		return nil
	}
	c := strings.ToUpper(strings.TrimSpace(*code))
	if c == "" {
		return nil
	}
	return &c
}

type BannerResponse struct {
	*banner.Banner
}

type ListBannersResponse struct {
	Items []*BannerResponse `json:"items"`
}

package dto

import (
	"github.com/bestsenki/storefront/internal/domain/order"
	"github.com/bestsenki/storefront/internal/domain/product"
	"github.com/bestsenki/storefront/internal/validator"
	"github.com/shopspring/decimal"
)

type DashboardRequest struct {
	Days     int `form:"days" validate:"omitempty,min=1,max=365"`
	TopLimit int `form:"top_limit" validate:"omitempty,min=1,max=100"`
}

func (r *DashboardRequest) Validate() error {
	if r.Days == 0 {
		r.Days = order.DefaultSalesDays
	}
	if r.TopLimit == 0 {
		r.TopLimit = order.DefaultTopProductLimit
	}
	return validator.ValidateRequest(r)
}

type DashboardResponse struct {
	Stats       order.Stats        `json:"stats"`
	DailySales  []order.DailySales `json:"daily_sales"`
	TopProducts []order.TopProduct `json:"top_products"`
}

type VariantPreviewRequest struct {
	FirstOption    []string         `json:"first_option"`
	SecondOption   []string         `json:"second_option"`
	Price          decimal.Decimal  `json:"price" swaggertype:"string"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty" swaggertype:"string"`
}

type VariantPreviewResponse struct {
	Variants []product.Variant `json:"variants"`
}

package dto

import (
	"strings"

	"github.com/bestsenki/storefront/internal/domain/checkout"
	"github.com/bestsenki/storefront/internal/domain/pricing"
	"github.com/bestsenki/storefront/internal/domain/promo"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/bestsenki/storefront/internal/validator"
	"github.com/shopspring/decimal"
)

type CartLineRequest struct {
	ProductID    string          `json:"product_id"`
	VariantID    string          `json:"variant_id" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	VariantTitle string          `json:"variant_title"`
	UnitPrice    decimal.Decimal `json:"unit_price" swaggertype:"string"`
	Quantity     int             `json:"quantity" validate:"min=1"`
	Options      types.Metadata  `json:"options,omitempty"`
	ImageURL     string          `json:"image_url"`
}

func (r CartLineRequest) ToLine() pricing.Line {
	return pricing.Line{
		ProductID:    r.ProductID,
		VariantID:    r.VariantID,
		Title:        strings.TrimSpace(r.Title),
		VariantTitle: r.VariantTitle,
		UnitPrice:    r.UnitPrice,
		Quantity:     r.Quantity,
		Options:      r.Options,
		ImageURL:     r.ImageURL,
	}
}

type StartCheckoutRequest struct {
	Lines []CartLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (r *StartCheckoutRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *StartCheckoutRequest) ToLines() []pricing.Line {
	return toLines(r.Lines)
}

type UpdateCheckoutLinesRequest struct {
	Lines []CartLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (r *UpdateCheckoutLinesRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *UpdateCheckoutLinesRequest) ToLines() []pricing.Line {
	return toLines(r.Lines)
}

func toLines(in []CartLineRequest) []pricing.Line {
	lines := make([]pricing.Line, 0, len(in))
	for _, l := range in {
		lines = append(lines, l.ToLine())
	}
	return lines
}

type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

func (r *ApplyPromoRequest) Validate() error {
	r.Code = promo.NormalizeCode(r.Code)
	return validator.ValidateRequest(r)
}

type ApplyLoyaltyRequest struct {
	Points int64 `json:"points"`
}

type SubmitCheckoutRequest struct {
	CustomerName    string              `json:"customer_name" validate:"required,max=255"`
	Email           string              `json:"email" validate:"required,email"`
	Phone           string              `json:"phone" validate:"required,max=50"`
	ShippingAddress string              `json:"shipping_address" validate:"required,max=1000"`
	Notes           string              `json:"notes" validate:"max=2000"`
	PaymentMethod   types.PaymentMethod `json:"payment_method" validate:"required"`
}

func (r *SubmitCheckoutRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.ShippingAddress = strings.TrimSpace(r.ShippingAddress)
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.PaymentMethod.Validate()
}

// CheckoutSessionResponse is the current priced view of a session
type CheckoutSessionResponse struct {
	checkout.View
	// Adjustment is set when a cart change dropped a discount
	Adjustment *pricing.Adjustment `json:"adjustment,omitempty"`
}

type ApplyPromoResponse struct {
	CheckoutSessionResponse
	Promo promo.Resolution `json:"promo"`
}

type SubmitCheckoutResponse struct {
	Order *OrderResponse `json:"order"`
	// CheckoutURL is where the customer pays for an online order
	CheckoutURL string `json:"checkout_url,omitempty"`
}

package dto

import (
	"strings"

	"github.com/bestsenki/storefront/internal/domain/review"
	"github.com/bestsenki/storefront/internal/validator"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
	// UserName overrides the name derived from the account email
	UserName string `json:"user_name" validate:"max=255"`
}

func (r *CreateReviewRequest) Validate() error {
	r.Comment = strings.TrimSpace(r.Comment)
	r.UserName = strings.TrimSpace(r.UserName)
	return validator.ValidateRequest(r)
}

type ListReviewsResponse struct {
	Handle  string           `json:"handle"`
	Items   []*review.Review `json:"items"`
	Summary review.Summary   `json:"summary"`
}

type ReviewResponse struct {
	*review.Review
}

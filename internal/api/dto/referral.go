package dto

import (
	"github.com/bestsenki/storefront/internal/domain/referral"
	"github.com/bestsenki/storefront/internal/validator"
)

type ReferralResponse struct {
	*referral.Referral
	// Created is set when this request issued the code
	Created bool `json:"created,omitempty"`
}

type ApplyReferralRequest struct {
	Code string `json:"code" validate:"required"`
}

func (r *ApplyReferralRequest) Validate() error {
	r.Code = referral.NormalizeCode(r.Code)
	return validator.ValidateRequest(r)
}

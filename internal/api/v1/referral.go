package v1

import (
	"net/http"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/service"
	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	referralService service.ReferralService
	logger          *logger.Logger
}

func NewReferralHandler(referralService service.ReferralService, logger *logger.Logger) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
		logger:          logger,
	}
}

// @Summary Get my referral record
// @Tags Referrals
// @Produce json
// @Success 200 {object} dto.ReferralResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /referrals [get]
// @Security BearerAuth
func (h *ReferralHandler) GetReferral(c *gin.Context) {
	resp, err := h.referralService.GetReferral(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Create my referral code
// @Description Idempotent: an account that already has a code gets it back with 200
// @Tags Referrals
// @Produce json
// @Success 201 {object} dto.ReferralResponse
// @Success 200 {object} dto.ReferralResponse
// @Router /referrals [post]
// @Security BearerAuth
func (h *ReferralHandler) CreateReferral(c *gin.Context) {
	resp, err := h.referralService.CreateReferral(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// @Summary Apply a friend's referral code
// @Tags Referrals
// @Accept json
// @Produce json
// @Param request body dto.ApplyReferralRequest true "Referral code"
// @Success 200 {object} dto.ReferralResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /referrals/apply [post]
// @Security BearerAuth
func (h *ReferralHandler) ApplyCode(c *gin.Context) {
	var req dto.ApplyReferralRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.referralService.ApplyCode(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package v1

import (
	"net/http"

	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/service"
	"github.com/gin-gonic/gin"
)

type LoyaltyHandler struct {
	loyaltyService service.LoyaltyService
	logger         *logger.Logger
}

func NewLoyaltyHandler(loyaltyService service.LoyaltyService, logger *logger.Logger) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService: loyaltyService,
		logger:         logger,
	}
}

// @Summary Get my loyalty balance
// @Description Balance and the most recent transactions
// @Tags Loyalty
// @Produce json
// @Success 200 {object} dto.LoyaltyResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /loyalty [get]
// @Security BearerAuth
func (h *LoyaltyHandler) GetLoyalty(c *gin.Context) {
	resp, err := h.loyaltyService.GetLoyalty(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

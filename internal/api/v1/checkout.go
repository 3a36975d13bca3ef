package v1

import (
	"net/http"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/service"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *logger.Logger
}

func NewCheckoutHandler(checkoutService service.CheckoutService, logger *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// @Summary Start a checkout session
// @Description Prices the cart and, for logged-in customers, loads the loyalty balance
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body dto.StartCheckoutRequest true "Cart lines"
// @Success 201 {object} dto.CheckoutSessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /checkout/sessions [post]
func (h *CheckoutHandler) StartSession(c *gin.Context) {
	var req dto.StartCheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.checkoutService.StartSession(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a checkout session
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /checkout/sessions/{id} [get]
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}

	resp, err := h.checkoutService.GetSession(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Replace the cart lines of a session
// @Description Re-prices the session. A promo whose minimum is no longer met and points over the new cap are dropped and reported in adjustment.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.UpdateCheckoutLinesRequest true "Cart lines"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Router /checkout/sessions/{id}/lines [put]
func (h *CheckoutHandler) UpdateLines(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}
	var req dto.UpdateCheckoutLinesRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.checkoutService.UpdateLines(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Apply a promo code
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ApplyPromoRequest true "Promo code"
// @Success 200 {object} dto.ApplyPromoResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /checkout/sessions/{id}/promo [post]
func (h *CheckoutHandler) ApplyPromo(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}
	var req dto.ApplyPromoRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.checkoutService.ApplyPromo(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Remove the promo code
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Router /checkout/sessions/{id}/promo [delete]
func (h *CheckoutHandler) RemovePromo(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}

	resp, err := h.checkoutService.RemovePromo(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Redeem loyalty points
// @Description Redeems up to the requested points, capped at the balance and half the post-promo subtotal
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ApplyLoyaltyRequest true "Points"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /checkout/sessions/{id}/loyalty [post]
// @Security BearerAuth
func (h *CheckoutHandler) ApplyLoyalty(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}
	var req dto.ApplyLoyaltyRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.checkoutService.ApplyLoyalty(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Redeem the maximum usable points
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Router /checkout/sessions/{id}/loyalty/use-all [post]
// @Security BearerAuth
func (h *CheckoutHandler) UseAllLoyalty(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}

	resp, err := h.checkoutService.UseAllLoyalty(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Stop redeeming points
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CheckoutSessionResponse
// @Router /checkout/sessions/{id}/loyalty [delete]
func (h *CheckoutHandler) RemoveLoyalty(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}

	resp, err := h.checkoutService.RemoveLoyalty(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Submit the order
// @Description Stores the order with the finalized pricing. Online orders return the hosted checkout URL when available.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitCheckoutRequest true "Contact and delivery"
// @Success 201 {object} dto.SubmitCheckoutResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /checkout/sessions/{id}/submit [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}
	var req dto.SubmitCheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.checkoutService.Submit(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

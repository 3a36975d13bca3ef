package v1

import (
	"net/http"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/service"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *logger.Logger
}

func NewReviewHandler(reviewService service.ReviewService, logger *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// @Summary List product reviews
// @Description Newest first, with the average rating
// @Tags Reviews
// @Produce json
// @Param handle path string true "Product handle"
// @Success 200 {object} dto.ListReviewsResponse
// @Router /products/{handle}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	resp, err := h.reviewService.ListReviews(c.Request.Context(), c.Param("handle"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Review a product
// @Tags Reviews
// @Accept json
// @Produce json
// @Param handle path string true "Product handle"
// @Param request body dto.CreateReviewRequest true "Rating and optional comment"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /products/{handle}/reviews [post]
// @Security BearerAuth
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.reviewService.CreateReview(c.Request.Context(), c.Param("handle"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

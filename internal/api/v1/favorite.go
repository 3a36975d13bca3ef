package v1

import (
	"net/http"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/service"
	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService       service.FavoriteService
	recentlyViewedService service.RecentlyViewedService
	logger                *logger.Logger
}

func NewFavoriteHandler(
	favoriteService service.FavoriteService,
	recentlyViewedService service.RecentlyViewedService,
	logger *logger.Logger,
) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService:       favoriteService,
		recentlyViewedService: recentlyViewedService,
		logger:                logger,
	}
}

// @Summary List my favorites
// @Tags Favorites
// @Produce json
// @Success 200 {object} dto.ListFavoritesResponse
// @Router /favorites [get]
// @Security BearerAuth
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	resp, err := h.favoriteService.ListFavorites(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Add a product to favorites
// @Tags Favorites
// @Accept json
// @Param request body dto.FavoriteRequest true "Product handle"
// @Success 204
// @Router /favorites [post]
// @Security BearerAuth
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var req dto.FavoriteRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.favoriteService.AddFavorite(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove a product from favorites
// @Tags Favorites
// @Param handle path string true "Product handle"
// @Success 204
// @Router /favorites/{handle} [delete]
// @Security BearerAuth
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), c.Param("handle")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Toggle a favorite
// @Tags Favorites
// @Accept json
// @Produce json
// @Param request body dto.FavoriteRequest true "Product handle"
// @Success 200 {object} dto.ToggleFavoriteResponse
// @Router /favorites/toggle [post]
// @Security BearerAuth
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	var req dto.FavoriteRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.favoriteService.ToggleFavorite(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Check whether a product is a favorite
// @Description Always false for guests
// @Tags Favorites
// @Produce json
// @Param handle path string true "Product handle"
// @Success 200 {object} dto.ToggleFavoriteResponse
// @Router /favorites/{handle} [get]
func (h *FavoriteHandler) IsFavorite(c *gin.Context) {
	handle := c.Param("handle")
	ok, err := h.favoriteService.IsFavorite(c.Request.Context(), handle)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ToggleFavoriteResponse{Handle: handle, IsFavorite: ok})
}

// @Summary List recently viewed products
// @Description Empty for guests
// @Tags Recently viewed
// @Produce json
// @Success 200 {object} dto.ListRecentlyViewedResponse
// @Router /recently-viewed [get]
func (h *FavoriteHandler) ListRecentlyViewed(c *gin.Context) {
	resp, err := h.recentlyViewedService.ListRecentlyViewed(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Record a product view
// @Tags Recently viewed
// @Accept json
// @Produce json
// @Param request body dto.RecentlyViewedRequest true "Product snapshot"
// @Success 200 {object} dto.ListRecentlyViewedResponse
// @Router /recently-viewed [post]
// @Security BearerAuth
func (h *FavoriteHandler) AddRecentlyViewed(c *gin.Context) {
	var req dto.RecentlyViewedRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.recentlyViewedService.AddRecentlyViewed(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Clear recently viewed products
// @Tags Recently viewed
// @Success 204
// @Router /recently-viewed [delete]
// @Security BearerAuth
func (h *FavoriteHandler) ClearRecentlyViewed(c *gin.Context) {
	if err := h.recentlyViewedService.ClearRecentlyViewed(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

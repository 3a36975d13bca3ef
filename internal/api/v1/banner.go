package v1

import (
	"net/http"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/service"
	"github.com/gin-gonic/gin"
)

type BannerHandler struct {
	bannerService service.BannerService
	logger        *logger.Logger
}

func NewBannerHandler(bannerService service.BannerService, logger *logger.Logger) *BannerHandler {
	return &BannerHandler{
		bannerService: bannerService,
		logger:        logger,
	}
}

// @Summary List live banners
// @Description Active banners inside their date window, newest first
// @Tags Banners
// @Produce json
// @Success 200 {object} dto.ListBannersResponse
// @Router /banners [get]
func (h *BannerHandler) ListLiveBanners(c *gin.Context) {
	resp, err := h.bannerService.ListLiveBanners(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List all banners
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.ListBannersResponse
// @Router /admin/banners [get]
// @Security BearerAuth
func (h *BannerHandler) ListBanners(c *gin.Context) {
	resp, err := h.bannerService.ListBanners(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Create a banner
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateBannerRequest true "Banner"
// @Success 201 {object} dto.BannerResponse
// @Router /admin/banners [post]
// @Security BearerAuth
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var req dto.CreateBannerRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.bannerService.CreateBanner(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Update a banner
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Banner ID"
// @Param request body dto.UpdateBannerRequest true "Fields to change"
// @Success 200 {object} dto.BannerResponse
// @Router /admin/banners/{id} [put]
// @Security BearerAuth
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id, ok := pathID(c, "banner")
	if !ok {
		return
	}
	var req dto.UpdateBannerRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.bannerService.UpdateBanner(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Toggle a banner on or off
// @Tags Admin
// @Produce json
// @Param id path string true "Banner ID"
// @Success 200 {object} dto.BannerResponse
// @Router /admin/banners/{id}/toggle [post]
// @Security BearerAuth
func (h *BannerHandler) ToggleBanner(c *gin.Context) {
	id, ok := pathID(c, "banner")
	if !ok {
		return
	}

	resp, err := h.bannerService.ToggleBanner(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a banner
// @Tags Admin
// @Param id path string true "Banner ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/banners/{id} [delete]
// @Security BearerAuth
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id, ok := pathID(c, "banner")
	if !ok {
		return
	}

	if err := h.bannerService.DeleteBanner(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Баннер удалён"})
}

package v1

import (
	"fmt"
	"net/http"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/service"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService   service.AdminService
	orderService   service.OrderService
	productService service.ProductService
	logger         *logger.Logger
}

func NewAdminHandler(
	adminService service.AdminService,
	orderService service.OrderService,
	productService service.ProductService,
	logger *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		orderService:   orderService,
		productService: productService,
		logger:         logger,
	}
}

// @Summary List orders
// @Tags Admin
// @Produce json
// @Param filter query types.OrderFilter false "Filter"
// @Success 200 {object} dto.ListOrdersResponse
// @Router /admin/orders [get]
// @Security BearerAuth
func (h *AdminHandler) ListOrders(c *gin.Context) {
	filter := types.NewOrderFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get an order
// @Tags Admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Router /admin/orders/{id} [get]
// @Security BearerAuth
func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	resp, err := h.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update order status
// @Description Emails the customer about the new status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} dto.OrderResponse
// @Router /admin/orders/{id}/status [put]
// @Security BearerAuth
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Export orders
// @Description Downloads orders as a BOM-prefixed CSV or as JSON
// @Tags Admin
// @Produce text/csv
// @Produce json
// @Param format query string false "csv or json" default(csv)
// @Param filter query types.OrderFilter false "Filter"
// @Success 200 {file} file
// @Router /admin/orders/export [get]
// @Security BearerAuth
func (h *AdminHandler) ExportOrders(c *gin.Context) {
	filter := types.NewOrderFilter()
	if !bindQuery(c, filter) {
		return
	}

	file, err := h.adminService.ExportOrders(c.Request.Context(), filter, c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// @Summary Sales dashboard
// @Tags Admin
// @Produce json
// @Param request query dto.DashboardRequest false "Window"
// @Success 200 {object} dto.DashboardResponse
// @Router /admin/dashboard [get]
// @Security BearerAuth
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	var req dto.DashboardRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := h.adminService.GetDashboard(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Preview product variants
// @Description Crosses two option lists into the variant rows that would be created
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.VariantPreviewRequest true "Options and price"
// @Success 200 {object} dto.VariantPreviewResponse
// @Router /admin/products/variants/preview [post]
// @Security BearerAuth
func (h *AdminHandler) PreviewVariants(c *gin.Context) {
	var req dto.VariantPreviewRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.productService.PreviewVariants(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

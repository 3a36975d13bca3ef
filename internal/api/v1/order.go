package v1

import (
	"net/http"

	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/service"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
	logger       *logger.Logger
}

func NewOrderHandler(orderService service.OrderService, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// @Summary List my orders
// @Tags Orders
// @Produce json
// @Param filter query types.OrderFilter false "Filter"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /orders [get]
// @Security BearerAuth
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	filter := types.NewOrderFilter()
	if !bindQuery(c, filter) {
		return
	}

	resp, err := h.orderService.ListMyOrders(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get one of my orders
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /orders/{id} [get]
// @Security BearerAuth
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	resp, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
